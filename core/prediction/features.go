package prediction

import (
	"fmt"
	"math"

	"github.com/mhoffer/parkcast/core/model"
)

// Feature names as exported by the training pipeline.
const (
	featHour           = "Hour"
	featDayOfWeek      = "DayOfWeek"
	featEV             = "Electric_Vehicle"
	featSpotID         = "Parking_Spot_ID"
	featIsWeekend      = "IsWeekend"
	featMonth          = "Month"
	featHourSin        = "Hour_sin"
	featHourCos        = "Hour_cos"
	featDaySin         = "DayOfWeek_sin"
	featDayCos         = "DayOfWeek_cos"
	featHourPattern    = "Hour_Pattern"
	featDayPattern     = "DayOfWeek_Pattern"
	featSectionEnc     = "Parking_Lot_Section_encoded"
	featVehicleEnc     = "Vehicle_Type_encoded"
	featProximity      = "Proximity_To_Exit"
	featReserved       = "Reserved_Status"
	featWeatherTemp    = "Weather_Temperature"
	featWeatherPrecip  = "Weather_Precipitation"
	featTrafficEnc     = "Nearby_Traffic_Level_encoded"
	featSensorProx     = "Sensor_Reading_Proximity"
	featSensorPress    = "Sensor_Reading_Pressure"
	featSensorUltra    = "Sensor_Reading_Ultrasonic"
	featVehicleWeight  = "Vehicle_Type_Weight"
	featVehicleHeight  = "Vehicle_Type_Height"
	featParkingHistory = "User_Parking_History"
)

// Encoded column names.
const (
	colSection = "Parking_Lot_Section"
	colVehicle = "Vehicle_Type"
	colTraffic = "Nearby_Traffic_Level"
)

// hourPattern collapses the diurnal demand bands to 2 (peak), 1 (moderate)
// and 0 (off-peak). The bands match the simulator's probability function.
func hourPattern(hour int) int {
	switch {
	case hour >= 8 && hour <= 10, hour >= 17 && hour <= 19:
		return 2
	case hour >= 11 && hour <= 16:
		return 1
	default:
		return 0
	}
}

func isPeak(hour int) bool { return hourPattern(hour) == 2 }

// datasetVehicleCategory maps the caller's vehicle type to the coarser
// category the model was trained on.
func datasetVehicleCategory(v model.VehicleType) string {
	switch v {
	case model.VehicleMotorcycle:
		return string(model.VehicleMotorcycle)
	case model.VehicleElectric:
		return string(model.VehicleElectric)
	default:
		return string(model.VehicleCar)
	}
}

type featureInput struct {
	hour    int
	weekday int // Monday=0
	month   int
	isEV    bool
	spotID  int
	section string
	vehicle model.VehicleType
	spot    model.Spot
	traffic model.TrafficLevel
	weather model.WeatherForecast
	sensors sensorMeans
}

// buildFeatures assembles the named feature map. Encoding failures for
// categorical values propagate as ErrUnknownCategory.
func (p *Predictor) buildFeatures(in featureInput) (map[string]float64, error) {
	sectionCode, err := p.encode(colSection, in.section)
	if err != nil {
		return nil, err
	}
	vehicleCode, err := p.encode(colVehicle, datasetVehicleCategory(in.vehicle))
	if err != nil {
		return nil, err
	}
	trafficCode, err := p.encode(colTraffic, string(in.traffic))
	if err != nil {
		return nil, err
	}

	ev := 0.0
	if in.isEV {
		ev = 1
	}
	weekend := 0.0
	if in.weekday >= 5 {
		weekend = 1
	}
	weekdayPattern := 0.0
	if in.weekday < 5 {
		weekdayPattern = 1
	}
	reserved := 0.0
	if in.spot.Reserved {
		reserved = 1
	}

	return map[string]float64{
		featHour:           float64(in.hour),
		featDayOfWeek:      float64(in.weekday),
		featEV:             ev,
		featSpotID:         float64(in.spotID),
		featIsWeekend:      weekend,
		featMonth:          float64(in.month),
		featHourSin:        math.Sin(2 * math.Pi * float64(in.hour) / 24),
		featHourCos:        math.Cos(2 * math.Pi * float64(in.hour) / 24),
		featDaySin:         math.Sin(2 * math.Pi * float64(in.weekday) / 7),
		featDayCos:         math.Cos(2 * math.Pi * float64(in.weekday) / 7),
		featHourPattern:    float64(hourPattern(in.hour)),
		featDayPattern:     weekdayPattern,
		featSectionEnc:     float64(sectionCode),
		featVehicleEnc:     float64(vehicleCode),
		featProximity:      in.spot.DistanceToExit,
		featReserved:       reserved,
		featWeatherTemp:    in.weather.Temperature,
		featWeatherPrecip:  float64(in.weather.Precipitation),
		featTrafficEnc:     float64(trafficCode),
		featSensorProx:     in.sensors.proximity,
		featSensorPress:    in.sensors.pressure,
		featSensorUltra:    in.sensors.ultrasonic,
		featVehicleWeight:  in.spot.VehicleWeight,
		featVehicleHeight:  in.spot.VehicleHeight,
		featParkingHistory: in.spot.ParkingHistory,
	}, nil
}

func (p *Predictor) encode(column, value string) (int, error) {
	enc, ok := p.artifacts.Encoders[column]
	if !ok {
		return 0, fmt.Errorf("no encoder for column %q", column)
	}
	return enc.Transform(value)
}

// orderFeatures flattens the named map into the classifier's trained order.
func orderFeatures(named map[string]float64, order []string) ([]float64, error) {
	out := make([]float64, len(order))
	for i, name := range order {
		v, ok := named[name]
		if !ok {
			return nil, fmt.Errorf("model expects unknown feature %q", name)
		}
		out[i] = v
	}
	return out, nil
}
