// Package dataset loads the static parking dataset the session is built
// from. The loader is strict about column presence: a missing required
// column is a load-time error, never a silent default.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	coredataset "github.com/mhoffer/parkcast/core/dataset"
	"github.com/mhoffer/parkcast/core/model"
)

// Required column names. The core depends on these exact headers.
const (
	ColSpotID        = "Parking_Spot_ID"
	ColSection       = "Parking_Lot_Section"
	ColOccupancy     = "Occupancy_Status"
	ColProximity     = "Proximity_To_Exit"
	ColSpotSize      = "Spot_Size"
	ColEV            = "Electric_Vehicle"
	ColWeatherTemp   = "Weather_Temperature"
	ColWeatherPrecip = "Weather_Precipitation"
	ColTraffic       = "Nearby_Traffic_Level"
	ColSensorProx    = "Sensor_Reading_Proximity"
	ColSensorPress   = "Sensor_Reading_Pressure"
	ColSensorUltra   = "Sensor_Reading_Ultrasonic"
	ColVehicleWeight = "Vehicle_Type_Weight"
	ColVehicleHeight = "Vehicle_Type_Height"
	ColHistory       = "User_Parking_History"
	ColReserved      = "Reserved_Status"
	ColEntryTime     = "Entry_Time"
	ColTimestamp     = "Timestamp"
)

var requiredColumns = []string{
	ColSpotID, ColSection, ColOccupancy, ColProximity, ColSpotSize, ColEV,
	ColWeatherTemp, ColWeatherPrecip, ColTraffic,
	ColSensorProx, ColSensorPress, ColSensorUltra,
	ColVehicleWeight, ColVehicleHeight, ColHistory, ColReserved,
	ColEntryTime, ColTimestamp,
}

// Load reads the dataset from a CSV file.
func Load(path string) (*coredataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

// Read parses a CSV dataset from the reader.
func Read(r io.Reader) (*coredataset.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("dataset missing required column %q", name)
		}
	}

	var records []coredataset.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row: %w", err)
		}
		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("dataset line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return coredataset.NewTable(records), nil
}

func parseRow(row []string, cols map[string]int) (coredataset.Record, error) {
	get := func(name string) string { return strings.TrimSpace(row[cols[name]]) }

	spotID, err := strconv.Atoi(get(ColSpotID))
	if err != nil {
		return coredataset.Record{}, fmt.Errorf("parse %s: %w", ColSpotID, err)
	}
	hourF, err := strconv.ParseFloat(get(ColEntryTime), 64)
	if err != nil {
		return coredataset.Record{}, fmt.Errorf("parse %s: %w", ColEntryTime, err)
	}

	rec := coredataset.Record{
		SpotID:               spotID,
		Section:              get(ColSection),
		Occupied:             strings.EqualFold(get(ColOccupancy), "Occupied"),
		DistanceToExit:       parseFloat(get(ColProximity)),
		Size:                 model.SpotSize(get(ColSpotSize)),
		EVCharging:           parseFlag(get(ColEV)),
		Reserved:             parseFlag(get(ColReserved)),
		WeatherTemperature:   parseFloat(get(ColWeatherTemp)),
		WeatherPrecipitation: parseFloat(get(ColWeatherPrecip)),
		TrafficLevel:         model.TrafficLevel(get(ColTraffic)),
		SensorProximity:      parseFloat(get(ColSensorProx)),
		SensorPressure:       parseFloat(get(ColSensorPress)),
		SensorUltrasonic:     parseFloat(get(ColSensorUltra)),
		VehicleWeight:        parseFloat(get(ColVehicleWeight)),
		VehicleHeight:        parseFloat(get(ColVehicleHeight)),
		ParkingHistory:       parseFloat(get(ColHistory)),
		Hour:                 int(hourF) % 24,
		Weekday:              -1,
	}

	if ts, ok := parseTimestamp(get(ColTimestamp)); ok {
		rec.Timestamp = ts
		// Monday=0 convention for model parity.
		rec.Weekday = (int(ts.Weekday()) + 6) % 7
	}
	return rec, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFlag(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		return true
	}
	return false
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02-01-2006 15:04",
}

// parseTimestamp tries the known layouts. Unparseable timestamps are
// tolerated: the row keeps hour information from Entry_Time.
func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
