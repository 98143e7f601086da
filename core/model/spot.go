package model

import "fmt"

// SpotSize classifies the physical dimensions of a parking spot.
type SpotSize string

const (
	SizeCompact  SpotSize = "Compact"
	SizeStandard SpotSize = "Standard"
	SizeLarge    SpotSize = "Large"
)

// TrafficLevel describes congestion around the facility.
type TrafficLevel string

const (
	TrafficLow    TrafficLevel = "Low"
	TrafficMedium TrafficLevel = "Medium"
	TrafficHigh   TrafficLevel = "High"
)

// VehicleType is the vehicle category supplied by the caller.
type VehicleType string

const (
	VehicleCar        VehicleType = "Car"
	VehicleSedan      VehicleType = "Sedan"
	VehicleSUV        VehicleType = "SUV"
	VehicleMotorcycle VehicleType = "Motorcycle"
	VehicleElectric   VehicleType = "Electric Vehicle"
	VehicleTruck      VehicleType = "Truck"
)

// SpotSizeFor maps a vehicle type to the spot size it needs.
// Unknown types default to Standard.
func SpotSizeFor(v VehicleType) SpotSize {
	switch v {
	case VehicleMotorcycle:
		return SizeCompact
	case VehicleSUV, VehicleTruck:
		return SizeLarge
	default:
		return SizeStandard
	}
}

// SizeCompatible reports whether a vehicle needing `recommended` fits a spot
// of `actual` size. Standard spots are treated as a universal fit.
func SizeCompatible(recommended, actual SpotSize) bool {
	return recommended == actual || actual == SizeStandard
}

// Spot holds the static attributes of a parking spot. Identifiers are unique
// within a section only, not globally. The sensor, weather and traffic fields
// are copies of the most recent dataset record for the spot and serve as
// historical-average fallbacks, never as live readings.
type Spot struct {
	ID      int
	Section string

	DistanceToExit float64 // meters
	Size           SpotSize
	EVCharging     bool
	Reserved       bool

	WeatherTemperature   float64
	WeatherPrecipitation float64
	TrafficLevel         TrafficLevel
	SensorProximity      float64
	SensorPressure       float64
	SensorUltrasonic     float64

	VehicleWeight  float64
	VehicleHeight  float64
	ParkingHistory float64
}

// Validate checks that the spot attributes are sound.
func (s Spot) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("spot id must be positive, got %d", s.ID)
	}
	if s.Section == "" {
		return fmt.Errorf("spot %d has no section", s.ID)
	}
	if s.DistanceToExit < 0 {
		return fmt.Errorf("spot %d has negative distance to exit", s.ID)
	}
	return nil
}
