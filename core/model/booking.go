package model

import (
	"math"
	"time"
)

// SlotKey identifies one hour of one spot within a section.
type SlotKey struct {
	SpotID  int
	Section string
	Hour    int // 0-23
}

// BookingRecord is the state of a slot. Holder and BookedAt are only set
// while the slot is booked.
type BookingRecord struct {
	Booked   bool
	Holder   string
	BookedAt time.Time
}

// OccupancySummary aggregates the booking state of one section at one hour.
// It is derived on demand and never cached.
type OccupancySummary struct {
	Section    string
	Hour       int
	TotalSpots int
	Booked     int
	Available  int
	Percentage float64 // rounded to one decimal
}

// Band classifies the occupancy level the way callers present it:
// "busy" above 60%, "moderate" above 40%, "quiet" otherwise.
func (o OccupancySummary) Band() string {
	switch {
	case o.Percentage > 60:
		return "busy"
	case o.Percentage > 40:
		return "moderate"
	default:
		return "quiet"
	}
}

// RoundPercentage rounds an occupancy percentage to one decimal place.
func RoundPercentage(p float64) float64 {
	return math.Round(p*10) / 10
}

// Trend describes how occupancy is moving relative to the previous hour.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)
