// Package dataset defines the in-memory form of the static parking dataset.
// Loading lives in infra/dataset; everything here is a read-only view.
package dataset

import (
	"time"

	"github.com/mhoffer/parkcast/core/model"
)

// Record is one dataset row. Weekday uses the Monday=0 convention the model
// was trained with; -1 means the timestamp could not be parsed.
type Record struct {
	SpotID   int
	Section  string
	Occupied bool

	DistanceToExit float64
	Size           model.SpotSize
	EVCharging     bool
	Reserved       bool

	WeatherTemperature   float64
	WeatherPrecipitation float64
	TrafficLevel         model.TrafficLevel

	SensorProximity  float64
	SensorPressure   float64
	SensorUltrasonic float64

	VehicleWeight  float64
	VehicleHeight  float64
	ParkingHistory float64

	Hour      int // Entry_Time, hour of day
	Weekday   int // Monday=0 .. Sunday=6, -1 if unknown
	Timestamp time.Time
}

// Spot converts the record's static attributes to a model.Spot.
func (r Record) Spot() model.Spot {
	return model.Spot{
		ID:                   r.SpotID,
		Section:              r.Section,
		DistanceToExit:       r.DistanceToExit,
		Size:                 r.Size,
		EVCharging:           r.EVCharging,
		Reserved:             r.Reserved,
		WeatherTemperature:   r.WeatherTemperature,
		WeatherPrecipitation: r.WeatherPrecipitation,
		TrafficLevel:         r.TrafficLevel,
		SensorProximity:      r.SensorProximity,
		SensorPressure:       r.SensorPressure,
		SensorUltrasonic:     r.SensorUltrasonic,
		VehicleWeight:        r.VehicleWeight,
		VehicleHeight:        r.VehicleHeight,
		ParkingHistory:       r.ParkingHistory,
	}
}

// Table holds the loaded dataset in file order.
type Table struct {
	records []Record
}

// NewTable wraps the given rows. The slice is taken over by the table.
func NewTable(records []Record) *Table { return &Table{records: records} }

// Records returns the rows in file order. The slice must not be mutated.
func (t *Table) Records() []Record { return t.records }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.records) }

// SectionStats are static per-section counts over the raw dataset, using the
// recorded occupancy column rather than the simulator.
type SectionStats struct {
	TotalSpots    int
	OccupiedRows  int
	AvailableRows int
	OccupancyRate float64
}

// Stats computes static statistics for one section.
func (t *Table) Stats(section string) SectionStats {
	spots := make(map[int]struct{})
	var occupied, total int
	for _, r := range t.records {
		if r.Section != section {
			continue
		}
		spots[r.SpotID] = struct{}{}
		total++
		if r.Occupied {
			occupied++
		}
	}
	stats := SectionStats{
		TotalSpots:    len(spots),
		OccupiedRows:  occupied,
		AvailableRows: total - occupied,
	}
	if len(spots) > 0 {
		stats.OccupancyRate = float64(occupied) / float64(len(spots)) * 100
	}
	return stats
}
