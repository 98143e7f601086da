package dataset

import (
	"testing"

	"github.com/mhoffer/parkcast/core/model"
)

func TestRecordSpot(t *testing.T) {
	rec := Record{
		SpotID:         7,
		Section:        "C",
		DistanceToExit: 3.5,
		Size:           model.SizeLarge,
		EVCharging:     true,
		Reserved:       true,
		TrafficLevel:   model.TrafficHigh,
	}
	spot := rec.Spot()
	if spot.ID != 7 || spot.Section != "C" {
		t.Fatalf("identity lost: %+v", spot)
	}
	if spot.DistanceToExit != 3.5 || spot.Size != model.SizeLarge {
		t.Errorf("static attributes lost: %+v", spot)
	}
	if !spot.EVCharging || !spot.Reserved || spot.TrafficLevel != model.TrafficHigh {
		t.Errorf("flags lost: %+v", spot)
	}
}

func TestStats(t *testing.T) {
	table := NewTable([]Record{
		{SpotID: 1, Section: "A", Occupied: true},
		{SpotID: 1, Section: "A", Occupied: false},
		{SpotID: 2, Section: "A", Occupied: true},
		{SpotID: 1, Section: "B", Occupied: false},
	})
	stats := table.Stats("A")
	if stats.TotalSpots != 2 {
		t.Errorf("total spots = %d", stats.TotalSpots)
	}
	if stats.OccupiedRows != 2 || stats.AvailableRows != 1 {
		t.Errorf("rows = %d occupied, %d available", stats.OccupiedRows, stats.AvailableRows)
	}
	if stats.OccupancyRate != 100 {
		t.Errorf("rate = %v", stats.OccupancyRate)
	}
}

func TestStatsUnknownSection(t *testing.T) {
	table := NewTable(nil)
	stats := table.Stats("Z")
	if stats.TotalSpots != 0 || stats.OccupancyRate != 0 {
		t.Errorf("empty stats expected, got %+v", stats)
	}
}
