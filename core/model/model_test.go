package model

import (
	"testing"
	"time"
)

func TestBand(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{0, "quiet"},
		{40, "quiet"},
		{40.1, "moderate"},
		{60, "moderate"},
		{60.1, "busy"},
		{100, "busy"},
	}
	for _, c := range cases {
		got := OccupancySummary{Percentage: c.pct}.Band()
		if got != c.want {
			t.Errorf("Band(%v) = %q, want %q", c.pct, got, c.want)
		}
	}
}

func TestRoundPercentage(t *testing.T) {
	if got := RoundPercentage(66.666666); got != 66.7 {
		t.Errorf("got %v", got)
	}
	if got := RoundPercentage(0); got != 0 {
		t.Errorf("got %v", got)
	}
	if got := RoundPercentage(33.333333); got != 33.3 {
		t.Errorf("got %v", got)
	}
}

func TestSpotSizeFor(t *testing.T) {
	cases := []struct {
		vehicle VehicleType
		want    SpotSize
	}{
		{VehicleMotorcycle, SizeCompact},
		{VehicleSUV, SizeLarge},
		{VehicleTruck, SizeLarge},
		{VehicleSedan, SizeStandard},
		{VehicleCar, SizeStandard},
		{VehicleElectric, SizeStandard},
		{VehicleType("Hovercraft"), SizeStandard},
	}
	for _, c := range cases {
		if got := SpotSizeFor(c.vehicle); got != c.want {
			t.Errorf("SpotSizeFor(%s) = %s, want %s", c.vehicle, got, c.want)
		}
	}
}

func TestSizeCompatible(t *testing.T) {
	if !SizeCompatible(SizeCompact, SizeCompact) {
		t.Error("exact match should be compatible")
	}
	if !SizeCompatible(SizeLarge, SizeStandard) {
		t.Error("standard spots should fit any vehicle")
	}
	if SizeCompatible(SizeLarge, SizeCompact) {
		t.Error("large vehicle should not fit a compact spot")
	}
	if SizeCompatible(SizeCompact, SizeLarge) {
		t.Error("compact recommendation should not match a large spot")
	}
}

func TestBookingWindowDuration(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	w := BookingWindow{Entry: day.Add(9 * time.Hour), Exit: day.Add(17 * time.Hour)}
	if got := w.Duration(); got != 8*time.Hour {
		t.Errorf("same-day window = %v, want 8h", got)
	}

	// Exit before entry rolls over midnight.
	w = BookingWindow{Entry: day.Add(22 * time.Hour), Exit: day.Add(6 * time.Hour)}
	if got := w.Duration(); got != 8*time.Hour {
		t.Errorf("overnight window = %v, want 8h", got)
	}

	// Exit equal to entry counts as a full day.
	w = BookingWindow{Entry: day.Add(9 * time.Hour), Exit: day.Add(9 * time.Hour)}
	if got := w.Duration(); got != 24*time.Hour {
		t.Errorf("equal window = %v, want 24h", got)
	}

	if got := (BookingWindow{}).Duration(); got != 0 {
		t.Errorf("zero window = %v, want 0", got)
	}
}

func TestSpotValidate(t *testing.T) {
	good := Spot{ID: 1, Section: "A", DistanceToExit: 5}
	if err := good.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := []Spot{
		{ID: 0, Section: "A"},
		{ID: 1, Section: ""},
		{ID: 1, Section: "A", DistanceToExit: -1},
	}
	for i, s := range bad {
		if err := s.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestNeutralPrediction(t *testing.T) {
	p := NeutralPrediction()
	if p.ProbabilityVacant != 0.5 || p.ProbabilityTaken != 0.5 {
		t.Errorf("neutral probabilities = %v/%v, want 0.5/0.5", p.ProbabilityVacant, p.ProbabilityTaken)
	}
	if p.Recommendation != "ML model not available" {
		t.Errorf("recommendation = %q", p.Recommendation)
	}
	if !p.SizeCompatible || p.RecommendedSize != SizeStandard {
		t.Error("neutral prediction should be size-neutral")
	}
}
