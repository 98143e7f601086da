package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mhoffer/parkcast/core/events"
	coremetrics "github.com/mhoffer/parkcast/core/metrics"
	"github.com/mhoffer/parkcast/core/model"
)

func TestPromSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	ev := events.BookingEvent{
		Key:      model.SlotKey{SpotID: 1, Section: "A", Hour: 9},
		Holder:   "alice",
		Accepted: true,
		Time:     time.Now(),
	}
	if err := sink.RecordBooking(ev); err != nil {
		t.Fatalf("record booking: %v", err)
	}
	if err := sink.RecordBooking(ev); err != nil {
		t.Fatalf("record booking: %v", err)
	}
	got := testutil.ToFloat64(sink.bookings.WithLabelValues("A", "true"))
	if got != 2 {
		t.Errorf("booking counter = %v", got)
	}

	if err := sink.RecordPrediction(events.PredictionEvent{Section: "A", ProbabilityVacant: 0.8}); err != nil {
		t.Fatalf("record prediction: %v", err)
	}
	if got := testutil.ToFloat64(sink.predictions.WithLabelValues("A", "false")); got != 1 {
		t.Errorf("prediction counter = %v", got)
	}

	if err := sink.RecordRecommendation(events.RecommendationEvent{From: "A", Suppressed: true}); err != nil {
		t.Fatalf("record recommendation: %v", err)
	}
	if got := testutil.ToFloat64(sink.recommendations.WithLabelValues("A", "true")); got != 1 {
		t.Errorf("recommendation counter = %v", got)
	}

	if err := sink.RecordOccupancy("B", 14, 62.5); err != nil {
		t.Fatalf("record occupancy: %v", err)
	}
	if got := testutil.ToFloat64(sink.occupancy.WithLabelValues("B", "14")); got != 62.5 {
		t.Errorf("occupancy gauge = %v", got)
	}
}

func TestPromSinkDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	// Re-registering the same metrics is tolerated.
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration: %v", err)
	}
}

type countingSink struct {
	bookings, predictions, recommendations, occupancies int
	err                                                 error
}

func (c *countingSink) RecordBooking(events.BookingEvent) error {
	c.bookings++
	return c.err
}
func (c *countingSink) RecordPrediction(events.PredictionEvent) error {
	c.predictions++
	return c.err
}
func (c *countingSink) RecordRecommendation(events.RecommendationEvent) error {
	c.recommendations++
	return c.err
}
func (c *countingSink) RecordOccupancy(string, int, float64) error {
	c.occupancies++
	return c.err
}

func TestMultiSinkFanOut(t *testing.T) {
	a, b := &countingSink{}, &countingSink{}
	multi := NewMultiSink(a, b)

	if err := multi.RecordBooking(events.BookingEvent{}); err != nil {
		t.Fatal(err)
	}
	if err := multi.RecordPrediction(events.PredictionEvent{}); err != nil {
		t.Fatal(err)
	}
	if err := multi.RecordRecommendation(events.RecommendationEvent{}); err != nil {
		t.Fatal(err)
	}
	if err := multi.RecordOccupancy("A", 9, 50); err != nil {
		t.Fatal(err)
	}
	for i, s := range []*countingSink{a, b} {
		if s.bookings != 1 || s.predictions != 1 || s.recommendations != 1 || s.occupancies != 1 {
			t.Errorf("sink %d counts: %+v", i, s)
		}
	}
}

func TestMultiSinkFirstError(t *testing.T) {
	boom := errors.New("boom")
	failing := &countingSink{err: boom}
	ok := &countingSink{}
	multi := NewMultiSink(failing, ok)
	if err := multi.RecordBooking(events.BookingEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

type bareSink struct{}

func (bareSink) RecordBooking(events.BookingEvent) error               { return nil }
func (bareSink) RecordPrediction(events.PredictionEvent) error         { return nil }
func (bareSink) RecordRecommendation(events.RecommendationEvent) error { return nil }

func TestMultiSinkSkipsNonGauges(t *testing.T) {
	multi := NewMultiSink(bareSink{}, coremetrics.NopSink{})
	if err := multi.RecordOccupancy("A", 9, 50); err != nil {
		t.Fatalf("gauge-incapable sinks should be skipped cleanly: %v", err)
	}
}
