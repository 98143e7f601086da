// Package metrics defines the sink interfaces session events are recorded
// through. Implementations live in infra/metrics.
package metrics

import "github.com/mhoffer/parkcast/core/events"

// Sink records session events for observability purposes.
type Sink interface {
	RecordBooking(ev events.BookingEvent) error
	RecordPrediction(ev events.PredictionEvent) error
	RecordRecommendation(ev events.RecommendationEvent) error
}

// OccupancyRecorder is implemented by sinks able to record occupancy gauges.
type OccupancyRecorder interface {
	RecordOccupancy(section string, hour int, percentage float64) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordBooking(events.BookingEvent) error               { return nil }
func (NopSink) RecordPrediction(events.PredictionEvent) error         { return nil }
func (NopSink) RecordRecommendation(events.RecommendationEvent) error { return nil }
func (NopSink) RecordOccupancy(string, int, float64) error            { return nil }
