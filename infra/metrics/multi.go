package metrics

import (
	"github.com/mhoffer/parkcast/core/events"
	coremetrics "github.com/mhoffer/parkcast/core/metrics"
)

// MultiSink fans session events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordBooking forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordBooking(ev events.BookingEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordBooking(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordPrediction forwards the event to all sinks.
func (m *MultiSink) RecordPrediction(ev events.PredictionEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPrediction(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRecommendation forwards the event to all sinks.
func (m *MultiSink) RecordRecommendation(ev events.RecommendationEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRecommendation(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordOccupancy forwards the gauge to sinks that support it.
func (m *MultiSink) RecordOccupancy(section string, hour int, percentage float64) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.OccupancyRecorder); ok {
			if err := rec.RecordOccupancy(section, hour, percentage); err != nil {
				return err
			}
		}
	}
	return nil
}
