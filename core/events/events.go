// Package events defines the session events published on the internal bus.
// Metric sinks and the optional MQTT announcer subscribe to them; the core
// components never depend on who is listening.
package events

import (
	"time"

	"github.com/mhoffer/parkcast/core/model"
)

// Event is any session event.
type Event interface{ Kind() string }

// BookingEvent records an explicit booking attempt against the simulator.
type BookingEvent struct {
	Key      model.SlotKey
	Holder   string
	Accepted bool
	Time     time.Time
}

func (BookingEvent) Kind() string { return "booking" }

// PredictionEvent records one predictor invocation.
type PredictionEvent struct {
	SpotID            int
	Section           string
	Target            time.Time
	ProbabilityVacant float64
	Degraded          bool
	Time              time.Time
}

func (PredictionEvent) Kind() string { return "prediction" }

// RecommendationEvent records a zone-switch evaluation. Suppressed is true
// when the busy-zone condition held but no alternative could be offered.
type RecommendationEvent struct {
	From       string
	To         string
	TargetSpot int
	Gap        float64 // percentage-point gap between current and target
	Suppressed bool
	Time       time.Time
}

func (RecommendationEvent) Kind() string { return "recommendation" }
