// Package recommend decides when to surface a zone-switch suggestion for a
// busy section.
package recommend

import (
	"time"

	"github.com/mhoffer/parkcast/core/catalog"
	"github.com/mhoffer/parkcast/core/events"
	"github.com/mhoffer/parkcast/core/model"
	"github.com/mhoffer/parkcast/core/occupancy"
	"github.com/mhoffer/parkcast/internal/eventbus"
)

// Policy holds the switch thresholds. The defaults are fixed behavioral
// constants; they are configuration points only for forward compatibility.
type Policy struct {
	// BusyThreshold is the occupancy percentage above which a section
	// counts as busy.
	BusyThreshold float64 `json:"busy_threshold"`
	// MinGap is the minimum percentage-point lead the least-occupied
	// section must have before a switch is suggested.
	MinGap float64 `json:"min_gap"`
}

// DefaultPolicy returns the canonical 60% / 15-point policy.
func DefaultPolicy() Policy {
	return Policy{BusyThreshold: 60, MinGap: 15}
}

// SetDefaults fills zero fields with the canonical values.
func (p *Policy) SetDefaults() {
	if p.BusyThreshold == 0 {
		p.BusyThreshold = 60
	}
	if p.MinGap == 0 {
		p.MinGap = 15
	}
}

// Suggestion proposes a concrete alternative spot in a quieter section.
type Suggestion struct {
	FromSection    string
	ToSection      string
	Spot           int
	Current        model.OccupancySummary
	Target         model.OccupancySummary
	DistanceToExit float64
}

// Gap returns the percentage-point difference between the busy section and
// the suggested one.
func (s Suggestion) Gap() float64 {
	return s.Current.Percentage - s.Target.Percentage
}

// Engine evaluates the switch policy against the live booking table.
type Engine struct {
	sim    *occupancy.Simulator
	cat    *catalog.Catalog
	policy Policy
	bus    *eventbus.Bus[events.Event]
}

// New creates an Engine. A nil bus disables event publishing.
func New(sim *occupancy.Simulator, cat *catalog.Catalog, policy Policy, bus *eventbus.Bus[events.Event]) *Engine {
	policy.SetDefaults()
	return &Engine{sim: sim, cat: cat, policy: policy, bus: bus}
}

// Suggest returns a zone-switch suggestion for the given section and hour,
// or nil when none applies. A suggestion is only emitted when the current
// section is busy, a materially quieter section exists, and that section
// still has a bookable spot: a suggestion never points at a full zone.
func (e *Engine) Suggest(section string, hour int) *Suggestion {
	current := e.sim.Occupancy(section, hour)
	if current.Percentage <= e.policy.BusyThreshold {
		return nil
	}

	leastSection, leastPct := e.sim.LeastOccupiedSection(hour)
	if leastSection == section || leastPct >= current.Percentage-e.policy.MinGap {
		return nil
	}

	spot, ok := e.sim.BestAvailableSpot(leastSection, hour, true)
	if !ok {
		// Quieter on paper but fully booked; suppress rather than point
		// at a spot that does not exist.
		e.publish(events.RecommendationEvent{
			From: section, To: leastSection, Suppressed: true, Time: time.Now(),
		})
		return nil
	}

	sug := &Suggestion{
		FromSection: section,
		ToSection:   leastSection,
		Spot:        spot,
		Current:     current,
		Target:      e.sim.Occupancy(leastSection, hour),
	}
	if info, ok := e.cat.Spot(spot, leastSection); ok {
		sug.DistanceToExit = info.DistanceToExit
	}
	e.publish(events.RecommendationEvent{
		From: section, To: leastSection, TargetSpot: spot, Gap: sug.Gap(), Time: time.Now(),
	})
	return sug
}

func (e *Engine) publish(ev events.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}
