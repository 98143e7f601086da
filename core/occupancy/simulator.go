// Package occupancy simulates a reservation database: a dense, seeded
// booking table over every (spot, section, hour) triple the catalog knows.
// The table stands in for real bookings until a persistent store exists.
package occupancy

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mhoffer/parkcast/core/catalog"
	"github.com/mhoffer/parkcast/core/events"
	"github.com/mhoffer/parkcast/core/logger"
	"github.com/mhoffer/parkcast/core/model"
	"github.com/mhoffer/parkcast/internal/eventbus"
)

// BookingProbability is the diurnal demand curve used to seed the table.
// The exact step values are load-bearing: tests and the recommendation
// policy assume them.
func BookingProbability(hour int) float64 {
	switch {
	case hour >= 8 && hour <= 10, hour >= 17 && hour <= 19:
		return 0.75
	case hour >= 11 && hour <= 16:
		return 0.60
	case hour >= 20 && hour <= 22:
		return 0.50
	default:
		return 0.25
	}
}

// Simulator owns the booking table for one session. It is built once from a
// fixed seed so repeated queries within the session are stable, and mutates
// only through explicit Book calls.
type Simulator struct {
	catalog  *catalog.Catalog
	seed     int64
	bookings map[model.SlotKey]model.BookingRecord
	bus      *eventbus.Bus[events.Event]
	now      func() time.Time
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithBus attaches an event bus booking events are published on.
func WithBus(bus *eventbus.Bus[events.Event]) Option {
	return func(s *Simulator) { s.bus = bus }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

// New builds the dense booking table. The generator is scoped to this call:
// a locally seeded source that never touches process-global randomness.
func New(cat *catalog.Catalog, seed int64, log logger.Logger, opts ...Option) *Simulator {
	s := &Simulator{
		catalog:  cat,
		seed:     seed,
		bookings: make(map[model.SlotKey]model.BookingRecord),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	rng := rand.New(rand.NewSource(seed))
	now := s.now()
	for _, section := range cat.Sections() {
		for _, spotID := range cat.SpotsIn(section) {
			for hour := 0; hour < 24; hour++ {
				rec := model.BookingRecord{}
				if rng.Float64() < BookingProbability(hour) {
					rec.Booked = true
					rec.Holder = fmt.Sprintf("User_%d", rng.Intn(9000)+1000)
					rec.BookedAt = now.Add(-time.Duration(rng.Intn(48)+1) * time.Hour)
				}
				s.bookings[model.SlotKey{SpotID: spotID, Section: section, Hour: hour}] = rec
			}
		}
	}

	if log != nil {
		log.Infof("booking table built: %d slots (seed %d)", len(s.bookings), seed)
	}
	return s
}

// Seed returns the seed the table was generated from.
func (s *Simulator) Seed() int64 { return s.seed }

// Len returns the number of slots in the table.
func (s *Simulator) Len() int { return len(s.bookings) }

// Record returns the booking record for a slot. Unknown slots read as an
// empty, unbooked record.
func (s *Simulator) Record(spotID int, section string, hour int) model.BookingRecord {
	return s.bookings[model.SlotKey{SpotID: spotID, Section: section, Hour: hour}]
}

// IsBooked reports whether the slot is booked at the given hour. Unknown
// slots read as free.
func (s *Simulator) IsBooked(spotID int, section string, hour int) bool {
	return s.Record(spotID, section, hour).Booked
}

// Occupancy summarizes one section at one hour. Sections with no spots
// report zero percent, not an error.
func (s *Simulator) Occupancy(section string, hour int) model.OccupancySummary {
	spots := s.catalog.SpotsIn(section)
	booked := 0
	for _, id := range spots {
		if s.IsBooked(id, section, hour) {
			booked++
		}
	}
	sum := model.OccupancySummary{
		Section:    section,
		Hour:       hour,
		TotalSpots: len(spots),
		Booked:     booked,
		Available:  len(spots) - booked,
	}
	if sum.TotalSpots > 0 {
		sum.Percentage = model.RoundPercentage(float64(booked) / float64(sum.TotalSpots) * 100)
	}
	return sum
}

// OccupancyAll summarizes every section at the given hour.
func (s *Simulator) OccupancyAll(hour int) map[string]model.OccupancySummary {
	out := make(map[string]model.OccupancySummary)
	for _, section := range s.catalog.Sections() {
		out[section] = s.Occupancy(section, hour)
	}
	return out
}

// LeastOccupiedSection returns the section with the lowest occupancy at the
// given hour. Ties resolve to the first section in catalog order.
func (s *Simulator) LeastOccupiedSection(hour int) (string, float64) {
	var best string
	bestPct := 0.0
	for i, section := range s.catalog.Sections() {
		pct := s.Occupancy(section, hour).Percentage
		if i == 0 || pct < bestPct {
			best = section
			bestPct = pct
		}
	}
	return best, bestPct
}

// AvailableSpots returns the free spot ids of a section at the given hour,
// in ascending order.
func (s *Simulator) AvailableSpots(section string, hour int) []int {
	var out []int
	for _, id := range s.catalog.SpotsIn(section) {
		if !s.IsBooked(id, section, hour) {
			out = append(out, id)
		}
	}
	return out
}

// BestAvailableSpot selects a free spot in the section. With
// preferCloseToExit it picks the free spot with minimal distance to exit,
// ties resolving to the lowest id; otherwise the lowest free id wins.
// The second return is false when the section is fully booked.
func (s *Simulator) BestAvailableSpot(section string, hour int, preferCloseToExit bool) (int, bool) {
	available := s.AvailableSpots(section, hour)
	if len(available) == 0 {
		return 0, false
	}
	if !preferCloseToExit {
		return available[0], true
	}

	best := -1
	bestDist := 0.0
	for _, id := range available {
		spot, ok := s.catalog.Spot(id, section)
		if !ok {
			continue
		}
		if best == -1 || spot.DistanceToExit < bestDist {
			best = id
			bestDist = spot.DistanceToExit
		}
	}
	if best == -1 {
		// No catalog attributes for any free spot; fall back to lowest id.
		return available[0], true
	}
	return best, true
}

// Trend compares the section's occupancy against the previous hour
// (wrapping midnight). Differences beyond five percentage points count as
// rising or falling.
func (s *Simulator) Trend(section string, hour int) model.Trend {
	prev := (hour + 23) % 24
	diff := s.Occupancy(section, hour).Percentage - s.Occupancy(section, prev).Percentage
	switch {
	case diff > 5:
		return model.TrendRising
	case diff < -5:
		return model.TrendFalling
	default:
		return model.TrendStable
	}
}

// Book marks a slot as booked by holder. Booking an already-booked slot is
// a no-op failure: the existing record is left untouched and false is
// returned.
func (s *Simulator) Book(spotID int, section string, hour int, holder string) bool {
	key := model.SlotKey{SpotID: spotID, Section: section, Hour: hour}
	when := s.now()
	if rec, ok := s.bookings[key]; ok && rec.Booked {
		s.publish(events.BookingEvent{Key: key, Holder: holder, Accepted: false, Time: when})
		return false
	}
	s.bookings[key] = model.BookingRecord{Booked: true, Holder: holder, BookedAt: when}
	s.publish(events.BookingEvent{Key: key, Holder: holder, Accepted: true, Time: when})
	return true
}

func (s *Simulator) publish(ev events.Event) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}
