package recommend

import (
	"testing"

	"github.com/mhoffer/parkcast/core/catalog"
	"github.com/mhoffer/parkcast/core/dataset"
	"github.com/mhoffer/parkcast/core/events"
	"github.com/mhoffer/parkcast/core/model"
	"github.com/mhoffer/parkcast/core/occupancy"
	"github.com/mhoffer/parkcast/internal/eventbus"
)

func testCatalog() *catalog.Catalog {
	var recs []dataset.Record
	for _, section := range []string{"A", "B"} {
		for i := 1; i <= 2; i++ {
			recs = append(recs, dataset.Record{
				SpotID:         i,
				Section:        section,
				DistanceToExit: float64(i * 3),
				Size:           model.SizeStandard,
			})
		}
	}
	return catalog.New(dataset.NewTable(recs))
}

// freeScenario returns a simulator and an hour at which every spot of both
// sections is free, trying seeds until one fits.
func freeScenario(t *testing.T) (*occupancy.Simulator, int) {
	t.Helper()
	cat := testCatalog()
	for seed := int64(0); seed < 100; seed++ {
		sim := occupancy.New(cat, seed, nil)
		for hour := 0; hour < 24; hour++ {
			if len(sim.AvailableSpots("A", hour)) == 2 && len(sim.AvailableSpots("B", hour)) == 2 {
				return sim, hour
			}
		}
	}
	t.Fatal("no seed produced a fully free hour")
	return nil, -1
}

func TestSuggestSwitch(t *testing.T) {
	sim, hour := freeScenario(t)
	bus := eventbus.New[events.Event]()
	sub := bus.Subscribe()
	eng := New(sim, testCatalog(), DefaultPolicy(), bus)

	// A full, B empty: 100 points of gap.
	sim.Book(1, "A", hour, "test")
	sim.Book(2, "A", hour, "test")

	sug := eng.Suggest("A", hour)
	if sug == nil {
		t.Fatal("expected a suggestion")
	}
	if sug.FromSection != "A" || sug.ToSection != "B" {
		t.Fatalf("suggestion %s -> %s", sug.FromSection, sug.ToSection)
	}
	// Spot 1 is nearest the exit in B.
	if sug.Spot != 1 {
		t.Errorf("suggested spot %d, want 1", sug.Spot)
	}
	if sug.DistanceToExit != 3 {
		t.Errorf("distance = %v, want 3", sug.DistanceToExit)
	}
	if sug.Gap() != 100 {
		t.Errorf("gap = %v, want 100", sug.Gap())
	}

	ev := (<-sub).(events.RecommendationEvent)
	if ev.From != "A" || ev.To != "B" || ev.Suppressed {
		t.Errorf("event %+v", ev)
	}
	bus.Close()
}

func TestNoSuggestionWhenQuiet(t *testing.T) {
	sim, hour := freeScenario(t)
	eng := New(sim, testCatalog(), DefaultPolicy(), nil)
	// Both sections empty: nothing is busy.
	if sug := eng.Suggest("A", hour); sug != nil {
		t.Fatalf("unexpected suggestion %+v", sug)
	}
}

func TestNoSuggestionWhenEverywhereBusy(t *testing.T) {
	sim, hour := freeScenario(t)
	eng := New(sim, testCatalog(), DefaultPolicy(), nil)
	for _, section := range []string{"A", "B"} {
		sim.Book(1, section, hour, "test")
		sim.Book(2, section, hour, "test")
	}
	// All sections at 100%: the least occupied is the current one.
	if sug := eng.Suggest("A", hour); sug != nil {
		t.Fatalf("unexpected suggestion %+v", sug)
	}
}

func TestNoSuggestionBelowGap(t *testing.T) {
	sim, hour := freeScenario(t)
	// A gap no two-section layout can reach.
	eng := New(sim, testCatalog(), Policy{BusyThreshold: 60, MinGap: 150}, nil)
	sim.Book(1, "A", hour, "test")
	sim.Book(2, "A", hour, "test")
	if sug := eng.Suggest("A", hour); sug != nil {
		t.Fatalf("unexpected suggestion %+v", sug)
	}
}

func TestPolicyDefaults(t *testing.T) {
	var p Policy
	p.SetDefaults()
	if p.BusyThreshold != 60 || p.MinGap != 15 {
		t.Fatalf("defaults = %+v", p)
	}
	p = Policy{BusyThreshold: 80, MinGap: 5}
	p.SetDefaults()
	if p.BusyThreshold != 80 || p.MinGap != 5 {
		t.Fatalf("explicit values overwritten: %+v", p)
	}
}
