// Package app wires the session: every component is constructed once, held
// by an explicit Session object and passed where needed. Nothing in the
// core reaches for ambient globals.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mhoffer/parkcast/config"
	"github.com/mhoffer/parkcast/core/catalog"
	"github.com/mhoffer/parkcast/core/events"
	coremetrics "github.com/mhoffer/parkcast/core/metrics"
	"github.com/mhoffer/parkcast/core/occupancy"
	"github.com/mhoffer/parkcast/core/prediction"
	"github.com/mhoffer/parkcast/core/recommend"
	"github.com/mhoffer/parkcast/infra/artifact"
	"github.com/mhoffer/parkcast/infra/dataset"
	"github.com/mhoffer/parkcast/infra/logger"
	"github.com/mhoffer/parkcast/infra/metrics"
	"github.com/mhoffer/parkcast/infra/mqtt"
	"github.com/mhoffer/parkcast/internal/eventbus"
)

// Session owns all state for one logical user session: the immutable
// catalog, the seeded booking table, the recommendation engine and the
// predictor. It lives exactly as long as the process.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	Catalog     *catalog.Catalog
	Simulator   *occupancy.Simulator
	Recommender *recommend.Engine
	Predictor   *prediction.Predictor

	bus       *eventbus.Bus[events.Event]
	sink      coremetrics.Sink
	announcer *mqtt.Announcer
	log       logger.Logger

	promEnabled bool
	promPort    string
	recorderSub <-chan events.Event
	done        chan struct{}
}

// New creates a Session from the configuration.
func New(cfg *config.Config) (*Session, error) {
	logg := logger.New("session")

	table, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	logg.Infof("loaded %d records from parking dataset", table.Len())
	cat := catalog.New(table)

	arts, err := artifact.Load(cfg.Model.Dir)
	if err != nil {
		// Degraded mode is acceptable; the predictor logs it once.
		logg.Debugf("model artifacts not loaded: %v", err)
		arts = nil
	}

	bus := eventbus.New[events.Event]()
	sim := occupancy.New(cat, cfg.Simulator.Seed, logg, occupancy.WithBus(bus))
	rec := recommend.New(sim, cat, cfg.Policy, bus)
	pred := prediction.New(cat, arts, logger.New("predictor"), prediction.WithBus(bus))

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var announcer *mqtt.Announcer
	if cfg.MQTT.Enabled {
		announcer, err = mqtt.NewAnnouncer(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt announcer: %w", err)
		}
	}

	s := &Session{
		ID:          uuid.New(),
		CreatedAt:   time.Now(),
		Catalog:     cat,
		Simulator:   sim,
		Recommender: rec,
		Predictor:   pred,
		bus:         bus,
		sink:        sink,
		announcer:   announcer,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
		done:        make(chan struct{}),
	}
	s.recorderSub = bus.Subscribe()
	go s.record()
	return s, nil
}

// record drains the event bus into the metrics sink and the optional
// announcer.
func (s *Session) record() {
	defer close(s.done)
	for ev := range s.recorderSub {
		var err error
		switch e := ev.(type) {
		case events.BookingEvent:
			err = s.sink.RecordBooking(e)
		case events.PredictionEvent:
			err = s.sink.RecordPrediction(e)
		case events.RecommendationEvent:
			err = s.sink.RecordRecommendation(e)
		}
		if err != nil {
			s.log.Warnf("record %s event: %v", ev.Kind(), err)
		}
		if s.announcer != nil {
			s.announcer.Announce(ev)
		}
	}
}

// ServeMetrics exposes the Prometheus endpoint until the context is
// canceled. It returns immediately when Prometheus is disabled.
func (s *Session) ServeMetrics(ctx context.Context) error {
	if !s.promEnabled {
		return nil
	}
	return metrics.StartPromServer(ctx, s.promPort)
}

// SnapshotOccupancy pushes the occupancy percentages for one hour into
// gauge-capable sinks.
func (s *Session) SnapshotOccupancy(hour int) {
	rec, ok := s.sink.(coremetrics.OccupancyRecorder)
	if !ok {
		return
	}
	for section, sum := range s.Simulator.OccupancyAll(hour) {
		if err := rec.RecordOccupancy(section, hour, sum.Percentage); err != nil {
			s.log.Warnf("record occupancy for %s: %v", section, err)
		}
	}
}

// Close releases the event bus and the optional announcer.
func (s *Session) Close() error {
	s.bus.Close()
	<-s.done
	if s.announcer != nil {
		s.announcer.Close()
	}
	return nil
}
