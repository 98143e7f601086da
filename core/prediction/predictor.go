package prediction

import (
	"errors"
	"time"

	"github.com/mhoffer/parkcast/core/catalog"
	"github.com/mhoffer/parkcast/core/events"
	"github.com/mhoffer/parkcast/core/logger"
	"github.com/mhoffer/parkcast/core/model"
	"github.com/mhoffer/parkcast/internal/eventbus"
)

// Predictor scores future spot availability with the pre-trained classifier.
// Missing artifacts put it in degraded mode at construction time: every
// prediction then returns the fixed neutral result instead of failing.
type Predictor struct {
	cat       *catalog.Catalog
	artifacts *Artifacts
	patterns  *patterns
	log       logger.Logger
	bus       *eventbus.Bus[events.Event]
	now       func() time.Time
}

// Option configures a Predictor.
type Option func(*Predictor)

// WithBus attaches an event bus prediction events are published on.
func WithBus(bus *eventbus.Bus[events.Event]) Option {
	return func(p *Predictor) { p.bus = bus }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Predictor) { p.now = now }
}

// New builds a Predictor over the catalog and model artifacts. A nil
// artifacts bundle selects degraded mode; this is logged once here, not per
// call. When the catalog carries historical data, the pattern tables are
// precomputed now.
func New(cat *catalog.Catalog, artifacts *Artifacts, log logger.Logger, opts ...Option) *Predictor {
	p := &Predictor{cat: cat, artifacts: artifacts, log: log, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = nopLogger{}
	}

	if artifacts == nil {
		p.log.Warnf("model artifacts missing: predictor running degraded, all predictions neutral")
		return p
	}
	if cat != nil {
		p.patterns = learnPatterns(cat.Table())
	}
	if p.patterns != nil {
		p.log.Infof("learned historical patterns: %d traffic hour-day pairs, %d hourly averages",
			len(p.patterns.traffic), len(p.patterns.sensors))
	}
	return p
}

// Degraded reports whether the predictor is running without model artifacts.
func (p *Predictor) Degraded() bool { return p.artifacts == nil }

// Predict implements Engine. The only error surfaced is a configuration
// mismatch (ErrUnknownCategory); any other internal failure is logged and
// converted to the neutral degraded result.
func (p *Predictor) Predict(req model.PredictRequest) (model.Prediction, error) {
	if p.Degraded() {
		p.publish(req, model.NeutralPrediction(), true)
		return model.NeutralPrediction(), nil
	}

	pred, err := p.predict(req)
	if err != nil {
		if errors.Is(err, ErrUnknownCategory) {
			return model.Prediction{}, err
		}
		p.log.Errorf("prediction failed for spot %d in %s: %v", req.SpotID, req.Section, err)
		p.publish(req, model.NeutralPrediction(), true)
		return model.NeutralPrediction(), nil
	}
	p.publish(req, pred, false)
	return pred, nil
}

func (p *Predictor) predict(req model.PredictRequest) (model.Prediction, error) {
	hour := req.Target.Hour()
	// Monday=0 convention for model parity.
	weekday := (int(req.Target.Weekday()) + 6) % 7

	spot, found := p.spotOrDefaults(req.SpotID, req.Section)
	traffic := p.patterns.predictTraffic(hour, weekday)
	forecast := p.patterns.forecast(hour)
	sensors := p.patterns.sensorAverages(hour)

	recommendedSize := model.SpotSizeFor(req.VehicleType)
	compatible := model.SizeCompatible(recommendedSize, spot.Size)

	named, err := p.buildFeatures(featureInput{
		hour:    hour,
		weekday: weekday,
		month:   int(req.Target.Month()),
		isEV:    req.IsEV,
		spotID:  req.SpotID,
		section: req.Section,
		vehicle: req.VehicleType,
		spot:    spot,
		traffic: traffic,
		weather: forecast,
		sensors: sensors,
	})
	if err != nil {
		return model.Prediction{}, err
	}
	vector, err := orderFeatures(named, p.artifacts.Features)
	if err != nil {
		return model.Prediction{}, err
	}
	scaled, err := p.artifacts.Scaler.Transform(vector)
	if err != nil {
		return model.Prediction{}, err
	}
	label, probs, err := p.artifacts.Classifier.Predict(scaled)
	if err != nil {
		return model.Prediction{}, err
	}

	probVacant, probTaken := probs[0], probs[1]
	confidence := probVacant
	if probTaken > confidence {
		confidence = probTaken
	}
	labelText := "Vacant"
	if label != 0 {
		labelText = "Occupied"
	}

	hoursUntil := req.Target.Sub(p.now()).Hours()

	pred := model.Prediction{
		Label:             labelText,
		Confidence:        confidence,
		ProbabilityVacant: probVacant,
		ProbabilityTaken:  probTaken,
		PredictedTraffic:  traffic,
		Forecast:          forecast,
		SizeCompatible:    compatible,
		RecommendedSize:   recommendedSize,
		HoursUntil:        hoursUntil,
	}
	pred.Recommendation = recommendationText(probVacant, hour, forecast, traffic, compatible, hoursUntil)
	pred.Insights = buildInsights(insightInput{
		hour:            hour,
		weekday:         weekday,
		traffic:         traffic,
		forecast:        forecast,
		spot:            spot,
		found:           found,
		hoursUntil:      hoursUntil,
		compatible:      compatible,
		recommendedSize: recommendedSize,
	})
	return pred, nil
}

// spotOrDefaults resolves static attributes, substituting fixed defaults
// for spots the catalog does not know.
func (p *Predictor) spotOrDefaults(spotID int, section string) (model.Spot, bool) {
	if p.cat != nil {
		if spot, ok := p.cat.Spot(spotID, section); ok {
			return spot, true
		}
	}
	return model.Spot{
		ID:             spotID,
		Section:        section,
		DistanceToExit: model.DefaultDistanceToExit,
		Size:           model.SizeStandard,
		VehicleWeight:  model.DefaultVehicleWeight,
		VehicleHeight:  model.DefaultVehicleHeight,
		ParkingHistory: model.DefaultHistory,
	}, false
}

func (p *Predictor) publish(req model.PredictRequest, pred model.Prediction, degraded bool) {
	if p.bus == nil {
		return
	}
	p.bus.Publish(events.PredictionEvent{
		SpotID:            req.SpotID,
		Section:           req.Section,
		Target:            req.Target,
		ProbabilityVacant: pred.ProbabilityVacant,
		Degraded:          degraded,
		Time:              p.now(),
	})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
