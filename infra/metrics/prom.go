package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mhoffer/parkcast/core/events"
)

// PromSink records session events in Prometheus metrics.
type PromSink struct {
	bookings        *prometheus.CounterVec
	predictions     *prometheus.CounterVec
	vacantProb      prometheus.Histogram
	recommendations *prometheus.CounterVec
	occupancy       *prometheus.GaugeVec
}

// NewPromSink registers session metrics on the default Prometheus
// registerer. The Prometheus server is started separately.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	bookings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_attempts_total",
		Help: "Total number of explicit booking attempts",
	}, []string{"section", "accepted"})
	predictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "predictions_total",
		Help: "Total number of availability predictions",
	}, []string{"section", "degraded"})
	vacantProb := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "prediction_vacant_probability",
		Help:    "Distribution of predicted vacant probabilities",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})
	recommendations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zone_switch_recommendations_total",
		Help: "Total number of zone-switch evaluations that produced or suppressed a suggestion",
	}, []string{"from", "suppressed"})
	occupancy := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "section_occupancy_percentage",
		Help: "Simulated occupancy percentage per section and hour",
	}, []string{"section", "hour"})

	for _, c := range []prometheus.Collector{bookings, predictions, vacantProb, recommendations, occupancy} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}

	return &PromSink{
		bookings:        bookings,
		predictions:     predictions,
		vacantProb:      vacantProb,
		recommendations: recommendations,
		occupancy:       occupancy,
	}, nil
}

// RecordBooking increments the booking counter.
func (s *PromSink) RecordBooking(ev events.BookingEvent) error {
	s.bookings.WithLabelValues(ev.Key.Section, strconv.FormatBool(ev.Accepted)).Inc()
	return nil
}

// RecordPrediction increments the prediction counter and observes the
// vacant probability.
func (s *PromSink) RecordPrediction(ev events.PredictionEvent) error {
	s.predictions.WithLabelValues(ev.Section, strconv.FormatBool(ev.Degraded)).Inc()
	s.vacantProb.Observe(ev.ProbabilityVacant)
	return nil
}

// RecordRecommendation increments the recommendation counter.
func (s *PromSink) RecordRecommendation(ev events.RecommendationEvent) error {
	s.recommendations.WithLabelValues(ev.From, strconv.FormatBool(ev.Suppressed)).Inc()
	return nil
}

// RecordOccupancy sets the occupancy gauge for a section and hour.
func (s *PromSink) RecordOccupancy(section string, hour int, percentage float64) error {
	s.occupancy.WithLabelValues(section, strconv.Itoa(hour)).Set(percentage)
	return nil
}
