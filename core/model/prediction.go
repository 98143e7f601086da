package model

import "time"

// PredictRequest carries the caller-supplied inputs for an availability
// prediction. Window is the planned stay collected alongside the request;
// it is reported back but not consumed by the model.
type PredictRequest struct {
	SpotID      int
	Section     string
	Target      time.Time
	VehicleType VehicleType
	IsEV        bool
	Window      BookingWindow
}

// BookingWindow is the planned entry/exit pair. Exit at or before entry is
// interpreted as ending the next day.
type BookingWindow struct {
	Entry time.Time
	Exit  time.Time
}

// Duration returns the window length, rolling the exit over midnight when
// it does not follow the entry.
func (w BookingWindow) Duration() time.Duration {
	if w.Entry.IsZero() || w.Exit.IsZero() {
		return 0
	}
	exit := w.Exit
	if !exit.After(w.Entry) {
		exit = exit.Add(24 * time.Hour)
	}
	return exit.Sub(w.Entry)
}

// WeatherForecast is the stand-in forecast built from historical hourly
// means of the dataset.
type WeatherForecast struct {
	Temperature   float64
	Precipitation int // 1 if rain is expected
	Source        string
}

// WeatherInsight describes forecast conditions at the booking time.
type WeatherInsight struct {
	Temperature   float64
	Precipitation int
	Status        string
	Tip           string
	Source        string
}

// TrafficInsight describes predicted congestion at the booking time.
type TrafficInsight struct {
	Level  TrafficLevel
	Status string
	Tip    string
	Source string
}

// TimePatternInsight labels the demand pattern of the target hour.
type TimePatternInsight struct {
	Pattern    string
	Hour       int
	Day        string
	Tip        string
	HoursUntil float64
}

// CompatibilityInsight reports whether the spot size fits the vehicle.
type CompatibilityInsight struct {
	Compatible      bool
	RecommendedSize SpotSize
	SpotSize        SpotSize
	Tip             string
}

// SpotInsight captures the static characteristics that matter to the user.
type SpotInsight struct {
	DistanceToExit float64
	Tip            string
}

// Insights bundles the contextual sub-records attached to a prediction.
type Insights struct {
	Weather       WeatherInsight
	Traffic       TrafficInsight
	TimePattern   TimePatternInsight
	Compatibility CompatibilityInsight
	Spot          SpotInsight
}

// Prediction is the full result of an availability prediction.
type Prediction struct {
	Label             string // "Vacant" or "Occupied"
	Confidence        float64
	ProbabilityVacant float64
	ProbabilityTaken  float64
	Recommendation    string
	Insights          Insights
	PredictedTraffic  TrafficLevel
	Forecast          WeatherForecast
	SizeCompatible    bool
	RecommendedSize   SpotSize
	HoursUntil        float64
}

// Fallback values substituted when a spot is unknown to the catalog or a
// historical table has no entry for the requested hour.
const (
	DefaultDistanceToExit = 10.0
	DefaultVehicleWeight  = 1500.0
	DefaultVehicleHeight  = 4.0
	DefaultHistory        = 5.0
	DefaultTemperature    = 20.0
	DefaultProximity      = 5.0
	DefaultPressure       = 2.0
	DefaultUltrasonic     = 100.0
)

// NeutralPrediction is the fixed degraded-mode result returned when the
// model artifacts are missing or a prediction fails internally.
func NeutralPrediction() Prediction {
	return Prediction{
		Label:             "Unknown",
		Confidence:        0.5,
		ProbabilityVacant: 0.5,
		ProbabilityTaken:  0.5,
		Recommendation:    "ML model not available",
		PredictedTraffic:  TrafficMedium,
		Forecast:          WeatherForecast{Temperature: DefaultTemperature, Source: "default"},
		SizeCompatible:    true,
		RecommendedSize:   SizeStandard,
	}
}
