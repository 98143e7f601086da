package artifact

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/mhoffer/parkcast/core/prediction"
)

// LogisticClassifier is a two-class logistic regression exported by the
// training pipeline. The sigmoid scores the occupied class; the vacant
// probability is its complement.
type LogisticClassifier struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	Classes   []string  `json:"classes"`
}

// Predict returns the winning class index and the (vacant, occupied)
// probability pair.
func (c *LogisticClassifier) Predict(features []float64) (int, [2]float64, error) {
	if len(features) != len(c.Weights) {
		return 0, [2]float64{}, fmt.Errorf("classifier expects %d features, got %d", len(c.Weights), len(features))
	}
	z := floats.Dot(c.Weights, features) + c.Intercept
	pOccupied := 1 / (1 + math.Exp(-z))
	probs := [2]float64{1 - pOccupied, pOccupied}
	label := 0
	if pOccupied > 0.5 {
		label = 1
	}
	return label, probs, nil
}

// StandardScaler reproduces the training pipeline's feature scaling.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform returns (x - mean) / scale per feature.
func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.Mean) || len(s.Mean) != len(s.Scale) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(features))
	}
	out := make([]float64, len(features))
	for i, v := range features {
		div := s.Scale[i]
		if div == 0 {
			div = 1
		}
		out[i] = (v - s.Mean[i]) / div
	}
	return out, nil
}

// LabelEncoder maps trained categorical values to their integer codes.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder builds an encoder over the trained class list.
func NewLabelEncoder(classes []string) *LabelEncoder {
	idx := make(map[string]int, len(classes))
	for i, c := range classes {
		idx[c] = i
	}
	return &LabelEncoder{classes: classes, index: idx}
}

// Transform returns the code for value. An unseen value is a configuration
// mismatch between model and data versions and fails loudly.
func (e *LabelEncoder) Transform(value string) (int, error) {
	code, ok := e.index[value]
	if !ok {
		return 0, fmt.Errorf("%w: %q not in trained classes %v", prediction.ErrUnknownCategory, value, e.classes)
	}
	return code, nil
}
