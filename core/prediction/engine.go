package prediction

import (
	"errors"

	"github.com/mhoffer/parkcast/core/model"
)

// Engine scores the likelihood that a spot will be vacant at a future time.
type Engine interface {
	// Predict returns the availability prediction for the request. The only
	// error it surfaces is a configuration mismatch between the model
	// artifacts and the request data (ErrUnknownCategory); every other
	// failure degrades to the neutral result.
	Predict(req model.PredictRequest) (model.Prediction, error)
}

// ErrUnknownCategory reports a categorical value the stored encoders have
// never seen. It indicates incompatible model and data versions and must
// not be silently defaulted.
var ErrUnknownCategory = errors.New("category unknown to model encoders")

// Classifier is a trained two-class model. Predict returns the winning
// class index and the (vacant, occupied) probability pair.
type Classifier interface {
	Predict(features []float64) (label int, probs [2]float64, err error)
}

// Scaler normalizes a raw feature vector the way the training pipeline did.
type Scaler interface {
	Transform(features []float64) ([]float64, error)
}

// Encoder maps a categorical value to its trained integer code.
type Encoder interface {
	Transform(value string) (int, error)
}

// Artifacts bundles the four co-versioned objects of a trained model. All
// four load together or the predictor runs degraded.
type Artifacts struct {
	Classifier Classifier
	Scaler     Scaler
	// Features is the ordered feature-name list the classifier expects.
	Features []string
	// Encoders holds one label encoder per encoded column.
	Encoders map[string]Encoder
}
