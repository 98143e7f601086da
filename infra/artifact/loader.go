// Package artifact loads the trained model bundle: classifier, scaler,
// ordered feature list and label encoders, exported as four co-versioned
// JSON files by the offline training pipeline.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mhoffer/parkcast/core/prediction"
)

// Bundle file names inside the model directory.
const (
	ClassifierFile = "classifier.json"
	ScalerFile     = "scaler.json"
	FeaturesFile   = "feature_columns.json"
	EncodersFile   = "label_encoders.json"
)

// Load reads the four artifact files from dir. All four must be present
// and consistent; a partial bundle is an error so the caller can fall back
// to degraded mode explicitly.
func Load(dir string) (*prediction.Artifacts, error) {
	var clf LogisticClassifier
	if err := readJSON(filepath.Join(dir, ClassifierFile), &clf); err != nil {
		return nil, err
	}
	var scaler StandardScaler
	if err := readJSON(filepath.Join(dir, ScalerFile), &scaler); err != nil {
		return nil, err
	}
	var features []string
	if err := readJSON(filepath.Join(dir, FeaturesFile), &features); err != nil {
		return nil, err
	}
	var rawEncoders map[string][]string
	if err := readJSON(filepath.Join(dir, EncodersFile), &rawEncoders); err != nil {
		return nil, err
	}

	if len(clf.Weights) != len(features) {
		return nil, fmt.Errorf("artifact mismatch: %d weights for %d features", len(clf.Weights), len(features))
	}
	if len(scaler.Mean) != len(features) {
		return nil, fmt.Errorf("artifact mismatch: scaler covers %d of %d features", len(scaler.Mean), len(features))
	}

	encoders := make(map[string]prediction.Encoder, len(rawEncoders))
	for col, classes := range rawEncoders {
		encoders[col] = NewLabelEncoder(classes)
	}
	return &prediction.Artifacts{
		Classifier: &clf,
		Scaler:     &scaler,
		Features:   features,
		Encoders:   encoders,
	}, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}
