package artifact

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhoffer/parkcast/core/prediction"
)

func TestLogisticClassifierPredict(t *testing.T) {
	clf := &LogisticClassifier{Weights: []float64{1, -1}, Intercept: 0.5}

	label, probs, err := clf.Predict([]float64{2, 1})
	require.NoError(t, err)
	// z = 2 - 1 + 0.5 = 1.5, sigmoid > 0.5: occupied wins.
	assert.Equal(t, 1, label)
	wantOccupied := 1 / (1 + math.Exp(-1.5))
	assert.InDelta(t, wantOccupied, probs[1], 1e-12)
	assert.InDelta(t, 1-wantOccupied, probs[0], 1e-12)

	label, probs, err = clf.Predict([]float64{-2, 1})
	require.NoError(t, err)
	assert.Equal(t, 0, label)
	assert.Greater(t, probs[0], 0.5)

	_, _, err = clf.Predict([]float64{1})
	assert.Error(t, err)
}

func TestStandardScalerTransform(t *testing.T) {
	s := &StandardScaler{Mean: []float64{10, 0, 5}, Scale: []float64{2, 0, 1}}
	out, err := s.Transform([]float64{14, 3, 5})
	require.NoError(t, err)
	// A zero scale divides by one instead of blowing up.
	assert.Equal(t, []float64{2, 3, 0}, out)

	_, err = s.Transform([]float64{1, 2})
	assert.Error(t, err)
}

func TestLabelEncoder(t *testing.T) {
	enc := NewLabelEncoder([]string{"High", "Low", "Medium"})
	code, err := enc.Transform("Low")
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	_, err = enc.Transform("Gridlock")
	require.Error(t, err)
	assert.True(t, errors.Is(err, prediction.ErrUnknownCategory))
}

func writeBundle(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
	}
}

func validBundle() map[string]string {
	return map[string]string{
		ClassifierFile: `{"weights":[0.5,-0.25],"intercept":0.1,"classes":["Vacant","Occupied"]}`,
		ScalerFile:     `{"mean":[1,2],"scale":[1,1]}`,
		FeaturesFile:   `["Hour","DayOfWeek"]`,
		EncodersFile:   `{"Parking_Lot_Section":["A","B"],"Vehicle_Type":["Car"],"Nearby_Traffic_Level":["High","Low","Medium"]}`,
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, validBundle())

	arts, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hour", "DayOfWeek"}, arts.Features)
	assert.Len(t, arts.Encoders, 3)

	code, err := arts.Encoders["Parking_Lot_Section"].Transform("B")
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	_, probs, err := arts.Classifier.Predict([]float64{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, probs[0]+probs[1], 1e-12)
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	bundle := validBundle()
	delete(bundle, ScalerFile)
	writeBundle(t, dir, bundle)

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoadInconsistentBundle(t *testing.T) {
	cases := map[string]map[string]string{
		"weight count": {
			ClassifierFile: `{"weights":[0.5],"intercept":0.1,"classes":["Vacant","Occupied"]}`,
		},
		"scaler width": {
			ScalerFile: `{"mean":[1],"scale":[1]}`,
		},
		"bad json": {
			FeaturesFile: `{not json`,
		},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			bundle := validBundle()
			for file, data := range overrides {
				bundle[file] = data
			}
			writeBundle(t, dir, bundle)
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}
