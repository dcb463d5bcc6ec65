package evaluate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/model"
)

// threshold predicts 1 when the first feature exceeds cut.
type threshold struct {
	cut   float64
	label float64
}

func (th *threshold) Fit([][]float64, []float64) error { return nil }

func (th *threshold) Predict(X [][]float64) ([]float64, error) {
	out := make([]float64, len(X))
	for i, x := range X {
		if x[0] > th.cut {
			out[i] = th.label
		}
	}
	return out, nil
}

func (th *threshold) String() string { return "threshold" }

func ramp() ([][]float64, []float64) {
	var X [][]float64
	var y []float64
	for i := 0; i < 30; i++ {
		X = append(X, []float64{float64(i)})
		if i >= 20 {
			y = append(y, 1)
		} else {
			y = append(y, 0)
		}
	}
	return X, y
}

func TestCrossValidate(t *testing.T) {
	X, y := ramp()
	factory := func() (model.Classifier, error) { return &threshold{cut: 19.5, label: 1}, nil }

	c, err := CrossValidate(factory, X, y, 20, 0.3, 42)
	require.NoError(t, err)
	assert.Equal(t, 20*9, c.Total())
	assert.Equal(t, 20*3, c.TP)
	assert.Equal(t, 20*6, c.TN)
	assert.Zero(t, c.FP)
	assert.Zero(t, c.FN)
	assert.False(t, c.Aborted)
}

func TestCrossValidateWithGaussianNB(t *testing.T) {
	X, y := ramp()
	factory := func() (model.Classifier, error) { return model.NewGaussianNB(), nil }

	c, err := CrossValidate(factory, X, y, 10, 0.3, 1)
	require.NoError(t, err)
	s, err := c.Scores()
	require.NoError(t, err)
	assert.Greater(t, s.Accuracy, 0.8)
}

func TestCrossValidateAbortedFolds(t *testing.T) {
	X, y := ramp()
	factory := func() (model.Classifier, error) { return &threshold{cut: 19.5, label: 2}, nil }

	c, err := CrossValidate(factory, X, y, 5, 0.3, 42)
	require.NoError(t, err)
	assert.True(t, c.Aborted)
	assert.Equal(t, 2.0, c.Offending)
}

func TestCrossValidateErrors(t *testing.T) {
	X, y := ramp()
	boom := errors.New("boom")
	_, err := CrossValidate(func() (model.Classifier, error) { return nil, boom }, X, y, 3, 0.3, 1)
	assert.ErrorIs(t, err, boom)

	_, err = CrossValidate(nil, X, y[:3], 3, 0.3, 1)
	assert.Error(t, err)
}
