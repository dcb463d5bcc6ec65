package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func separable() ([][]float64, []float64) {
	X := [][]float64{
		{1.0, 2.1}, {1.2, 1.9}, {0.8, 2.0}, {1.1, 2.2},
		{5.0, 8.1}, {5.2, 7.9}, {4.9, 8.0},
	}
	y := []float64{0, 0, 0, 0, 1, 1, 1}
	return X, y
}

func TestGaussianNBFit(t *testing.T) {
	X, y := separable()
	nb := NewGaussianNB()
	require.NoError(t, nb.Fit(X, y))

	assert.Equal(t, []float64{0, 1}, nb.Classes)
	assert.InDeltaSlice(t, []float64{4.0 / 7, 3.0 / 7}, nb.Priors, 1e-12)
	assert.InDelta(t, 1.025, nb.Theta[0][0], 1e-12)
	assert.InDelta(t, 8.0, nb.Theta[1][1], 1e-12)
	for _, vars := range nb.Var {
		for _, v := range vars {
			assert.Greater(t, v, 0.0)
		}
	}
}

func TestGaussianNBPredict(t *testing.T) {
	X, y := separable()
	nb := NewGaussianNB()
	require.NoError(t, nb.Fit(X, y))

	got, err := nb.Predict([][]float64{{1.0, 2.0}, {5.1, 8.0}, {0.9, 2.3}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, got)

	train, err := nb.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, y, train)
}

func TestGaussianNBConstantFeatures(t *testing.T) {
	X := [][]float64{{1, 1}, {1, 1}, {1, 1}}
	nb := NewGaussianNB()
	require.NoError(t, nb.Fit(X, []float64{0, 1, 1}))

	got, err := nb.Predict([][]float64{{1, 1}})
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, got, "equal likelihoods fall back to the larger prior")
}

func TestGaussianNBErrors(t *testing.T) {
	nb := NewGaussianNB()
	_, err := nb.Predict([][]float64{{1}})
	assert.ErrorIs(t, err, ErrNotFitted)

	assert.Error(t, nb.Fit([][]float64{{1}, {2}}, []float64{0}))

	X, y := separable()
	require.NoError(t, nb.Fit(X, y))
	_, err = nb.Predict([][]float64{{1, 2, 3}})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestGaussianNBString(t *testing.T) {
	assert.Equal(t, "GaussianNB(var_smoothing=1e-09)", NewGaussianNB().String())
}
