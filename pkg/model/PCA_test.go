package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPCAFindsDominantAxis(t *testing.T) {
	// points on the line y = x with a little orthogonal noise
	X := [][]float64{
		{1, 1.1},
		{2, 1.9},
		{3, 3.1},
		{4, 3.9},
		{5, 5.0},
	}
	pca := NewPCA(2)
	require.NoError(t, pca.Fit(X))

	require.Len(t, pca.Components, 2)
	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, pca.Components[0][0], 0.02)
	assert.InDelta(t, inv, pca.Components[0][1], 0.02)
	assert.Greater(t, pca.ExplainedRatio[0], 0.99)
	assert.InDelta(t, 1.0, pca.ExplainedRatio[0]+pca.ExplainedRatio[1], 1e-9)
	assert.InDeltaSlice(t, []float64{3, 3}, pca.Means, 1e-12)

	for _, axis := range pca.Components {
		norm := 0.0
		for _, v := range axis {
			norm += v * v
		}
		assert.InDelta(t, 1.0, norm, 1e-9)
	}
}

func TestPCATransform(t *testing.T) {
	X := [][]float64{
		{2, 0, 1},
		{4, 0, 1},
		{6, 0, 1},
	}
	pca := NewPCA(1)
	out, err := pca.FitTransform(X)
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.InDelta(t, -2, out[0][0], 1e-9)
	assert.InDelta(t, 0, out[1][0], 1e-9)
	assert.InDelta(t, 2, out[2][0], 1e-9)

	_, err = pca.Transform([][]float64{{1, 2}})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestPCARepeatable(t *testing.T) {
	X := [][]float64{
		{1, 5, 3, 0},
		{2, 3, 1, 1},
		{4, 1, 0, 1},
		{3, 2, 5, 0},
		{0, 4, 2, 1},
	}
	a, b := NewPCA(3), NewPCA(3)
	require.NoError(t, a.Fit(X))
	require.NoError(t, b.Fit(X))
	assert.Equal(t, a.Components, b.Components)
}

func TestPCAErrors(t *testing.T) {
	_, err := NewPCA(1).Transform([][]float64{{1}})
	assert.ErrorIs(t, err, ErrNotFitted)

	assert.ErrorIs(t, NewPCA(1).Fit(nil), ErrEmptyInput)
	assert.Error(t, NewPCA(3).Fit([][]float64{{1, 2}, {3, 4}}))
	assert.Error(t, NewPCA(0).Fit([][]float64{{1, 2}, {3, 4}}))
	assert.Error(t, NewPCA(1).Fit([][]float64{{1, 2}}))
	assert.ErrorIs(t, NewPCA(1).Fit([][]float64{{1, 2}, {3}}), ErrShapeMismatch)
}

func TestPCAString(t *testing.T) {
	assert.Equal(t, "PCA(n_components=7)", NewPCA(7).String())
}
