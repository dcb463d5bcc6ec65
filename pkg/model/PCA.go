package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PCA projects data onto its top-K principal components, computed from a
// thin SVD of the centered training matrix.
type PCA struct {
	K              int
	Means          []float64
	Components     [][]float64 // K x d, each a unit vector
	Explained      []float64   // variance along each component
	ExplainedRatio []float64
}

// NewPCA creates and returns a new PCA model.
func NewPCA(k int) *PCA {
	return &PCA{K: k}
}

// Fit computes the principal axes of X.
func (p *PCA) Fit(X [][]float64) error {
	n, d, err := shape(X)
	if err != nil {
		return err
	}
	if n < 2 {
		return errors.New("pca: need at least two samples")
	}
	if p.K < 1 || p.K > min(n, d) {
		return fmt.Errorf("pca: n_components=%d must be between 1 and min(n_samples, n_features)=%d", p.K, min(n, d))
	}

	p.Means = make([]float64, d)
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		for i := 0; i < n; i++ {
			col[i] = X[i][j]
		}
		p.Means[j] = stat.Mean(col, nil)
	}

	Z := p.center(X)
	var svd mat.SVD
	if ok := svd.Factorize(Z, mat.SVDThin); !ok {
		return errors.New("pca: svd did not converge")
	}
	var v mat.Dense
	svd.VTo(&v)
	values := svd.Values(nil)

	total := 0.0
	for _, s := range values {
		total += s * s
	}
	total /= float64(n - 1)

	p.Components = make([][]float64, p.K)
	p.Explained = make([]float64, p.K)
	p.ExplainedRatio = make([]float64, p.K)
	for k := 0; k < p.K; k++ {
		axis := mat.Col(nil, k, &v)
		flipSign(axis)
		p.Components[k] = axis
		p.Explained[k] = values[k] * values[k] / float64(n-1)
		if total > 0 {
			p.ExplainedRatio[k] = p.Explained[k] / total
		}
	}
	return nil
}

// Transform projects X onto the fitted components.
func (p *PCA) Transform(X [][]float64) ([][]float64, error) {
	if p.Components == nil {
		return nil, ErrNotFitted
	}
	n, d, err := shape(X)
	if err != nil {
		return nil, err
	}
	if d != len(p.Means) {
		return nil, fmt.Errorf("%w: got %d, fitted on %d", ErrShapeMismatch, d, len(p.Means))
	}

	comps := mat.NewDense(p.K, d, nil)
	for k, axis := range p.Components {
		comps.SetRow(k, axis)
	}
	var proj mat.Dense
	proj.Mul(p.center(X), comps.T())

	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = mat.Row(nil, i, &proj)
	}
	return out, nil
}

func (p *PCA) FitTransform(X [][]float64) ([][]float64, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

func (p *PCA) String() string {
	return fmt.Sprintf("PCA(n_components=%d)", p.K)
}

func (p *PCA) center(X [][]float64) *mat.Dense {
	n, d := len(X), len(p.Means)
	Z := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			Z.Set(i, j, X[i][j]-p.Means[j])
		}
	}
	return Z
}

// flipSign makes the largest-magnitude loading positive so the same data
// always yields the same axes.
func flipSign(axis []float64) {
	best := 0
	for j := range axis {
		if math.Abs(axis[j]) > math.Abs(axis[best]) {
			best = j
		}
	}
	if axis[best] < 0 {
		floats.Scale(-1, axis)
	}
}
