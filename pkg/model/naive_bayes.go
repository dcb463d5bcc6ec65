package model

import (
	"fmt"
	"math"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

// DefaultVarSmoothing is the share of the largest feature variance added to
// every per-class variance.
const DefaultVarSmoothing = 1e-9

// GaussianNB models each feature as an independent normal distribution per
// class and predicts the class with the highest posterior.
type GaussianNB struct {
	VarSmoothing float64

	Classes []float64
	Priors  []float64
	Theta   [][]float64 // per-class feature means
	Var     [][]float64 // per-class feature variances, smoothed
	Epsilon float64
}

func NewGaussianNB() *GaussianNB {
	return &GaussianNB{VarSmoothing: DefaultVarSmoothing}
}

// Fit estimates priors, means and variances from the training data.
func (g *GaussianNB) Fit(X [][]float64, y []float64) error {
	n, d, err := shapeXY(X, y)
	if err != nil {
		return err
	}

	g.Classes = append([]float64(nil), y...)
	slices.Sort(g.Classes)
	g.Classes = slices.Compact(g.Classes)

	col := make([]float64, n)
	maxVar := 0.0
	for j := 0; j < d; j++ {
		for i := 0; i < n; i++ {
			col[i] = X[i][j]
		}
		if v := stat.PopVariance(col, nil); v > maxVar {
			maxVar = v
		}
	}
	g.Epsilon = g.VarSmoothing * maxVar
	if g.Epsilon == 0 {
		// every feature is constant; keep variances strictly positive
		g.Epsilon = g.VarSmoothing
	}

	nc := len(g.Classes)
	g.Priors = make([]float64, nc)
	g.Theta = make([][]float64, nc)
	g.Var = make([][]float64, nc)
	for c, class := range g.Classes {
		var rows [][]float64
		for i := 0; i < n; i++ {
			if y[i] == class {
				rows = append(rows, X[i])
			}
		}
		g.Priors[c] = float64(len(rows)) / float64(n)
		g.Theta[c] = make([]float64, d)
		g.Var[c] = make([]float64, d)
		vals := make([]float64, len(rows))
		for j := 0; j < d; j++ {
			for i, row := range rows {
				vals[i] = row[j]
			}
			mean, variance := stat.PopMeanVariance(vals, nil)
			g.Theta[c][j] = mean
			g.Var[c][j] = variance + g.Epsilon
		}
	}
	return nil
}

// Predict returns the most probable class for each row of X.
func (g *GaussianNB) Predict(X [][]float64) ([]float64, error) {
	if len(g.Classes) == 0 {
		return nil, ErrNotFitted
	}
	n, d, err := shape(X)
	if err != nil {
		return nil, err
	}
	if d != len(g.Theta[0]) {
		return nil, fmt.Errorf("%w: got %d, fitted on %d", ErrShapeMismatch, d, len(g.Theta[0]))
	}

	out := make([]float64, n)
	for i, x := range X {
		jll := g.jointLogLikelihood(x)
		best := 0
		for c := 1; c < len(jll); c++ {
			if jll[c] > jll[best] {
				best = c
			}
		}
		out[i] = g.Classes[best]
	}
	return out, nil
}

func (g *GaussianNB) jointLogLikelihood(x []float64) []float64 {
	jll := make([]float64, len(g.Classes))
	for c := range g.Classes {
		sum := math.Log(g.Priors[c])
		for j, v := range x {
			variance := g.Var[c][j]
			diff := v - g.Theta[c][j]
			sum -= 0.5 * math.Log(2*math.Pi*variance)
			sum -= 0.5 * diff * diff / variance
		}
		jll[c] = sum
	}
	return jll
}

func (g *GaussianNB) String() string {
	return fmt.Sprintf("GaussianNB(var_smoothing=%g)", g.VarSmoothing)
}
