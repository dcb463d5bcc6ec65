package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFitted     = errors.New("model: not fitted")
	ErrEmptyInput    = errors.New("model: input data cannot be empty")
	ErrShapeMismatch = errors.New("model: feature count mismatch")
)

// Classifier is a supervised binary or multi-class estimator.
type Classifier interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) ([]float64, error)
	fmt.Stringer
}

// Transformer is a preprocessing step: fit on train, transform both.
type Transformer interface {
	Fit(X [][]float64) error
	Transform(X [][]float64) ([][]float64, error)
	fmt.Stringer
}

// shape validates that X is a non-empty rectangular matrix.
func shape(X [][]float64) (n, d int, err error) {
	if len(X) == 0 || len(X[0]) == 0 {
		return 0, 0, ErrEmptyInput
	}
	n, d = len(X), len(X[0])
	for i, row := range X {
		if len(row) != d {
			return 0, 0, fmt.Errorf("%w: row %d has %d features, want %d", ErrShapeMismatch, i, len(row), d)
		}
	}
	return n, d, nil
}

// shapeXY validates X and that y has one label per row.
func shapeXY(X [][]float64, y []float64) (n, d int, err error) {
	n, d, err = shape(X)
	if err != nil {
		return 0, 0, err
	}
	if len(y) != n {
		return 0, 0, fmt.Errorf("model: %d rows but %d labels", n, len(y))
	}
	return n, d, nil
}
