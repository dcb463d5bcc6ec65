package stats

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrEmptySeries = errors.New("stats: empty series")
	ErrNotFitted   = errors.New("stats: scaler not fitted")
)

// MinMaxScaler maps a one-dimensional series onto [0, 1] using the minimum
// and maximum observed during Fit. A constant series has no range; every
// value of it maps to 0.
type MinMaxScaler struct {
	Min, Max float64
	fit      bool
}

func NewMinMaxScaler() *MinMaxScaler { return &MinMaxScaler{} }

// Fit records the range of x.
func (s *MinMaxScaler) Fit(x []float64) error {
	if len(x) == 0 {
		return ErrEmptySeries
	}
	s.Min, s.Max = floats.Min(x), floats.Max(x)
	s.fit = true
	return nil
}

// Transform returns a scaled copy of x. Values outside the fitted range
// land outside [0, 1].
func (s *MinMaxScaler) Transform(x []float64) ([]float64, error) {
	if !s.fit {
		return nil, ErrNotFitted
	}
	out := make([]float64, len(x))
	span := s.Max - s.Min
	if span == 0 {
		return out, nil
	}
	for i, v := range x {
		out[i] = (v - s.Min) / span
	}
	return out, nil
}

func (s *MinMaxScaler) FitTransform(x []float64) ([]float64, error) {
	if err := s.Fit(x); err != nil {
		return nil, err
	}
	return s.Transform(x)
}

// MinMaxScale scales each column of X to [0, 1] independently.
func MinMaxScale(X [][]float64) ([][]float64, error) {
	if len(X) == 0 {
		return nil, ErrEmptySeries
	}
	rows, cols := len(X), len(X[0])
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
	}
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			col[i] = X[i][j]
		}
		scaled, err := NewMinMaxScaler().FitTransform(col)
		if err != nil {
			return nil, err
		}
		for i := 0; i < rows; i++ {
			out[i][j] = scaled[i]
		}
	}
	return out, nil
}
