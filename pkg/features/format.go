package features

import (
	"errors"
	"fmt"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/data"
)

var (
	ErrFeatureNotPresent = errors.New("features: feature not present")
	ErrNotNumeric        = errors.New("features: value is not numeric")
)

// Options controls which records survive extraction.
type Options struct {
	// RemoveNaN reads missing values as 0. Without it a missing value is an
	// error.
	RemoveNaN bool
	// RemoveAllZeroes drops records whose input features are all zero.
	RemoveAllZeroes bool
	// RemoveAnyZeroes drops records with at least one zero input feature.
	RemoveAnyZeroes bool
}

// DefaultOptions matches the extraction the validation program expects.
func DefaultOptions() Options {
	return Options{RemoveNaN: true, RemoveAllZeroes: true}
}

// Matrix is the extracted numeric table. Column order follows the feature
// list; the label is column 0.
type Matrix struct {
	Keys []string
	Rows [][]float64
}

// Format projects ds onto list, one row per surviving record in key order.
// A record lacking any requested feature is an error, not a skip.
func Format(ds data.Dataset, list List, opts Options) (Matrix, error) {
	var m Matrix
	for _, key := range ds.Keys() {
		rec := ds[key]
		row := make([]float64, len(list))
		for j, name := range list {
			v, ok := rec[name]
			if !ok {
				return Matrix{}, fmt.Errorf("%w: %q missing from record %q", ErrFeatureNotPresent, name, key)
			}
			f, err := numeric(v, opts)
			if err != nil {
				return Matrix{}, fmt.Errorf("%s.%s: %w", key, name, err)
			}
			row[j] = f
		}
		if !keep(inputsOf(row, list), opts) {
			continue
		}
		m.Keys = append(m.Keys, key)
		m.Rows = append(m.Rows, row)
	}
	return m, nil
}

func numeric(v data.Value, opts Options) (float64, error) {
	if v.IsMissing() {
		if opts.RemoveNaN {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: missing value", ErrNotNumeric)
	}
	f, ok := v.Float()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotNumeric, v.Kind)
	}
	return f, nil
}

// inputsOf excludes the label column from the zero checks.
func inputsOf(row []float64, list List) []float64 {
	if list.Label() == LabelFeature {
		return row[1:]
	}
	return row
}

func keep(inputs []float64, opts Options) bool {
	if opts.RemoveAllZeroes {
		nonZero := false
		for _, v := range inputs {
			if v != 0 {
				nonZero = true
				break
			}
		}
		if !nonZero {
			return false
		}
	}
	if opts.RemoveAnyZeroes {
		for _, v := range inputs {
			if v == 0 {
				return false
			}
		}
	}
	return true
}

// TargetSplit separates the label column from the feature columns.
func TargetSplit(m Matrix) (labels []float64, X [][]float64) {
	labels = make([]float64, len(m.Rows))
	X = make([][]float64, len(m.Rows))
	for i, row := range m.Rows {
		labels[i] = row[0]
		X[i] = append([]float64(nil), row[1:]...)
	}
	return labels, X
}
