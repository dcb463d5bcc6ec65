package data

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Frame converts the selected features into a gota DataFrame, one row per
// person in key order. Missing and text values become NaN.
func (d Dataset) Frame(features []string) dataframe.DataFrame {
	keys := d.Keys()
	cols := make([]series.Series, 0, len(features)+1)
	cols = append(cols, series.New(keys, series.String, DefaultNameColumn))

	for _, f := range features {
		vals := make([]float64, len(keys))
		for i, k := range keys {
			v, ok := d[k].Float(f)
			if !ok {
				v = math.NaN()
			}
			vals[i] = v
		}
		cols = append(cols, series.New(vals, series.Float, f))
	}
	return dataframe.New(cols...)
}

// Describe summarises the selected features (mean, std, min, quartiles,
// max) for console profiling.
func (d Dataset) Describe(features []string) dataframe.DataFrame {
	return d.Frame(features).Drop(DefaultNameColumn).Describe()
}
