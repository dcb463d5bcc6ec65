package dataprep

import (
	"math"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/data"
)

// DefaultOutliers are the two entries of the source dataset that are not
// people: the spreadsheet's totals row and a travel agency.
var DefaultOutliers = []string{"TOTAL", "THE TRAVEL AGENCY IN THE PARK"}

// RemoveOutliers deletes the named records from ds and returns how many were
// present. Names that are already absent are ignored.
func RemoveOutliers(ds data.Dataset, names ...string) int {
	removed := 0
	for _, name := range names {
		if _, ok := ds[name]; ok {
			delete(ds, name)
			removed++
		}
	}
	return removed
}

// NormalizeSigns replaces every negative numeric field with its absolute
// value. Missing, boolean and text fields are left as they are. It returns
// the number of fields changed.
func NormalizeSigns(ds data.Dataset) int {
	changed := 0
	for _, rec := range ds {
		for name, v := range rec {
			if v.Kind != data.KindNumber || v.Num >= 0 {
				continue
			}
			rec[name] = data.Number(math.Abs(v.Num))
			changed++
		}
	}
	return changed
}
