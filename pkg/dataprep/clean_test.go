package dataprep

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/data"
)

func sampleDataset() data.Dataset {
	return data.Dataset{
		"TOTAL": {
			"salary": data.Number(26704229),
			"poi":    data.Bool(false),
		},
		"THE TRAVEL AGENCY IN THE PARK": {
			"salary": data.Missing(),
			"poi":    data.Bool(false),
		},
		"BELFER ROBERT": {
			"deferred_income":           data.Number(-102500),
			"restricted_stock_deferred": data.Number(44093),
			"salary":                    data.Missing(),
			"email_address":             data.Text("robert.belfer@enron.com"),
			"poi":                       data.Bool(false),
		},
		"LAY KENNETH L": {
			"deferred_income": data.Number(-300000),
			"salary":          data.Number(1072321),
			"poi":             data.Bool(true),
		},
	}
}

func TestRemoveOutliers(t *testing.T) {
	ds := sampleDataset()

	removed := RemoveOutliers(ds, DefaultOutliers...)
	assert.Equal(t, 2, removed)
	for _, name := range DefaultOutliers {
		assert.NotContains(t, ds, name)
	}
	assert.Len(t, ds, 2)

	again := RemoveOutliers(ds, DefaultOutliers...)
	assert.Zero(t, again)
	assert.Len(t, ds, 2)
}

func TestRemoveOutliersIgnoresUnknownNames(t *testing.T) {
	ds := sampleDataset()
	assert.Zero(t, RemoveOutliers(ds, "NOBODY"))
	assert.Len(t, ds, 4)
}

func TestNormalizeSigns(t *testing.T) {
	ds := sampleDataset()

	changed := NormalizeSigns(ds)
	assert.Equal(t, 2, changed)

	for name, rec := range ds {
		for field, v := range rec {
			if f, ok := v.Float(); ok {
				assert.GreaterOrEqualf(t, f, 0.0, "%s.%s", name, field)
			}
		}
	}
	assert.Equal(t, data.Number(102500), ds["BELFER ROBERT"]["deferred_income"])
	assert.True(t, ds["BELFER ROBERT"]["salary"].IsMissing())
	assert.Equal(t, data.Text("robert.belfer@enron.com"), ds["BELFER ROBERT"]["email_address"])
	assert.Equal(t, data.Bool(true), ds["LAY KENNETH L"]["poi"])
}
