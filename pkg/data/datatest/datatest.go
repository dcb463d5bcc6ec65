// Package datatest builds synthetic Enron-shaped datasets for tests.
package datatest

import (
	"fmt"
	"math/rand"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/data"
)

// Synthetic returns n people, every sixth one a POI, with the financial and
// email fields of the source dataset. POIs earn more and mail POIs more
// often. Some values are missing and deferrals are negative, as in the
// source data. The same seed always yields the same dataset.
func Synthetic(n int, seed int64) data.Dataset {
	rnd := rand.New(rand.NewSource(seed))
	ds := make(data.Dataset, n)
	for i := 0; i < n; i++ {
		poi := i%6 == 0
		scale := 1.0
		if poi {
			scale = 3.0
		}
		money := func(base float64) data.Value {
			return data.Number(float64(int(scale * base * (0.5 + rnd.Float64()))))
		}
		count := func(base float64) data.Value {
			return data.Number(float64(int(base * (0.2 + rnd.Float64()))))
		}

		sent := count(400)
		received := count(2000)
		rec := data.Record{
			"poi":                       data.Bool(poi),
			"salary":                    money(200000),
			"bonus":                     money(800000),
			"total_payments":            money(1500000),
			"exercised_stock_options":   money(2000000),
			"expenses":                  money(50000),
			"deferred_income":           data.Number(-float64(int(scale * 300000 * rnd.Float64()))),
			"long_term_incentive":       money(400000),
			"restricted_stock_deferred": data.Number(-float64(int(100000 * rnd.Float64()))),
			"shared_receipt_with_poi":   count(1000 * scale),
			"email_address":             data.Text(fmt.Sprintf("person.%03d@enron.com", i)),
			"from_messages":             sent,
			"to_messages":               received,
			"from_this_person_to_poi":   count(10 * scale * scale),
			"from_poi_to_this_person":   count(20 * scale * scale),
		}
		switch i % 7 {
		case 3:
			rec["bonus"] = data.Missing()
			rec["from_messages"] = data.Missing()
		case 5:
			rec["long_term_incentive"] = data.Missing()
			rec["to_messages"] = data.Number(0)
		}
		ds[fmt.Sprintf("PERSON %03d", i)] = rec
	}
	ds["TOTAL"] = data.Record{
		"poi":    data.Bool(false),
		"salary": data.Number(1e9),
		"bonus":  data.Number(1e9),
	}
	return ds
}
