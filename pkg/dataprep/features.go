package dataprep

import (
	"fmt"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/data"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/stats"
)

// Raw message-count fields read from every record.
const (
	FieldFromPOI       = "from_poi_to_this_person"
	FieldToPOI         = "from_this_person_to_poi"
	FieldTotalSent     = "from_messages"
	FieldTotalReceived = "to_messages"
)

// Fields written by the feature engineer.
const (
	FieldToRatio         = "from_this_person_to_poi_ratio"
	FieldFromRatio       = "from_poi_to_this_person_ratio"
	FieldToRatioScaled   = "from_this_person_to_poi_scaled"
	FieldFromRatioScaled = "from_poi_to_this_person_scaled"
	FieldInteractions    = "poi_interactions"
)

// Interactions holds the per-person ratio series in key order.
type Interactions struct {
	Keys []string
	To   []float64
	From []float64
}

// InteractionRatios returns the fraction of sent messages that went to a POI
// and the fraction of received messages that came from one.
//
// A missing POI count reads as 0. A missing or zero total reads as 1 and
// also zeroes the matching POI count, even when that count was valid.
func InteractionRatios(rec data.Record) (to, from float64) {
	fromPOI := countOrZero(rec, FieldFromPOI)
	toPOI := countOrZero(rec, FieldToPOI)

	totalSent, ok := rec.Float(FieldTotalSent)
	if !ok || totalSent == 0 {
		totalSent = 1
		toPOI = 0
	}
	totalReceived, ok := rec.Float(FieldTotalReceived)
	if !ok || totalReceived == 0 {
		totalReceived = 1
		fromPOI = 0
	}
	return toPOI / totalSent, fromPOI / totalReceived
}

func countOrZero(rec data.Record, name string) float64 {
	v, ok := rec.Float(name)
	if !ok {
		return 0
	}
	return v
}

// DeriveInteractions stores both ratios on every record and returns them as
// two series ordered by person key.
func DeriveInteractions(ds data.Dataset) Interactions {
	keys := ds.Keys()
	in := Interactions{
		Keys: keys,
		To:   make([]float64, len(keys)),
		From: make([]float64, len(keys)),
	}
	for i, k := range keys {
		rec := ds[k]
		to, from := InteractionRatios(rec)
		rec[FieldToRatio] = data.Number(to)
		rec[FieldFromRatio] = data.Number(from)
		in.To[i], in.From[i] = to, from
	}
	return in
}

// CombineInteractions min-max scales each ratio series on its own and
// stores the scaled values plus their sum, the interaction score.
func CombineInteractions(ds data.Dataset, in Interactions) error {
	if len(in.Keys) == 0 {
		return nil
	}
	cols := make([][]float64, len(in.Keys))
	for i := range in.Keys {
		cols[i] = []float64{in.To[i], in.From[i]}
	}
	scaled, err := stats.MinMaxScale(cols)
	if err != nil {
		return fmt.Errorf("dataprep: scale interactions: %w", err)
	}
	for i, k := range in.Keys {
		rec, ok := ds[k]
		if !ok {
			return fmt.Errorf("dataprep: record %q vanished before scaling", k)
		}
		to, from := scaled[i][0], scaled[i][1]
		rec[FieldToRatioScaled] = data.Number(to)
		rec[FieldFromRatioScaled] = data.Number(from)
		rec[FieldInteractions] = data.Number(to + from)
	}
	return nil
}

// Summary counts what Engineer touched.
type Summary struct {
	SignsFlipped int
	Records      int
}

// Engineer normalizes signs, then derives and combines the interaction
// features on every record of ds.
func Engineer(ds data.Dataset) (Summary, error) {
	s := Summary{SignsFlipped: NormalizeSigns(ds)}
	in := DeriveInteractions(ds)
	if err := CombineInteractions(ds, in); err != nil {
		return s, err
	}
	s.Records = len(in.Keys)
	return s, nil
}
