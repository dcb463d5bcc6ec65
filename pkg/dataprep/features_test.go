package dataprep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/data"
)

func messages(fromPOI, toPOI, sent, received data.Value) data.Record {
	return data.Record{
		FieldFromPOI:       fromPOI,
		FieldToPOI:         toPOI,
		FieldTotalSent:     sent,
		FieldTotalReceived: received,
	}
}

func TestInteractionRatios(t *testing.T) {
	n := data.Number
	tests := []struct {
		name     string
		rec      data.Record
		wantTo   float64
		wantFrom float64
	}{
		{
			name:     "plain ratios",
			rec:      messages(n(10), n(5), n(50), n(100)),
			wantTo:   0.1,
			wantFrom: 0.1,
		},
		{
			name:     "zero sent total zeroes the to count",
			rec:      messages(data.Missing(), n(5), n(0), n(10)),
			wantTo:   0,
			wantFrom: 0,
		},
		{
			name:     "missing received total zeroes the from count",
			rec:      messages(n(8), n(2), n(4), data.Missing()),
			wantTo:   0.5,
			wantFrom: 0,
		},
		{
			name:     "all missing",
			rec:      messages(data.Missing(), data.Missing(), data.Missing(), data.Missing()),
			wantTo:   0,
			wantFrom: 0,
		},
		{
			name:     "absent fields read as missing",
			rec:      data.Record{},
			wantTo:   0,
			wantFrom: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			to, from := InteractionRatios(tt.rec)
			assert.InDelta(t, tt.wantTo, to, 1e-12)
			assert.InDelta(t, tt.wantFrom, from, 1e-12)
		})
	}
}

func TestDeriveInteractionsFollowsKeyOrder(t *testing.T) {
	n := data.Number
	ds := data.Dataset{
		"C": messages(n(0), n(1), n(4), n(10)),
		"A": messages(n(5), n(2), n(4), n(10)),
		"B": messages(n(1), n(0), n(4), n(10)),
	}

	in := DeriveInteractions(ds)
	assert.Equal(t, []string{"A", "B", "C"}, in.Keys)
	assert.InDeltaSlice(t, []float64{0.5, 0, 0.25}, in.To, 1e-12)
	assert.InDeltaSlice(t, []float64{0.5, 0.1, 0}, in.From, 1e-12)
	assert.Equal(t, n(0.25), ds["C"][FieldToRatio])
	assert.Equal(t, n(0.1), ds["B"][FieldFromRatio])
}

func TestEngineer(t *testing.T) {
	n := data.Number
	ds := data.Dataset{
		"A": messages(n(5), n(2), n(4), n(10)),
		"B": messages(n(1), n(0), n(4), n(10)),
		"C": messages(n(0), n(-1), n(4), n(10)),
	}

	summary, err := Engineer(ds)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SignsFlipped)
	assert.Equal(t, 3, summary.Records)

	// to: A .5, B 0, C .25 -> 1, 0, .5 ; from: A .5, B .1, C 0 -> 1, .2, 0
	want := map[string][3]float64{
		"A": {1, 1, 2},
		"B": {0, 0.2, 0.2},
		"C": {0.5, 0, 0.5},
	}
	for k, w := range want {
		to, _ := ds[k].Float(FieldToRatioScaled)
		from, _ := ds[k].Float(FieldFromRatioScaled)
		score, _ := ds[k].Float(FieldInteractions)
		assert.InDelta(t, w[0], to, 1e-12, k)
		assert.InDelta(t, w[1], from, 1e-12, k)
		assert.InDelta(t, w[2], score, 1e-12, k)
	}
}

func TestCombineInteractionsConstantSeries(t *testing.T) {
	n := data.Number
	ds := data.Dataset{
		"A": messages(n(1), n(1), n(2), n(2)),
		"B": messages(n(2), n(2), n(4), n(4)),
	}
	require.NoError(t, CombineInteractions(ds, DeriveInteractions(ds)))

	for _, rec := range ds {
		score, ok := rec.Float(FieldInteractions)
		require.True(t, ok)
		assert.Zero(t, score)
	}
}

func TestCombineInteractionsEmpty(t *testing.T) {
	assert.NoError(t, CombineInteractions(data.Dataset{}, Interactions{}))
}
