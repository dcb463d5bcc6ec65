package data

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// samplePickle is a protocol 0 pickle of two people, as Python 2 writes it.
const samplePickle = "(d" +
	"S'METTS MARK'\n(d" +
	"S'salary'\nI365788\ns" +
	"S'bonus'\nS'NaN'\ns" +
	"S'expenses'\nF94299.5\ns" +
	"S'email_address'\nS'mark.metts@enron.com'\ns" +
	"S'poi'\nI0\nss" +
	"S'LAY KENNETH L'\n(d" +
	"S'salary'\nI1072321\ns" +
	"S'poi'\nI1\nss" +
	"."

func TestLoadPickle(t *testing.T) {
	ds, err := LoadPickle(strings.NewReader(samplePickle))
	require.NoError(t, err)
	require.Len(t, ds, 2)

	metts := ds["METTS MARK"]
	salary, ok := metts.Float("salary")
	require.True(t, ok)
	assert.Equal(t, 365788.0, salary)
	assert.True(t, metts["bonus"].IsMissing())
	expenses, _ := metts.Float("expenses")
	assert.Equal(t, 94299.5, expenses)
	assert.Equal(t, Text("mark.metts@enron.com"), metts["email_address"])

	poi, ok := ds["LAY KENNETH L"].Float("poi")
	require.True(t, ok)
	assert.Equal(t, 1.0, poi)
}

func TestLoadPickleErrors(t *testing.T) {
	_, err := LoadPickle(strings.NewReader("not a pickle"))
	assert.Error(t, err)

	_, err = LoadPickle(strings.NewReader("(d."))
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = LoadPickle(strings.NewReader("I42\n."))
	assert.Error(t, err, "top level must be a dict")

	_, err = LoadPickle(strings.NewReader("(dS'A'\nI1\ns."))
	assert.Error(t, err, "records must be dicts")
}
