package data

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MissingMarker is the sentinel the source dataset uses for absent values.
const MissingMarker = "NaN"

// Kind tells how a Value should be read.
type Kind uint8

const (
	KindMissing Kind = iota
	KindNumber
	KindBool
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	default:
		return "missing"
	}
}

// Value is a single raw field of a person's record.
type Value struct {
	Kind Kind
	Num  float64
	Text string
}

// Missing returns the missing-value marker.
func Missing() Value { return Value{Kind: KindMissing} }

// Number wraps a numeric field.
func Number(v float64) Value { return Value{Kind: KindNumber, Num: v} }

// Text wraps a non-numeric field such as an email address.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Bool wraps a flag field; the label is stored this way.
func Bool(b bool) Value {
	if b {
		return Value{Kind: KindBool, Num: 1}
	}
	return Value{Kind: KindBool}
}

// IsMissing reports whether v carries the missing-value marker.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// Float returns the numeric view of v. Bools read as 0/1; missing and text
// values report false.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber, KindBool:
		return v.Num, true
	default:
		return 0, false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return cast.ToString(v.Num)
	case KindBool:
		return cast.ToString(v.Num == 1)
	case KindText:
		return v.Text
	default:
		return MissingMarker
	}
}

// MarshalJSON writes the value the way the source dataset stores it.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return json.Marshal(MissingMarker)
		}
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Num == 1)
	case KindText:
		return json.Marshal(v.Text)
	default:
		return json.Marshal(MissingMarker)
	}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*v = ParseValue(raw)
	return nil
}

// ParseValue coerces a raw decoded value into a Value. Strings equal to the
// missing marker (or empty) become Missing, numeric strings become numbers.
func ParseValue(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Missing()
	case Value:
		return x
	case bool:
		return Bool(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" || strings.EqualFold(s, MissingMarker) || s == "NA" {
			return Missing()
		}
		if f, err := cast.ToFloat64E(s); err == nil {
			return Number(f)
		}
		if b, err := cast.ToBoolE(s); err == nil {
			return Bool(b)
		}
		return Text(x)
	default:
		f, err := cast.ToFloat64E(x)
		if err != nil {
			return Text(cast.ToString(x))
		}
		if math.IsNaN(f) {
			return Missing()
		}
		return Number(f)
	}
}

// Record maps feature name to value for one person.
type Record map[string]Value

// Float looks up a numeric field. ok is false when the field is absent,
// missing or not numeric.
func (r Record) Float(name string) (float64, bool) {
	v, present := r[name]
	if !present {
		return 0, false
	}
	return v.Float()
}

// Clone returns a copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Dataset maps a person identifier to that person's record.
type Dataset map[string]Record

// Keys returns the person identifiers in ascending order. Every stage that
// produces ordered output iterates in this order.
func (d Dataset) Keys() []string {
	keys := maps.Keys(d)
	slices.Sort(keys)
	return keys
}

// Features returns the union of feature names across all records, sorted.
func (d Dataset) Features() []string {
	seen := make(map[string]struct{})
	for _, rec := range d {
		for name := range rec {
			seen[name] = struct{}{}
		}
	}
	names := maps.Keys(seen)
	slices.Sort(names)
	return names
}

// Clone deep-copies the dataset.
func (d Dataset) Clone() Dataset {
	out := make(Dataset, len(d))
	for k, rec := range d {
		out[k] = rec.Clone()
	}
	return out
}

// FromMaps builds a dataset from loosely typed maps, coercing each value
// with ParseValue.
func FromMaps(raw map[string]map[string]any) Dataset {
	ds := make(Dataset, len(raw))
	for name, fields := range raw {
		rec := make(Record, len(fields))
		for k, v := range fields {
			rec[k] = ParseValue(v)
		}
		ds[name] = rec
	}
	return ds
}

func (d Dataset) String() string {
	return fmt.Sprintf("Dataset(%d records, %d features)", len(d), len(d.Features()))
}
