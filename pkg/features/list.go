package features

import (
	"errors"
	"fmt"
)

// LabelFeature is the binary target; it must head every feature list.
const LabelFeature = "poi"

// DefaultList balances precision and recall on the source dataset.
var DefaultList = List{
	LabelFeature,
	"salary",
	"bonus",
	"total_payments",
	"exercised_stock_options",
	"expenses",
	"deferred_income",
	"long_term_incentive",
	"poi_interactions",
	"shared_receipt_with_poi",
	"restricted_stock_deferred",
}

var ErrInvalidList = errors.New("features: invalid feature list")

// List is an ordered set of feature names whose first entry is the label.
type List []string

// Label returns the label column name.
func (l List) Label() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}

// Inputs returns the non-label feature names.
func (l List) Inputs() []string {
	if len(l) == 0 {
		return nil
	}
	return l[1:]
}

func (l List) Validate() error {
	if len(l) < 2 {
		return fmt.Errorf("%w: need the label and at least one input", ErrInvalidList)
	}
	if l[0] != LabelFeature {
		return fmt.Errorf("%w: first feature must be %q, got %q", ErrInvalidList, LabelFeature, l[0])
	}
	seen := make(map[string]struct{}, len(l))
	for _, name := range l {
		if name == "" {
			return fmt.Errorf("%w: empty feature name", ErrInvalidList)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate feature %q", ErrInvalidList, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Clone returns a copy of l.
func (l List) Clone() List {
	return append(List(nil), l...)
}
