package data

import (
	"fmt"
	"io"
	"reflect"

	"github.com/nlpodyssey/gopickle/pickle"
	"github.com/spf13/cast"
)

// orderedDict is the dictionary shape gopickle produces.
type orderedDict interface {
	Keys() []interface{}
	Get(key interface{}) (interface{}, bool)
}

// LoadPickle decodes a pickled {person: {feature: value}} dictionary, the
// form the dataset is originally distributed in.
func LoadPickle(r io.Reader) (Dataset, error) {
	u := pickle.NewUnpickler(r)
	obj, err := u.Load()
	if err != nil {
		return nil, fmt.Errorf("data: unpickle: %w", err)
	}
	outer, err := pickleDict(obj)
	if err != nil {
		return nil, err
	}
	if len(outer) == 0 {
		return nil, ErrEmptyDataset
	}

	raw := make(map[string]map[string]any, len(outer))
	for name, fields := range outer {
		inner, err := pickleDict(fields)
		if err != nil {
			return nil, fmt.Errorf("data: record %q: %w", name, err)
		}
		rec := make(map[string]any, len(inner))
		for k, v := range inner {
			rec[k] = v
		}
		raw[name] = rec
	}
	return FromMaps(raw), nil
}

func pickleDict(obj interface{}) (map[string]interface{}, error) {
	if d, ok := obj.(orderedDict); ok {
		keys := d.Keys()
		out := make(map[string]interface{}, len(keys))
		for _, k := range keys {
			v, _ := d.Get(k)
			out[cast.ToString(k)] = v
		}
		return out, nil
	}
	rv := reflect.ValueOf(obj)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("data: pickle holds %T, want a dict", obj)
	}
	out := make(map[string]interface{}, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[cast.ToString(iter.Key().Interface())] = iter.Value().Interface()
	}
	return out, nil
}
