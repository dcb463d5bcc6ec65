package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DefaultNameColumn holds the person identifier in CSV exports.
const DefaultNameColumn = "name"

var (
	ErrUnsupportedFormat = errors.New("data: unsupported dataset format")
	ErrEmptyDataset      = errors.New("data: dataset has no records")
)

// LoadFile reads a dataset from path, choosing the decoder by extension.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".csv":
		return LoadCSV(f, DefaultNameColumn)
	case ".pkl", ".pickle":
		return LoadPickle(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadJSON decodes {"PERSON": {"feature": value, ...}, ...}.
func LoadJSON(r io.Reader) (Dataset, error) {
	var raw map[string]map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("data: decode json: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyDataset
	}
	return FromMaps(raw), nil
}

// WriteJSON encodes ds in the same layout LoadJSON reads.
func WriteJSON(w io.Writer, ds Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ds)
}

// LoadCSV reads a wide table with one row per person. nameColumn holds the
// person identifier; every other column is a feature.
func LoadCSV(r io.Reader, nameColumn string) (Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("data: read csv: %w", df.Err)
	}

	records := df.Records()
	if len(records) < 2 {
		return nil, ErrEmptyDataset
	}
	header := records[0]
	nameIdx := -1
	for i, h := range header {
		if h == nameColumn {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("data: csv has no %q column", nameColumn)
	}

	ds := make(Dataset, len(records)-1)
	for _, row := range records[1:] {
		rec := make(Record, len(header)-1)
		for i, cell := range row {
			if i == nameIdx {
				continue
			}
			rec[header[i]] = ParseValue(cell)
		}
		ds[row[nameIdx]] = rec
	}
	return ds, nil
}
