package persist

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/data"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/features"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/pipeline"
)

// Artifact is everything a validation run needs to reproduce a trained
// classifier: the fitted pipeline, the engineered dataset and the feature
// list used to extract it.
type Artifact struct {
	RunID      uuid.UUID
	CreatedAt  time.Time
	Pipeline   *pipeline.Pipeline
	Dataset    data.Dataset
	Features   features.List
	Extraction features.Options
}

// NewArtifact stamps a new run id and creation time.
func NewArtifact(p *pipeline.Pipeline, ds data.Dataset, list features.List, opts features.Options) *Artifact {
	return &Artifact{
		RunID:      uuid.New(),
		CreatedAt:  time.Now().UTC(),
		Pipeline:   p,
		Dataset:    ds,
		Features:   list,
		Extraction: opts,
	}
}

// Save writes a as a single gob stream, replacing any existing file. The
// stream goes to a temporary file in the same directory first, so a failed
// save leaves path untouched.
func (a *Artifact) Save(path string) error {
	if a.Pipeline == nil {
		return errors.New("persist: artifact has no pipeline")
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(a); err != nil {
		tmp.Close()
		return fmt.Errorf("persist: encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

// Load reads an artifact written by Save.
func Load(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}
	defer f.Close()

	var a Artifact
	if err := gob.NewDecoder(f).Decode(&a); err != nil {
		return nil, fmt.Errorf("persist: decode %s: %w", path, err)
	}
	if a.Pipeline == nil {
		return nil, fmt.Errorf("persist: %s holds no pipeline", path)
	}
	return &a, nil
}
