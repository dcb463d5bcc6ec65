package pipeline

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"strings"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/config"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/model"
)

func init() {
	gob.Register(&model.PCA{})
	gob.Register(&model.GaussianNB{})
	gob.Register(&model.DecisionTree{})
	gob.Register(&model.RandomForest{})
}

// Step is a named transform applied before the final estimator.
type Step struct {
	Name        string
	Transformer model.Transformer
}

// NamedClassifier is the final estimator of a pipeline.
type NamedClassifier struct {
	Name       string
	Classifier model.Classifier
}

// Pipeline chains transformers and ends in a classifier. It is itself a
// model.Classifier.
type Pipeline struct {
	Steps     []Step
	Estimator NamedClassifier
}

func NewPipeline(est NamedClassifier, steps ...Step) *Pipeline {
	return &Pipeline{Steps: steps, Estimator: est}
}

// New builds the pipeline described by cfg: a PCA reduction followed by the
// configured classifier.
func New(cfg config.Config) (*Pipeline, error) {
	var clf model.Classifier
	switch cfg.Classifier {
	case config.GaussianNB:
		clf = model.NewGaussianNB()
	case config.DecisionTree:
		clf = model.NewDecisionTree(
			model.WithMinSamplesSplit(10),
			model.WithMaxDepth(5),
			model.WithRandomState(cfg.Seed),
		)
	case config.RandomForest:
		clf = model.NewRandomForest(
			model.WithForestMinSamplesSplit(50),
			model.WithNEstimators(100),
			model.WithForestRandomState(cfg.Seed),
		)
	default:
		return nil, fmt.Errorf("pipeline: unknown classifier %q", cfg.Classifier)
	}
	return NewPipeline(
		NamedClassifier{Name: cfg.Classifier, Classifier: clf},
		Step{Name: "reduce_dim", Transformer: model.NewPCA(cfg.Components)},
	), nil
}

// Fit fits each step on the output of the previous one, then the estimator.
func (p *Pipeline) Fit(X [][]float64, y []float64) error {
	if p.Estimator.Classifier == nil {
		return errors.New("pipeline: no estimator")
	}
	X, err := p.fitTransform(X)
	if err != nil {
		return err
	}
	if err := p.Estimator.Classifier.Fit(X, y); err != nil {
		return fmt.Errorf("pipeline: %s: %w", p.Estimator.Name, err)
	}
	return nil
}

// Predict runs X through every fitted step and classifies the result.
func (p *Pipeline) Predict(X [][]float64) ([]float64, error) {
	if p.Estimator.Classifier == nil {
		return nil, errors.New("pipeline: no estimator")
	}
	X, err := p.Transform(X)
	if err != nil {
		return nil, err
	}
	pred, err := p.Estimator.Classifier.Predict(X)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", p.Estimator.Name, err)
	}
	return pred, nil
}

// Transform applies the fitted steps only.
func (p *Pipeline) Transform(X [][]float64) ([][]float64, error) {
	for _, step := range p.Steps {
		out, err := step.Transformer.Transform(X)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %s: %w", step.Name, err)
		}
		X = out
	}
	return X, nil
}

func (p *Pipeline) fitTransform(X [][]float64) ([][]float64, error) {
	for _, step := range p.Steps {
		if err := step.Transformer.Fit(X); err != nil {
			return nil, fmt.Errorf("pipeline: %s: %w", step.Name, err)
		}
		out, err := step.Transformer.Transform(X)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %s: %w", step.Name, err)
		}
		X = out
	}
	return X, nil
}

// PCA returns the first PCA step, or nil.
func (p *Pipeline) PCA() *model.PCA {
	for _, step := range p.Steps {
		if pca, ok := step.Transformer.(*model.PCA); ok {
			return pca
		}
	}
	return nil
}

// Clone returns an independent deep copy.
func (p *Pipeline) Clone() (*Pipeline, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(p); err != nil {
		return nil, fmt.Errorf("pipeline: clone: %w", err)
	}
	var out Pipeline
	if err := gob.NewDecoder(&buf).Decode(&out); err != nil {
		return nil, fmt.Errorf("pipeline: clone: %w", err)
	}
	return &out, nil
}

func (p *Pipeline) String() string {
	var sb strings.Builder
	sb.WriteString("Pipeline(steps=[")
	for _, step := range p.Steps {
		fmt.Fprintf(&sb, "('%s', %s), ", step.Name, step.Transformer)
	}
	fmt.Fprintf(&sb, "('%s', %s)])", p.Estimator.Name, p.Estimator.Classifier)
	return sb.String()
}
