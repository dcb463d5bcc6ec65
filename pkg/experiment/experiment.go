// Package experiment runs the POI identification steps end to end: clean,
// engineer, extract, split, fit, predict and tally.
package experiment

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/config"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/data"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/dataprep"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/evaluate"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/features"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/model"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/persist"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/pipeline"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/report"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/store"
)

// Prepared is a cleaned, engineered dataset and its extracted matrix.
type Prepared struct {
	Dataset data.Dataset
	Keys    []string
	Labels  []float64
	X       [][]float64
	Removed int
	Summary dataprep.Summary
}

// Prepare cleans ds in place and extracts the configured features.
func Prepare(ds data.Dataset, cfg config.Config) (*Prepared, error) {
	removed := dataprep.RemoveOutliers(ds, cfg.Outliers...)
	slog.Info("outliers removed", "count", removed, "remaining", len(ds))

	summary, err := dataprep.Engineer(ds)
	if err != nil {
		return nil, fmt.Errorf("experiment: engineer: %w", err)
	}
	slog.Info("features engineered", "records", summary.Records, "signs_flipped", summary.SignsFlipped)

	m, err := features.Format(ds, cfg.Features, cfg.Extraction.Options())
	if err != nil {
		return nil, fmt.Errorf("experiment: extract: %w", err)
	}
	labels, X := features.TargetSplit(m)
	slog.Info("features extracted", "rows", len(X), "features", len(cfg.Features.Inputs()))

	return &Prepared{
		Dataset: ds,
		Keys:    m.Keys,
		Labels:  labels,
		X:       X,
		Removed: removed,
		Summary: summary,
	}, nil
}

// Result is the outcome of one training run.
type Result struct {
	RunID       uuid.UUID
	Pipeline    *pipeline.Pipeline
	Predictions []float64
	Truth       []float64
	Confusion   evaluate.Confusion
	TrainTime   time.Duration
	PredictTime time.Duration
}

// Report wraps r for console output.
func (r *Result) Report() report.Report {
	rep := report.New(r.Pipeline.String(), r.Confusion)
	rep.TrainTime = r.TrainTime
	rep.PredictTime = r.PredictTime
	return rep
}

// Train splits prep, fits the configured pipeline on the train half and
// tallies its predictions on the test half.
func Train(prep *Prepared, cfg config.Config) (*Result, error) {
	XTrain, XTest, yTrain, yTest, err := pipeline.TrainTestSplit(prep.X, prep.Labels, cfg.TestSize, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("experiment: %w", err)
	}
	p, err := pipeline.New(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := p.Fit(XTrain, yTrain); err != nil {
		return nil, fmt.Errorf("experiment: fit: %w", err)
	}
	trainTime := time.Since(start)

	start = time.Now()
	pred, err := p.Predict(XTest)
	if err != nil {
		return nil, fmt.Errorf("experiment: predict: %w", err)
	}
	predictTime := time.Since(start)

	c := evaluate.Tally(pred, yTest)
	if c.Aborted {
		slog.Warn("predicted label not 0 or 1", "label", c.Offending)
	}
	slog.Info("pipeline trained", "pipeline", p.String(), "train_rows", len(XTrain), "test_rows", len(XTest))

	return &Result{
		RunID:       uuid.New(),
		Pipeline:    p,
		Predictions: pred,
		Truth:       yTest,
		Confusion:   c,
		TrainTime:   trainTime,
		PredictTime: predictTime,
	}, nil
}

// Artifact packages a trained result for the validation program.
func (r *Result) Artifact(prep *Prepared, cfg config.Config) *persist.Artifact {
	a := persist.NewArtifact(r.Pipeline, prep.Dataset, cfg.Features, cfg.Extraction.Options())
	a.RunID = r.RunID
	return a
}

// Validate re-extracts the artifact's features and cross-validates fresh
// copies of its pipeline over stratified shuffle-split folds.
func Validate(a *persist.Artifact, folds int, testSize float64, seed int64) (evaluate.Confusion, error) {
	m, err := features.Format(a.Dataset, a.Features, a.Extraction)
	if err != nil {
		return evaluate.Confusion{}, fmt.Errorf("experiment: extract: %w", err)
	}
	labels, X := features.TargetSplit(m)
	slog.Info("cross-validating", "pipeline", a.Pipeline.String(), "rows", len(X), "folds", folds)

	factory := func() (model.Classifier, error) { return a.Pipeline.Clone() }
	return evaluate.CrossValidate(factory, X, labels, folds, testSize, seed)
}

// Run converts a report into a run-history row.
func Run(id uuid.UUID, program string, list features.List, rows int, rep report.Report) *store.TrainingRun {
	c := rep.Confusion
	run := &store.TrainingRun{
		RunID:          id.String(),
		CreatedAt:      time.Now().UTC(),
		Program:        program,
		Pipeline:       rep.Pipeline,
		Records:        rows,
		TruePositives:  c.TP,
		FalsePositives: c.FP,
		FalseNegatives: c.FN,
		TrueNegatives:  c.TN,
		Accuracy:       rep.Scores.Accuracy,
		Precision:      rep.Scores.Precision,
		Recall:         rep.Scores.Recall,
		F1:             rep.Scores.F1,
		F2:             rep.Scores.F2,
		TrainMillis:    rep.TrainTime.Milliseconds(),
		PredictMillis:  rep.PredictTime.Milliseconds(),
	}
	if rep.ScoreErr != nil {
		run.ScoreErr = rep.ScoreErr.Error()
	}
	run.SetFeatures(list)
	return run
}
