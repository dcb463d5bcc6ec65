package evaluate

import (
	"fmt"
	"log/slog"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/model"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/pipeline"
)

// Factory returns a fresh, unfitted classifier for one fold.
type Factory func() (model.Classifier, error)

// CrossValidate fits a new classifier on the train half of each stratified
// shuffle-split fold and tallies its predictions on the test half into one
// Confusion. Folds whose predictions contain labels other than 0 or 1 are
// counted up to the offending label and logged.
func CrossValidate(factory Factory, X [][]float64, y []float64, folds int, testSize float64, seed int64) (Confusion, error) {
	if len(X) != len(y) {
		return Confusion{}, fmt.Errorf("evaluate: %d rows but %d labels", len(X), len(y))
	}
	splits, err := pipeline.StratifiedShuffleSplit(y, folds, testSize, seed)
	if err != nil {
		return Confusion{}, err
	}

	var total Confusion
	for i, fold := range splits {
		clf, err := factory()
		if err != nil {
			return total, err
		}
		XTrain, yTrain := pipeline.Rows(X, y, fold.Train)
		XTest, yTest := pipeline.Rows(X, y, fold.Test)
		if err := clf.Fit(XTrain, yTrain); err != nil {
			return total, fmt.Errorf("evaluate: fold %d: %w", i, err)
		}
		pred, err := clf.Predict(XTest)
		if err != nil {
			return total, fmt.Errorf("evaluate: fold %d: %w", i, err)
		}
		c := Tally(pred, yTest)
		if c.Aborted {
			slog.Warn("predicted label not 0 or 1", "fold", i, "label", c.Offending)
		}
		total.Add(c)
	}
	return total, nil
}
