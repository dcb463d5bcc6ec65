package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/evaluate"
)

var (
	warn = color.New(color.FgYellow).SprintFunc()
	fail = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Report is the console summary of one evaluated classifier.
type Report struct {
	Pipeline  string
	Confusion evaluate.Confusion
	Scores    evaluate.Scores
	ScoreErr  error

	// Timings are printed when non-zero.
	TrainTime   time.Duration
	PredictTime time.Duration

	// Detailed appends golearn's per-class summary.
	Detailed bool
}

// New scores c and wraps the result for printing.
func New(pipeline string, c evaluate.Confusion) Report {
	s, err := c.Scores()
	return Report{Pipeline: pipeline, Confusion: c, Scores: s, ScoreErr: err}
}

// Write prints the timings, any tally warning, and either the metrics or
// the divide-by-zero notice.
func (r Report) Write(w io.Writer) error {
	if r.TrainTime > 0 || r.PredictTime > 0 {
		fmt.Fprintf(w, "Time Taken For Training: %.3f\n", r.TrainTime.Seconds())
		fmt.Fprintf(w, "Time Taken For Predictions: %.3f\n\n", r.PredictTime.Seconds())
	}
	if r.Confusion.Aborted {
		fmt.Fprintln(w, warn("Warning: Found a predicted label not == 0 or 1."))
		fmt.Fprintln(w, warn("All predictions should take value 0 or 1."))
		fmt.Fprintln(w, warn("Evaluating performance for processed predictions:"))
	}

	if r.ScoreErr != nil {
		if !errors.Is(r.ScoreErr, evaluate.ErrUndefinedScore) {
			return r.ScoreErr
		}
		fmt.Fprintln(w, fail("Got a divide by zero when trying out:"), r.Pipeline)
		fmt.Fprintln(w, "Precision or recall may be undefined due to a lack of true positive predictions.")
		return nil
	}

	fmt.Fprintln(w, r.Pipeline)
	metrics := tablewriter.NewWriter(w)
	metrics.SetHeader([]string{"Metric", "Score"})
	metrics.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, row := range []struct {
		name  string
		value float64
	}{
		{"Accuracy", r.Scores.Accuracy},
		{"Precision", r.Scores.Precision},
		{"Recall", r.Scores.Recall},
		{"F1", r.Scores.F1},
		{"F2", r.Scores.F2},
	} {
		metrics.Append([]string{row.name, strconv.FormatFloat(row.value, 'f', 5, 64)})
	}
	metrics.Render()

	c := r.Confusion
	counts := tablewriter.NewWriter(w)
	counts.SetHeader([]string{"Outcome", "Count"})
	counts.SetAlignment(tablewriter.ALIGN_RIGHT)
	counts.AppendBulk([][]string{
		{"Total predictions", strconv.Itoa(c.Total())},
		{"True positives", strconv.Itoa(c.TP)},
		{"False positives", strconv.Itoa(c.FP)},
		{"False negatives", strconv.Itoa(c.FN)},
		{"True negatives", strconv.Itoa(c.TN)},
	})
	counts.Render()

	if r.Detailed {
		fmt.Fprintln(w, c.Summary())
	}
	fmt.Fprintln(w)
	return nil
}
