package evaluate

import (
	"errors"
	"fmt"

	"github.com/sjwhitworth/golearn/evaluation"
)

// Class names used in the golearn confusion matrix.
const (
	NegativeClass = "0"
	PositiveClass = "1"
)

var ErrUndefinedScore = errors.New("evaluate: score undefined")

// Confusion is the tally of a binary classification run.
type Confusion struct {
	TP, FP, FN, TN int

	// Aborted is set when tallying stopped at a label other than 0 or 1.
	// The counts gathered before that point are kept.
	Aborted   bool
	Offending float64
}

// Tally compares aligned predictions and truths pairwise. Extra elements of
// the longer slice are ignored.
func Tally(pred, truth []float64) Confusion {
	var c Confusion
	for i := 0; i < min(len(pred), len(truth)); i++ {
		p, t := pred[i], truth[i]
		switch {
		case p == 0 && t == 0:
			c.TN++
		case p == 0 && t == 1:
			c.FN++
		case p == 1 && t == 0:
			c.FP++
		case p == 1 && t == 1:
			c.TP++
		default:
			c.Aborted = true
			c.Offending = p
			if p == 0 || p == 1 {
				c.Offending = t
			}
			return c
		}
	}
	return c
}

func (c Confusion) Total() int { return c.TP + c.FP + c.FN + c.TN }

// Add accumulates o into c.
func (c *Confusion) Add(o Confusion) {
	c.TP += o.TP
	c.FP += o.FP
	c.FN += o.FN
	c.TN += o.TN
	if o.Aborted && !c.Aborted {
		c.Aborted = true
		c.Offending = o.Offending
	}
}

// Scores are the derived metrics of a Confusion.
type Scores struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	F2        float64
}

// Scores derives the metrics. A zero denominator anywhere yields
// ErrUndefinedScore naming the metric.
func (c Confusion) Scores() (Scores, error) {
	var s Scores
	var err error
	if s.Accuracy, err = ratio("accuracy", c.TP+c.TN, c.Total()); err != nil {
		return Scores{}, err
	}
	if s.Precision, err = ratio("precision", c.TP, c.TP+c.FP); err != nil {
		return Scores{}, err
	}
	if s.Recall, err = ratio("recall", c.TP, c.TP+c.FN); err != nil {
		return Scores{}, err
	}
	if s.F1, err = ratio("f1", 2*c.TP, 2*c.TP+c.FP+c.FN); err != nil {
		return Scores{}, err
	}
	den := 4*s.Precision + s.Recall
	if den == 0 {
		return Scores{}, fmt.Errorf("%w: f2 has a zero denominator", ErrUndefinedScore)
	}
	s.F2 = 5 * s.Precision * s.Recall / den
	return s, nil
}

func ratio(metric string, num, den int) (float64, error) {
	if den == 0 {
		return 0, fmt.Errorf("%w: %s has a zero denominator", ErrUndefinedScore, metric)
	}
	return float64(num) / float64(den), nil
}

// Matrix converts c to a golearn confusion matrix keyed by actual then
// predicted class.
func (c Confusion) Matrix() evaluation.ConfusionMatrix {
	return evaluation.ConfusionMatrix{
		NegativeClass: {NegativeClass: c.TN, PositiveClass: c.FP},
		PositiveClass: {NegativeClass: c.FN, PositiveClass: c.TP},
	}
}

// Summary renders golearn's per-class summary of c.
func (c Confusion) Summary() string {
	return evaluation.GetSummary(c.Matrix())
}
