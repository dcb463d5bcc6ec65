package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"golang.org/x/exp/slices"
)

// RandomForest is a bagged ensemble of decision trees.
type RandomForest struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int // 0 => sqrt(n_features)
	Bootstrap       bool
	RandomState     int64

	Classes []float64
	Trees   []*DecisionTree
}

// ForestOption configures a RandomForest.
type ForestOption func(*RandomForest)

func WithNEstimators(n int) ForestOption { return func(rf *RandomForest) { rf.NEstimators = n } }
func WithBootstrap(b bool) ForestOption  { return func(rf *RandomForest) { rf.Bootstrap = b } }
func WithForestMaxDepth(d int) ForestOption {
	return func(rf *RandomForest) { rf.MaxDepth = d }
}
func WithForestMinSamplesSplit(n int) ForestOption {
	return func(rf *RandomForest) { rf.MinSamplesSplit = n }
}
func WithForestRandomState(seed int64) ForestOption {
	return func(rf *RandomForest) { rf.RandomState = seed }
}

// NewRandomForest initializes the forest with sensible defaults.
func NewRandomForest(opts ...ForestOption) *RandomForest {
	rf := &RandomForest{
		NEstimators:     100,
		MinSamplesSplit: 2,
		Bootstrap:       true,
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit grows every tree concurrently, each on its own bootstrap sample.
func (rf *RandomForest) Fit(X [][]float64, y []float64) error {
	n, d, err := shapeXY(X, y)
	if err != nil {
		return err
	}
	if rf.NEstimators < 1 {
		return errors.New("randomforest: n_estimators must be positive")
	}
	maxFeatures := rf.MaxFeatures
	if maxFeatures == 0 {
		maxFeatures = max(1, int(math.Sqrt(float64(d))))
	}

	rf.Trees = make([]*DecisionTree, rf.NEstimators)
	var wg sync.WaitGroup
	errCh := make(chan error, rf.NEstimators)

	for i := 0; i < rf.NEstimators; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			// each tree owns its source so results do not depend on scheduling
			seed := rf.RandomState + int64(idx)
			treeRand := rand.New(rand.NewSource(seed))
			sx, sy := X, y
			if rf.Bootstrap {
				sx = make([][]float64, n)
				sy = make([]float64, n)
				for j := 0; j < n; j++ {
					k := treeRand.Intn(n)
					sx[j], sy[j] = X[k], y[k]
				}
			}

			tree := NewDecisionTree(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMaxFeatures(maxFeatures),
				WithRandomState(seed),
			)
			if err := tree.Fit(sx, sy); err != nil {
				errCh <- err
				return
			}
			rf.Trees[idx] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}
	rf.Classes = unionClasses(rf.Trees)
	return nil
}

// Predict returns the majority vote of all trees; ties go to the smaller
// class label.
func (rf *RandomForest) Predict(X [][]float64) ([]float64, error) {
	if len(rf.Trees) == 0 {
		return nil, ErrNotFitted
	}
	votes := make([][]float64, len(rf.Trees))
	for t, tree := range rf.Trees {
		preds, err := tree.Predict(X)
		if err != nil {
			return nil, fmt.Errorf("randomforest: tree %d: %w", t, err)
		}
		votes[t] = preds
	}

	out := make([]float64, len(X))
	for i := range X {
		counts := make([]int, len(rf.Classes))
		for t := range votes {
			for c, class := range rf.Classes {
				if votes[t][i] == class {
					counts[c]++
					break
				}
			}
		}
		out[i] = rf.Classes[argmax(counts)]
	}
	return out, nil
}

func (rf *RandomForest) String() string {
	return fmt.Sprintf("RandomForestClassifier(n_estimators=%d, min_samples_split=%d)", rf.NEstimators, rf.MinSamplesSplit)
}

func unionClasses(trees []*DecisionTree) []float64 {
	var all []float64
	for _, t := range trees {
		for _, c := range t.Classes {
			if !slices.Contains(all, c) {
				all = append(all, c)
			}
		}
	}
	slices.Sort(all)
	return all
}
