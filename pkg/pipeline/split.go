package pipeline

import (
	"fmt"
	"math"
	"math/rand"

	"golang.org/x/exp/slices"
)

// TrainTestSplit shuffles rows with a seeded permutation and holds out
// ceil(testSize*n) of them. The same seed always gives the same split.
func TrainTestSplit(X [][]float64, y []float64, testSize float64, seed int64) (XTrain, XTest [][]float64, yTrain, yTest []float64, err error) {
	n := len(X)
	if n != len(y) {
		return nil, nil, nil, nil, fmt.Errorf("split: %d rows but %d labels", n, len(y))
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, fmt.Errorf("split: test size %v must be in (0, 1)", testSize)
	}
	nTest := int(math.Ceil(testSize * float64(n)))
	if n < 2 || nTest >= n {
		return nil, nil, nil, nil, fmt.Errorf("split: %d rows cannot be split with test size %v", n, testSize)
	}

	indices := rand.New(rand.NewSource(seed)).Perm(n)
	for i, idx := range indices {
		if i < nTest {
			XTest = append(XTest, X[idx])
			yTest = append(yTest, y[idx])
		} else {
			XTrain = append(XTrain, X[idx])
			yTrain = append(yTrain, y[idx])
		}
	}
	return XTrain, XTest, yTrain, yTest, nil
}

// Fold holds row indices of one train/test partition.
type Fold struct {
	Train []int
	Test  []int
}

// StratifiedShuffleSplit draws folds independent random partitions, each
// holding out about testSize of every class so class balance is kept.
func StratifiedShuffleSplit(y []float64, folds int, testSize float64, seed int64) ([]Fold, error) {
	if folds < 1 {
		return nil, fmt.Errorf("split: folds %d must be positive", folds)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, fmt.Errorf("split: test size %v must be in (0, 1)", testSize)
	}

	classes := append([]float64(nil), y...)
	slices.Sort(classes)
	classes = slices.Compact(classes)
	byClass := make([][]int, len(classes))
	for i, v := range y {
		c, _ := slices.BinarySearch(classes, v)
		byClass[c] = append(byClass[c], i)
	}

	quota := make([]int, len(classes))
	total := 0
	for c, members := range byClass {
		quota[c] = int(math.Round(testSize * float64(len(members))))
		if len(members) > 1 {
			quota[c] = min(max(quota[c], 1), len(members)-1)
		} else {
			quota[c] = 0
		}
		total += quota[c]
	}
	if total == 0 {
		return nil, fmt.Errorf("split: %d rows are too few to stratify", len(y))
	}

	rnd := rand.New(rand.NewSource(seed))
	out := make([]Fold, folds)
	for f := range out {
		var fold Fold
		for c, members := range byClass {
			perm := rnd.Perm(len(members))
			for k, p := range perm {
				if k < quota[c] {
					fold.Test = append(fold.Test, members[p])
				} else {
					fold.Train = append(fold.Train, members[p])
				}
			}
		}
		slices.Sort(fold.Train)
		slices.Sort(fold.Test)
		out[f] = fold
	}
	return out, nil
}

// Rows selects the given rows of X and y.
func Rows(X [][]float64, y []float64, idx []int) ([][]float64, []float64) {
	xs := make([][]float64, len(idx))
	ys := make([]float64, len(idx))
	for i, k := range idx {
		xs[i], ys[i] = X[k], y[k]
	}
	return xs, ys
}
