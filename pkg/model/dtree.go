package model

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"golang.org/x/exp/slices"
)

// DecisionTree is a CART-style classifier using gini impurity.
type DecisionTree struct {
	MaxDepth        int // 0 => no limit
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int // 0 => consider every feature at each split
	RandomState     int64

	Classes   []float64
	NFeatures int
	Root      *TreeNode
}

// TreeNode is one node of a fitted tree. Rows with x[Feature] <= Threshold
// go left.
type TreeNode struct {
	Leaf      bool
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	Counts    []int // class counts of training rows reaching this node
}

// TreeOption configures a DecisionTree.
type TreeOption func(*DecisionTree)

func WithMaxDepth(d int) TreeOption { return func(t *DecisionTree) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) TreeOption {
	return func(t *DecisionTree) { t.MinSamplesSplit = n }
}
func WithMinSamplesLeaf(n int) TreeOption {
	return func(t *DecisionTree) { t.MinSamplesLeaf = n }
}
func WithMaxFeatures(k int) TreeOption { return func(t *DecisionTree) { t.MaxFeatures = k } }
func WithRandomState(seed int64) TreeOption {
	return func(t *DecisionTree) { t.RandomState = seed }
}

// NewDecisionTree returns a fully grown tree unless options limit it.
func NewDecisionTree(opts ...TreeOption) *DecisionTree {
	t := &DecisionTree{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Fit grows the tree on X and y.
func (t *DecisionTree) Fit(X [][]float64, y []float64) error {
	n, d, err := shapeXY(X, y)
	if err != nil {
		return err
	}
	t.Classes = append([]float64(nil), y...)
	slices.Sort(t.Classes)
	t.Classes = slices.Compact(t.Classes)
	t.NFeatures = d

	labels := make([]int, n)
	for i, v := range y {
		labels[i], _ = slices.BinarySearch(t.Classes, v)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rnd := rand.New(rand.NewSource(t.RandomState))
	t.Root = t.grow(X, labels, idx, 0, d, rnd)
	return nil
}

// Predict returns the majority class of the leaf each row falls into.
func (t *DecisionTree) Predict(X [][]float64) ([]float64, error) {
	if t.Root == nil {
		return nil, ErrNotFitted
	}
	_, d, err := shape(X)
	if err != nil {
		return nil, err
	}
	if d != t.NFeatures {
		return nil, fmt.Errorf("%w: got %d, fitted on %d", ErrShapeMismatch, d, t.NFeatures)
	}
	out := make([]float64, len(X))
	for i, x := range X {
		out[i] = t.Classes[argmax(t.leaf(x).Counts)]
	}
	return out, nil
}

func (t *DecisionTree) String() string {
	depth := "None"
	if t.MaxDepth > 0 {
		depth = fmt.Sprint(t.MaxDepth)
	}
	return fmt.Sprintf("DecisionTreeClassifier(max_depth=%s, min_samples_split=%d)", depth, t.MinSamplesSplit)
}

func (t *DecisionTree) leaf(x []float64) *TreeNode {
	node := t.Root
	for !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node
}

type split struct {
	gain      float64
	feature   int
	threshold float64
	left      []int
	right     []int
}

func (t *DecisionTree) grow(X [][]float64, y, idx []int, depth, d int, rnd *rand.Rand) *TreeNode {
	counts := make([]int, len(t.Classes))
	for _, i := range idx {
		counts[y[i]]++
	}
	node := &TreeNode{Leaf: true, Counts: counts}
	if isPure(counts) || len(idx) < t.MinSamplesSplit || (t.MaxDepth > 0 && depth >= t.MaxDepth) {
		return node
	}

	feats := rnd.Perm(d)
	if t.MaxFeatures > 0 && t.MaxFeatures < d {
		feats = feats[:t.MaxFeatures]
	}
	sort.Ints(feats)

	parent := gini(counts)
	results := make([]split, len(feats))
	var wg sync.WaitGroup
	for k, f := range feats {
		wg.Add(1)
		go func(k, f int) {
			defer wg.Done()
			results[k] = t.bestSplit(X, y, idx, f, parent)
		}(k, f)
	}
	wg.Wait()

	best := split{feature: -1}
	for _, r := range results {
		if r.feature >= 0 && r.gain > best.gain {
			best = r
		}
	}
	if best.feature < 0 {
		return node
	}

	node.Leaf = false
	node.Feature = best.feature
	node.Threshold = best.threshold
	node.Left = t.grow(X, y, best.left, depth+1, d, rnd)
	node.Right = t.grow(X, y, best.right, depth+1, d, rnd)
	return node
}

// bestSplit scans midpoints between consecutive distinct values of feature f.
func (t *DecisionTree) bestSplit(X [][]float64, y, idx []int, f int, parent float64) split {
	best := split{feature: -1}
	sorted := append([]int(nil), idx...)
	sort.SliceStable(sorted, func(a, b int) bool { return X[sorted[a]][f] < X[sorted[b]][f] })

	nc := len(t.Classes)
	left := make([]int, nc)
	right := make([]int, nc)
	for _, i := range sorted {
		right[y[i]]++
	}
	total := float64(len(sorted))
	for s := 1; s < len(sorted); s++ {
		moved := y[sorted[s-1]]
		left[moved]++
		right[moved]--

		lo, hi := X[sorted[s-1]][f], X[sorted[s]][f]
		if lo == hi || s < t.MinSamplesLeaf || len(sorted)-s < t.MinSamplesLeaf {
			continue
		}
		weighted := float64(s)/total*gini(left) + float64(len(sorted)-s)/total*gini(right)
		if gain := parent - weighted; gain > best.gain {
			best = split{
				gain:      gain,
				feature:   f,
				threshold: (lo + hi) / 2,
				left:      append([]int(nil), sorted[:s]...),
				right:     append([]int(nil), sorted[s:]...),
			}
		}
	}
	return best
}

func gini(counts []int) float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	if n == 0 {
		return 0
	}
	res := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		res -= p * p
	}
	return res
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

// argmax returns the first index holding the largest count.
func argmax(counts []int) int {
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return best
}
