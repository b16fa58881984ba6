package predictor

import (
	"math"
	"math/rand/v2"
	"sort"
)

// treeNode is one node of a CART classification tree. Leaves carry the
// class-1 fraction of the training samples that reached them.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	leaf      bool
	prob      float64
}

type treeParams struct {
	maxDepth    int
	minSamples  int
	featureSubs int // features considered per split (mtry)
}

// growTree fits a tree on the sample indices idx over x/y, sampling
// featureSubs candidate features per split.
func growTree(x [][]float64, y []int, idx []int, params treeParams, depth int, rng *rand.Rand) *treeNode {
	ones := 0
	for _, i := range idx {
		ones += y[i]
	}
	prob := float64(ones) / float64(len(idx))

	if depth >= params.maxDepth || len(idx) < params.minSamples || ones == 0 || ones == len(idx) {
		return &treeNode{leaf: true, prob: prob}
	}

	feature, threshold, ok := bestSplit(x, y, idx, params.featureSubs, rng)
	if !ok {
		return &treeNode{leaf: true, prob: prob}
	}

	var left, right []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &treeNode{leaf: true, prob: prob}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      growTree(x, y, left, params, depth+1, rng),
		right:     growTree(x, y, right, params, depth+1, rng),
	}
}

// bestSplit searches a random feature subset for the split with the lowest
// weighted gini impurity.
func bestSplit(x [][]float64, y []int, idx []int, mtry int, rng *rand.Rand) (int, float64, bool) {
	numFeatures := len(x[0])
	features := rng.Perm(numFeatures)
	if mtry < numFeatures {
		features = features[:mtry]
	}

	bestGini := math.Inf(1)
	bestFeature, bestThreshold := -1, 0.0

	values := make([]float64, 0, len(idx))
	for _, f := range features {
		values = values[:0]
		for _, i := range idx {
			values = append(values, x[i][f])
		}
		sort.Float64s(values)

		for v := 1; v < len(values); v++ {
			if values[v] == values[v-1] {
				continue
			}
			threshold := (values[v] + values[v-1]) / 2

			leftN, leftOnes, rightN, rightOnes := 0, 0, 0, 0
			for _, i := range idx {
				if x[i][f] <= threshold {
					leftN++
					leftOnes += y[i]
				} else {
					rightN++
					rightOnes += y[i]
				}
			}
			g := weightedGini(leftN, leftOnes, rightN, rightOnes)
			if g < bestGini {
				bestGini = g
				bestFeature = f
				bestThreshold = threshold
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func weightedGini(leftN, leftOnes, rightN, rightOnes int) float64 {
	total := float64(leftN + rightN)
	return float64(leftN)/total*gini(leftN, leftOnes) + float64(rightN)/total*gini(rightN, rightOnes)
}

func gini(n, ones int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(ones) / float64(n)
	return 2 * p * (1 - p)
}

func (t *treeNode) predict(x []float64) float64 {
	node := t
	for !node.leaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.prob
}
