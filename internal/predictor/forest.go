package predictor

import (
	"math"
	"math/rand/v2"
)

// forest is a bagged ensemble of CART trees. Probability estimates are the
// mean of the leaf class-1 fractions across trees.
type forest struct {
	trees []*treeNode
}

func trainForest(x [][]float64, y []int, numTrees int, rng *rand.Rand) *forest {
	params := treeParams{
		maxDepth:    12,
		minSamples:  4,
		featureSubs: max(1, int(math.Sqrt(float64(len(x[0]))))),
	}

	f := &forest{trees: make([]*treeNode, 0, numTrees)}
	idx := make([]int, len(x))
	for t := 0; t < numTrees; t++ {
		// Bootstrap sample, same size as the training set.
		for i := range idx {
			idx[i] = rng.IntN(len(x))
		}
		f.trees = append(f.trees, growTree(x, y, idx, params, 0, rng))
	}
	return f
}

// prob returns the estimated class-1 probability for one feature vector.
func (f *forest) prob(x []float64) float64 {
	sum := 0.0
	for _, t := range f.trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.trees))
}
