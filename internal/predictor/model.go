// Package predictor trains the win-probability surrogate model that scores
// candidate item builds during optimization.
package predictor

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/dataset"
)

const testFraction = 0.3

// Model is a trained win-probability classifier bound to the feature-column
// order of the dataset it was trained on. It is immutable after Train.
type Model struct {
	forest   *forest
	columns  []string
	colIndex map[string]int
	means    []float64
	numSlots int
	accuracy float64
}

// Train fits the surrogate model on the champion dataset. The feature set is
// whatever the dataset resolved at load time and stays fixed for every
// ScoreBuild call. Held-out accuracy is logged for diagnostics only.
func Train(ds *dataset.Dataset, numTrees int, rng *rand.Rand, logger *zap.SugaredLogger) (*Model, error) {
	x := ds.Features()
	y := ds.Labels()
	if len(x) < 10 {
		return nil, fmt.Errorf("need at least 10 games to train, have %d", len(x))
	}
	if numTrees <= 0 {
		numTrees = 100
	}

	// Shuffled 70/30 train/test split.
	perm := rng.Perm(len(x))
	split := len(x) - int(float64(len(x))*testFraction)
	if split < 1 {
		split = 1
	}

	xTrain := make([][]float64, 0, split)
	yTrain := make([]int, 0, split)
	for _, i := range perm[:split] {
		xTrain = append(xTrain, x[i])
		yTrain = append(yTrain, y[i])
	}

	f := trainForest(xTrain, yTrain, numTrees, rng)

	correct := 0
	for _, i := range perm[split:] {
		pred := 0
		if f.prob(x[i]) >= 0.5 {
			pred = 1
		}
		if pred == y[i] {
			correct++
		}
	}
	accuracy := 0.0
	if held := len(x) - split; held > 0 {
		accuracy = float64(correct) / float64(held)
	}

	columns := ds.FeatureColumns()
	colIndex := make(map[string]int, len(columns))
	for i, col := range columns {
		colIndex[col] = i
	}

	logger.Infow("Win-probability model trained",
		"trees", numTrees,
		"features", len(columns),
		"trainGames", split,
		"accuracy", accuracy,
	)

	return &Model{
		forest:   f,
		columns:  columns,
		colIndex: colIndex,
		means:    ds.Means(),
		numSlots: ds.NumSlots(),
		accuracy: accuracy,
	}, nil
}

// Accuracy is the held-out accuracy measured at train time.
func (m *Model) Accuracy() float64 { return m.accuracy }

// ScoreBuild predicts the win probability for an item build. Item-slot
// features come from the build positionally; every other feature defaults to
// its training-set mean unless overridden by column name.
func (m *Model) ScoreBuild(build []int, overrides map[string]float64) float64 {
	features := make([]float64, len(m.columns))
	copy(features, m.means)

	for i := 0; i < m.numSlots && i < len(build); i++ {
		features[i] = float64(build[i])
	}
	for col, v := range overrides {
		if idx, ok := m.colIndex[col]; ok && idx >= m.numSlots {
			features[idx] = v
		}
	}

	return m.forest.prob(features)
}
