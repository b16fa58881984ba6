package optimize

import (
	"fmt"
	"math"
	"sort"

	"github.com/riftlab/build-optimizer/internal/models"
)

// Compare weighs the two optimizer results against each other and the
// historical baseline win rate. It is pure: the same inputs always produce
// the same record.
func Compare(ga, de *models.BuildResult, baselineWinRate float64) (*models.ComparisonResult, error) {
	if ga.ChampionID != de.ChampionID {
		return nil, fmt.Errorf("results are for different champions: %d vs %d", ga.ChampionID, de.ChampionID)
	}

	winner := "Tie"
	switch {
	case ga.WinProbability > de.WinProbability:
		winner = "Genetic Algorithm"
	case de.WinProbability > ga.WinProbability:
		winner = "Differential Evolution"
	}

	common, ratio := buildOverlap(ga.OptimalBuild, de.OptimalBuild)

	return &models.ComparisonResult{
		ChampionID:            ga.ChampionID,
		BaselineWinRate:       baselineWinRate,
		GeneticAlgorithm:      ga,
		DifferentialEvolution: de,
		Comparison: models.Comparison{
			Winner:        winner,
			Advantage:     math.Abs(ga.WinProbability - de.WinProbability),
			GAImprovement: improvement(ga.WinProbability, baselineWinRate),
			DEImprovement: improvement(de.WinProbability, baselineWinRate),
			OverlapRatio:  ratio,
			CommonItems:   common,
		},
	}, nil
}

// improvement is the win-probability gain over the baseline, in percent.
func improvement(winProbability, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (winProbability - baseline) / baseline * 100
}

// buildOverlap intersects the nonzero item sets of two builds. The ratio is
// normalized by the larger set, and zero when both builds are empty.
func buildOverlap(a, b []int) ([]int, float64) {
	setA := itemSet(a)
	setB := itemSet(b)

	common := make([]int, 0, len(setA))
	for item := range setA {
		if setB[item] {
			common = append(common, item)
		}
	}
	sort.Ints(common)

	larger := len(setA)
	if len(setB) > larger {
		larger = len(setB)
	}
	if larger == 0 {
		return common, 0
	}
	return common, float64(len(common)) / float64(larger)
}

func itemSet(build []int) map[int]bool {
	set := make(map[int]bool, len(build))
	for _, item := range build {
		if item != 0 {
			set[item] = true
		}
	}
	return set
}
