// Package optimize implements the two build-search algorithms and the
// comparator that weighs their results against each other.
package optimize

import (
	"fmt"

	"github.com/riftlab/build-optimizer/internal/models"
)

// Scorer predicts the win probability of an item build. The trained
// predictor.Model satisfies it; tests substitute deterministic fakes.
type Scorer interface {
	ScoreBuild(build []int, overrides map[string]float64) float64
}

const (
	diversityWeight  = 0.1
	completionWeight = 0.05
)

// Fitness combines win probability with small bonuses for distinct and
// filled slots, so varied complete builds beat repetitive or sparse ones
// that score the same probability.
func Fitness(build []int, winProbability float64) float64 {
	if len(build) == 0 {
		return winProbability
	}

	distinct := make(map[int]bool, len(build))
	filled := 0
	for _, item := range build {
		if item != 0 {
			distinct[item] = true
			filled++
		}
	}

	slots := float64(len(build))
	diversity := float64(len(distinct)) / slots * diversityWeight
	completion := float64(filled) / slots * completionWeight
	return winProbability + diversity + completion
}

// individual is one candidate solution. Fitness is computed at construction
// and never mutated; mutated builds become new individuals.
type individual struct {
	build   []int
	genome  []float64 // differential evolution only
	winProb float64
	fitness float64
}

func newIndividual(build []int, scorer Scorer) individual {
	p := scorer.ScoreBuild(build, nil)
	return individual{build: build, winProb: p, fitness: Fitness(build, p)}
}

func validateMetadata(meta *models.ChampionMetadata) error {
	if meta.NumSlots == 0 || len(meta.ItemSlots) == 0 {
		return fmt.Errorf("champion %d metadata has no item slots", meta.ChampionID)
	}
	if len(meta.AvailableItems) == 0 {
		return fmt.Errorf("champion %d metadata has no available items", meta.ChampionID)
	}
	return nil
}
