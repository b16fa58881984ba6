package optimize

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/config"
	"github.com/riftlab/build-optimizer/internal/models"
)

const (
	tournamentSize = 5
	maxSeedBuilds  = 10
	slotFillChance = 0.8
)

// Genetic evolves a population of discrete item builds through tournament
// selection, single-point crossover, slot-wise mutation and elitism.
type Genetic struct {
	meta   *models.ChampionMetadata
	scorer Scorer
	params config.GeneticParams
	rng    *rand.Rand
	logger *zap.SugaredLogger

	population []individual
	best       individual
	history    []float64
}

func NewGenetic(meta *models.ChampionMetadata, scorer Scorer, params config.GeneticParams, rng *rand.Rand, logger *zap.SugaredLogger) (*Genetic, error) {
	if err := validateMetadata(meta); err != nil {
		return nil, err
	}
	if params.PopulationSize < 2 {
		return nil, fmt.Errorf("genetic algorithm needs a population of at least 2, got %d", params.PopulationSize)
	}
	if params.EliteSize >= params.PopulationSize {
		return nil, fmt.Errorf("elite size %d must be smaller than the population of %d", params.EliteSize, params.PopulationSize)
	}
	return &Genetic{
		meta:   meta,
		scorer: scorer,
		params: params,
		rng:    rng,
		logger: logger,
	}, nil
}

// Run initializes from the winning historical builds and evolves for the
// configured number of generations.
func (g *Genetic) Run(winningBuilds [][]int) (*models.BuildResult, error) {
	g.initialize(winningBuilds)

	for gen := 0; gen < g.params.Generations; gen++ {
		g.evolve()
		g.history = append(g.history, g.best.fitness)
		if (gen+1)%20 == 0 {
			g.logger.Infow("GA progress",
				"championID", g.meta.ChampionID,
				"generation", gen+1,
				"bestFitness", g.best.fitness,
				"bestWinProbability", g.best.winProb,
			)
		}
	}

	return &models.BuildResult{
		ChampionID:     g.meta.ChampionID,
		OptimalBuild:   append([]int(nil), g.best.build...),
		Fitness:        g.best.fitness,
		WinProbability: g.best.winProb,
		Generations:    g.params.Generations,
		PopulationSize: g.params.PopulationSize,
	}, nil
}

// History returns the best fitness after each generation.
func (g *Genetic) History() []float64 { return g.history }

func (g *Genetic) initialize(winningBuilds [][]int) {
	g.population = make([]individual, 0, g.params.PopulationSize)

	seeds := winningBuilds
	if len(seeds) > maxSeedBuilds {
		seeds = seeds[:maxSeedBuilds]
	}
	for _, b := range seeds {
		if len(g.population) == g.params.PopulationSize {
			break
		}
		g.population = append(g.population, newIndividual(append([]int(nil), b...), g.scorer))
	}
	for len(g.population) < g.params.PopulationSize {
		g.population = append(g.population, newIndividual(g.randomBuild(), g.scorer))
	}

	sortByFitness(g.population)
	g.best = g.population[0]
}

func (g *Genetic) randomBuild() []int {
	build := make([]int, g.meta.NumSlots)
	for i := range build {
		if g.rng.Float64() < slotFillChance {
			build[i] = g.randomItem()
		}
	}
	return build
}

func (g *Genetic) randomItem() int {
	return g.meta.AvailableItems[g.rng.IntN(len(g.meta.AvailableItems))]
}

func (g *Genetic) evolve() {
	selected := g.selectParents()

	next := make([]individual, 0, g.params.PopulationSize)
	next = append(next, g.population[:g.params.EliteSize]...)

	for len(next) < g.params.PopulationSize {
		p1, p2 := g.twoDistinct(selected)
		var c1, c2 []int
		if g.rng.Float64() < g.params.CrossoverRate {
			c1, c2 = g.crossover(p1.build, p2.build)
		} else {
			c1 = append([]int(nil), p1.build...)
			c2 = append([]int(nil), p2.build...)
		}
		next = append(next, individual{build: c1})
		if len(next) < g.params.PopulationSize {
			next = append(next, individual{build: c2})
		}
	}

	for i := g.params.EliteSize; i < len(next); i++ {
		build := next[i].build
		if g.rng.Float64() < g.params.MutationRate {
			g.mutate(build)
		}
		next[i] = newIndividual(build, g.scorer)
	}

	sortByFitness(next)
	g.population = next
	if g.population[0].fitness > g.best.fitness {
		g.best = g.population[0]
	}
}

// selectParents runs population_size independent tournaments. Each tournament
// samples its contestants without replacement; contestants may recur across
// tournaments.
func (g *Genetic) selectParents() []individual {
	k := tournamentSize
	if k > len(g.population) {
		k = len(g.population)
	}

	selected := make([]individual, g.params.PopulationSize)
	for t := range selected {
		winner := -1
		for _, idx := range g.rng.Perm(len(g.population))[:k] {
			if winner == -1 || g.population[idx].fitness > g.population[winner].fitness {
				winner = idx
			}
		}
		selected[t] = g.population[winner]
	}
	return selected
}

func (g *Genetic) twoDistinct(pool []individual) (individual, individual) {
	i := g.rng.IntN(len(pool))
	j := g.rng.IntN(len(pool) - 1)
	if j >= i {
		j++
	}
	return pool[i], pool[j]
}

// crossover cuts both parents at the same point in [1, num_slots-1] and swaps
// the suffixes.
func (g *Genetic) crossover(p1, p2 []int) ([]int, []int) {
	if len(p1) < 2 {
		return append([]int(nil), p1...), append([]int(nil), p2...)
	}
	cut := 1 + g.rng.IntN(len(p1)-1)
	c1 := make([]int, len(p1))
	c2 := make([]int, len(p2))
	copy(c1, p1[:cut])
	copy(c1[cut:], p2[cut:])
	copy(c2, p2[:cut])
	copy(c2[cut:], p1[cut:])
	return c1, c2
}

func (g *Genetic) mutate(build []int) {
	for i := range build {
		if g.rng.Float64() >= g.params.MutationRate {
			continue
		}
		if g.rng.Float64() < 0.5 {
			build[i] = g.randomItem()
		} else {
			build[i] = 0
		}
	}
}

func sortByFitness(pop []individual) {
	sort.SliceStable(pop, func(i, j int) bool {
		return pop[i].fitness > pop[j].fitness
	})
}
