package optimize

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/config"
	"github.com/riftlab/build-optimizer/internal/models"
)

// DiffEvo searches the build space with differential evolution over
// continuous genomes. Each genome coordinate lives in [0, num_items+1] and
// decodes to one item slot: values below 1 mean an empty slot, anything else
// indexes into the available-item list.
type DiffEvo struct {
	meta   *models.ChampionMetadata
	scorer Scorer
	params config.DiffEvoParams
	rng    *rand.Rand
	logger *zap.SugaredLogger

	itemIndex  map[int]int
	upper      float64
	population []individual
	history    []float64
}

func NewDiffEvo(meta *models.ChampionMetadata, scorer Scorer, params config.DiffEvoParams, rng *rand.Rand, logger *zap.SugaredLogger) (*DiffEvo, error) {
	if err := validateMetadata(meta); err != nil {
		return nil, err
	}
	if params.PopulationSize < 4 {
		return nil, fmt.Errorf("differential evolution needs a population of at least 4, got %d", params.PopulationSize)
	}

	itemIndex := make(map[int]int, len(meta.AvailableItems))
	for i, item := range meta.AvailableItems {
		itemIndex[item] = i
	}

	return &DiffEvo{
		meta:      meta,
		scorer:    scorer,
		params:    params,
		rng:       rng,
		logger:    logger,
		itemIndex: itemIndex,
		upper:     float64(len(meta.AvailableItems)) + 1,
	}, nil
}

// Run evolves for the configured number of generations and returns the best
// individual of the final population.
func (d *DiffEvo) Run(winningBuilds [][]int) (*models.BuildResult, error) {
	d.initialize(winningBuilds)

	for gen := 0; gen < d.params.Generations; gen++ {
		d.evolve()
		d.history = append(d.history, d.population[0].fitness)
		if (gen+1)%40 == 0 {
			d.logger.Infow("DE progress",
				"championID", d.meta.ChampionID,
				"generation", gen+1,
				"bestFitness", d.population[0].fitness,
				"bestWinProbability", d.population[0].winProb,
			)
		}
	}

	best := d.population[0]
	return &models.BuildResult{
		ChampionID:               d.meta.ChampionID,
		OptimalBuild:             append([]int(nil), best.build...),
		Fitness:                  best.fitness,
		WinProbability:           best.winProb,
		Generations:              d.params.Generations,
		PopulationSize:           d.params.PopulationSize,
		ContinuousRepresentation: append([]float64(nil), best.genome...),
		Algorithm:                "Differential Evolution",
	}, nil
}

// History returns the best fitness after each generation.
func (d *DiffEvo) History() []float64 { return d.history }

// Decode maps a continuous genome to a discrete build. It is a pure function
// of the genome and the item list.
func (d *DiffEvo) Decode(genome []float64) []int {
	build := make([]int, len(genome))
	for i, v := range genome {
		if v < 1 {
			continue
		}
		build[i] = d.meta.AvailableItems[int(v-1)%len(d.meta.AvailableItems)]
	}
	return build
}

// Encode maps a historical build back into genome space, with jitter so
// re-encoded builds do not collapse onto identical vectors.
func (d *DiffEvo) Encode(build []int) []float64 {
	genome := make([]float64, d.meta.NumSlots)
	for i := range genome {
		var item int
		if i < len(build) {
			item = build[i]
		}
		switch idx, known := d.itemIndex[item]; {
		case item == 0:
			genome[i] = d.rng.Float64()
		case known:
			genome[i] = float64(idx) + 1 + d.rng.Float64()*0.5
		default:
			genome[i] = 1 + d.rng.Float64()*(d.upper-1)
		}
	}
	return genome
}

func (d *DiffEvo) newFromGenome(genome []float64) individual {
	build := d.Decode(genome)
	p := d.scorer.ScoreBuild(build, nil)
	return individual{build: build, genome: genome, winProb: p, fitness: Fitness(build, p)}
}

func (d *DiffEvo) initialize(winningBuilds [][]int) {
	genomes := make([][]float64, d.params.PopulationSize)
	for i := range genomes {
		g := make([]float64, d.meta.NumSlots)
		for j := range g {
			g[j] = d.rng.Float64() * d.upper
		}
		genomes[i] = g
	}

	seeds := len(winningBuilds)
	if seeds > maxSeedBuilds {
		seeds = maxSeedBuilds
	}
	if seeds > len(genomes) {
		seeds = len(genomes)
	}
	for i := 0; i < seeds; i++ {
		genomes[i] = d.Encode(winningBuilds[i])
	}

	d.population = make([]individual, len(genomes))
	for i, g := range genomes {
		d.population[i] = d.newFromGenome(g)
	}
	sortByFitness(d.population)
}

func (d *DiffEvo) evolve() {
	trials := make([]individual, len(d.population))
	for i := range d.population {
		r0, r1, r2 := d.threeDistinct(i)
		trials[i] = d.newFromGenome(d.trialGenome(i, r0, r1, r2))
	}

	pool := append(d.population, trials...)
	sortByFitness(pool)
	d.population = pool[:d.params.PopulationSize]
}

// trialGenome builds the donor vector x[r0] + F*(x[r1]-x[r2]), clips it, then
// binomially crosses it with x[i]. One coordinate is always taken from the
// donor so the trial never equals the target.
func (d *DiffEvo) trialGenome(i, r0, r1, r2 int) []float64 {
	x := d.population
	forced := d.rng.IntN(d.meta.NumSlots)

	trial := append([]float64(nil), x[i].genome...)
	for j := range trial {
		if j != forced && d.rng.Float64() >= d.params.CrossoverProb {
			continue
		}
		v := x[r0].genome[j] + d.params.MutationFactor*(x[r1].genome[j]-x[r2].genome[j])
		if v < 0 {
			v = 0
		} else if v > d.upper {
			v = d.upper
		}
		trial[j] = v
	}
	return trial
}

func (d *DiffEvo) threeDistinct(exclude int) (int, int, int) {
	picked := make([]int, 0, 3)
	for len(picked) < 3 {
		c := d.rng.IntN(len(d.population))
		if c == exclude {
			continue
		}
		dup := false
		for _, p := range picked {
			if p == c {
				dup = true
				break
			}
		}
		if !dup {
			picked = append(picked, c)
		}
	}
	return picked[0], picked[1], picked[2]
}
