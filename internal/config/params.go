package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Params holds the search parameters for both optimizers. They live in a
// TOML file next to the data directory so runs can be tuned without
// rebuilding; LoadParams falls back to the reference defaults when the file
// is absent.
type Params struct {
	Genetic      GeneticParams `toml:"genetic"`
	Differential DiffEvoParams `toml:"differential_evolution"`

	// Seed for all random draws. 0 selects a random seed per run.
	Seed uint64 `toml:"seed"`

	// ModelTrees is the size of the win-probability forest.
	ModelTrees int `toml:"model_trees"`
}

type GeneticParams struct {
	PopulationSize int     `toml:"population_size"`
	Generations    int     `toml:"generations"`
	CrossoverRate  float64 `toml:"crossover_rate"`
	MutationRate   float64 `toml:"mutation_rate"`
	EliteSize      int     `toml:"elite_size"`
}

type DiffEvoParams struct {
	PopulationSize int     `toml:"population_size"`
	Generations    int     `toml:"generations"`
	CrossoverProb  float64 `toml:"crossover_prob"`
	MutationFactor float64 `toml:"mutation_factor"`
}

// DefaultParams returns the reference run configuration.
func DefaultParams() *Params {
	return &Params{
		Genetic: GeneticParams{
			PopulationSize: 50,
			Generations:    100,
			CrossoverRate:  0.8,
			MutationRate:   0.15,
			EliteSize:      5,
		},
		Differential: DiffEvoParams{
			PopulationSize: 50,
			Generations:    200,
			CrossoverProb:  0.9,
			MutationFactor: 0.5,
		},
		ModelTrees: 100,
	}
}

// LoadParams reads the optimizer parameter file, returning defaults when the
// file does not exist.
func LoadParams(path string) (*Params, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultParams(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read params file: %w", err)
	}

	params := DefaultParams()
	if err := toml.Unmarshal(data, params); err != nil {
		return nil, fmt.Errorf("parse params file: %w", err)
	}
	return params, nil
}
