package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParamsMissingFileUsesDefaults(t *testing.T) {
	params, err := LoadParams(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	if params.Genetic.PopulationSize != 50 || params.Genetic.Generations != 100 {
		t.Errorf("unexpected GA defaults: %+v", params.Genetic)
	}
	if params.Differential.Generations != 200 || params.Differential.CrossoverProb != 0.9 {
		t.Errorf("unexpected DE defaults: %+v", params.Differential)
	}
}

func TestLoadParamsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.toml")
	content := `
seed = 42
model_trees = 25

[genetic]
population_size = 20
generations = 10

[differential_evolution]
mutation_factor = 0.7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	params, err := LoadParams(path)
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	if params.Seed != 42 {
		t.Errorf("seed = %d, want 42", params.Seed)
	}
	if params.Genetic.PopulationSize != 20 {
		t.Errorf("population_size = %d, want 20", params.Genetic.PopulationSize)
	}
	// Untouched keys keep their defaults.
	if params.Genetic.CrossoverRate != 0.8 {
		t.Errorf("crossover_rate = %v, want default 0.8", params.Genetic.CrossoverRate)
	}
	if params.Differential.MutationFactor != 0.7 {
		t.Errorf("mutation_factor = %v, want 0.7", params.Differential.MutationFactor)
	}
}

func TestLoadFailsWithoutDatabases(t *testing.T) {
	for _, key := range []string{"POSTGRES_URL", "CLICKHOUSE_URL", "REDIS_URL"} {
		t.Setenv(key, "")
	}
	if _, err := Load(); err == nil {
		t.Error("Load should fail when database URLs are missing")
	}
}
