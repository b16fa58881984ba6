package models

import "time"

// BuildResult is the record an optimizer run produces. Field names are part
// of the external contract consumed by the comparator, the insights
// generator and the website; do not rename them.
type BuildResult struct {
	ChampionID     int     `json:"champion_id"`
	OptimalBuild   []int   `json:"optimal_build"`
	Fitness        float64 `json:"fitness"`
	WinProbability float64 `json:"win_probability"`
	Generations    int     `json:"generations"`
	PopulationSize int     `json:"population_size"`

	// Set by the differential-evolution optimizer only.
	ContinuousRepresentation []float64 `json:"continuous_representation,omitempty"`
	Algorithm                string    `json:"algorithm,omitempty"`
}

// Comparison summarizes how the two optimizer results relate.
type Comparison struct {
	Winner        string  `json:"winner"`
	Advantage     float64 `json:"advantage"`
	GAImprovement float64 `json:"ga_improvement"`
	DEImprovement float64 `json:"de_improvement"`
	OverlapRatio  float64 `json:"overlap_ratio"`
	CommonItems   []int   `json:"common_items"`
}

// OptimizerRun is one optimizer execution persisted in Postgres, served by
// the results API.
type OptimizerRun struct {
	ID             string    `json:"id"`
	ChampionID     int       `json:"champion_id"`
	Algorithm      string    `json:"algorithm"`
	OptimalBuild   []int     `json:"optimal_build"`
	Fitness        float64   `json:"fitness"`
	WinProbability float64   `json:"win_probability"`
	Generations    int       `json:"generations"`
	PopulationSize int       `json:"population_size"`
	CreatedAt      time.Time `json:"created_at"`
}

// ComparisonResult is the persisted comparison record.
type ComparisonResult struct {
	ChampionID            int          `json:"champion_id"`
	BaselineWinRate       float64      `json:"baseline_win_rate"`
	GeneticAlgorithm      *BuildResult `json:"genetic_algorithm"`
	DifferentialEvolution *BuildResult `json:"differential_evolution"`
	Comparison            Comparison   `json:"comparison"`
}
