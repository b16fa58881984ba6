package optimize

import (
	"testing"

	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/config"
)

func deParams() config.DiffEvoParams {
	return config.DiffEvoParams{
		PopulationSize: 30,
		Generations:    60,
		CrossoverProb:  0.9,
		MutationFactor: 0.5,
	}
}

func newTestDE(t *testing.T, numSlots int, items []int, scorer Scorer, seed uint64) *DiffEvo {
	t.Helper()
	de, err := NewDiffEvo(testMetadata(numSlots, items), scorer, deParams(), testRNG(seed), zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewDiffEvo failed: %v", err)
	}
	return de
}

func TestDecode(t *testing.T) {
	de := newTestDE(t, 7, []int{1, 2, 3}, constScorer(0.5), 1)

	genome := []float64{0.5, 1.2, 2.9, 3.1, 0, 0, 0}
	want := []int{0, 1, 2, 3, 0, 0, 0}
	got := de.Decode(genome)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Decode(%v) = %v, want %v", genome, got, want)
		}
	}

	// Pure function of the genome.
	again := de.Decode(genome)
	for i := range got {
		if got[i] != again[i] {
			t.Fatal("Decode is not deterministic")
		}
	}
}

func TestDecodeRange(t *testing.T) {
	items := []int{11, 22, 33, 44}
	de := newTestDE(t, 7, items, constScorer(0.5), 2)
	valid := map[int]bool{0: true}
	for _, item := range items {
		valid[item] = true
	}

	rng := testRNG(8)
	for i := 0; i < 100; i++ {
		genome := make([]float64, 7)
		for j := range genome {
			genome[j] = rng.Float64() * (float64(len(items)) + 1)
		}
		build := de.Decode(genome)
		if len(build) != 7 {
			t.Fatalf("decoded build has %d slots, want 7", len(build))
		}
		for j, item := range build {
			if !valid[item] {
				t.Fatalf("decoded unknown item %d from %v", item, genome)
			}
			if genome[j] < 1 && item != 0 {
				t.Fatalf("coordinate %v below 1 must decode to empty, got %d", genome[j], item)
			}
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	items := []int{100, 200, 300, 400, 500}
	de := newTestDE(t, 7, items, constScorer(0.5), 3)

	build := []int{300, 0, 100, 500, 0, 200, 400}
	for i := 0; i < 20; i++ {
		genome := de.Encode(build)
		if len(genome) != 7 {
			t.Fatalf("encoded genome has %d coordinates, want 7", len(genome))
		}
		decoded := de.Decode(genome)
		for j := range build {
			if decoded[j] != build[j] {
				t.Fatalf("round trip changed build: %v -> %v -> %v", build, genome, decoded)
			}
		}
	}
}

func TestEncodeUnknownItemStaysInRange(t *testing.T) {
	de := newTestDE(t, 3, []int{1, 2, 3}, constScorer(0.5), 4)

	for i := 0; i < 50; i++ {
		genome := de.Encode([]int{9999, 0, 1})
		if genome[0] < 1 || genome[0] >= 4 {
			t.Fatalf("unknown item encoded outside [1, num_items+1): %v", genome[0])
		}
		if genome[1] < 0 || genome[1] >= 1 {
			t.Fatalf("empty slot encoded outside [0,1): %v", genome[1])
		}
	}
}

func TestTrialGenomePreservesLength(t *testing.T) {
	de := newTestDE(t, 7, []int{1, 2, 3, 4}, constScorer(0.5), 5)
	de.initialize(nil)

	for i := 0; i < len(de.population); i++ {
		r0, r1, r2 := de.threeDistinct(i)
		if r0 == i || r1 == i || r2 == i || r0 == r1 || r0 == r2 || r1 == r2 {
			t.Fatalf("indices not distinct: i=%d r=%d,%d,%d", i, r0, r1, r2)
		}
		trial := de.trialGenome(i, r0, r1, r2)
		if len(trial) != 7 {
			t.Fatalf("trial genome has %d coordinates, want 7", len(trial))
		}
		for _, v := range trial {
			if v < 0 || v > 5 {
				t.Fatalf("trial coordinate %v outside [0, num_items+1]", v)
			}
		}
	}
}

func TestDiffEvoFindsRewardedItem(t *testing.T) {
	de := newTestDE(t, 7, []int{10, 20, 30, 42, 50}, countScorer(42), 42)

	result, err := de.Run(nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	hits := 0
	for _, item := range result.OptimalBuild {
		if item == 42 {
			hits++
		}
	}
	if hits < 5 {
		t.Errorf("expected the search to converge on item 42, build %v has it %d times", result.OptimalBuild, hits)
	}
	if result.Algorithm != "Differential Evolution" {
		t.Errorf("algorithm = %q, want %q", result.Algorithm, "Differential Evolution")
	}
	if len(result.ContinuousRepresentation) != 7 {
		t.Errorf("continuous representation has %d coordinates, want 7", len(result.ContinuousRepresentation))
	}
	decoded := de.Decode(result.ContinuousRepresentation)
	for i, item := range decoded {
		if item != result.OptimalBuild[i] {
			t.Fatalf("continuous representation does not decode to the optimal build: %v vs %v", decoded, result.OptimalBuild)
		}
	}
}

func TestDiffEvoBestFitnessNonDecreasing(t *testing.T) {
	de := newTestDE(t, 7, []int{1, 2, 3, 4, 5, 6}, countScorer(4), 9)
	if _, err := de.Run(nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	history := de.History()
	if len(history) != 60 {
		t.Fatalf("expected 60 history points, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i] < history[i-1] {
			t.Fatalf("best fitness dropped at generation %d: %v -> %v", i, history[i-1], history[i])
		}
	}
}

func TestDiffEvoRejectsTinyPopulation(t *testing.T) {
	params := deParams()
	params.PopulationSize = 3
	_, err := NewDiffEvo(testMetadata(7, []int{1, 2}), constScorer(0.5), params, testRNG(1), zap.NewNop().Sugar())
	if err == nil {
		t.Error("expected error for population smaller than 4")
	}
}

func TestDiffEvoPopulationSizeStable(t *testing.T) {
	de := newTestDE(t, 7, []int{1, 2, 3, 4, 5}, countScorer(3), 13)

	de.initialize(nil)
	if len(de.population) != de.params.PopulationSize {
		t.Fatalf("initial population has %d individuals, want %d", len(de.population), de.params.PopulationSize)
	}
	for gen := 0; gen < 30; gen++ {
		de.evolve()
		if len(de.population) != de.params.PopulationSize {
			t.Fatalf("generation %d has %d individuals, want %d", gen+1, len(de.population), de.params.PopulationSize)
		}
	}
}
