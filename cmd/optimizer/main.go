package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/riftlab/build-optimizer/internal/config"
	"github.com/riftlab/build-optimizer/internal/dataset"
	"github.com/riftlab/build-optimizer/internal/insights"
	"github.com/riftlab/build-optimizer/internal/logic"
	"github.com/riftlab/build-optimizer/internal/models"
	"github.com/riftlab/build-optimizer/internal/optimize"
	"github.com/riftlab/build-optimizer/internal/predictor"
	"github.com/riftlab/build-optimizer/internal/processor"
	"github.com/riftlab/build-optimizer/internal/storage"
	"github.com/riftlab/build-optimizer/internal/website"
)

const maxSeedBuilds = 10

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	paramsPath := os.Getenv("PARAMS_PATH")
	if paramsPath == "" {
		paramsPath = "params.toml"
	}
	params, err := config.LoadParams(paramsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "params: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	meta, err := processor.ReadMetadata(cfg.DataDir)
	if err != nil {
		sugar.Fatalw("Failed to read champion metadata", "error", err)
	}

	ch, err := storage.ConnectClickHouse(ctx, cfg.ClickHouseURL)
	if err != nil {
		sugar.Fatalw("Failed to connect to ClickHouse", "error", err)
	}
	defer ch.Close()

	ds, err := dataset.LoadChampion(ctx, ch, meta.ChampionID, sugar)
	if err != nil {
		sugar.Fatalw("Failed to load champion dataset", "error", err)
	}
	if ds.ChampionID() != meta.ChampionID {
		sugar.Fatalw("Metadata and dataset describe different champions",
			"metadata", meta.ChampionID, "dataset", ds.ChampionID())
	}
	sugar.Infow("Dataset loaded", "championID", ds.ChampionID(), "games", ds.Len())

	seed := params.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	sugar.Infow("Optimizer starting", "seed", seed, "trees", params.ModelTrees)

	model, err := predictor.Train(ds, params.ModelTrees, rand.New(rand.NewPCG(seed, seed)), sugar)
	if err != nil {
		sugar.Fatalw("Model training failed", "error", err)
	}

	winning := ds.WinningBuilds(maxSeedBuilds)

	var gaResult, deResult *models.BuildResult
	var gaHistory, deHistory []float64
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		ga, err := optimize.NewGenetic(meta, model, params.Genetic, rand.New(rand.NewPCG(seed, 1)), sugar)
		if err != nil {
			return err
		}
		if gaResult, err = ga.Run(winning); err != nil {
			return err
		}
		gaHistory = ga.History()
		return nil
	})
	g.Go(func() error {
		de, err := optimize.NewDiffEvo(meta, model, params.Differential, rand.New(rand.NewPCG(seed, 2)), sugar)
		if err != nil {
			return err
		}
		if deResult, err = de.Run(winning); err != nil {
			return err
		}
		deHistory = de.History()
		return nil
	})
	if err := g.Wait(); err != nil {
		sugar.Fatalw("Optimization failed", "error", err)
	}

	comparison, err := optimize.Compare(gaResult, deResult, meta.WinRate)
	if err != nil {
		sugar.Fatalw("Comparison failed", "error", err)
	}
	sugar.Infow("Optimization complete",
		"winner", comparison.Comparison.Winner,
		"gaFitness", gaResult.Fitness,
		"deFitness", deResult.Fitness,
	)

	eda, err := insights.Generate(ds, meta)
	if err != nil {
		sugar.Fatalw("Insights generation failed", "error", err)
	}

	outputs := map[string]interface{}{
		"optimal_build_results.json":    gaResult,
		"optimal_build_results_de.json": deResult,
		"algorithm_comparison.json":     comparison,
		"eda_insights.json":             eda,
	}
	for name, payload := range outputs {
		if err := writeJSON(filepath.Join(cfg.DataDir, name), payload); err != nil {
			sugar.Fatalw("Failed to write result file", "file", name, "error", err)
		}
	}

	chartPath := filepath.Join(cfg.DataDir, "fitness_history.html")
	if err := insights.RenderFitnessChart(meta.ChampionID, gaHistory, deHistory, chartPath); err != nil {
		sugar.Warnw("Failed to render fitness chart", "error", err)
	}

	saveRuns(ctx, cfg, sugar, gaResult, deResult)

	copied, err := website.NewSyncer(cfg.DataDir, cfg.WebsiteDir, sugar).Sync()
	if err != nil {
		sugar.Fatalw("Website sync failed", "error", err)
	}
	sugar.Infow("Website synced", "artifacts", copied)
}

// saveRuns records both results in Postgres. Failures are logged but do not
// abort the run, the JSON artifacts are already on disk.
func saveRuns(ctx context.Context, cfg *config.Config, sugar *zap.SugaredLogger, gaResult, deResult *models.BuildResult) {
	pg, err := storage.ConnectPostgres(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Warnw("Postgres unavailable, skipping run history", "error", err)
		return
	}
	defer pg.Close()

	if err := logic.EnsureRunsSchema(ctx, pg); err != nil {
		sugar.Warnw("Failed to ensure runs schema", "error", err)
		return
	}

	runs := logic.NewRunsService(pg)
	now := time.Now().UTC()
	for _, r := range []struct {
		algorithm string
		result    *models.BuildResult
	}{
		{"Genetic Algorithm", gaResult},
		{"Differential Evolution", deResult},
	} {
		run := &models.OptimizerRun{
			ID:             uuid.NewString(),
			ChampionID:     r.result.ChampionID,
			Algorithm:      r.algorithm,
			OptimalBuild:   r.result.OptimalBuild,
			Fitness:        r.result.Fitness,
			WinProbability: r.result.WinProbability,
			Generations:    r.result.Generations,
			PopulationSize: r.result.PopulationSize,
			CreatedAt:      now,
		}
		if err := runs.SaveRun(ctx, run); err != nil {
			sugar.Warnw("Failed to save run", "algorithm", r.algorithm, "error", err)
		}
	}
}

func writeJSON(path string, payload interface{}) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
