package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/riftlab/build-optimizer/internal/models"
)

// ErrRunNotFound is returned when no run exists for the requested ID.
var ErrRunNotFound = errors.New("run not found")

type runsService struct {
	pg PgPool
}

func NewRunsService(pg PgPool) RunsService {
	return &runsService{pg: pg}
}

// EnsureRunsSchema creates the run-record table if it does not exist.
func EnsureRunsSchema(ctx context.Context, pg PgPool) error {
	_, err := pg.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS optimizer_runs (
			id              UUID PRIMARY KEY,
			champion_id     INT NOT NULL,
			algorithm       TEXT NOT NULL,
			optimal_build   JSONB NOT NULL,
			fitness         DOUBLE PRECISION NOT NULL,
			win_probability DOUBLE PRECISION NOT NULL,
			generations     INT NOT NULL,
			population_size INT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create optimizer_runs table: %w", err)
	}
	return nil
}

func (s *runsService) SaveRun(ctx context.Context, run *models.OptimizerRun) error {
	build, err := json.Marshal(run.OptimalBuild)
	if err != nil {
		return fmt.Errorf("failed to encode build: %w", err)
	}

	_, err = s.pg.Exec(ctx, `
		INSERT INTO optimizer_runs
			(id, champion_id, algorithm, optimal_build, fitness, win_probability, generations, population_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, run.ID, run.ChampionID, run.Algorithm, string(build),
		run.Fitness, run.WinProbability, run.Generations, run.PopulationSize, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}
	return nil
}

func (s *runsService) RecentRuns(ctx context.Context, limit int) ([]models.OptimizerRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := s.pg.Query(ctx, `
		SELECT id, champion_id, algorithm, optimal_build, fitness, win_probability, generations, population_size, created_at
		FROM optimizer_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.OptimizerRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func (s *runsService) GetRun(ctx context.Context, id string) (*models.OptimizerRun, error) {
	row := s.pg.QueryRow(ctx, `
		SELECT id, champion_id, algorithm, optimal_build, fitness, win_probability, generations, population_size, created_at
		FROM optimizer_runs
		WHERE id = $1
	`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

func scanRun(row pgx.Row) (*models.OptimizerRun, error) {
	var run models.OptimizerRun
	var build string
	err := row.Scan(&run.ID, &run.ChampionID, &run.Algorithm, &build,
		&run.Fitness, &run.WinProbability, &run.Generations, &run.PopulationSize, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	if err := json.Unmarshal([]byte(build), &run.OptimalBuild); err != nil {
		return nil, fmt.Errorf("failed to decode build for run %s: %w", run.ID, err)
	}
	return &run, nil
}
