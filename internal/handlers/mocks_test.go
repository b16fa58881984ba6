package handlers

import (
	"context"

	"github.com/riftlab/build-optimizer/internal/models"
)

// MockRunsService implements logic.RunsService for tests.
type MockRunsService struct {
	SaveRunFunc    func(ctx context.Context, run *models.OptimizerRun) error
	RecentRunsFunc func(ctx context.Context, limit int) ([]models.OptimizerRun, error)
	GetRunFunc     func(ctx context.Context, id string) (*models.OptimizerRun, error)
}

func (m *MockRunsService) SaveRun(ctx context.Context, run *models.OptimizerRun) error {
	if m.SaveRunFunc != nil {
		return m.SaveRunFunc(ctx, run)
	}
	return nil
}

func (m *MockRunsService) RecentRuns(ctx context.Context, limit int) ([]models.OptimizerRun, error) {
	if m.RecentRunsFunc != nil {
		return m.RecentRunsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockRunsService) GetRun(ctx context.Context, id string) (*models.OptimizerRun, error) {
	if m.GetRunFunc != nil {
		return m.GetRunFunc(ctx, id)
	}
	return nil, nil
}

// MockChampionStatsService implements logic.ChampionStatsService for tests.
type MockChampionStatsService struct {
	ChampionsFunc func(ctx context.Context, limit int) ([]models.ChampionSummary, error)
	ChampionFunc  func(ctx context.Context, championID int) (*models.ChampionSummary, error)
}

func (m *MockChampionStatsService) Champions(ctx context.Context, limit int) ([]models.ChampionSummary, error) {
	if m.ChampionsFunc != nil {
		return m.ChampionsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockChampionStatsService) Champion(ctx context.Context, championID int) (*models.ChampionSummary, error) {
	if m.ChampionFunc != nil {
		return m.ChampionFunc(ctx, championID)
	}
	return nil, nil
}

// MockInsightsService implements logic.InsightsService for tests.
type MockInsightsService struct {
	InsightsFunc func(ctx context.Context) (*models.ChampionInsights, error)
}

func (m *MockInsightsService) Insights(ctx context.Context) (*models.ChampionInsights, error) {
	if m.InsightsFunc != nil {
		return m.InsightsFunc(ctx)
	}
	return nil, nil
}
