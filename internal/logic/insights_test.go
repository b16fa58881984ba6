package logic

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/models"
)

func writeInsightsFixture(t *testing.T, dir string) {
	t.Helper()
	ins := models.ChampionInsights{
		ChampionInfo: models.ChampionInfo{ChampionID: 80, Name: "Pantheon", TotalRecords: 500},
	}
	data, err := json.Marshal(ins)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "eda_insights.json"), data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestInsightsReadsFileAndCaches(t *testing.T) {
	dir := t.TempDir()
	writeInsightsFixture(t, dir)
	cache := NewMockRedis()

	svc := NewInsightsService(cache, dir, zap.NewNop().Sugar())
	ins, err := svc.Insights(context.Background())
	if err != nil {
		t.Fatalf("Insights failed: %v", err)
	}
	if ins.ChampionInfo.ChampionID != 80 {
		t.Errorf("insights = %+v", ins.ChampionInfo)
	}

	if _, ok := cache.store[insightsCacheKey]; !ok {
		t.Error("insights were not cached")
	}

	// A second call is served from the cache even if the file vanishes.
	if err := os.Remove(filepath.Join(dir, "eda_insights.json")); err != nil {
		t.Fatalf("remove fixture: %v", err)
	}
	ins, err = svc.Insights(context.Background())
	if err != nil {
		t.Fatalf("cached Insights failed: %v", err)
	}
	if ins.ChampionInfo.Name != "Pantheon" {
		t.Errorf("cached insights = %+v", ins.ChampionInfo)
	}
}

func TestInsightsMissingFile(t *testing.T) {
	svc := NewInsightsService(NewMockRedis(), t.TempDir(), zap.NewNop().Sugar())
	if _, err := svc.Insights(context.Background()); err == nil {
		t.Error("expected error when insights file is absent")
	}
}
