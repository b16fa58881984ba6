package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/models"
)

const (
	insightsCacheKey = "api:insights"
	insightsCacheTTL = 5 * time.Minute
)

type insightsService struct {
	redis   RedisClient
	dataDir string
	logger  *zap.SugaredLogger
}

func NewInsightsService(redisClient RedisClient, dataDir string, logger *zap.SugaredLogger) InsightsService {
	return &insightsService{redis: redisClient, dataDir: dataDir, logger: logger}
}

// Insights returns the latest generated insights record, serving from the
// Redis cache when fresh. Cache failures fall back to the file.
func (s *insightsService) Insights(ctx context.Context) (*models.ChampionInsights, error) {
	if cached, err := s.redis.Get(ctx, insightsCacheKey).Result(); err == nil {
		var ins models.ChampionInsights
		if err := json.Unmarshal([]byte(cached), &ins); err == nil {
			return &ins, nil
		}
		s.logger.Warnw("Discarding unreadable cached insights")
	} else if err != redis.Nil {
		s.logger.Warnw("Insights cache read failed", "error", err)
	}

	path := filepath.Join(s.dataDir, "eda_insights.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("insights not found at %s: run the optimizer first", path)
		}
		return nil, fmt.Errorf("failed to read insights: %w", err)
	}

	var ins models.ChampionInsights
	if err := json.Unmarshal(data, &ins); err != nil {
		return nil, fmt.Errorf("failed to parse insights: %w", err)
	}

	if err := s.redis.Set(ctx, insightsCacheKey, data, insightsCacheTTL).Err(); err != nil {
		s.logger.Warnw("Insights cache write failed", "error", err)
	}
	return &ins, nil
}
