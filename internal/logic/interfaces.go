// Package logic implements the read-side services behind the results API.
package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/riftlab/build-optimizer/internal/models"
)

// PgPool defines the interface for the PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RedisClient defines the interface for the Redis client
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RunsService persists and serves optimizer run records
type RunsService interface {
	SaveRun(ctx context.Context, run *models.OptimizerRun) error
	RecentRuns(ctx context.Context, limit int) ([]models.OptimizerRun, error)
	GetRun(ctx context.Context, id string) (*models.OptimizerRun, error)
}

// ChampionStatsService serves per-champion aggregates from ClickHouse
type ChampionStatsService interface {
	Champions(ctx context.Context, limit int) ([]models.ChampionSummary, error)
	Champion(ctx context.Context, championID int) (*models.ChampionSummary, error)
}

// InsightsService serves the generated insights record, cached in Redis
type InsightsService interface {
	Insights(ctx context.Context) (*models.ChampionInsights, error)
}
