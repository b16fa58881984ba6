// Package handlers exposes the read-only results API over HTTP.
package handlers

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/logic"
)

type Config struct {
	Postgres   *pgxpool.Pool
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger
	// Services
	Runs          logic.RunsService
	ChampionStats logic.ChampionStatsService
	Insights      logic.InsightsService

	AllowedOrigins []string
}

type Handler struct {
	pg            *pgxpool.Pool
	ch            driver.Conn
	redis         *redis.Client
	logger        *zap.SugaredLogger
	runs          logic.RunsService
	championStats logic.ChampionStatsService
	insights      logic.InsightsService

	allowedOrigins []string
}

func New(cfg Config) *Handler {
	return &Handler{
		pg:             cfg.Postgres,
		ch:             cfg.ClickHouse,
		redis:          cfg.Redis,
		logger:         cfg.Logger.Sugar(),
		runs:           cfg.Runs,
		championStats:  cfg.ChampionStats,
		insights:       cfg.Insights,
		allowedOrigins: cfg.AllowedOrigins,
	}
}

// Router assembles the API routes.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/runs", h.GetRecentRuns)
		r.Get("/runs/{id}", h.GetRun)
		r.Get("/champions", h.GetChampions)
		r.Get("/champions/{championID}", h.GetChampion)
		r.Get("/insights", h.GetInsights)
	})

	return r
}
