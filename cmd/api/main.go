package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/config"
	"github.com/riftlab/build-optimizer/internal/handlers"
	"github.com/riftlab/build-optimizer/internal/logic"
	"github.com/riftlab/build-optimizer/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Env)
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := storage.ConnectPostgres(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to connect to Postgres", "error", err)
	}
	defer pg.Close()

	ch, err := storage.ConnectClickHouse(ctx, cfg.ClickHouseURL)
	if err != nil {
		sugar.Fatalw("Failed to connect to ClickHouse", "error", err)
	}
	defer ch.Close()

	rdb, err := storage.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Failed to connect to Redis", "error", err)
	}
	defer rdb.Close()

	if err := logic.EnsureRunsSchema(ctx, pg); err != nil {
		sugar.Fatalw("Failed to ensure runs schema", "error", err)
	}

	h := handlers.New(handlers.Config{
		Postgres:       pg,
		ClickHouse:     ch,
		Redis:          rdb,
		Logger:         logger,
		Runs:           logic.NewRunsService(pg),
		ChampionStats:  logic.NewChampionStatsService(ch),
		Insights:       logic.NewInsightsService(rdb, cfg.DataDir, sugar),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("API server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Infow("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Graceful shutdown failed", "error", err)
	}
}

func newLogger(env string) *zap.Logger {
	if env == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
