package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/collector"
	"github.com/riftlab/build-optimizer/internal/config"
	"github.com/riftlab/build-optimizer/internal/riot"
	"github.com/riftlab/build-optimizer/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadCollector()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
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

	archive, err := collector.OpenArchive(cfg.ArchivePath)
	if err != nil {
		sugar.Fatalw("Failed to open match archive", "path", cfg.ArchivePath, "error", err)
	}
	defer archive.Close()

	var dedup collector.Dedup
	if rdb, err := storage.ConnectRedis(ctx, cfg.RedisURL); err != nil {
		sugar.Warnw("Redis unavailable, using in-memory dedup", "error", err)
		dedup = collector.NewMemoryDedup()
	} else {
		defer rdb.Close()
		dedup = collector.NewRedisDedup(rdb)
	}

	client := riot.NewClient(cfg.RiotAPIKey, cfg.RiotPlatform, cfg.RiotRegion, cfg.MaxRetries, sugar)

	opts := collector.DefaultOptions()
	opts.CheckpointFreq = cfg.CheckpointFreq
	if raw := os.Getenv("MATCH_THRESHOLD"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			opts.Threshold = n
		}
	}

	c := collector.New(client, archive, dedup, opts, sugar)
	if err := c.Run(ctx); err != nil {
		sugar.Fatalw("Collection failed", "error", err)
	}

	count, err := archive.MatchCount(context.Background())
	if err != nil {
		sugar.Fatalw("Failed to count archived matches", "error", err)
	}
	sugar.Infow("Collection complete", "archivedMatches", count)
}
