package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/collector"
	"github.com/riftlab/build-optimizer/internal/config"
	"github.com/riftlab/build-optimizer/internal/models"
	"github.com/riftlab/build-optimizer/internal/processor"
	"github.com/riftlab/build-optimizer/internal/storage"
)

const flushSize = 2000

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
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

	ch, err := storage.ConnectClickHouse(ctx, cfg.ClickHouseURL)
	if err != nil {
		sugar.Fatalw("Failed to connect to ClickHouse", "error", err)
	}
	defer ch.Close()

	writer := processor.NewWriter(ch, 0, sugar)
	if err := writer.EnsureSchema(ctx); err != nil {
		sugar.Fatalw("Failed to create participants schema", "error", err)
	}

	proc := processor.New(sugar)

	var pending []models.ParticipantRow
	err = archive.Matches(ctx, func(matchID string, payload []byte) error {
		pending = append(pending, proc.Flatten(matchID, payload)...)
		if len(pending) >= flushSize {
			if err := writer.WriteRows(ctx, pending); err != nil {
				return err
			}
			pending = pending[:0]
		}
		return nil
	})
	if err != nil {
		sugar.Fatalw("Failed to process archive", "error", err)
	}
	if len(pending) > 0 {
		if err := writer.WriteRows(ctx, pending); err != nil {
			sugar.Fatalw("Failed to write participant rows", "error", err)
		}
	}

	processed, skipped := proc.Counts()
	sugar.Infow("Archive flattened", "matches", processed, "skipped", skipped)

	best, err := proc.SelectBestChampion()
	if err != nil {
		sugar.Fatalw("Champion selection failed", "error", err)
	}

	meta, err := proc.Metadata(best.ChampionID)
	if err != nil {
		sugar.Fatalw("Failed to build champion metadata", "error", err)
	}
	if err := processor.WriteMetadata(cfg.DataDir, meta); err != nil {
		sugar.Fatalw("Failed to write champion metadata", "error", err)
	}

	sugar.Infow("Processing complete",
		"championID", meta.ChampionID,
		"games", meta.TotalGames,
		"winRate", meta.WinRate,
		"availableItems", len(meta.AvailableItems),
	)
}
