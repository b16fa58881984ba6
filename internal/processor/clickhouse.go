package processor

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/models"
)

const participantsSchema = `
CREATE TABLE IF NOT EXISTS lol_stats.participants (
	game_id                         Int64,
	game_duration                   Int32,
	champion_id                     Int32,
	champion_name                   String,
	team_id                         Int32,
	win                             Bool,
	item0                           Int32,
	item1                           Int32,
	item2                           Int32,
	item3                           Int32,
	item4                           Int32,
	item5                           Int32,
	item6                           Int32,
	kills                           Int32,
	deaths                          Int32,
	assists                         Int32,
	total_minions_killed            Int32,
	gold_earned                     Int32,
	gold_spent                      Int32,
	total_damage_dealt_to_champions Int32,
	total_damage_taken              Int32,
	vision_score                    Int32,
	champ_level                     Int32,
	time_played                     Int32,
	damage_dealt_to_turrets         Int32,
	wards_placed                    Int32,
	largest_killing_spree           Int32
) ENGINE = MergeTree()
ORDER BY (champion_id, game_id)`

// Writer batch-inserts participant rows into ClickHouse.
type Writer struct {
	conn      driver.Conn
	batchSize int
	logger    *zap.SugaredLogger
}

func NewWriter(conn driver.Conn, batchSize int, logger *zap.SugaredLogger) *Writer {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Writer{conn: conn, batchSize: batchSize, logger: logger}
}

// EnsureSchema creates the participants database and table if absent.
func (w *Writer) EnsureSchema(ctx context.Context) error {
	if err := w.conn.Exec(ctx, `CREATE DATABASE IF NOT EXISTS lol_stats`); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if err := w.conn.Exec(ctx, participantsSchema); err != nil {
		return fmt.Errorf("failed to create participants table: %w", err)
	}
	return nil
}

// WriteRows inserts the rows in batches.
func (w *Writer) WriteRows(ctx context.Context, rows []models.ParticipantRow) error {
	for start := 0; start < len(rows); start += w.batchSize {
		end := start + w.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := w.writeBatch(ctx, rows[start:end]); err != nil {
			return err
		}
	}
	w.logger.Infow("Participant rows written", "rows", len(rows))
	return nil
}

func (w *Writer) writeBatch(ctx context.Context, rows []models.ParticipantRow) error {
	batch, err := w.conn.PrepareBatch(ctx, `
		INSERT INTO lol_stats.participants (
			game_id, game_duration, champion_id, champion_name, team_id, win,
			item0, item1, item2, item3, item4, item5, item6,
			kills, deaths, assists, total_minions_killed, gold_earned, gold_spent,
			total_damage_dealt_to_champions, total_damage_taken, vision_score,
			champ_level, time_played, damage_dealt_to_turrets, wards_placed,
			largest_killing_spree
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	for _, r := range rows {
		err := batch.Append(
			r.GameID, r.GameDuration, r.ChampionID, r.ChampionName, r.TeamID, r.Win,
			r.Items[0], r.Items[1], r.Items[2], r.Items[3], r.Items[4], r.Items[5], r.Items[6],
			r.Kills, r.Deaths, r.Assists, r.TotalMinionsKilled, r.GoldEarned, r.GoldSpent,
			r.TotalDamageDealtToChampions, r.TotalDamageTaken, r.VisionScore,
			r.ChampLevel, r.TimePlayed, r.DamageDealtToTurrets, r.WardsPlaced,
			r.LargestKillingSpree,
		)
		if err != nil {
			return fmt.Errorf("failed to append row for game %d: %w", r.GameID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}
	return nil
}
