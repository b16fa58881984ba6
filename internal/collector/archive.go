// Package collector gathers ranked match data from the Riot API into a local
// archive, resume-safe across restarts.
package collector

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Archive is the collector's local SQLite store: raw match payloads plus the
// processed-player and processed-division checkpoints that make a restarted
// run skip work it already did.
type Archive struct {
	conn *sql.DB
}

const archiveSchema = `
CREATE TABLE IF NOT EXISTS matches (
	match_id    TEXT PRIMARY KEY,
	payload     TEXT NOT NULL,
	archived_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS processed_players (
	puuid        TEXT PRIMARY KEY,
	processed_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS processed_divisions (
	division     TEXT PRIMARY KEY,
	processed_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS failed_matches (
	match_id  TEXT PRIMARY KEY,
	reason    TEXT NOT NULL,
	failed_at TIMESTAMP NOT NULL
);`

// OpenArchive opens (and if needed creates) the archive database. Use
// ":memory:" for tests.
func OpenArchive(path string) (*Archive, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(archiveSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create archive schema: %w", err)
	}
	return &Archive{conn: conn}, nil
}

func (a *Archive) Close() error {
	return a.conn.Close()
}

// SaveMatch stores a raw match payload. Saving an already archived match is a
// no-op.
func (a *Archive) SaveMatch(ctx context.Context, matchID string, payload []byte) error {
	_, err := a.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO matches (match_id, payload, archived_at) VALUES (?, ?, ?)`,
		matchID, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save match %s: %w", matchID, err)
	}
	return nil
}

func (a *Archive) HasMatch(ctx context.Context, matchID string) (bool, error) {
	var n int
	err := a.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM matches WHERE match_id = ?`, matchID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check match %s: %w", matchID, err)
	}
	return n > 0, nil
}

func (a *Archive) MatchCount(ctx context.Context) (int, error) {
	var n int
	if err := a.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return n, nil
}

// Matches streams every archived payload to fn in insertion order.
func (a *Archive) Matches(ctx context.Context, fn func(matchID string, payload []byte) error) error {
	rows, err := a.conn.QueryContext(ctx,
		`SELECT match_id, payload FROM matches ORDER BY archived_at, match_id`)
	if err != nil {
		return fmt.Errorf("failed to read matches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return fmt.Errorf("failed to scan match row: %w", err)
		}
		if err := fn(id, []byte(payload)); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (a *Archive) MarkPlayerProcessed(ctx context.Context, puuid string) error {
	_, err := a.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO processed_players (puuid, processed_at) VALUES (?, ?)`,
		puuid, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark player processed: %w", err)
	}
	return nil
}

func (a *Archive) IsPlayerProcessed(ctx context.Context, puuid string) (bool, error) {
	var n int
	err := a.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM processed_players WHERE puuid = ?`, puuid).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check player %s: %w", puuid, err)
	}
	return n > 0, nil
}

func (a *Archive) MarkDivisionProcessed(ctx context.Context, division string) error {
	_, err := a.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO processed_divisions (division, processed_at) VALUES (?, ?)`,
		division, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark division processed: %w", err)
	}
	return nil
}

func (a *Archive) IsDivisionProcessed(ctx context.Context, division string) (bool, error) {
	var n int
	err := a.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM processed_divisions WHERE division = ?`, division).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check division %s: %w", division, err)
	}
	return n > 0, nil
}

// RecordFailure remembers a match that could not be fetched so reruns can
// report or retry it.
func (a *Archive) RecordFailure(ctx context.Context, matchID, reason string) error {
	_, err := a.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO failed_matches (match_id, reason, failed_at) VALUES (?, ?, ?)`,
		matchID, reason, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record failure for %s: %w", matchID, err)
	}
	return nil
}

func (a *Archive) FailedMatches(ctx context.Context) ([]string, error) {
	rows, err := a.conn.QueryContext(ctx, `SELECT match_id FROM failed_matches ORDER BY match_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read failed matches: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan failed match: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
