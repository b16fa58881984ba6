package logic

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/riftlab/build-optimizer/internal/models"
)

type championStatsService struct {
	ch driver.Conn
}

func NewChampionStatsService(ch driver.Conn) ChampionStatsService {
	return &championStatsService{ch: ch}
}

// Champions returns per-champion aggregates, most-played first.
func (s *championStatsService) Champions(ctx context.Context, limit int) ([]models.ChampionSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := s.ch.Query(ctx, `
		SELECT
			champion_id,
			count() AS games,
			countIf(win) AS wins,
			countIf(win) / count() AS win_rate,
			uniqExact(arrayJoin(arrayFilter(x -> x != 0, [item0, item1, item2, item3, item4, item5, item6]))) AS unique_items
		FROM lol_stats.participants
		GROUP BY champion_id
		ORDER BY games DESC, champion_id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query champion stats: %w", err)
	}
	defer rows.Close()

	var summaries []models.ChampionSummary
	for rows.Next() {
		var championID int32
		var games, wins, uniqueItems uint64
		var winRate float64
		if err := rows.Scan(&championID, &games, &wins, &winRate, &uniqueItems); err != nil {
			return nil, fmt.Errorf("failed to scan champion stats: %w", err)
		}
		summaries = append(summaries, models.ChampionSummary{
			ChampionID:  int(championID),
			Games:       int(games),
			Wins:        int(wins),
			WinRate:     winRate,
			UniqueItems: int(uniqueItems),
		})
	}
	return summaries, rows.Err()
}

// Champion returns aggregates for one champion.
func (s *championStatsService) Champion(ctx context.Context, championID int) (*models.ChampionSummary, error) {
	row := s.ch.QueryRow(ctx, `
		SELECT
			count() AS games,
			countIf(win) AS wins,
			countIf(win) / count() AS win_rate,
			uniqExact(arrayJoin(arrayFilter(x -> x != 0, [item0, item1, item2, item3, item4, item5, item6]))) AS unique_items
		FROM lol_stats.participants
		WHERE champion_id = ?
	`, int32(championID))

	var games, wins, uniqueItems uint64
	var winRate float64
	if err := row.Scan(&games, &wins, &winRate, &uniqueItems); err != nil {
		return nil, fmt.Errorf("failed to scan champion %d stats: %w", championID, err)
	}
	if games == 0 {
		return nil, fmt.Errorf("no games for champion %d", championID)
	}

	return &models.ChampionSummary{
		ChampionID:  championID,
		Games:       int(games),
		Wins:        int(wins),
		WinRate:     winRate,
		UniqueItems: int(uniqueItems),
	}, nil
}
