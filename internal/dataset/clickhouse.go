package dataset

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/models"
)

// LoadChampion reads every participant row for the champion from ClickHouse
// into a Dataset. The participants table carries all canonical stat columns,
// so narrowing only happens with alternative sources.
func LoadChampion(ctx context.Context, ch driver.Conn, championID int, logger *zap.SugaredLogger) (*Dataset, error) {
	ds := New(championID, models.ItemSlotNames(), models.StatColumns)
	if missing := ds.Missing(); len(missing) > 0 {
		logger.Warnw("Feature set narrowed, stat columns unavailable", "missing", missing)
	}

	rows, err := ch.Query(ctx, `
		SELECT
			item0, item1, item2, item3, item4, item5, item6,
			kills, deaths, assists, total_minions_killed, gold_earned,
			total_damage_dealt_to_champions, vision_score, champ_level,
			time_played, damage_dealt_to_turrets, win
		FROM lol_stats.participants
		WHERE champion_id = ?
		ORDER BY game_id
	`, int32(championID))
	if err != nil {
		return nil, fmt.Errorf("query champion %d rows: %w", championID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var items [models.NumItemSlots]int32
		var kills, deaths, assists, cs, gold, damage, vision, level, timePlayed, turrets int32
		var win bool

		if err := rows.Scan(
			&items[0], &items[1], &items[2], &items[3], &items[4], &items[5], &items[6],
			&kills, &deaths, &assists, &cs, &gold,
			&damage, &vision, &level, &timePlayed, &turrets, &win,
		); err != nil {
			return nil, fmt.Errorf("scan participant row: %w", err)
		}

		build := make([]int, models.NumItemSlots)
		for i, it := range items {
			build[i] = int(it)
		}
		stats := map[string]float64{
			"kills":                       float64(kills),
			"deaths":                      float64(deaths),
			"assists":                     float64(assists),
			"totalMinionsKilled":          float64(cs),
			"goldEarned":                  float64(gold),
			"totalDamageDealtToChampions": float64(damage),
			"visionScore":                 float64(vision),
			"champLevel":                  float64(level),
			"timePlayed":                  float64(timePlayed),
			"damageDealtToTurrets":        float64(turrets),
		}
		if err := ds.Append(build, stats, win); err != nil {
			return nil, err
		}
	}

	if ds.Len() == 0 {
		return nil, fmt.Errorf("no rows for champion %d: run the processor first", championID)
	}

	logger.Infow("Champion dataset loaded",
		"champion", championID,
		"games", ds.Len(),
		"features", len(ds.FeatureColumns()),
	)
	return ds, nil
}
