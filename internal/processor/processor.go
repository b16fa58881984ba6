// Package processor turns archived match payloads into the flattened rows,
// champion analysis and metadata the optimizer consumes.
package processor

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/models"
	"github.com/riftlab/build-optimizer/internal/riot"
)

// Processor flattens raw matches and tracks per-champion aggregates as it
// goes.
type Processor struct {
	logger   *zap.SugaredLogger
	validate *validator.Validate

	stats     map[int32]*championAgg
	processed int
	skipped   int
}

type championAgg struct {
	games int
	wins  int
	items map[int32]bool
}

func New(logger *zap.SugaredLogger) *Processor {
	return &Processor{
		logger:   logger,
		validate: validator.New(),
		stats:    make(map[int32]*championAgg),
	}
}

// Flatten decodes one raw match payload into participant rows. Malformed
// payloads are skipped with a log line, never fatal.
func (p *Processor) Flatten(matchID string, payload []byte) []models.ParticipantRow {
	var match riot.Match
	if err := json.Unmarshal(payload, &match); err != nil {
		p.skipped++
		p.logger.Warnw("Skipping malformed match payload", "matchID", matchID, "error", err)
		return nil
	}
	if len(match.Info.Participants) == 0 {
		p.skipped++
		p.logger.Warnw("Skipping match without participants", "matchID", matchID)
		return nil
	}

	rows := make([]models.ParticipantRow, 0, len(match.Info.Participants))
	for _, part := range match.Info.Participants {
		if part.ChampionID == 0 {
			continue
		}
		rows = append(rows, models.ParticipantRow{
			GameID:       match.Info.GameID,
			GameDuration: match.Info.GameDuration,
			ChampionID:   part.ChampionID,
			ChampionName: part.ChampionName,
			TeamID:       part.TeamID,
			Win:          part.Win,

			Items: part.Items(),

			Kills:                       part.Kills,
			Deaths:                      part.Deaths,
			Assists:                     part.Assists,
			TotalMinionsKilled:          part.TotalMinionsKilled,
			GoldEarned:                  part.GoldEarned,
			GoldSpent:                   part.GoldSpent,
			TotalDamageDealtToChampions: part.TotalDamageDealtToChampions,
			TotalDamageTaken:            part.TotalDamageTaken,
			VisionScore:                 part.VisionScore,
			ChampLevel:                  part.ChampLevel,
			TimePlayed:                  part.TimePlayed,
			DamageDealtToTurrets:        part.DamageDealtToTurrets,
			WardsPlaced:                 part.WardsPlaced,
			LargestKillingSpree:         part.LargestKillingSpree,
		})
	}

	for i := range rows {
		p.track(&rows[i])
	}
	p.processed++
	return rows
}

func (p *Processor) track(r *models.ParticipantRow) {
	agg := p.stats[r.ChampionID]
	if agg == nil {
		agg = &championAgg{items: make(map[int32]bool)}
		p.stats[r.ChampionID] = agg
	}
	agg.games++
	if r.Win {
		agg.wins++
	}
	for _, item := range r.Items {
		if item != 0 {
			agg.items[item] = true
		}
	}
}

// Counts reports how many matches were processed and skipped so far.
func (p *Processor) Counts() (processed, skipped int) {
	return p.processed, p.skipped
}

// Analysis summarizes every champion seen, most-played first.
func (p *Processor) Analysis() []models.ChampionSummary {
	summaries := make([]models.ChampionSummary, 0, len(p.stats))
	for id, agg := range p.stats {
		summaries = append(summaries, models.ChampionSummary{
			ChampionID:  int(id),
			Games:       agg.games,
			Wins:        agg.wins,
			WinRate:     float64(agg.wins) / float64(agg.games),
			UniqueItems: len(agg.items),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Games != summaries[j].Games {
			return summaries[i].Games > summaries[j].Games
		}
		return summaries[i].ChampionID < summaries[j].ChampionID
	})
	return summaries
}

// SelectBestChampion picks the champion with the most games.
func (p *Processor) SelectBestChampion() (models.ChampionSummary, error) {
	analysis := p.Analysis()
	if len(analysis) == 0 {
		return models.ChampionSummary{}, fmt.Errorf("no champion data: run the collector first")
	}
	best := analysis[0]
	p.logger.Infow("Selected champion",
		"champion", best.ChampionID,
		"games", best.Games,
		"winRate", best.WinRate,
		"uniqueItems", best.UniqueItems,
	)
	return best, nil
}

// Metadata builds and validates the optimizer's metadata record for a
// champion.
func (p *Processor) Metadata(championID int) (*models.ChampionMetadata, error) {
	agg := p.stats[int32(championID)]
	if agg == nil {
		return nil, fmt.Errorf("no data for champion %d", championID)
	}

	items := make([]int, 0, len(agg.items))
	for item := range agg.items {
		items = append(items, int(item))
	}
	sort.Ints(items)

	meta := &models.ChampionMetadata{
		ChampionID:     championID,
		AvailableItems: items,
		ItemSlots:      models.ItemSlotNames(),
		WinRate:        float64(agg.wins) / float64(agg.games),
		TotalGames:     agg.games,
		NumItems:       len(items),
		NumSlots:       models.NumItemSlots,
		GeneratedAt:    time.Now().UTC(),
	}
	if err := p.validate.Struct(meta); err != nil {
		return nil, fmt.Errorf("champion %d metadata invalid: %w", championID, err)
	}
	return meta, nil
}
