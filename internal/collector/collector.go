package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/riot"
)

// riotAPI is the slice of the Riot client the collector uses.
type riotAPI interface {
	LeagueEntries(ctx context.Context, queue, tier, division string, page int) ([]riot.LeagueEntry, error)
	MatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
	Match(ctx context.Context, matchID string) (*riot.Match, error)
}

// Options controls which ladder slices the collector walks and when it stops.
type Options struct {
	Queues           []string
	Tiers            []string
	Divisions        []string
	PagesPerDivision int
	MatchesPerPlayer int
	Threshold        int // stop once the archive holds this many matches
	CheckpointFreq   int // log progress every N archived matches
}

func DefaultOptions() Options {
	return Options{
		Queues:           []string{"RANKED_SOLO_5x5"},
		Tiers:            []string{"GRANDMASTER", "CHALLENGER"},
		Divisions:        []string{"I"},
		PagesPerDivision: 1,
		MatchesPerPlayer: 20,
		Threshold:        1000,
		CheckpointFreq:   25,
	}
}

// Collector walks ranked ladders player by player and archives every new
// match it finds.
type Collector struct {
	api     riotAPI
	archive *Archive
	dedup   Dedup
	opts    Options
	logger  *zap.SugaredLogger
}

func New(api riotAPI, archive *Archive, dedup Dedup, opts Options, logger *zap.SugaredLogger) *Collector {
	return &Collector{api: api, archive: archive, dedup: dedup, opts: opts, logger: logger}
}

// Run collects until the archive reaches the threshold, the ladder slices are
// exhausted, or the context is canceled. Already processed divisions and
// players are skipped, so an interrupted run resumes where it stopped.
func (c *Collector) Run(ctx context.Context) error {
	archived, err := c.archive.MatchCount(ctx)
	if err != nil {
		return err
	}
	c.logger.Infow("Collector starting", "archived", archived, "threshold", c.opts.Threshold)

	for _, queue := range c.opts.Queues {
		for _, tier := range c.opts.Tiers {
			for _, division := range c.opts.Divisions {
				if archived >= c.opts.Threshold {
					c.logger.Infow("Threshold reached", "archived", archived)
					return nil
				}
				archived, err = c.collectDivision(ctx, queue, tier, division, archived)
				if err != nil {
					return err
				}
			}
		}
	}

	c.logger.Infow("Collector finished", "archived", archived)
	return nil
}

func (c *Collector) collectDivision(ctx context.Context, queue, tier, division string, archived int) (int, error) {
	key := fmt.Sprintf("%s/%s/%s", queue, tier, division)
	done, err := c.archive.IsDivisionProcessed(ctx, key)
	if err != nil {
		return archived, err
	}
	if done {
		c.logger.Debugw("Division already processed", "division", key)
		return archived, nil
	}

	for page := 1; page <= c.opts.PagesPerDivision; page++ {
		entries, err := c.api.LeagueEntries(ctx, queue, tier, division, page)
		if err != nil {
			return archived, fmt.Errorf("failed to fetch %s page %d: %w", key, page, err)
		}
		if len(entries) == 0 {
			break
		}
		c.logger.Infow("Fetched league page", "division", key, "page", page, "entries", len(entries))

		for _, entry := range entries {
			if archived >= c.opts.Threshold {
				return archived, nil
			}
			archived, err = c.collectPlayer(ctx, entry.PUUID, archived)
			if err != nil {
				return archived, err
			}
		}
	}

	if err := c.archive.MarkDivisionProcessed(ctx, key); err != nil {
		return archived, err
	}
	return archived, nil
}

func (c *Collector) collectPlayer(ctx context.Context, puuid string, archived int) (int, error) {
	if puuid == "" {
		return archived, nil
	}

	seen, err := c.dedup.SeenPlayer(ctx, puuid)
	if err != nil {
		return archived, err
	}
	if !seen {
		done, err := c.archive.IsPlayerProcessed(ctx, puuid)
		if err != nil {
			return archived, err
		}
		seen = done
	}
	if seen {
		duplicatesSkipped.WithLabelValues("player").Inc()
		return archived, nil
	}

	ids, err := c.api.MatchIDs(ctx, puuid, c.opts.MatchesPerPlayer)
	if err != nil {
		return archived, fmt.Errorf("failed to fetch match ids for player: %w", err)
	}

	for _, matchID := range ids {
		if archived >= c.opts.Threshold {
			break
		}
		added, err := c.collectMatch(ctx, matchID)
		if err != nil {
			return archived, err
		}
		if added {
			archived++
			matchesArchived.Inc()
			if c.opts.CheckpointFreq > 0 && archived%c.opts.CheckpointFreq == 0 {
				c.logger.Infow("Checkpoint", "archived", archived, "threshold", c.opts.Threshold)
			}
		}
	}

	if err := c.archive.MarkPlayerProcessed(ctx, puuid); err != nil {
		return archived, err
	}
	playersProcessed.Inc()
	return archived, nil
}

// collectMatch fetches and archives one match, reporting whether it was new.
// A match that vanished from the API (404) is recorded as failed, not fatal.
func (c *Collector) collectMatch(ctx context.Context, matchID string) (bool, error) {
	seen, err := c.dedup.SeenMatch(ctx, matchID)
	if err != nil {
		return false, err
	}
	if !seen {
		has, err := c.archive.HasMatch(ctx, matchID)
		if err != nil {
			return false, err
		}
		seen = has
	}
	if seen {
		duplicatesSkipped.WithLabelValues("match").Inc()
		return false, nil
	}

	match, err := c.api.Match(ctx, matchID)
	if err != nil {
		var nf *riot.NotFoundError
		if errors.As(err, &nf) {
			fetchFailures.Inc()
			c.logger.Warnw("Match not found, skipping", "matchID", matchID)
			return false, c.archive.RecordFailure(ctx, matchID, "not found")
		}
		return false, fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}

	payload, err := json.Marshal(match)
	if err != nil {
		return false, fmt.Errorf("failed to encode match %s: %w", matchID, err)
	}
	if err := c.archive.SaveMatch(ctx, matchID, payload); err != nil {
		return false, err
	}
	return true, nil
}
