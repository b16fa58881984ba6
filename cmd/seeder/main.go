package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/riftlab/build-optimizer/internal/collector"
	"github.com/riftlab/build-optimizer/internal/models"
	"github.com/riftlab/build-optimizer/internal/riot"
)

// Seeds the match archive with synthetic games so the processor and
// optimizer can run locally without a Riot API key.

var (
	archivePath = flag.String("archive", "data/collector.db", "collector archive path")
	matches     = flag.Int("matches", 200, "number of synthetic matches")
	seed        = flag.Uint64("seed", 1, "random seed")
)

var championPool = []int32{157, 80, 238, 91, 64, 103, 55, 38, 7, 134}

var itemPool = []int32{
	3031, 3072, 3074, 3087, 3089, 3094, 3100, 3115, 3124, 3142,
	3153, 3156, 3161, 3179, 6672, 6673, 6675, 6692, 6693, 3006,
}

func main() {
	flag.Parse()

	archive, err := collector.OpenArchive(*archivePath)
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}
	defer archive.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewPCG(*seed, *seed))

	for i := 0; i < *matches; i++ {
		matchID := fmt.Sprintf("KR_SEED_%06d", i)
		payload, err := json.Marshal(syntheticMatch(rng, matchID, int64(i)))
		if err != nil {
			log.Fatalf("Failed to marshal match: %v", err)
		}
		if err := archive.SaveMatch(ctx, matchID, payload); err != nil {
			log.Fatalf("Failed to save match %s: %v", matchID, err)
		}
	}

	count, err := archive.MatchCount(ctx)
	if err != nil {
		log.Fatalf("Failed to count matches: %v", err)
	}
	fmt.Printf("Archive now holds %d matches\n", count)
}

func syntheticMatch(rng *rand.Rand, matchID string, gameID int64) *riot.Match {
	m := &riot.Match{}
	m.Metadata.MatchID = matchID
	m.Info.GameID = gameID
	m.Info.GameDuration = 1200 + rng.Int32N(1200)
	m.Info.GameVersion = "15.1.1"
	m.Info.QueueID = 420

	for p := 0; p < 10; p++ {
		win := p < 5
		part := riot.Participant{
			PUUID:        fmt.Sprintf("seed-puuid-%d-%d", gameID, p),
			ChampionID:   championPool[rng.IntN(len(championPool))],
			ChampionName: "Seeded",
			TeamID:       int32(100 + (p/5)*100),
			Win:          win,

			Kills:                       rng.Int32N(15),
			Deaths:                      rng.Int32N(10),
			Assists:                     rng.Int32N(20),
			TotalMinionsKilled:          100 + rng.Int32N(200),
			GoldEarned:                  8000 + rng.Int32N(10000),
			GoldSpent:                   7000 + rng.Int32N(9000),
			TotalDamageDealtToChampions: 10000 + rng.Int32N(30000),
			TotalDamageTaken:            10000 + rng.Int32N(25000),
			VisionScore:                 rng.Int32N(60),
			WardsPlaced:                 rng.Int32N(25),
			ChampLevel:                  11 + rng.Int32N(8),
			TimePlayed:                  m.Info.GameDuration,
			DamageDealtToTurrets:        rng.Int32N(8000),
			LargestKillingSpree:         rng.Int32N(8),
		}
		// Winners get slightly fuller builds.
		slots := 3 + rng.IntN(3)
		if win {
			slots = 4 + rng.IntN(3)
		}
		for s := 0; s < slots && s < models.NumItemSlots-1; s++ {
			setItem(&part, s, itemPool[rng.IntN(len(itemPool))])
		}
		m.Info.Participants = append(m.Info.Participants, part)
	}
	return m
}

func setItem(p *riot.Participant, slot int, item int32) {
	switch slot {
	case 0:
		p.Item0 = item
	case 1:
		p.Item1 = item
	case 2:
		p.Item2 = item
	case 3:
		p.Item3 = item
	case 4:
		p.Item4 = item
	case 5:
		p.Item5 = item
	case 6:
		p.Item6 = item
	}
}
