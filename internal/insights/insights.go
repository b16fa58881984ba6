// Package insights derives the exploratory statistics published next to the
// optimization results: performance averages, item usage, win-rate splits and
// build diversity.
package insights

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/riftlab/build-optimizer/internal/dataset"
	"github.com/riftlab/build-optimizer/internal/models"
)

const highKDAThreshold = 2.0

// Generate computes the insights record for one champion's dataset.
func Generate(ds *dataset.Dataset, meta *models.ChampionMetadata) (*models.ChampionInsights, error) {
	if ds.Len() == 0 {
		return nil, fmt.Errorf("no games for champion %d: run the processor first", meta.ChampionID)
	}
	if ds.ChampionID() != meta.ChampionID {
		return nil, fmt.Errorf("dataset is for champion %d, metadata for %d", ds.ChampionID(), meta.ChampionID)
	}

	kills := column(ds, "kills")
	deaths := column(ds, "deaths")
	assists := column(ds, "assists")
	gold := column(ds, "goldEarned")
	damage := column(ds, "totalDamageDealtToChampions")
	duration := column(ds, "timePlayed")
	wins := ds.Wins()

	kda := make([]float64, ds.Len())
	for i := range kda {
		kda[i] = (kills[i] + assists[i]) / (deaths[i] + 1)
	}

	name := meta.ChampionName
	if name == "" {
		name = fmt.Sprintf("Champion %d", meta.ChampionID)
	}

	return &models.ChampionInsights{
		ChampionInfo: models.ChampionInfo{
			ChampionID:   meta.ChampionID,
			Name:         name,
			TotalRecords: ds.Len(),
		},
		GeneratedAt: time.Now().UTC(),
		PerformanceStats: models.PerformanceStats{
			AvgKDA:      stat.Mean(kda, nil),
			AvgKills:    stat.Mean(kills, nil),
			AvgDeaths:   stat.Mean(deaths, nil),
			AvgAssists:  stat.Mean(assists, nil),
			AvgGold:     stat.Mean(gold, nil),
			AvgDuration: stat.Mean(duration, nil),
			AvgDamage:   stat.Mean(damage, nil),
		},
		TopItems: topItems(ds, 5),
		WinRateCorrelations: map[string]models.WinRateSplit{
			"high_kda": {
				Threshold: highKDAThreshold,
				WinRate:   winRateAbove(kda, wins, highKDAThreshold, meta.WinRate),
				Games:     countAbove(kda, highKDAThreshold),
			},
			"high_gold": {
				WinRate: winRateAbove(gold, wins, median(gold), meta.WinRate),
				Games:   countAbove(gold, median(gold)),
			},
			"high_damage": {
				WinRate: winRateAbove(damage, wins, median(damage), meta.WinRate),
				Games:   countAbove(damage, median(damage)),
			},
		},
		GameDuration:   durationSplits(duration, wins, meta.WinRate),
		BuildDiversity: buildDiversity(ds),
	}, nil
}

func column(ds *dataset.Dataset, name string) []float64 {
	if vals, ok := ds.Column(name); ok {
		return vals
	}
	return make([]float64, ds.Len())
}

// topItems counts item occurrences across every slot of every game and
// returns the most used ones, usage expressed as percent of games.
func topItems(ds *dataset.Dataset, limit int) []models.ItemUsage {
	counts := make(map[int]int)
	for _, slot := range ds.FeatureColumns()[:ds.NumSlots()] {
		vals, _ := ds.Column(slot)
		for _, v := range vals {
			if item := int(v); item != 0 {
				counts[item]++
			}
		}
	}

	usage := make([]models.ItemUsage, 0, len(counts))
	for item, count := range counts {
		usage = append(usage, models.ItemUsage{
			ID:    item,
			Name:  fmt.Sprintf("Item %d", item),
			Usage: float64(count) / float64(ds.Len()) * 100,
			Count: count,
		})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Count != usage[j].Count {
			return usage[i].Count > usage[j].Count
		}
		return usage[i].ID < usage[j].ID
	})

	if len(usage) > limit {
		usage = usage[:limit]
	}
	return usage
}

// winRateAbove is the win rate of games where the metric exceeds the
// threshold, falling back to the baseline when no game qualifies.
func winRateAbove(vals []float64, wins []bool, threshold, fallback float64) float64 {
	games, won := 0, 0
	for i, v := range vals {
		if v > threshold {
			games++
			if wins[i] {
				won++
			}
		}
	}
	if games == 0 {
		return fallback
	}
	return float64(won) / float64(games)
}

func countAbove(vals []float64, threshold float64) int {
	n := 0
	for _, v := range vals {
		if v > threshold {
			n++
		}
	}
	return n
}

func median(vals []float64) float64 {
	return quantile(vals, 0.5)
}

func quantile(vals []float64, p float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// durationSplits buckets games into short/medium/long thirds by time played
// and reports win rate and average duration in minutes per bucket.
func durationSplits(duration []float64, wins []bool, fallback float64) map[string]models.DurationSplit {
	q33 := quantile(duration, 0.33)
	q67 := quantile(duration, 0.67)

	split := func(in func(float64) bool) models.DurationSplit {
		games, won := 0, 0
		total := 0.0
		for i, d := range duration {
			if !in(d) {
				continue
			}
			games++
			total += d
			if wins[i] {
				won++
			}
		}
		if games == 0 {
			return models.DurationSplit{WinRate: fallback}
		}
		return models.DurationSplit{
			WinRate:     float64(won) / float64(games),
			AvgDuration: total / float64(games) / 60,
			Games:       games,
		}
	}

	return map[string]models.DurationSplit{
		"short_games":  split(func(d float64) bool { return d < q33 }),
		"medium_games": split(func(d float64) bool { return d >= q33 && d <= q67 }),
		"long_games":   split(func(d float64) bool { return d > q67 }),
	}
}

// buildDiversity counts distinct builds, treating a build as the sorted
// multiset of its nonzero items.
func buildDiversity(ds *dataset.Dataset) models.BuildDiversity {
	slots := make([][]float64, ds.NumSlots())
	for i, col := range ds.FeatureColumns()[:ds.NumSlots()] {
		slots[i], _ = ds.Column(col)
	}

	unique := make(map[string]bool)
	for row := 0; row < ds.Len(); row++ {
		items := make([]int, 0, len(slots))
		for _, slot := range slots {
			if item := int(slot[row]); item != 0 {
				items = append(items, item)
			}
		}
		sort.Ints(items)
		unique[fmt.Sprint(items)] = true
	}

	return models.BuildDiversity{
		UniqueBuilds:        len(unique),
		TotalGames:          ds.Len(),
		DiversityPercentage: float64(len(unique)) / float64(ds.Len()) * 100,
	}
}
