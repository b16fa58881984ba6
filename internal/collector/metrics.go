package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchesArchived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lol_collector_matches_archived_total",
		Help: "Total number of match payloads written to the archive",
	})

	playersProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lol_collector_players_processed_total",
		Help: "Total number of players whose match history was fetched",
	})

	duplicatesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lol_collector_duplicates_skipped_total",
		Help: "Total number of duplicate players and matches skipped",
	}, []string{"kind"})

	fetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lol_collector_fetch_failures_total",
		Help: "Total number of matches that could not be fetched",
	})
)
