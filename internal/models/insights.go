package models

import "time"

// ChampionInsights is the exploratory-analysis record generated for the
// website alongside the optimization results.
type ChampionInsights struct {
	ChampionInfo        ChampionInfo             `json:"champion_info"`
	GeneratedAt         time.Time                `json:"generated_at"`
	PerformanceStats    PerformanceStats         `json:"performance_stats"`
	TopItems            []ItemUsage              `json:"top_items"`
	WinRateCorrelations map[string]WinRateSplit  `json:"win_rate_correlations"`
	GameDuration        map[string]DurationSplit `json:"game_duration"`
	BuildDiversity      BuildDiversity           `json:"build_diversity"`
}

type ChampionInfo struct {
	ChampionID   int    `json:"champion_id"`
	Name         string `json:"name"`
	TotalRecords int    `json:"total_records"`
}

type PerformanceStats struct {
	AvgKDA      float64 `json:"avg_kda"`
	AvgKills    float64 `json:"avg_kills"`
	AvgDeaths   float64 `json:"avg_deaths"`
	AvgAssists  float64 `json:"avg_assists"`
	AvgGold     float64 `json:"avg_gold"`
	AvgDuration float64 `json:"avg_duration"`
	AvgDamage   float64 `json:"avg_damage"`
}

type ItemUsage struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Usage float64 `json:"usage"`
	Count int     `json:"count"`
}

type WinRateSplit struct {
	Threshold float64 `json:"threshold,omitempty"`
	WinRate   float64 `json:"win_rate"`
	Games     int     `json:"games"`
}

type DurationSplit struct {
	WinRate     float64 `json:"win_rate"`
	AvgDuration float64 `json:"avg_duration"`
	Games       int     `json:"games"`
}

type BuildDiversity struct {
	UniqueBuilds        int     `json:"unique_builds"`
	TotalGames          int     `json:"total_games"`
	DiversityPercentage float64 `json:"diversity_percentage"`
}
