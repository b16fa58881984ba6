package models

import "time"

// ChampionMetadata describes the champion selected for optimization and the
// item pool observed in its historical games. It is produced by the processor
// and consumed by the optimizer, the insights generator and the API.
type ChampionMetadata struct {
	ChampionID     int       `json:"champion_id" validate:"required,gt=0"`
	ChampionName   string    `json:"champion_name,omitempty"`
	AvailableItems []int     `json:"available_items" validate:"required,min=1"`
	ItemSlots      []string  `json:"item_slots" validate:"required,min=1"`
	WinRate        float64   `json:"win_rate" validate:"gte=0,lte=1"`
	TotalGames     int       `json:"total_games" validate:"gt=0"`
	NumItems       int       `json:"num_items" validate:"gt=0"`
	NumSlots       int       `json:"num_slots" validate:"gt=0"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// ChampionSummary is one row of the processor's champion analysis.
type ChampionSummary struct {
	ChampionID  int     `json:"champion_id"`
	Games       int     `json:"games"`
	Wins        int     `json:"wins"`
	WinRate     float64 `json:"win_rate"`
	UniqueItems int     `json:"unique_items"`
}
