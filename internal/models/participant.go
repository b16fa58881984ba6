package models

// ParticipantRow is one player's flattened line from a match payload, the
// unit stored in ClickHouse and consumed by the feature store.
type ParticipantRow struct {
	GameID       int64
	GameDuration int32
	ChampionID   int32
	ChampionName string
	TeamID       int32
	Win          bool

	Items [NumItemSlots]int32

	Kills                       int32
	Deaths                      int32
	Assists                     int32
	TotalMinionsKilled          int32
	GoldEarned                  int32
	GoldSpent                   int32
	TotalDamageDealtToChampions int32
	TotalDamageTaken            int32
	VisionScore                 int32
	ChampLevel                  int32
	TimePlayed                  int32
	DamageDealtToTurrets        int32
	WardsPlaced                 int32
	LargestKillingSpree         int32
}

// NumItemSlots is fixed by the game client: six item slots plus the trinket.
const NumItemSlots = 7

// ItemSlotNames returns the canonical slot column names in order.
func ItemSlotNames() []string {
	return []string{"item0", "item1", "item2", "item3", "item4", "item5", "item6"}
}

// StatColumns is the canonical list of non-item features the model trains
// on, in feature-vector order after the item slots.
var StatColumns = []string{
	"kills", "deaths", "assists", "totalMinionsKilled", "goldEarned",
	"totalDamageDealtToChampions", "visionScore", "champLevel",
	"timePlayed", "damageDealtToTurrets",
}

// Stat returns the named statistic from the row, and whether the row carries
// that column at all.
func (r *ParticipantRow) Stat(name string) (float64, bool) {
	switch name {
	case "kills":
		return float64(r.Kills), true
	case "deaths":
		return float64(r.Deaths), true
	case "assists":
		return float64(r.Assists), true
	case "totalMinionsKilled":
		return float64(r.TotalMinionsKilled), true
	case "goldEarned":
		return float64(r.GoldEarned), true
	case "totalDamageDealtToChampions":
		return float64(r.TotalDamageDealtToChampions), true
	case "visionScore":
		return float64(r.VisionScore), true
	case "champLevel":
		return float64(r.ChampLevel), true
	case "timePlayed":
		return float64(r.TimePlayed), true
	case "damageDealtToTurrets":
		return float64(r.DamageDealtToTurrets), true
	}
	return 0, false
}
