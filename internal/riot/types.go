package riot

// LeagueEntry is one row of a ranked ladder page.
type LeagueEntry struct {
	PUUID        string `json:"puuid"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// Match is the subset of the match-v5 payload the pipeline consumes.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	GameID       int64         `json:"gameId"`
	GameDuration int32         `json:"gameDuration"`
	GameVersion  string        `json:"gameVersion"`
	QueueID      int           `json:"queueId"`
	Participants []Participant `json:"participants"`
}

// Participant is one player's line in a match payload.
type Participant struct {
	PUUID        string `json:"puuid"`
	ChampionID   int32  `json:"championId"`
	ChampionName string `json:"championName"`
	TeamID       int32  `json:"teamId"`
	Win          bool   `json:"win"`

	Item0 int32 `json:"item0"`
	Item1 int32 `json:"item1"`
	Item2 int32 `json:"item2"`
	Item3 int32 `json:"item3"`
	Item4 int32 `json:"item4"`
	Item5 int32 `json:"item5"`
	Item6 int32 `json:"item6"`

	Kills                       int32 `json:"kills"`
	Deaths                      int32 `json:"deaths"`
	Assists                     int32 `json:"assists"`
	TotalMinionsKilled          int32 `json:"totalMinionsKilled"`
	GoldEarned                  int32 `json:"goldEarned"`
	GoldSpent                   int32 `json:"goldSpent"`
	TotalDamageDealtToChampions int32 `json:"totalDamageDealtToChampions"`
	TotalDamageTaken            int32 `json:"totalDamageTaken"`
	VisionScore                 int32 `json:"visionScore"`
	ChampLevel                  int32 `json:"champLevel"`
	TimePlayed                  int32 `json:"timePlayed"`
	DamageDealtToTurrets        int32 `json:"damageDealtToTurrets"`
	WardsPlaced                 int32 `json:"wardsPlaced"`
	LargestKillingSpree         int32 `json:"largestKillingSpree"`
}

// Items returns the participant's item slots in slot order.
func (p *Participant) Items() [7]int32 {
	return [7]int32{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5, p.Item6}
}
