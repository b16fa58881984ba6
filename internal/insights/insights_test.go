package insights

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riftlab/build-optimizer/internal/dataset"
	"github.com/riftlab/build-optimizer/internal/models"
)

func testMeta() *models.ChampionMetadata {
	return &models.ChampionMetadata{
		ChampionID:     80,
		AvailableItems: []int{100, 200, 300},
		ItemSlots:      models.ItemSlotNames()[:3],
		WinRate:        0.5,
		TotalGames:     4,
		NumItems:       3,
		NumSlots:       3,
	}
}

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	ds := dataset.New(80, models.ItemSlotNames()[:3], models.StatColumns)
	rows := []struct {
		build []int
		stats map[string]float64
		win   bool
	}{
		{[]int{100, 200, 0}, map[string]float64{"kills": 10, "deaths": 1, "assists": 4, "goldEarned": 14000, "totalDamageDealtToChampions": 25000, "timePlayed": 1200}, true},
		{[]int{100, 200, 0}, map[string]float64{"kills": 8, "deaths": 3, "assists": 6, "goldEarned": 12000, "totalDamageDealtToChampions": 20000, "timePlayed": 1800}, true},
		{[]int{100, 300, 0}, map[string]float64{"kills": 2, "deaths": 7, "assists": 2, "goldEarned": 8000, "totalDamageDealtToChampions": 9000, "timePlayed": 2400}, false},
		{[]int{0, 0, 0}, map[string]float64{"kills": 0, "deaths": 9, "assists": 1, "goldEarned": 6000, "totalDamageDealtToChampions": 5000, "timePlayed": 900}, false},
	}
	for _, r := range rows {
		if err := ds.Append(r.build, r.stats, r.win); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	return ds
}

func TestGenerate(t *testing.T) {
	ins, err := Generate(testDataset(t), testMeta())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if ins.ChampionInfo.ChampionID != 80 || ins.ChampionInfo.TotalRecords != 4 {
		t.Errorf("champion info wrong: %+v", ins.ChampionInfo)
	}
	if ins.ChampionInfo.Name != "Champion 80" {
		t.Errorf("name = %q, want fallback name", ins.ChampionInfo.Name)
	}

	if got, want := ins.PerformanceStats.AvgKills, 5.0; got != want {
		t.Errorf("avg_kills = %v, want %v", got, want)
	}
	if got, want := ins.PerformanceStats.AvgGold, 10000.0; got != want {
		t.Errorf("avg_gold = %v, want %v", got, want)
	}
	// KDA per game: 7, 3.5, 0.5, 0.1 -> mean 2.775.
	if math.Abs(ins.PerformanceStats.AvgKDA-2.775) > 1e-9 {
		t.Errorf("avg_kda = %v, want 2.775", ins.PerformanceStats.AvgKDA)
	}
}

func TestGenerateTopItems(t *testing.T) {
	ins, err := Generate(testDataset(t), testMeta())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(ins.TopItems) != 3 {
		t.Fatalf("expected 3 items, got %v", ins.TopItems)
	}
	top := ins.TopItems[0]
	if top.ID != 100 || top.Count != 3 {
		t.Errorf("top item = %+v, want item 100 used 3 times", top)
	}
	if top.Usage != 75.0 {
		t.Errorf("usage = %v, want 75.0", top.Usage)
	}
	if ins.TopItems[1].ID != 200 || ins.TopItems[1].Count != 2 {
		t.Errorf("second item = %+v, want item 200 used twice", ins.TopItems[1])
	}
}

func TestGenerateCorrelationsAndDiversity(t *testing.T) {
	ins, err := Generate(testDataset(t), testMeta())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Games with KDA above 2.0 are the two wins.
	highKDA, ok := ins.WinRateCorrelations["high_kda"]
	if !ok {
		t.Fatal("missing high_kda split")
	}
	if highKDA.Games != 2 || highKDA.WinRate != 1.0 {
		t.Errorf("high_kda = %+v, want 2 games at 100%% win rate", highKDA)
	}
	if highKDA.Threshold != 2.0 {
		t.Errorf("high_kda threshold = %v, want 2.0", highKDA.Threshold)
	}

	// Builds: {100,200} x2, {100,300}, {} -> 3 unique of 4 games.
	if ins.BuildDiversity.UniqueBuilds != 3 || ins.BuildDiversity.TotalGames != 4 {
		t.Errorf("build diversity = %+v", ins.BuildDiversity)
	}
	if ins.BuildDiversity.DiversityPercentage != 75.0 {
		t.Errorf("diversity = %v, want 75.0", ins.BuildDiversity.DiversityPercentage)
	}

	if len(ins.GameDuration) != 3 {
		t.Errorf("expected short/medium/long duration splits, got %v", ins.GameDuration)
	}
}

func TestGenerateRejectsEmptyDataset(t *testing.T) {
	ds := dataset.New(80, models.ItemSlotNames()[:3], models.StatColumns)
	if _, err := Generate(ds, testMeta()); err == nil {
		t.Error("expected error for empty dataset")
	}
}

func TestGenerateRejectsChampionMismatch(t *testing.T) {
	meta := testMeta()
	meta.ChampionID = 99
	if _, err := Generate(testDataset(t), meta); err == nil {
		t.Error("expected error for champion mismatch")
	}
}

func TestRenderFitnessChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitness.html")
	ga := []float64{0.5, 0.6, 0.65}
	de := []float64{0.4, 0.55, 0.7}

	if err := RenderFitnessChart(80, ga, de, path); err != nil {
		t.Fatalf("RenderFitnessChart failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading chart: %v", err)
	}
	html := string(content)
	if !strings.Contains(html, "Genetic Algorithm") || !strings.Contains(html, "Differential Evolution") {
		t.Error("chart is missing a series")
	}
}
