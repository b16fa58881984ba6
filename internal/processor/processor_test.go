package processor

import (
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/riftlab/build-optimizer/internal/models"
	"github.com/riftlab/build-optimizer/internal/riot"
)

func matchPayload(t *testing.T, gameID int64, participants ...riot.Participant) []byte {
	t.Helper()
	payload, err := json.Marshal(riot.Match{
		Metadata: riot.MatchMetadata{MatchID: "KR_test"},
		Info: riot.MatchInfo{
			GameID:       gameID,
			GameDuration: 1800,
			Participants: participants,
		},
	})
	if err != nil {
		t.Fatalf("marshal match: %v", err)
	}
	return payload
}

func participant(championID int32, win bool, items ...int32) riot.Participant {
	p := riot.Participant{
		ChampionID:   championID,
		ChampionName: "Test",
		TeamID:       100,
		Win:          win,
		Kills:        5,
		GoldEarned:   12000,
	}
	slots := []*int32{&p.Item0, &p.Item1, &p.Item2, &p.Item3, &p.Item4, &p.Item5, &p.Item6}
	for i, item := range items {
		if i < len(slots) {
			*slots[i] = item
		}
	}
	return p
}

func TestFlatten(t *testing.T) {
	p := New(zap.NewNop().Sugar())

	rows := p.Flatten("KR_1", matchPayload(t, 42,
		participant(80, true, 3074, 3071),
		participant(157, false, 3031),
	))

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	r := rows[0]
	if r.GameID != 42 || r.ChampionID != 80 || !r.Win {
		t.Errorf("row = %+v", r)
	}
	if r.Items[0] != 3074 || r.Items[1] != 3071 || r.Items[2] != 0 {
		t.Errorf("items = %v", r.Items)
	}

	processed, skipped := p.Counts()
	if processed != 1 || skipped != 0 {
		t.Errorf("counts = %d processed, %d skipped", processed, skipped)
	}
}

func TestFlattenSkipsMalformedPayloads(t *testing.T) {
	p := New(zap.NewNop().Sugar())

	if rows := p.Flatten("KR_bad", []byte(`{not json`)); rows != nil {
		t.Errorf("expected nil rows for malformed payload, got %v", rows)
	}
	if rows := p.Flatten("KR_empty", matchPayload(t, 1)); rows != nil {
		t.Errorf("expected nil rows for match without participants, got %v", rows)
	}

	processed, skipped := p.Counts()
	if processed != 0 || skipped != 2 {
		t.Errorf("counts = %d processed, %d skipped", processed, skipped)
	}
}

func TestAnalysisAndSelection(t *testing.T) {
	p := New(zap.NewNop().Sugar())

	p.Flatten("KR_1", matchPayload(t, 1, participant(80, true, 3074), participant(157, false, 3031)))
	p.Flatten("KR_2", matchPayload(t, 2, participant(80, false, 3074, 3071)))
	p.Flatten("KR_3", matchPayload(t, 3, participant(80, true, 6672)))

	analysis := p.Analysis()
	if len(analysis) != 2 {
		t.Fatalf("expected 2 champions, got %v", analysis)
	}
	top := analysis[0]
	if top.ChampionID != 80 || top.Games != 3 || top.Wins != 2 {
		t.Errorf("top champion = %+v", top)
	}
	if top.UniqueItems != 3 {
		t.Errorf("unique items = %d, want 3", top.UniqueItems)
	}

	best, err := p.SelectBestChampion()
	if err != nil {
		t.Fatalf("SelectBestChampion failed: %v", err)
	}
	if best.ChampionID != 80 {
		t.Errorf("selected champion %d, want 80", best.ChampionID)
	}
}

func TestSelectBestChampionWithoutData(t *testing.T) {
	p := New(zap.NewNop().Sugar())
	if _, err := p.SelectBestChampion(); err == nil {
		t.Error("expected error with no data")
	}
}

func TestMetadata(t *testing.T) {
	p := New(zap.NewNop().Sugar())
	p.Flatten("KR_1", matchPayload(t, 1, participant(80, true, 3074, 3071)))
	p.Flatten("KR_2", matchPayload(t, 2, participant(80, false, 3031)))

	meta, err := p.Metadata(80)
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}

	if meta.ChampionID != 80 || meta.TotalGames != 2 {
		t.Errorf("meta = %+v", meta)
	}
	if meta.WinRate != 0.5 {
		t.Errorf("win rate = %v, want 0.5", meta.WinRate)
	}
	want := []int{3031, 3071, 3074}
	if len(meta.AvailableItems) != len(want) {
		t.Fatalf("available items = %v, want %v", meta.AvailableItems, want)
	}
	for i, item := range want {
		if meta.AvailableItems[i] != item {
			t.Fatalf("available items = %v, want sorted %v", meta.AvailableItems, want)
		}
	}
	if meta.NumSlots != models.NumItemSlots || meta.NumItems != 3 {
		t.Errorf("meta sizes = %+v", meta)
	}
}

func TestMetadataUnknownChampion(t *testing.T) {
	p := New(zap.NewNop().Sugar())
	if _, err := p.Metadata(999); err == nil {
		t.Error("expected error for champion with no data")
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	p := New(zap.NewNop().Sugar())
	p.Flatten("KR_1", matchPayload(t, 1, participant(80, true, 3074)))

	meta, err := p.Metadata(80)
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}

	dir := t.TempDir()
	if err := WriteMetadata(dir, meta); err != nil {
		t.Fatalf("WriteMetadata failed: %v", err)
	}

	got, err := ReadMetadata(dir)
	if err != nil {
		t.Fatalf("ReadMetadata failed: %v", err)
	}
	if got.ChampionID != 80 || got.NumItems != 1 {
		t.Errorf("round-tripped metadata = %+v", got)
	}
}

func TestReadMetadataMissing(t *testing.T) {
	_, err := ReadMetadata(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing metadata")
	}
	if !strings.Contains(err.Error(), "run the processor first") {
		t.Errorf("error should point at the processor, got %v", err)
	}
}
