package website

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestSyncCopiesExistingArtifacts(t *testing.T) {
	dataDir := t.TempDir()
	websiteDir := filepath.Join(t.TempDir(), "data")

	want := `{"champion_id":80}`
	for _, name := range []string{"champion_metadata.json", "algorithm_comparison.json"} {
		if err := os.WriteFile(filepath.Join(dataDir, name), []byte(want), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
	}

	s := NewSyncer(dataDir, websiteDir, zap.NewNop().Sugar())
	results, err := s.Sync()
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	if !results["champion_metadata.json"] || !results["algorithm_comparison.json"] {
		t.Errorf("expected present artifacts to copy, got %v", results)
	}
	if results["eda_insights.json"] {
		t.Errorf("missing artifact reported as copied: %v", results)
	}

	got, err := os.ReadFile(filepath.Join(websiteDir, "champion_metadata.json"))
	if err != nil {
		t.Fatalf("reading copied file: %v", err)
	}
	if string(got) != want {
		t.Errorf("copied content = %q, want %q", got, want)
	}
}

func TestSyncFailsWhenNothingToCopy(t *testing.T) {
	s := NewSyncer(t.TempDir(), filepath.Join(t.TempDir(), "data"), zap.NewNop().Sugar())
	if _, err := s.Sync(); err == nil {
		t.Error("expected error when no artifacts exist")
	}
}
