package processor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/riftlab/build-optimizer/internal/models"
)

// WriteMetadata persists the champion metadata record next to the other run
// artifacts.
func WriteMetadata(dir string, meta *models.ChampionMetadata) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	path := filepath.Join(dir, "champion_metadata.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

// ReadMetadata loads the metadata record a processor run wrote earlier.
func ReadMetadata(dir string) (*models.ChampionMetadata, error) {
	path := filepath.Join(dir, "champion_metadata.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("metadata not found at %s: run the processor first", path)
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var meta models.ChampionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return &meta, nil
}
