// Package website synchronizes the optimization artifacts into the static
// site's data directory.
package website

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// artifacts lists the run outputs the website consumes, by file name.
var artifacts = []string{
	"champion_metadata.json",
	"optimal_build_results.json",
	"optimal_build_results_de.json",
	"algorithm_comparison.json",
	"eda_insights.json",
}

// Syncer copies run artifacts into the website data directory.
type Syncer struct {
	dataDir    string
	websiteDir string
	logger     *zap.SugaredLogger
}

func NewSyncer(dataDir, websiteDir string, logger *zap.SugaredLogger) *Syncer {
	return &Syncer{dataDir: dataDir, websiteDir: websiteDir, logger: logger}
}

// Sync copies every known artifact that exists, reporting per-file success.
// A missing source file is skipped with a warning, not an error; Sync fails
// only when nothing could be copied at all.
func (s *Syncer) Sync() (map[string]bool, error) {
	if err := os.MkdirAll(s.websiteDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create website data directory: %w", err)
	}

	results := make(map[string]bool, len(artifacts))
	copied := 0
	for _, name := range artifacts {
		src := filepath.Join(s.dataDir, name)
		if err := copyFile(src, filepath.Join(s.websiteDir, name)); err != nil {
			if os.IsNotExist(err) {
				s.logger.Warnw("Artifact missing, skipping", "file", name)
			} else {
				s.logger.Errorw("Failed to copy artifact", "file", name, "error", err)
			}
			results[name] = false
			continue
		}
		s.logger.Infow("Copied artifact to website", "file", name)
		results[name] = true
		copied++
	}

	if copied == 0 {
		return results, fmt.Errorf("no artifacts copied from %s", s.dataDir)
	}
	return results, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
