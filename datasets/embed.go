// Package datasets ships the sample grid bundled with the binaries,
// seeded to disk on first run.
package datasets

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

//go:embed checks.json
var content embed.FS

// SampleFile is the name of the bundled dataset.
const SampleFile = "checks.json"

// Ensure seeds the bundled dataset into baseDir unless it is already
// there, and returns its path on disk. An existing file is left alone
// so deletes and saves survive restarts.
func Ensure(baseDir string) (string, error) {
	targetPath := filepath.Join(baseDir, SampleFile)

	if _, err := os.Stat(targetPath); err == nil {
		return targetPath, nil
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := content.ReadFile(SampleFile)
	if err != nil {
		return "", fmt.Errorf("failed to read bundled dataset: %w", err)
	}

	if err := os.WriteFile(targetPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to seed dataset: %w", err)
	}

	slog.Info("Seeded bundled dataset", "path", targetPath)
	return targetPath, nil
}
