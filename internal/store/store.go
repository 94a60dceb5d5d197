// Package store persists the grant snapshot between runs and keeps a
// run-history archive.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/david/grant-tracker/internal/models"
)

// Load reads the snapshot at path. A missing file is not an error: the
// first run starts from an empty baseline.
func Load(path string) ([]models.Grant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var grants []models.Grant
	if err := json.Unmarshal(data, &grants); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	return grants, nil
}

// Save writes the snapshot atomically: the JSON is written to a temp file
// in the target directory and renamed into place, so a crash mid-write
// never corrupts the previous snapshot.
func Save(path string, grants []models.Grant) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(grants, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
