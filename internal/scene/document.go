package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

// Load reads a scene document from disk.
func Load(path string) ([]model.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	var scenes []model.Scene
	if err := json.Unmarshal(data, &scenes); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	return scenes, nil
}

// Save writes the scene document atomically via a temp file rename.
func Save(path string, scenes []model.Scene) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create scene dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "scenes-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp scene file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	data, err := json.MarshalIndent(scenes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scenes: %w", err)
	}
	if _, err := tmpFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write scene file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close scene file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write scene file: %w", err)
	}
	return nil
}
