// Package store loads the file-backed inputs of the CLI: financial snapshots
// and keyword rule overrides.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"fjacquet/finassist/internal/models"
)

// LoadError reports a file that could not be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FindFile looks for filename in the standard locations: as given, ./config,
// ./data and ~/.config/finassist.
func FindFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("data", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "finassist", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadSnapshot reads a snapshot file. Files ending in .json are decoded as
// JSON, everything else as YAML. An empty file is an empty snapshot.
func LoadSnapshot(path string) (models.Snapshot, error) {
	var snap models.Snapshot

	resolved, err := FindFile(path)
	if err != nil {
		return snap, &LoadError{Path: path, Err: err}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return snap, &LoadError{Path: resolved, Err: err}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return snap, nil
	}

	if err := decode(resolved, data, &snap); err != nil {
		return models.Snapshot{}, &LoadError{Path: resolved, Err: err}
	}
	return snap, nil
}

func decode(path string, data []byte, v interface{}) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}
