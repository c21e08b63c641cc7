// Package state records the outcome of the most recent run so `specforge
// status` can report it. The record is informational only; the pipeline
// never reads it back.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/specforge/specforge/internal/config"
)

const DefaultPath = "~/.specforge/state.yaml"

// RunRecord is the persisted summary of one pipeline run.
type RunRecord struct {
	StartedAt    time.Time `yaml:"started_at"`
	FinishedAt   time.Time `yaml:"finished_at"`
	Units        int       `yaml:"units"`
	FilesWritten int       `yaml:"files_written"`
	FilesChanged int       `yaml:"files_changed"`
	Committed    bool      `yaml:"committed"`
	CommitHash   string    `yaml:"commit_hash,omitempty"`
	Error        string    `yaml:"error,omitempty"`
}

// Load reads the last run record from disk.
func Load(path string) (*RunRecord, error) {
	if path == "" {
		path = config.ExpandHome(DefaultPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}

	rec := &RunRecord{}
	if err := yaml.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}
	return rec, nil
}

// Save persists the run record to disk.
func (r *RunRecord) Save(path string) error {
	if path == "" {
		path = config.ExpandHome(DefaultPath)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
