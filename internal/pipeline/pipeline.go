// Package pipeline sequences one run: load spec rows, group them into
// units, bring the working copy to a clean baseline, generate and write one
// artifact per unit, then stage, commit and push. Execution is sequential
// and fail-fast; artifacts already on disk when a later step fails stay on
// disk, unstaged and uncommitted.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/specforge/specforge/internal/artifact"
	"github.com/specforge/specforge/internal/gitsync"
	"github.com/specforge/specforge/internal/oracle"
	"github.com/specforge/specforge/internal/prompt"
	"github.com/specforge/specforge/internal/spec"
)

// Synchronizer is the repository side of the pipeline. Satisfied by
// gitsync.Syncer; tests substitute a double.
type Synchronizer interface {
	Acquire(ctx context.Context) error
	Sync(ctx context.Context, files []string) (gitsync.SyncResult, error)
}

// Pipeline wires the run's collaborators together.
type Pipeline struct {
	Loader spec.Loader
	Oracle oracle.Generator
	Syncer Synchronizer // nil skips acquisition and sync (plain output dir)
	Logger *slog.Logger

	// SkipSync acquires the clean baseline but stages and pushes nothing.
	// Generate-only runs into the working copy use this so artifacts never
	// land on top of a stale clone.
	SkipSync bool

	WorkDir   string // working copy root (or plain output root when Syncer is nil)
	ModelsDir string // artifact directory inside WorkDir, e.g. "models"
}

// Result summarizes a completed run.
type Result struct {
	Units        int
	Files        []string
	FilesChanged int
	Committed    bool
	CommitHash   string
}

// Run executes the pipeline and returns the first failure, if any.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rows, err := p.Loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading spec: %w", err)
	}

	units, err := spec.GroupRows(rows)
	if err != nil {
		return nil, err
	}
	logger.Info("spec loaded", "rows", len(rows), "units", len(units))

	if p.Syncer != nil {
		if err := p.Syncer.Acquire(ctx); err != nil {
			return nil, err
		}
		logger.Info("working copy acquired", "path", p.WorkDir)
	}

	result := &Result{Units: len(units)}
	for _, u := range units {
		logger.Info("generating", "target", u.Key.String(), "columns", len(u.Rows))

		req := prompt.Build(u)
		text, err := p.Oracle.Generate(ctx, req.Render())
		if err != nil {
			return nil, err
		}

		dir := filepath.Join(p.WorkDir, p.ModelsDir, u.Key.Dataset)
		written, err := artifact.Write(dir, u.Key.Table, text)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, written.Path)
		if written.Changed {
			result.FilesChanged++
		}
		logger.Debug("artifact written", "path", written.Path, "changed", written.Changed)
	}

	if p.Syncer != nil && !p.SkipSync {
		sync, err := p.Syncer.Sync(ctx, result.Files)
		if err != nil {
			return nil, err
		}
		result.Committed = sync.Committed
		result.CommitHash = sync.CommitHash
		if sync.Committed {
			logger.Info("pushed", "commit", sync.CommitHash, "files", len(result.Files))
		} else {
			logger.Info("no changes detected, skipping commit")
		}
	}

	return result, nil
}
