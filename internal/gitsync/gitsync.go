// Package gitsync reconciles generated artifacts with a remote repository.
//
// Every run starts from a clean baseline: the working copy is cloned fresh
// or hard-reset to the remote branch tip, so leftovers from a crashed prior
// run can never leak into a commit. Artifacts are staged individually and a
// single commit is created and pushed only when the working copy is dirty.
package gitsync

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	commitMessage = "Auto-generate BigQuery SQL models"
	authorName    = "specforge"
	authorEmail   = "specforge@noreply.local"
)

// SyncError reports a failed git operation, including git's own output.
type SyncError struct {
	Op     string // clone, fetch, reset, stage, commit, push, status
	Detail string
	Err    error
}

func (e *SyncError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("git %s failed: %s: %v", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("git %s failed: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// SyncResult reports what the synchronizer did.
type SyncResult struct {
	Committed  bool
	CommitHash string
}

// Syncer owns one working copy for the duration of a run. At most one run
// may operate against a given path at a time.
type Syncer struct {
	URL    string
	Branch string
	Path   string
}

// New creates a Syncer for the given remote, branch and local path.
func New(url, branch, path string) *Syncer {
	if branch == "" {
		branch = "main"
	}
	return &Syncer{URL: url, Branch: branch, Path: filepath.Clean(path)}
}

// git runs one git command inside the working copy and returns its combined
// output.
func (s *Syncer) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.Path
	output, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(output)), err
}

// Acquire brings the working copy to the remote branch tip. A missing copy
// is cloned; an existing one is fetched, checked out and hard-reset,
// discarding any local drift.
func (s *Syncer) Acquire(ctx context.Context) error {
	if _, err := os.Stat(filepath.Join(s.Path, ".git")); os.IsNotExist(err) {
		cmd := exec.CommandContext(ctx, "git", "clone", "--branch", s.Branch, "--single-branch", s.URL, s.Path)
		if output, err := cmd.CombinedOutput(); err != nil {
			return &SyncError{Op: "clone", Detail: strings.TrimSpace(string(output)), Err: err}
		}
		return nil
	}

	if output, err := s.git(ctx, "fetch", "origin", s.Branch); err != nil {
		return &SyncError{Op: "fetch", Detail: output, Err: err}
	}
	if output, err := s.git(ctx, "checkout", s.Branch); err != nil {
		return &SyncError{Op: "checkout", Detail: output, Err: err}
	}
	if output, err := s.git(ctx, "reset", "--hard", "origin/"+s.Branch); err != nil {
		return &SyncError{Op: "reset", Detail: output, Err: err}
	}
	return nil
}

// Stage adds each file to the index. Paths must resolve inside the working
// copy root; anything else is a programming error and fails immediately.
func (s *Syncer) Stage(ctx context.Context, files []string) error {
	root, err := filepath.Abs(s.Path)
	if err != nil {
		return &SyncError{Op: "stage", Detail: s.Path, Err: err}
	}

	for _, f := range files {
		rel, err := s.relToRoot(root, f)
		if err != nil {
			return err
		}
		if output, err := s.git(ctx, "add", "--", rel); err != nil {
			return &SyncError{Op: "stage", Detail: output, Err: err}
		}
	}
	return nil
}

func (s *Syncer) relToRoot(root, file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", &SyncError{Op: "stage", Detail: file, Err: err}
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &SyncError{Op: "stage", Detail: file, Err: fmt.Errorf("path is outside the working copy %s", root)}
	}
	// The root itself would stage everything, untracked leftovers included.
	if rel == "." {
		return "", &SyncError{Op: "stage", Detail: file, Err: fmt.Errorf("refusing to stage the working copy root %s", root)}
	}
	return rel, nil
}

// IsDirty reports whether the working copy has staged or unstaged changes
// to tracked content. Untracked files do not count: they are never staged by
// this run and must not trigger a commit.
func (s *Syncer) IsDirty(ctx context.Context) (bool, error) {
	output, err := s.git(ctx, "status", "--porcelain")
	if err != nil {
		return false, &SyncError{Op: "status", Detail: output, Err: err}
	}
	for _, line := range strings.Split(output, "\n") {
		if line == "" || strings.HasPrefix(line, "??") {
			continue
		}
		return true, nil
	}
	return false, nil
}

// CommitAndPush creates a single commit with the fixed message and pushes it
// to the tracked branch. Callers check IsDirty first.
func (s *Syncer) CommitAndPush(ctx context.Context) (string, error) {
	output, err := s.git(ctx,
		"-c", "user.name="+authorName,
		"-c", "user.email="+authorEmail,
		"commit", "-m", commitMessage)
	if err != nil {
		return "", &SyncError{Op: "commit", Detail: output, Err: err}
	}

	hash, err := s.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", &SyncError{Op: "commit", Detail: hash, Err: err}
	}

	if output, err := s.git(ctx, "push", "origin", s.Branch); err != nil {
		return "", &SyncError{Op: "push", Detail: output, Err: err}
	}
	return hash, nil
}

// Sync stages the given files and commits and pushes them when anything
// changed. A clean working copy is a successful no-op. Acquire must have run
// earlier in the same pipeline run.
func (s *Syncer) Sync(ctx context.Context, files []string) (SyncResult, error) {
	if err := s.Stage(ctx, files); err != nil {
		return SyncResult{}, err
	}

	dirty, err := s.IsDirty(ctx)
	if err != nil {
		return SyncResult{}, err
	}
	if !dirty {
		return SyncResult{}, nil
	}

	hash, err := s.CommitAndPush(ctx)
	if err != nil {
		return SyncResult{}, err
	}
	return SyncResult{Committed: true, CommitHash: hash}, nil
}
