// Package artifact persists generated query text to its destination file.
package artifact

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// WriteError reports a filesystem failure while persisting an artifact.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing artifact %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Result describes one persisted artifact.
type Result struct {
	Path    string // absolute path written
	Changed bool   // false when the file already held identical bytes
}

// Write persists text to <dir>/<table>.sql with a single trailing newline,
// creating intermediate directories as needed. Writing identical content is
// a no-op reported through Result.Changed, so repeated runs never touch
// unchanged files.
func Write(dir, table, text string) (Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, &WriteError{Path: dir, Err: err}
	}

	path := filepath.Join(dir, table+".sql")
	abs, err := filepath.Abs(path)
	if err != nil {
		return Result{}, &WriteError{Path: path, Err: err}
	}

	content := append(bytes.TrimSpace([]byte(text)), '\n')

	existing, err := os.ReadFile(abs)
	if err == nil && bytes.Equal(existing, content) {
		return Result{Path: abs, Changed: false}, nil
	}

	if err := os.WriteFile(abs, content, 0o644); err != nil {
		return Result{}, &WriteError{Path: abs, Err: err}
	}
	return Result{Path: abs, Changed: true}, nil
}
