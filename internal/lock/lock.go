// Package lock prevents two runs from operating against the same working
// copy at the same time.
package lock

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/specforge/specforge/internal/config"
)

const lockDir = "~/.specforge/locks"

// PathFor returns the lock file path guarding the given working copy.
func PathFor(workdir string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(workdir)))
	name := fmt.Sprintf("%x.lock", sum[:8])
	return filepath.Join(config.ExpandHome(lockDir), name)
}

// Acquire creates the lock file with the current process PID. A lock held by
// a dead process is taken over.
func Acquire(path string) error {
	data, err := os.ReadFile(path)
	if err == nil {
		pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err == nil && isProcessRunning(pid) {
			return fmt.Errorf("another specforge run is using this working copy (PID %d)", pid)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating lock directory: %w", err)
	}

	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

// Release removes the lock file.
func Release(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil
}
