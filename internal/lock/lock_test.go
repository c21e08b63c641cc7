package lock

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workdir.lock")

	if err := Acquire(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same working copy, second run: the holder (this process) is alive.
	if err := Acquire(path); err == nil {
		t.Fatal("expected second acquisition to fail while lock is held")
	}

	if err := Release(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Acquire(path); err != nil {
		t.Fatalf("expected acquisition after release: %v", err)
	}
}

func TestAcquireTakesOverStaleLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workdir.lock")

	// A PID far above any real pid_max: the holder is dead.
	if err := os.WriteFile(path, []byte(strconv.Itoa(1<<30)), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Acquire(path); err != nil {
		t.Fatalf("expected stale lock takeover: %v", err)
	}
}

func TestReleaseMissingLock(t *testing.T) {
	if err := Release(filepath.Join(t.TempDir(), "nope.lock")); err != nil {
		t.Fatalf("expected release of missing lock to succeed: %v", err)
	}
}

func TestPathForIsStablePerWorkdir(t *testing.T) {
	a := PathFor("/tmp/repo")
	b := PathFor("/tmp/repo/")
	c := PathFor("/tmp/other")

	if a != b {
		t.Errorf("expected cleaned paths to share a lock: %s vs %s", a, b)
	}
	if a == c {
		t.Error("expected distinct working copies to get distinct locks")
	}
}
