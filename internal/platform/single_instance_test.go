package platform

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestAcquireSingleInstanceRejectsSecondHolder(t *testing.T) {
	dir := t.TempDir()

	first, err := AcquireSingleInstance(dir, "Break Reminder")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if want := filepath.Join(dir, "break-reminder.lock"); first.Path() != want {
		t.Fatalf("unexpected lock path %q, want %q", first.Path(), want)
	}

	if _, err := AcquireSingleInstance(dir, "Break Reminder"); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	second, err := AcquireSingleInstance(dir, "Break Reminder")
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	_ = second.Release()
}

func TestNilGuardIsSafe(t *testing.T) {
	var guard *InstanceGuard
	if err := guard.Release(); err != nil {
		t.Fatalf("expected nil release error, got %v", err)
	}
	if guard.Path() != "" {
		t.Fatal("expected empty path for nil guard")
	}
}
