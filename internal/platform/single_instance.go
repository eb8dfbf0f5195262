package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock.
type InstanceGuard struct {
	lock *flock.Flock
}

// AcquireSingleInstance takes an exclusive file lock named after appName in dir.
func AcquireSingleInstance(dir, appName string) (*InstanceGuard, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	lock := flock.New(filepath.Join(dir, lockFileName(appName)))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lock.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: lock held at %s", ErrAlreadyRunning, lock.Path())
	}
	return &InstanceGuard{lock: lock}, nil
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.lock == nil {
		return nil
	}
	return guard.lock.Unlock()
}

// Path returns the lock file location.
func (guard *InstanceGuard) Path() string {
	if guard == nil || guard.lock == nil {
		return ""
	}
	return guard.lock.Path()
}

func lockFileName(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	if name == "" {
		name = "break-reminder"
	}
	return strings.ReplaceAll(name, " ", "-") + ".lock"
}
