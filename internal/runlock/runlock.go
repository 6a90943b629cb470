package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld reports that another process already holds the run lock.
var ErrHeld = errors.New("another portfolioctl run is already in progress")

// Lock is an advisory file lock guarding a migration run. Concurrent runs
// would race on renames and double-submit records, so exactly one process may
// hold the lock at a time.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the lock under the given directory without blocking. It
// returns ErrHeld when another process has it.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path := filepath.Join(dir, "portfolioctl.lock")
	lock := flock.New(path)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return &Lock{path: path, lock: lock}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. Safe to call once per acquired lock.
func (l *Lock) Release() error {
	return l.lock.Unlock()
}
