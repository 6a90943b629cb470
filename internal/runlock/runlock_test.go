package runlock_test

import (
	"testing"

	"portfolioctl/internal/runlock"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	lock, err := runlock.Acquire(dir)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if lock.Path() == "" {
		t.Fatal("lock path must be set")
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}

	// Reacquirable after release.
	again, err := runlock.Acquire(dir)
	if err != nil {
		t.Fatalf("reacquire: %v", err)
	}
	_ = again.Release()
}
