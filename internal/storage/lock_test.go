package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileLockAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trainer.lock")
	lock := NewFileLock(path, time.Second)

	release, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	release()

	// Reacquirable after release.
	release, err = lock.Acquire(context.Background())
	require.NoError(t, err)
	release()
}

func TestFileLockCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trainer.lock")
	lock := NewFileLock(path, time.Second)

	release, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	release()
}
