package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockTimeout means another process held the lock for the whole wait.
var ErrLockTimeout = errors.New("could not acquire file lock before timeout")

// FileLock serializes completion calls across trainer processes with an
// advisory lock file. Acquisition polls every 50ms up to the timeout.
type FileLock struct {
	path    string
	timeout time.Duration
}

func NewFileLock(path string, timeout time.Duration) *FileLock {
	return &FileLock{path: path, timeout: timeout}
}

// Acquire takes the lock and returns its release function. Release is safe
// to call once; the OS also drops the lock if the process dies.
func (l *FileLock) Acquire(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	fl := flock.New(l.path)
	ok, err := fl.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("lock %s: %w", l.path, err)
	}
	if !ok {
		return nil, ErrLockTimeout
	}

	return func() { _ = fl.Unlock() }, nil
}
