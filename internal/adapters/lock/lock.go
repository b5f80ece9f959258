// Package lock provides a cross-process workspace lock backed by a lock file.
package lock

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/juju/fslock"
	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/lessc/internal/core/ports"
	"go.trai.ch/zerr"
)

// pollInterval is how often a contended lock is retried.
const pollInterval = 100 * time.Millisecond

var _ ports.Locker = (*FileLocker)(nil)

// FileLocker implements ports.Locker with flock-style lock files.
// The lock is released automatically if the process dies.
type FileLocker struct {
	logger ports.Logger
}

// New creates a new FileLocker.
func New(logger ports.Logger) *FileLocker {
	return &FileLocker{logger: logger}
}

// WithLock runs action while holding the lock file at path.
func (l *FileLocker) WithLock(ctx context.Context, path string, action func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockFailed.Error()), "path", path)
	}

	lock := fslock.New(path)
	if err := lock.TryLock(); errors.Is(err, fslock.ErrLocked) {
		l.logger.Info("waiting for workspace lock " + path)
		if err := waitForLock(ctx, lock); err != nil {
			return err
		}
	} else if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockFailed.Error()), "path", path)
	}

	defer func() {
		if err := lock.Unlock(); err != nil {
			l.logger.Warn("failed to release workspace lock " + path + ": " + err.Error())
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return action()
}

// waitForLock polls until the lock is obtained; fslock has no context-aware wait.
func waitForLock(ctx context.Context, lock *fslock.Lock) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		err := lock.TryLock()
		if err == nil {
			return nil
		}
		if !errors.Is(err, fslock.ErrLocked) {
			return zerr.Wrap(err, domain.ErrLockFailed.Error())
		}
	}
}
