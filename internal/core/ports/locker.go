package ports

import "context"

// Locker serializes work on a workspace across processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=locker.go -destination=mocks/mock_locker.go -package=mocks
type Locker interface {
	// WithLock runs action while holding the lock file at path.
	// It blocks until the lock is obtained or ctx is done.
	WithLock(ctx context.Context, path string, action func() error) error
}
