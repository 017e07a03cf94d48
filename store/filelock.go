package store

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// FileLock is the cross-process locking contract the store needs.
type FileLock interface {
	// TryLockContext attempts to acquire an exclusive lock, retrying at
	// the given interval until the context is done.
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)

	// Unlock releases the lock.
	Unlock() error
}

// FileLockFactory creates FileLock instances for a path.
type FileLockFactory interface {
	New(path string) FileLock
}

// flockWrapper adapts github.com/gofrs/flock to the FileLock interface.
type flockWrapper struct {
	flock *flock.Flock
}

func (f *flockWrapper) TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error) {
	return f.flock.TryLockContext(ctx, retryInterval)
}

func (f *flockWrapper) Unlock() error {
	return f.flock.Unlock()
}

// FlockFactory is the default factory, backed by gofrs/flock.
type FlockFactory struct{}

// New implements FileLockFactory.
func (f *FlockFactory) New(path string) FileLock {
	return &flockWrapper{flock: flock.New(path)}
}
