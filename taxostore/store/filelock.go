package store

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// FileLock is an exclusive advisory lock shared between processes.
type FileLock interface {
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)
	Unlock() error
}

// FileLockFactory creates the lock guarding a collection document.
type FileLockFactory interface {
	New(path string) FileLock
}

// FlockFactory creates gofrs/flock locks.
type FlockFactory struct{}

// New implements FileLockFactory.
func (FlockFactory) New(path string) FileLock {
	return flock.New(path)
}

const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// withFileLock runs fn while holding lock, giving up after lockTimeout.
func withFileLock(lock FileLock, fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	if err := acquire(ctx, lock); err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

func acquire(ctx context.Context, lock FileLock) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := lock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
	return fmt.Errorf("failed to acquire lock after %d attempts", lockMaxRetries)
}
