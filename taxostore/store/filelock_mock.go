package store

import (
	"context"
	"sync"
	"time"
)

// MockFileLock is an in-memory FileLock that records how often it was
// taken and released.
type MockFileLock struct {
	mu          sync.Mutex
	isLocked    bool
	lockError   error
	unlockError error

	LockAttempts   int
	UnlockAttempts int
}

func (m *MockFileLock) TryLockContext(_ context.Context, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LockAttempts++
	if m.lockError != nil {
		return false, m.lockError
	}
	if m.isLocked {
		return false, nil
	}
	m.isLocked = true
	return true, nil
}

func (m *MockFileLock) Unlock() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UnlockAttempts++
	if m.unlockError != nil {
		return m.unlockError
	}
	m.isLocked = false
	return nil
}

// IsLocked reports whether the lock is held.
func (m *MockFileLock) IsLocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isLocked
}

// SetLockError makes subsequent lock attempts fail with err.
func (m *MockFileLock) SetLockError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lockError = err
}

// MockFileLockFactory hands out one MockFileLock per path.
type MockFileLockFactory struct {
	mu    sync.Mutex
	locks map[string]*MockFileLock

	DefaultLockError error
}

// NewMockFileLockFactory returns an empty factory.
func NewMockFileLockFactory() *MockFileLockFactory {
	return &MockFileLockFactory{locks: make(map[string]*MockFileLock)}
}

// New implements FileLockFactory.
func (f *MockFileLockFactory) New(path string) FileLock {
	f.mu.Lock()
	defer f.mu.Unlock()

	if lock, ok := f.locks[path]; ok {
		return lock
	}
	lock := &MockFileLock{lockError: f.DefaultLockError}
	f.locks[path] = lock
	return lock
}

// GetLock returns the lock handed out for path, or nil.
func (f *MockFileLockFactory) GetLock(path string) *MockFileLock {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locks[path]
}
