// Package storage holds the in-process locking used by taxostore
// collections.
package storage

import (
	"sync"
)

// OperationType tells the LockManager whether an operation reads or
// mutates a collection.
type OperationType int

const (
	// ReadOperation may run concurrently with other reads.
	ReadOperation OperationType = iota

	// WriteOperation excludes every other read and write on the same
	// collection, including the save that follows the mutation.
	WriteOperation
)

func (o OperationType) String() string {
	if o == WriteOperation {
		return "write"
	}
	return "read"
}

// LockManager serializes access to one in-memory collection. It covers
// goroutines in a single process only; cross-process exclusion is the job of
// the store's file lock.
type LockManager struct {
	mu sync.RWMutex
}

// NewLockManager creates a lock manager ready for use.
func NewLockManager() *LockManager {
	return &LockManager{}
}

// Execute runs fn holding a read or write lock according to opType. The
// lock is released when fn returns, including on panic.
func (lm *LockManager) Execute(opType OperationType, fn func() error) error {
	switch opType {
	case WriteOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	default:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	}
	return fn()
}

// Result is Execute for functions that produce a value.
//
//	rec, err := storage.Result(lm, storage.WriteOperation, func() (types.Sample, error) {
//	    return upsert(s)
//	})
func Result[T any](lm *LockManager, opType OperationType, fn func() (T, error)) (T, error) {
	var out T
	err := lm.Execute(opType, func() error {
		v, err := fn()
		out = v
		return err
	})
	return out, err
}
