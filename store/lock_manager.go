package store

import "sync"

// operationType distinguishes read operations, which may run concurrently,
// from write operations, which need exclusive access.
type operationType int

const (
	readOperation operationType = iota
	writeOperation
)

// lockManager centralizes in-process locking for store operations so every
// code path uses the right lock type.
type lockManager struct {
	mu sync.RWMutex
}

// execute runs fn under the lock appropriate for the operation type. The
// lock is released when fn returns, including on panic.
func (lm *lockManager) execute(opType operationType, fn func() error) error {
	switch opType {
	case readOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case writeOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}
