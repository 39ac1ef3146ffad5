// Package keylock provides mutual exclusion scoped to individual keys.
package keylock

import "sync"

// Manager hands out one mutex per key. Handles are created lazily on first
// reference and kept for the lifetime of the Manager, so a key locks against
// the same handle no matter which goroutine referenced it first.
type Manager struct {
	locks sync.Map // int64 -> *sync.Mutex
}

// New returns a Manager with no handles allocated.
func New() *Manager {
	return &Manager{}
}

// Lock blocks until the caller exclusively holds the key's handle. Callers
// locking distinct keys never contend with each other.
func (m *Manager) Lock(key int64) {
	m.handle(key).Lock()
}

// Unlock releases the key's handle. It must only be called by the current
// holder.
func (m *Manager) Unlock(key int64) {
	m.handle(key).Unlock()
}

// handle returns the key's mutex. LoadOrStore guarantees at most one mutex
// per key even when many goroutines reference the key concurrently for the
// first time.
func (m *Manager) handle(key int64) *sync.Mutex {
	if l, ok := m.locks.Load(key); ok {
		return l.(*sync.Mutex)
	}

	l, _ := m.locks.LoadOrStore(key, &sync.Mutex{})

	return l.(*sync.Mutex)
}
