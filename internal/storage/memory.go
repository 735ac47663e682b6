package storage

import (
	"context"
	"sync"
)

// MemoryMedium keeps values in a map. It counts writes and can be told to fail
// them, which makes it the medium of choice for tests and the "memory" backend.
type MemoryMedium struct {
	mu         sync.RWMutex
	values     map[string]string
	writes     int
	failWrites error
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{values: make(map[string]string)}
}

func (m *MemoryMedium) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryMedium) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites != nil {
		return m.failWrites
	}
	m.values[key] = value
	m.writes++
	return nil
}

// Put stores a raw value without counting it as a write.
func (m *MemoryMedium) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Raw returns the stored value for key.
func (m *MemoryMedium) Raw(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Writes is the number of successful Set calls.
func (m *MemoryMedium) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// FailWrites makes every following Set return err. A nil err restores writes.
func (m *MemoryMedium) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = err
}
