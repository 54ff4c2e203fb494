package db

import (
	"context"
	"sync"
)

// MemoryDB keeps keys in a map. Used by tests and STORAGE_DRIVER=memory.
type MemoryDB struct {
	mu   sync.RWMutex
	data map[string]string

	// * FailWrites makes Set return the given error, for persist-failure tests
	FailWrites error
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{data: make(map[string]string)}
}

func (m *MemoryDB) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryDB) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.data[key] = value
	return nil
}

func (m *MemoryDB) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryDB) Close() error { return nil }
