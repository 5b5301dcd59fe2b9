package store

import (
	"maps"
	"slices"
	"sync"
)

// MemoryStore is a map-backed Store for tests and throwaway sessions.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
	// FailWrites makes Set and Delete fail, to exercise write-failure paths.
	FailWrites error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.entries[key] = string(value)
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	delete(m.entries, key)
	return nil
}

func (m *MemoryStore) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.entries)), nil
}

func (m *MemoryStore) Snapshot() (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.entries))
	for k, v := range m.entries {
		out[k] = []byte(v)
	}
	return out, nil
}

func (m *MemoryStore) Backup(destinationPath string) error {
	m.mu.RLock()
	entries := maps.Clone(m.entries)
	m.mu.RUnlock()
	return writeBackup(destinationPath, entries)
}

func (m *MemoryStore) Restore(sourcePath string) error {
	entries, err := readBackup(sourcePath)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = entries
	return nil
}

func (m *MemoryStore) Close() error { return nil }
