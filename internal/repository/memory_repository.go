package repository

import (
	"sync"

	"farm-advisory/internal/model"
)

// MemoryKVRepository keeps documents in process memory. It backs the
// "memory" storage driver and the tests.
type MemoryKVRepository struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKVRepository creates an empty in-memory repository
func NewMemoryKVRepository() *MemoryKVRepository {
	return &MemoryKVRepository{data: make(map[string]string)}
}

// Get returns the value stored under key
func (r *MemoryKVRepository) Get(key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	return v, ok, nil
}

// Put stores value under key
func (r *MemoryKVRepository) Put(key, value string) error {
	if key == "" {
		return model.ErrEmptyKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
	return nil
}

// Delete removes key
func (r *MemoryKVRepository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

// Keys lists the stored keys
func (r *MemoryKVRepository) Keys() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	return keys, nil
}

// Clear removes every key
func (r *MemoryKVRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = make(map[string]string)
	return nil
}
