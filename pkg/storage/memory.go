package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps values in a map.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
	// FailWrites makes every Write return the error, for exercising
	// persistence failures.
	FailWrites error
}

// NewMemoryBackend returns an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

// Read returns a copy of the stored bytes.
func (b *MemoryBackend) Read(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Write stores a copy of data.
func (b *MemoryBackend) Write(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailWrites != nil {
		return b.FailWrites
	}
	b.values[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes key.
func (b *MemoryBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.values[key]; !ok {
		return ErrNotFound
	}
	delete(b.values, key)
	return nil
}

// Set seeds raw bytes for key.
func (b *MemoryBackend) Set(key string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = append([]byte(nil), data...)
}
