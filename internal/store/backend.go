package store

import (
	"context"
	"fmt"
	"sync"
)

// Backend persists the raw bytes of a single document.
// Write must replace the whole document or leave the previous one intact.
type Backend interface {
	// Location identifies where the document lives; backends sharing a
	// location share a write lock.
	Location() string
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Ping(ctx context.Context) error
}

// MemoryBackend keeps the document in process memory. Used in tests and
// for throwaway development servers.
type MemoryBackend struct {
	mu       sync.RWMutex
	name     string
	data     []byte
	writeErr error
	writes   int
}

var _ Backend = (*MemoryBackend)(nil)

func NewMemoryBackend(name string) *MemoryBackend {
	return &MemoryBackend{name: name}
}

func (m *MemoryBackend) Location() string { return "memory:" + m.name }

func (m *MemoryBackend) Read(ctx context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil, ErrNotExist
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryBackend) Write(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, m.name, m.writeErr)
	}
	m.data = append([]byte(nil), data...)
	m.writes++
	return nil
}

func (m *MemoryBackend) Ping(ctx context.Context) error { return nil }

// FailWrites makes every following Write fail with err; nil restores writes.
func (m *MemoryBackend) FailWrites(err error) {
	m.mu.Lock()
	m.writeErr = err
	m.mu.Unlock()
}

// Writes returns the number of successful writes.
func (m *MemoryBackend) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
