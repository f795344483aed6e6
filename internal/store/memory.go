package store

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("key not found")
)

// MemoryKV is a concurrency-safe in-memory key-value store. It backs the
// historical cache when no redis URL is configured.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (s *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

// Snapshots is a concurrency-safe latest-value store keyed by string,
// used to serve warm weather models for the scheduled cities.
type Snapshots[T any] struct {
	mu   sync.RWMutex
	data map[string]T
}

// NewSnapshots creates an empty snapshot store.
func NewSnapshots[T any]() *Snapshots[T] {
	return &Snapshots[T]{data: make(map[string]T)}
}

// Save replaces the snapshot for a key.
func (s *Snapshots[T]) Save(key string, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = v
}

// Latest returns the current snapshot for a key.
func (s *Snapshots[T]) Latest(key string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return v, nil
}
