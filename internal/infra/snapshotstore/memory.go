package snapshotstore

import (
	"context"
	"sync"

	"github.com/giquina/armora-sub001/internal/domain/booking"
)

// MemoryStorage keeps exported snapshots in memory. Useful for tests and local dev.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStorage constructs storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

// Put stores a copy of data under key.
func (s *MemoryStorage) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
	return nil
}

// Get returns a copy of the stored object.
func (s *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, booking.ErrSnapshotNotFound
	}
	return append([]byte(nil), data...), nil
}

// Delete removes key. A missing key is not an error.
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

var _ booking.SnapshotStorage = (*MemoryStorage)(nil)
