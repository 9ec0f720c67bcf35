package destinations

import (
	"context"
	"sync"

	"github.com/giquina/armora-sub001/internal/domain/booking"
)

// MemoryStore keeps recent destinations per owner in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]string
	limit int
}

// NewMemoryStore constructs a store that keeps at most limit entries per owner.
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = booking.DefaultRecentLimit
	}
	return &MemoryStore{items: make(map[string][]string), limit: limit}
}

// Load implements booking.DestinationStore.
func (s *MemoryStore) Load(_ context.Context, owner string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.items[owner]...), nil
}

// Save implements booking.DestinationStore.
func (s *MemoryStore) Save(_ context.Context, owner string, items []string) error {
	if owner == "" {
		return nil
	}
	if len(items) > s.limit {
		items = items[:s.limit]
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[owner] = append([]string(nil), items...)
	return nil
}

var _ booking.DestinationStore = (*MemoryStore)(nil)
