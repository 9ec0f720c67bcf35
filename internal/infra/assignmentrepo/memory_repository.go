package assignmentrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/giquina/armora-sub001/internal/domain/booking"
)

// MemoryRepository keeps confirmed assignments in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	byOwner   map[string][]booking.Assignment
	bySession map[uuid.UUID]booking.Assignment
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byOwner:   make(map[string][]booking.Assignment),
		bySession: make(map[uuid.UUID]booking.Assignment),
	}
}

// Save implements booking.AssignmentRepository.
func (r *MemoryRepository) Save(_ context.Context, assignment booking.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if assignment.SessionID != uuid.Nil {
		if _, ok := r.bySession[assignment.SessionID]; ok {
			return booking.ErrAssignmentExists
		}
		r.bySession[assignment.SessionID] = assignment
	}
	r.byOwner[assignment.Owner] = append(r.byOwner[assignment.Owner], assignment)
	return nil
}

// FindBySession implements booking.AssignmentRepository.
func (r *MemoryRepository) FindBySession(_ context.Context, sessionID uuid.UUID) (booking.Assignment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.bySession[sessionID]
	return a, ok, nil
}

// ListByOwner returns the newest assignments first.
func (r *MemoryRepository) ListByOwner(_ context.Context, owner string, limit int) ([]booking.Assignment, error) {
	r.mu.RLock()
	items := append([]booking.Assignment(nil), r.byOwner[owner]...)
	r.mu.RUnlock()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ConfirmedAt.After(items[j].ConfirmedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

var _ booking.AssignmentRepository = (*MemoryRepository)(nil)
