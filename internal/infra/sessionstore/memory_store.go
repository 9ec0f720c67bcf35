package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/giquina/armora-sub001/internal/domain/booking"
)

type sessionRecord struct {
	session   booking.Session
	expiresAt time.Time
}

// MemoryStore keeps live booking sessions in process memory. Sessions hold
// a live configurator, so they never leave the process; exported snapshots
// are the durable form.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]sessionRecord
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore constructs a store. A non-positive ttl keeps sessions until
// they are deleted.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]sessionRecord),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Save implements booking.SessionStore. Saving refreshes the expiry.
func (s *MemoryStore) Save(_ context.Context, session booking.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = sessionRecord{session: session, expiresAt: s.expiry()}
	return nil
}

// Get implements booking.SessionStore.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (booking.Session, bool, error) {
	s.mu.RLock()
	record, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return booking.Session{}, false, nil
	}
	if s.expired(record) {
		s.mu.Lock()
		// A concurrent Save may have refreshed the record since the read.
		if current, still := s.sessions[id]; still && s.expired(current) {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		return booking.Session{}, false, nil
	}
	return record.session, true, nil
}

// Replace implements booking.SessionStore. The live session under the same
// id is retired while the lock is held, so a submission cannot start on it
// between the check and the swap.
func (s *MemoryStore) Replace(_ context.Context, session booking.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.sessions[session.ID]; ok && !s.expired(record) {
		if record.session.Owner != session.Owner {
			return booking.ErrSessionOwner
		}
		if cfg := record.session.Configurator; cfg != nil {
			if err := cfg.Retire(); err != nil {
				return err
			}
		}
	}
	s.sessions[session.ID] = sessionRecord{session: session, expiresAt: s.expiry()}
	return nil
}

// Delete implements booking.SessionStore.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Sweep drops expired sessions and reports how many were removed. Sessions
// with an outstanding submission are kept until it settles.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, record := range s.sessions {
		if s.expired(record) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked sessions, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) expiry() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(s.ttl)
}

func (s *MemoryStore) expired(record sessionRecord) bool {
	if record.expiresAt.IsZero() || !record.expiresAt.Before(s.now()) {
		return false
	}
	if cfg := record.session.Configurator; cfg != nil && cfg.Submitting() {
		return false
	}
	return true
}

var _ booking.SessionStore = (*MemoryStore)(nil)
