package userrepo

import (
	"context"
	"sync"
	"time"

	"github.com/giquina/armora-sub001/internal/domain/auth"
	"github.com/giquina/armora-sub001/pkg/util"
)

// MemoryRepository provides an in-memory account store for tests/dev.
type MemoryRepository struct {
	mu         sync.RWMutex
	users      map[int64]auth.User
	emailIndex map[string]int64
	seq        int64
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:      make(map[int64]auth.User),
		emailIndex: make(map[string]int64),
	}
}

// Create stores the account.
func (r *MemoryRepository) Create(_ context.Context, email, displayName, passwordHash string) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.emailIndex[email]; exists {
		return auth.User{}, auth.ErrEmailExists
	}
	r.seq++
	user := auth.User{
		ID:           r.seq,
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    util.NowUTC(),
	}
	r.users[user.ID] = user
	r.emailIndex[email] = user.ID
	return user, nil
}

// GetByEmail returns an account by email.
func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.emailIndex[email]; ok {
		return r.users[id], true, nil
	}
	return auth.User{}, false, nil
}

// GetByID fetches by ID.
func (r *MemoryRepository) GetByID(_ context.Context, id int64) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	return user, ok, nil
}

// UnlockReward stamps the reward the first time it is called.
func (r *MemoryRepository) UnlockReward(_ context.Context, id int64, at time.Time) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	if user.RewardUnlockedAt == nil {
		stamped := at.UTC()
		user.RewardUnlockedAt = &stamped
		r.users[id] = user
	}
	return user, nil
}

var _ auth.Repository = (*MemoryRepository)(nil)
