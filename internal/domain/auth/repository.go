package auth

import (
	"context"
	"time"
)

// Repository abstracts user persistence.
type Repository interface {
	Create(ctx context.Context, email, displayName, passwordHash string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByID(ctx context.Context, id int64) (User, bool, error)
	// UnlockReward stamps the reward once; later calls keep the first time.
	UnlockReward(ctx context.Context, id int64, at time.Time) (User, error)
}
