package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/giquina/armora-sub001/pkg/errors"
)

func newTestService(repo Repository) *service {
	svc := NewService(Config{
		Secret:          "test-secret",
		TokenTTL:        time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}, repo, newTestLogger()).(*service)
	return svc
}

func TestService_RegisterLoginAndRefresh(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	view, err := svc.Register(ctx, RegisterRequest{
		Email:       "Principal@Example.com",
		Password:    "pass1234",
		DisplayName: "  Ada   Lovelace ",
	})
	require.NoError(t, err)
	require.Equal(t, "principal@example.com", view.Email)
	require.Equal(t, "Ada Lovelace", view.DisplayName)
	require.False(t, view.RewardUnlocked)
	require.NotZero(t, view.ID)

	resp, err := svc.Login(ctx, LoginRequest{Email: "principal@example.com", Password: "pass1234"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)

	claims, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	require.Equal(t, view.ID, claims.UserID)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)

	_, err = svc.ValidateToken(ctx, resp.RefreshToken)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidToken))

	refreshed, err := svc.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, resp.Token, refreshed.Token)
	require.Equal(t, view.Email, refreshed.User.Email)
}

func TestService_RejectsBadCredentials(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "a@example.com", Password: "pass1234", DisplayName: "Ada"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "a@example.com", Password: "wrongpass"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCredentials))

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "pass1234"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCredentials))
}

func TestService_RegisterValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	tests := []struct {
		name string
		req  RegisterRequest
		code string
	}{
		{name: "bad email", req: RegisterRequest{Email: "nope", Password: "pass1234", DisplayName: "Ada"}, code: apperrors.CodeInvalidInput},
		{name: "short password", req: RegisterRequest{Email: "a@example.com", Password: "short", DisplayName: "Ada"}, code: apperrors.CodeInvalidInput},
		{name: "blank name", req: RegisterRequest{Email: "a@example.com", Password: "pass1234", DisplayName: "   "}, code: apperrors.CodeInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			require.True(t, apperrors.IsCode(err, tc.code))
		})
	}
}

func TestService_DuplicateEmail(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "user@example.com", Password: "pass1234", DisplayName: "One"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Email: "user@example.com", Password: "pass12345", DisplayName: "Two"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeEmailExists))
}

func TestService_UnlockReward(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }
	ctx := context.Background()

	view, err := svc.Register(ctx, RegisterRequest{Email: "a@example.com", Password: "pass1234", DisplayName: "Ada"})
	require.NoError(t, err)

	unlocked, err := svc.UnlockReward(ctx, view.ID)
	require.NoError(t, err)
	require.True(t, unlocked.RewardUnlocked)

	svc.now = func() time.Time { return first.Add(time.Hour) }
	_, err = svc.UnlockReward(ctx, view.ID)
	require.NoError(t, err)
	require.Equal(t, first, *svc.repo.(*memoryRepo).users[view.ID].RewardUnlockedAt)

	profile, err := svc.Profile(ctx, view.ID)
	require.NoError(t, err)
	require.True(t, profile.RewardUnlocked)

	_, err = svc.UnlockReward(ctx, 999)
	require.True(t, apperrors.IsCode(err, apperrors.CodeUserNotFound))
}

func TestService_ExpiredToken(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "a@example.com", Password: "pass1234", DisplayName: "Ada"})
	require.NoError(t, err)
	resp, err := svc.Login(ctx, LoginRequest{Email: "a@example.com", Password: "pass1234"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(ctx, resp.Token)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidToken))
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memoryRepo struct {
	users map[int64]User
	seq   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[int64]User)}
}

func (m *memoryRepo) Create(_ context.Context, email, displayName, passwordHash string) (User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return User{}, ErrEmailExists
		}
	}
	m.seq++
	user := User{
		ID:           m.seq,
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (User, bool, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return User{}, false, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id int64) (User, bool, error) {
	user, ok := m.users[id]
	return user, ok, nil
}

func (m *memoryRepo) UnlockReward(_ context.Context, id int64, at time.Time) (User, error) {
	user, ok := m.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	if user.RewardUnlockedAt == nil {
		user.RewardUnlockedAt = &at
		m.users[id] = user
	}
	return user, nil
}
