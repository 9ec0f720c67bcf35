package assignmentrepo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/giquina/armora-sub001/internal/domain/booking"
)

func TestMemoryRepositoryListsNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, token := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Save(ctx, booking.Assignment{
			ID:           uuid.New(),
			Owner:        "user:1",
			PaymentToken: token,
			ConfirmedAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, repo.Save(ctx, booking.Assignment{ID: uuid.New(), Owner: "user:2", PaymentToken: "other"}))

	got, err := repo.ListByOwner(ctx, "user:1", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "third", got[0].PaymentToken)
	require.Equal(t, "second", got[1].PaymentToken)

	got, err = repo.ListByOwner(ctx, "user:9", 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMemoryRepositoryFindBySession(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	sessionID := uuid.New()

	_, ok, err := repo.FindBySession(ctx, sessionID)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Save(ctx, booking.Assignment{ID: uuid.New(), SessionID: sessionID, Owner: "user:1", PaymentToken: "tok"}))
	got, ok, err := repo.FindBySession(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok", got.PaymentToken)

	err = repo.Save(ctx, booking.Assignment{ID: uuid.New(), SessionID: sessionID, Owner: "user:1", PaymentToken: "again"})
	require.ErrorIs(t, err, booking.ErrAssignmentExists)
	list, err := repo.ListByOwner(ctx, "user:1", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
