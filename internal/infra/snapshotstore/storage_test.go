package snapshotstore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/giquina/armora-sub001/internal/domain/booking"
)

func TestMemoryStorageRoundTrip(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	_, err := store.Get(ctx, "snapshots/user:1/missing.json")
	require.ErrorIs(t, err, booking.ErrSnapshotNotFound)

	data := []byte(`{"version":1}`)
	require.NoError(t, store.Put(ctx, "snapshots/user:1/a.json", data))
	data[0] = 'X'

	got, err := store.Get(ctx, "snapshots/user:1/a.json")
	require.NoError(t, err)
	require.Equal(t, `{"version":1}`, string(got))
}

func TestMemoryStorageDelete(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()
	key := "snapshots/user:1/a.json"

	require.NoError(t, store.Put(ctx, key, []byte(`{"version":1}`)))
	require.NoError(t, store.Delete(ctx, key))
	_, err := store.Get(ctx, key)
	require.ErrorIs(t, err, booking.ErrSnapshotNotFound)
	require.NoError(t, store.Delete(ctx, key))
}

func TestHostOnly(t *testing.T) {
	tests := map[string]string{
		"https://acct.r2.cloudflarestorage.com/bucket": "acct.r2.cloudflarestorage.com",
		"http://localhost:9000":                       "localhost:9000",
		" minio:9000 ":                                "minio:9000",
	}
	for in, want := range tests {
		require.Equal(t, want, hostOnly(in), fmt.Sprintf("input %q", in))
	}
}

func TestTranslateErrorPassesThroughUnknown(t *testing.T) {
	boom := errors.New("boom")
	require.Equal(t, boom, translateError(boom))
}
