package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUTCPtr(t *testing.T) {
	require.Nil(t, UTCPtr(nil))

	local := time.Date(2026, 3, 1, 14, 0, 0, 0, time.FixedZone("CET", 3600))
	got := UTCPtr(&local)
	require.Equal(t, time.UTC, got.Location())
	require.True(t, got.Equal(local))
	require.NotSame(t, &local, got)
}
