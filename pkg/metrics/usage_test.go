package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubmissionStats(t *testing.T) {
	stats := NewSubmissionStats()
	require.True(t, stats.Snapshot().IsZero())

	stats.Attempt()
	stats.Attempt()
	stats.Failure()
	stats.Success()
	stats.Attempt()
	stats.Cancelled()

	require.Equal(t, SubmissionCounts{Attempts: 3, Successes: 1, Failures: 1, Cancellations: 1}, stats.Snapshot())
}
