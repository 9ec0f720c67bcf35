package metrics

import "sync/atomic"

// SubmissionStats counts booking submission outcomes.
type SubmissionStats struct {
	attempts      atomic.Int64
	successes     atomic.Int64
	failures      atomic.Int64
	cancellations atomic.Int64
}

// SubmissionCounts is a point-in-time copy of SubmissionStats.
type SubmissionCounts struct {
	Attempts      int64 `json:"attempts"`
	Successes     int64 `json:"successes"`
	Failures      int64 `json:"failures"`
	Cancellations int64 `json:"cancellations"`
}

// NewSubmissionStats constructs zeroed counters.
func NewSubmissionStats() *SubmissionStats {
	return &SubmissionStats{}
}

func (s *SubmissionStats) Attempt()   { s.attempts.Add(1) }
func (s *SubmissionStats) Success()   { s.successes.Add(1) }
func (s *SubmissionStats) Failure()   { s.failures.Add(1) }
func (s *SubmissionStats) Cancelled() { s.cancellations.Add(1) }

// Snapshot reads all counters.
func (s *SubmissionStats) Snapshot() SubmissionCounts {
	return SubmissionCounts{
		Attempts:      s.attempts.Load(),
		Successes:     s.successes.Load(),
		Failures:      s.failures.Load(),
		Cancellations: s.cancellations.Load(),
	}
}

// IsZero reports whether no submission has been attempted yet.
func (c SubmissionCounts) IsZero() bool {
	return c.Attempts == 0 && c.Successes == 0 && c.Failures == 0 && c.Cancellations == 0
}
