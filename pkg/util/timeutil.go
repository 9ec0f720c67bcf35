package util

import "time"

// NowUTC is the default clock for services; tests replace it.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// UTCPtr returns a UTC copy of t, or nil when t is nil.
func UTCPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
