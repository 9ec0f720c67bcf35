package booking

import (
	"fmt"
	"strings"
	"time"
)

func locationsComplete(d Draft) bool {
	return strings.TrimSpace(d.Origin) != "" && strings.TrimSpace(d.Destination) != ""
}

func hasDestination(d Draft) bool {
	return strings.TrimSpace(d.Destination) != ""
}

func hasTier(d Draft) bool {
	return d.TierID != ""
}

// timingComplete treats a scheduled time in the past as incomplete. A
// scheduled choice without a time cannot be produced through the
// configurator, so reaching it here is a caller bug.
func timingComplete(d Draft, now time.Time) bool {
	if !d.Timing.Valid() {
		return false
	}
	if d.Timing != TimingScheduled {
		return true
	}
	if d.ScheduledAt == nil || d.ScheduledAt.IsZero() {
		panic("booking: scheduled timing selected without a date-time")
	}
	return !d.ScheduledAt.Before(now)
}

func outstandingTerms(d Draft) []string {
	var out []string
	for _, term := range d.Terms {
		if !term.Accepted {
			out = append(out, term.Key)
		}
	}
	return out
}

func termsComplete(d Draft) bool {
	return len(outstandingTerms(d)) == 0
}

// shouldRecordDestination is the trigger for the recent destinations list.
func shouldRecordDestination(d Draft) bool {
	return hasDestination(d) && hasTier(d) && termsComplete(d)
}

func newTerms(keys []string) []Term {
	terms := make([]Term, 0, len(keys))
	for _, key := range keys {
		terms = append(terms, Term{Key: key})
	}
	return terms
}

func normalizeTermKeys(keys []string) ([]string, error) {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		clean := strings.TrimSpace(key)
		if clean == "" {
			return nil, fmt.Errorf("term key cannot be empty")
		}
		if _, dup := seen[clean]; dup {
			return nil, fmt.Errorf("duplicate term %q", clean)
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out, nil
}
