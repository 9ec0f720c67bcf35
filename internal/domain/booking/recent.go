package booking

import "strings"

// DefaultRecentLimit caps the recent destinations list.
const DefaultRecentLimit = 5

// RecentDestinations is a bounded, most-recent-first list deduplicated by
// exact string match.
type RecentDestinations struct {
	limit int
	items []string
}

// NewRecentDestinations seeds the list, dropping blanks, duplicates and
// anything past the limit.
func NewRecentDestinations(limit int, seed []string) *RecentDestinations {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	r := &RecentDestinations{limit: limit, items: make([]string, 0, limit)}
	for _, item := range seed {
		if len(r.items) == r.limit {
			break
		}
		if strings.TrimSpace(item) == "" || r.index(item) >= 0 {
			continue
		}
		r.items = append(r.items, item)
	}
	return r
}

// Add moves dest to the front and reports whether the list changed.
func (r *RecentDestinations) Add(dest string) bool {
	if strings.TrimSpace(dest) == "" {
		return false
	}
	idx := r.index(dest)
	if idx == 0 {
		return false
	}
	if idx > 0 {
		r.items = append(r.items[:idx], r.items[idx+1:]...)
	}
	r.items = append([]string{dest}, r.items...)
	if len(r.items) > r.limit {
		r.items = r.items[:r.limit]
	}
	return true
}

// Items returns a copy of the list.
func (r *RecentDestinations) Items() []string {
	return append([]string(nil), r.items...)
}

// Limit returns the list capacity.
func (r *RecentDestinations) Limit() int {
	return r.limit
}

func (r *RecentDestinations) index(dest string) int {
	for i, item := range r.items {
		if item == dest {
			return i
		}
	}
	return -1
}
