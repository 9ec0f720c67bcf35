package booking

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/giquina/armora-sub001/internal/domain/catalog"
	"github.com/giquina/armora-sub001/internal/domain/risk"
	apperrors "github.com/giquina/armora-sub001/pkg/errors"
)

// SnapshotVersion is bumped whenever the encoded layout changes.
const SnapshotVersion = 1

// Snapshot is a pure value describing a configurator at one instant.
type Snapshot struct {
	Version            int              `json:"version"`
	Draft              Draft            `json:"draft"`
	Assessment         *risk.Assessment `json:"assessment,omitempty"`
	State              State            `json:"state"`
	RecentDestinations []string         `json:"recentDestinations"`
	ExportedAt         time.Time        `json:"exportedAt"`
}

// Snapshot captures the current draft together with its derived state.
func (c *Configurator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(c.deriveLocked())
}

func (c *Configurator) snapshotLocked(state State) Snapshot {
	snap := Snapshot{
		Version:            SnapshotVersion,
		Draft:              c.draft.Clone(),
		State:              state,
		RecentDestinations: c.recent.Items(),
		ExportedAt:         c.now(),
	}
	if c.assessment != nil {
		copied := *c.assessment
		snap.Assessment = &copied
	}
	return snap
}

// EncodeSnapshot serialises a snapshot as JSON.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeInvalidInput, "snapshot is not valid JSON", err)
	}
	if s.Version != SnapshotVersion {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unsupported snapshot version %d", s.Version), nil)
	}
	return s, nil
}

// Restore rebuilds a configurator from a snapshot. Snapshots are external
// data, so catalog references are validated instead of trusted. Terms follow
// termKeys: acceptance carries over for keys present in both, new keys start
// unaccepted and keys no longer required are dropped.
func Restore(s Snapshot, cat *catalog.Catalog, termKeys []string, opts ...Option) (*Configurator, error) {
	d := s.Draft
	if d.ScenarioID != "" {
		if _, ok := cat.Scenario(d.ScenarioID); !ok {
			return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("snapshot references unknown scenario %q", d.ScenarioID), nil)
		}
	}
	if d.TierID != "" {
		if _, ok := cat.Tier(d.TierID); !ok {
			return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("snapshot references unknown tier %q", d.TierID), nil)
		}
	}
	if d.Timing != TimingUnset && !d.Timing.Valid() {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("snapshot has unknown timing %q", d.Timing), nil)
	}
	if d.Timing == TimingScheduled && (d.ScheduledAt == nil || d.ScheduledAt.IsZero()) {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "snapshot has scheduled timing without a date-time", nil)
	}
	if s.Assessment != nil && s.Assessment.RecommendedTier != "" {
		if _, ok := cat.Tier(s.Assessment.RecommendedTier); !ok {
			return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("snapshot assessment recommends unknown tier %q", s.Assessment.RecommendedTier), nil)
		}
	}

	all := append([]Option{WithRecentDestinations(DefaultRecentLimit, s.RecentDestinations)}, opts...)
	c := NewConfigurator(cat, termKeys, all...)

	accepted := make(map[string]bool, len(d.Terms))
	for _, term := range d.Terms {
		accepted[term.Key] = term.Accepted
	}
	restored := d.Clone()
	restored.Terms = c.draft.Terms
	for i := range restored.Terms {
		restored.Terms[i].Accepted = accepted[restored.Terms[i].Key]
	}
	c.draft = restored
	if s.Assessment != nil {
		copied := *s.Assessment
		c.assessment = &copied
	}
	return c, nil
}
