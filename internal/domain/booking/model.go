package booking

import (
	"time"

	"github.com/giquina/armora-sub001/internal/domain/catalog"
	"github.com/giquina/armora-sub001/internal/domain/pricing"
)

// TimingChoice is when protection should begin.
type TimingChoice string

const (
	TimingUnset     TimingChoice = ""
	TimingImmediate TimingChoice = "IMMEDIATE"
	TimingPlus30Min TimingChoice = "PLUS_30_MIN"
	TimingPlus1Hour TimingChoice = "PLUS_1_HOUR"
	TimingScheduled TimingChoice = "SCHEDULED"
)

// Valid reports whether t is one of the known choices. Unset is not valid.
func (t TimingChoice) Valid() bool {
	switch t {
	case TimingImmediate, TimingPlus30Min, TimingPlus1Hour, TimingScheduled:
		return true
	default:
		return false
	}
}

// Step names a stage of the booking flow.
type Step string

const (
	StepLocations   Step = "locations"
	StepScenario    Step = "scenario"
	StepServiceTier Step = "service_tier"
	StepTiming      Step = "timing"
	StepTerms       Step = "terms"
	StepComplete    Step = "complete"
)

// Term is one acknowledgement the requester must accept.
type Term struct {
	Key      string `json:"key"`
	Accepted bool   `json:"accepted"`
}

// Draft is the in-progress protection request.
type Draft struct {
	Origin           string         `json:"origin"`
	Destination      string         `json:"destination"`
	ScenarioID       string         `json:"scenarioId,omitempty"`
	TierID           catalog.TierID `json:"tierId,omitempty"`
	Timing           TimingChoice   `json:"timing,omitempty"`
	ScheduledAt      *time.Time     `json:"scheduledAt,omitempty"`
	Terms            []Term         `json:"terms"`
	DiscountEligible bool           `json:"discountEligible"`
}

// Clone returns a deep copy.
func (d Draft) Clone() Draft {
	out := d
	out.Terms = append([]Term(nil), d.Terms...)
	if d.ScheduledAt != nil {
		at := *d.ScheduledAt
		out.ScheduledAt = &at
	}
	return out
}

// State is derived from a draft after every mutation and is the only
// authority on what happens next.
type State struct {
	FirstIncompleteStep Step           `json:"firstIncompleteStep"`
	IncompleteSteps     []Step         `json:"incompleteSteps"`
	ScenarioSkipped     bool           `json:"scenarioSkipped"`
	RecommendedTier     catalog.TierID `json:"recommendedTier,omitempty"`
	AppliedDiscount     bool           `json:"appliedDiscount"`
	Quote               *pricing.Quote `json:"quote,omitempty"`
	Submittable         bool           `json:"submittable"`
	Guidance            string         `json:"guidance"`
	OutstandingTerms    []string       `json:"outstandingTerms,omitempty"`
}

// Equal compares states field by field, using value equality for quotes.
func (s State) Equal(other State) bool {
	if s.FirstIncompleteStep != other.FirstIncompleteStep ||
		s.ScenarioSkipped != other.ScenarioSkipped ||
		s.RecommendedTier != other.RecommendedTier ||
		s.AppliedDiscount != other.AppliedDiscount ||
		s.Submittable != other.Submittable ||
		s.Guidance != other.Guidance {
		return false
	}
	if !equalSlices(s.IncompleteSteps, other.IncompleteSteps) || !equalSlices(s.OutstandingTerms, other.OutstandingTerms) {
		return false
	}
	switch {
	case s.Quote == nil && other.Quote == nil:
		return true
	case s.Quote == nil || other.Quote == nil:
		return false
	default:
		return s.Quote.Equal(*other.Quote)
	}
}

// Summary is the read-only description handed to the payment collaborator.
type Summary struct {
	Origin      string         `json:"origin"`
	Destination string         `json:"destination"`
	ScenarioID  string         `json:"scenarioId,omitempty"`
	TierID      catalog.TierID `json:"tierId"`
	TierName    string         `json:"tierName"`
	Timing      TimingChoice   `json:"timing"`
	ScheduledAt *time.Time     `json:"scheduledAt,omitempty"`
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
