package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/giquina/armora-sub001/internal/domain/catalog"
	"github.com/giquina/armora-sub001/internal/domain/pricing"
	"github.com/giquina/armora-sub001/internal/domain/risk"
)

// DeriveState computes the next actionable step, the quote and
// submittability for a draft. Steps are checked in a fixed order and the
// first unmet one wins regardless of what was filled in out of order. The
// scenario step never blocks.
//
// hint is an optional risk assessment whose recommendation takes precedence
// over the scenario's. A tier id missing from the catalog panics.
func DeriveState(d Draft, cat *catalog.Catalog, hint *risk.Assessment, now time.Time) State {
	state := State{
		AppliedDiscount: d.DiscountEligible,
		RecommendedTier: recommendation(d, cat, hint),
	}

	var tier catalog.ServiceTier
	if hasTier(d) {
		tier = cat.MustTier(d.TierID)
		quote := pricing.ComputeQuote(tier, d.DiscountEligible)
		state.Quote = &quote
	}

	if !locationsComplete(d) {
		state.IncompleteSteps = append(state.IncompleteSteps, StepLocations)
	}
	state.ScenarioSkipped = d.ScenarioID == ""
	if !hasTier(d) {
		state.IncompleteSteps = append(state.IncompleteSteps, StepServiceTier)
	}
	if !timingComplete(d, now) {
		state.IncompleteSteps = append(state.IncompleteSteps, StepTiming)
	}
	state.OutstandingTerms = outstandingTerms(d)
	if len(state.OutstandingTerms) > 0 {
		state.IncompleteSteps = append(state.IncompleteSteps, StepTerms)
	}

	if len(state.IncompleteSteps) == 0 {
		state.FirstIncompleteStep = StepComplete
		state.Submittable = true
	} else {
		state.FirstIncompleteStep = state.IncompleteSteps[0]
	}
	state.Guidance = guidance(state, d, cat, now)
	return state
}

func recommendation(d Draft, cat *catalog.Catalog, hint *risk.Assessment) catalog.TierID {
	if hint != nil {
		if _, ok := cat.Tier(hint.RecommendedTier); ok {
			return hint.RecommendedTier
		}
	}
	if d.ScenarioID != "" {
		if sc, ok := cat.Scenario(d.ScenarioID); ok {
			return sc.RecommendedTier
		}
	}
	return ""
}

func guidance(state State, d Draft, cat *catalog.Catalog, now time.Time) string {
	switch state.FirstIncompleteStep {
	case StepLocations:
		switch {
		case strings.TrimSpace(d.Origin) == "" && strings.TrimSpace(d.Destination) == "":
			return "Enter your pickup location and destination."
		case strings.TrimSpace(d.Origin) == "":
			return "Enter your pickup location."
		default:
			return "Enter your destination."
		}
	case StepServiceTier:
		if state.RecommendedTier != "" {
			tier := cat.MustTier(state.RecommendedTier)
			return fmt.Sprintf("Select a service level. We recommend %s for this journey.", tier.DisplayName)
		}
		return "Select a service level."
	case StepTiming:
		if d.Timing == TimingScheduled && d.ScheduledAt != nil && d.ScheduledAt.Before(now) {
			return "The scheduled time has passed. Choose a time in the future."
		}
		return "Choose when your protection should begin."
	case StepTerms:
		if n := len(state.OutstandingTerms); n > 1 {
			return fmt.Sprintf("Accept the %d outstanding terms to continue.", n)
		}
		return "Accept the outstanding term to continue."
	default:
		return "Review your booking and confirm payment."
	}
}
