package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/giquina/armora-sub001/internal/domain/catalog"
	"github.com/giquina/armora-sub001/internal/domain/risk"
)

var (
	testNow   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testTerms = []string{"booking_terms", "cancellation_policy"}
)

func completeDraft() Draft {
	return Draft{
		Origin:      "123 Main St",
		Destination: "Heathrow Airport",
		TierID:      catalog.TierExecutive,
		Timing:      TimingImmediate,
		Terms: []Term{
			{Key: "booking_terms", Accepted: true},
			{Key: "cancellation_policy", Accepted: true},
		},
	}
}

func TestDeriveStateEmptyDraft(t *testing.T) {
	state := DeriveState(Draft{Terms: newTerms(testTerms)}, catalog.Default(), nil, testNow)

	require.Equal(t, StepLocations, state.FirstIncompleteStep)
	require.Equal(t, []Step{StepLocations, StepServiceTier, StepTiming, StepTerms}, state.IncompleteSteps)
	require.True(t, state.ScenarioSkipped)
	require.Nil(t, state.Quote)
	require.False(t, state.Submittable)
	require.Equal(t, testTerms, state.OutstandingTerms)
	require.Equal(t, "Enter your pickup location and destination.", state.Guidance)
}

func TestDeriveStateCompleteBooking(t *testing.T) {
	state := DeriveState(completeDraft(), catalog.Default(), nil, testNow)

	require.True(t, state.Submittable)
	require.Equal(t, StepComplete, state.FirstIncompleteStep)
	require.Empty(t, state.IncompleteSteps)
	require.NotNil(t, state.Quote)
	require.True(t, state.Quote.FinalFee.Equal(decimal.NewFromInt(150)))
	require.False(t, state.AppliedDiscount)
	require.Equal(t, "Review your booking and confirm payment.", state.Guidance)
}

func TestDeriveStateAppliesRewardDiscount(t *testing.T) {
	d := completeDraft()
	d.DiscountEligible = true

	state := DeriveState(d, catalog.Default(), nil, testNow)
	require.True(t, state.AppliedDiscount)
	require.True(t, state.Quote.DiscountApplied)
	require.True(t, state.Quote.FinalFee.Equal(decimal.NewFromInt(75)))
}

func TestDeriveStateMissingTierWinsOverTerms(t *testing.T) {
	d := completeDraft()
	d.TierID = ""
	for i := range d.Terms {
		d.Terms[i].Accepted = false
	}

	state := DeriveState(d, catalog.Default(), nil, testNow)
	require.Equal(t, StepServiceTier, state.FirstIncompleteStep)
	require.Equal(t, []Step{StepServiceTier, StepTerms}, state.IncompleteSteps)
	require.Nil(t, state.Quote)
	require.False(t, state.Submittable)
}

func TestDeriveStateSingleOutstandingTerm(t *testing.T) {
	d := completeDraft()
	d.Terms[1].Accepted = false

	state := DeriveState(d, catalog.Default(), nil, testNow)
	require.Equal(t, StepTerms, state.FirstIncompleteStep)
	require.Equal(t, []string{"cancellation_policy"}, state.OutstandingTerms)
	require.False(t, state.Submittable)
	require.Equal(t, "Accept the outstanding term to continue.", state.Guidance)
}

func TestDeriveStateMissingOriginBlocksSubmission(t *testing.T) {
	d := completeDraft()
	d.Origin = "  "

	state := DeriveState(d, catalog.Default(), nil, testNow)
	require.Equal(t, StepLocations, state.FirstIncompleteStep)
	require.False(t, state.Submittable)
	require.Equal(t, "Enter your pickup location.", state.Guidance)
}

func TestDeriveStateScenarioNeverBlocks(t *testing.T) {
	d := completeDraft()
	d.ScenarioID = ""
	state := DeriveState(d, catalog.Default(), nil, testNow)
	require.True(t, state.ScenarioSkipped)
	require.True(t, state.Submittable)

	d.ScenarioID = "airport_transfer"
	state = DeriveState(d, catalog.Default(), nil, testNow)
	require.False(t, state.ScenarioSkipped)
	require.True(t, state.Submittable)
}

func TestDeriveStateScheduledTiming(t *testing.T) {
	tests := []struct {
		name     string
		at       time.Time
		complete bool
	}{
		{name: "future", at: testNow.Add(time.Hour), complete: true},
		{name: "now", at: testNow, complete: true},
		{name: "past", at: testNow.Add(-time.Minute), complete: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := completeDraft()
			at := tc.at
			d.Timing = TimingScheduled
			d.ScheduledAt = &at

			state := DeriveState(d, catalog.Default(), nil, testNow)
			require.Equal(t, tc.complete, state.Submittable)
			if !tc.complete {
				require.Equal(t, StepTiming, state.FirstIncompleteStep)
				require.Equal(t, "The scheduled time has passed. Choose a time in the future.", state.Guidance)
			}
		})
	}
}

func TestDeriveStatePanicsOnScheduledWithoutTime(t *testing.T) {
	d := completeDraft()
	d.Timing = TimingScheduled

	require.Panics(t, func() {
		DeriveState(d, catalog.Default(), nil, testNow)
	})
}

func TestDeriveStatePanicsOnUnknownTier(t *testing.T) {
	d := completeDraft()
	d.TierID = "platinum"

	require.Panics(t, func() {
		DeriveState(d, catalog.Default(), nil, testNow)
	})
}

func TestDeriveStateRecommendation(t *testing.T) {
	d := completeDraft()
	d.TierID = ""
	d.ScenarioID = "airport_transfer"

	state := DeriveState(d, catalog.Default(), nil, testNow)
	require.Equal(t, catalog.TierExecutive, state.RecommendedTier)
	require.Equal(t, "Select a service level. We recommend Executive Shield for this journey.", state.Guidance)

	hint := &risk.Assessment{Level: risk.LevelOrange, RecommendedTier: catalog.TierShadow}
	state = DeriveState(d, catalog.Default(), hint, testNow)
	require.Equal(t, catalog.TierShadow, state.RecommendedTier)
	require.Equal(t, StepServiceTier, state.FirstIncompleteStep)
	require.Nil(t, state.Quote)
}

func TestDeriveStateIsIdempotent(t *testing.T) {
	drafts := []Draft{
		{Terms: newTerms(testTerms)},
		completeDraft(),
		func() Draft { d := completeDraft(); d.TierID = ""; return d }(),
		func() Draft { d := completeDraft(); d.DiscountEligible = true; return d }(),
	}
	for _, d := range drafts {
		first := DeriveState(d, catalog.Default(), nil, testNow)
		second := DeriveState(d, catalog.Default(), nil, testNow)
		require.True(t, first.Equal(second))
	}
}

func TestDeriveStateSubmittableImpliesQuote(t *testing.T) {
	d := completeDraft()
	for _, tier := range catalog.Default().Tiers() {
		d.TierID = tier.ID
		state := DeriveState(d, catalog.Default(), nil, testNow)
		require.True(t, state.Submittable)
		require.NotNil(t, state.Quote)
		require.Equal(t, tier.ID, state.Quote.TierID)
	}
}
