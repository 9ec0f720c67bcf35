package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/giquina/armora-sub001/internal/domain/catalog"
	"github.com/giquina/armora-sub001/internal/domain/risk"
	apperrors "github.com/giquina/armora-sub001/pkg/errors"
)

type stubGateway struct {
	outcome PaymentOutcome
	err     error
	calls   int
	last    PaymentRequest
}

func (g *stubGateway) Charge(_ context.Context, req PaymentRequest) (PaymentOutcome, error) {
	g.calls++
	g.last = req
	return g.outcome, g.err
}

type blockingGateway struct {
	started chan struct{}
	release chan struct{}
	outcome PaymentOutcome
}

func newBlockingGateway(token string) *blockingGateway {
	return &blockingGateway{
		started: make(chan struct{}),
		release: make(chan struct{}),
		outcome: PaymentOutcome{Token: token},
	}
}

func (g *blockingGateway) Charge(ctx context.Context, _ PaymentRequest) (PaymentOutcome, error) {
	close(g.started)
	select {
	case <-ctx.Done():
		return PaymentOutcome{}, ctx.Err()
	case <-g.release:
		return g.outcome, nil
	}
}

type submitResult struct {
	confirmation Confirmation
	err          error
}

func newTestConfigurator(t *testing.T) *Configurator {
	t.Helper()
	return NewConfigurator(catalog.Default(), testTerms, WithClock(func() time.Time { return testNow }))
}

func readyConfigurator(t *testing.T) *Configurator {
	t.Helper()
	c := newTestConfigurator(t)
	state, err := c.Apply(
		EditOrigin("123 Main St"),
		EditDestination("Heathrow Airport"),
		EditTier(catalog.TierExecutive),
		EditTiming(TimingImmediate, time.Time{}),
		EditAllTerms(true),
	)
	require.NoError(t, err)
	require.True(t, state.Submittable)
	return c
}

func TestConfiguratorWalkthrough(t *testing.T) {
	c := newTestConfigurator(t)

	state, err := c.SetOrigin("123 Main St")
	require.NoError(t, err)
	require.Equal(t, StepLocations, state.FirstIncompleteStep)

	state, err = c.SetDestination("Heathrow Airport")
	require.NoError(t, err)
	require.Equal(t, StepServiceTier, state.FirstIncompleteStep)

	state, err = c.SelectScenario("airport_transfer")
	require.NoError(t, err)
	require.Equal(t, catalog.TierExecutive, state.RecommendedTier)
	require.Equal(t, StepServiceTier, state.FirstIncompleteStep, "recommendation never selects a tier")

	state, err = c.SelectTier(catalog.TierExecutive)
	require.NoError(t, err)
	require.Equal(t, StepTiming, state.FirstIncompleteStep)
	require.True(t, state.Quote.FinalFee.Equal(decimal.NewFromInt(150)))

	state, err = c.SetTiming(TimingImmediate, time.Time{})
	require.NoError(t, err)
	require.Equal(t, StepTerms, state.FirstIncompleteStep)

	state, err = c.SetTerm("booking_terms", true)
	require.NoError(t, err)
	require.Equal(t, []string{"cancellation_policy"}, state.OutstandingTerms)

	state, err = c.SetTerm("cancellation_policy", true)
	require.NoError(t, err)
	require.True(t, state.Submittable)
	require.True(t, c.State().Equal(state))
}

func TestApplyIsAtomic(t *testing.T) {
	c := newTestConfigurator(t)

	_, err := c.Apply(EditOrigin("123 Main St"), EditScenario("space_launch"))
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Empty(t, c.Draft().Origin)
}

func TestConfiguratorRejectsInvalidInput(t *testing.T) {
	c := newTestConfigurator(t)

	_, err := c.SetTiming(TimingScheduled, time.Time{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = c.SetTiming("TOMORROW", time.Time{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = c.SetTerm("privacy", true)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	require.Panics(t, func() { _, _ = c.SelectTier("platinum") })
}

func TestSetTimingStoresScheduledTimeInUTC(t *testing.T) {
	c := newTestConfigurator(t)
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.FixedZone("CET", 3600))

	_, err := c.SetTiming(TimingScheduled, at)
	require.NoError(t, err)
	d := c.Draft()
	require.Equal(t, time.UTC, d.ScheduledAt.Location())
	require.True(t, d.ScheduledAt.Equal(at))

	_, err = c.SetTiming(TimingPlus30Min, time.Time{})
	require.NoError(t, err)
	require.Nil(t, c.Draft().ScheduledAt)
}

func TestClearTierRemovesQuote(t *testing.T) {
	c := readyConfigurator(t)

	state, err := c.ClearTier()
	require.NoError(t, err)
	require.Nil(t, state.Quote)
	require.Equal(t, StepServiceTier, state.FirstIncompleteStep)
}

func TestApplyAssessmentOnlyRecommends(t *testing.T) {
	c := newTestConfigurator(t)
	assessment := risk.Evaluate([]risk.Answer{
		{QuestionID: risk.QuestionKnownThreats, Answer: true},
		{QuestionID: risk.QuestionPublicProfile, Answer: true},
	})

	state, err := c.ApplyAssessment(&assessment)
	require.NoError(t, err)
	require.Equal(t, catalog.TierShadow, state.RecommendedTier)
	require.Empty(t, c.Draft().TierID)
	require.Equal(t, assessment, *c.Assessment())

	state, err = c.ApplyAssessment(nil)
	require.NoError(t, err)
	require.Empty(t, state.RecommendedTier)
}

func TestRecentDestinationRecordedOnCompletion(t *testing.T) {
	c := newTestConfigurator(t)

	_, err := c.SetDestination("Heathrow Airport")
	require.NoError(t, err)
	require.Empty(t, c.RecentDestinations())

	_, err = c.SelectTier(catalog.TierStandard)
	require.NoError(t, err)
	require.Empty(t, c.RecentDestinations())

	_, err = c.AcceptAllTerms()
	require.NoError(t, err)
	require.Equal(t, []string{"Heathrow Airport"}, c.RecentDestinations())

	items, changed := c.TakeRecentChange()
	require.True(t, changed)
	require.Equal(t, []string{"Heathrow Airport"}, items)

	_, err = c.SetOrigin("123 Main St")
	require.NoError(t, err)
	_, changed = c.TakeRecentChange()
	require.False(t, changed)
}

func TestSubmitNotSubmittable(t *testing.T) {
	c := newTestConfigurator(t)
	gw := &stubGateway{outcome: PaymentOutcome{Token: "tok"}}

	_, err := c.Submit(context.Background(), gw)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotSubmittable))
	require.Zero(t, gw.calls)
}

func TestSubmitSuccessConsumesDraft(t *testing.T) {
	c := readyConfigurator(t)
	gw := &stubGateway{outcome: PaymentOutcome{Token: "pay_123"}}

	conf, err := c.Submit(context.Background(), gw)
	require.NoError(t, err)
	require.Equal(t, 1, gw.calls)
	require.Equal(t, "pay_123", conf.PaymentToken)
	require.True(t, conf.Quote.FinalFee.Equal(decimal.NewFromInt(150)))
	require.Equal(t, "Heathrow Airport", conf.Snapshot.Draft.Destination)
	require.Equal(t, testNow, conf.ConfirmedAt)

	require.True(t, gw.last.Amount.Equal(decimal.NewFromInt(150)))
	require.Equal(t, "Executive Shield", gw.last.Summary.TierName)
	require.Equal(t, TimingImmediate, gw.last.Summary.Timing)

	require.True(t, c.Consumed())
	_, err = c.SetOrigin("elsewhere")
	require.True(t, apperrors.IsCode(err, apperrors.CodeDraftConsumed))
	_, err = c.Submit(context.Background(), gw)
	require.True(t, apperrors.IsCode(err, apperrors.CodeDraftConsumed))
	require.Equal(t, 1, gw.calls)
}

func TestSubmitFailureThenRetry(t *testing.T) {
	c := readyConfigurator(t)
	before := c.Draft()

	declined := &stubGateway{outcome: PaymentOutcome{FailureReason: "card declined"}}
	_, err := c.Submit(context.Background(), declined)
	require.True(t, apperrors.IsCode(err, apperrors.CodePaymentFailed))
	require.Contains(t, err.Error(), "card declined")
	require.Equal(t, before, c.Draft())
	require.False(t, c.Submitting())
	require.True(t, c.State().Submittable)

	broken := &stubGateway{err: errors.New("gateway unreachable")}
	_, err = c.Submit(context.Background(), broken)
	require.True(t, apperrors.IsCode(err, apperrors.CodePaymentFailed))
	require.Equal(t, before, c.Draft())

	ok := &stubGateway{outcome: PaymentOutcome{Token: "pay_456"}}
	conf, err := c.Submit(context.Background(), ok)
	require.NoError(t, err)
	require.Equal(t, "pay_456", conf.PaymentToken)
	require.Equal(t, 1, declined.calls)
	require.Equal(t, 1, broken.calls)
	require.Equal(t, 1, ok.calls)
}

func TestDraftFrozenWhileSubmitting(t *testing.T) {
	c := readyConfigurator(t)
	gw := newBlockingGateway("pay_789")

	done := make(chan submitResult, 1)
	go func() {
		conf, err := c.Submit(context.Background(), gw)
		done <- submitResult{confirmation: conf, err: err}
	}()
	<-gw.started

	require.True(t, c.Submitting())
	_, err := c.SetDestination("Gatwick Airport")
	require.True(t, apperrors.IsCode(err, apperrors.CodeDraftFrozen))
	_, err = c.Submit(context.Background(), &stubGateway{outcome: PaymentOutcome{Token: "dup"}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeDraftFrozen))
	require.True(t, c.State().Submittable)

	close(gw.release)
	res := <-done
	require.NoError(t, res.err)
	require.Equal(t, "pay_789", res.confirmation.PaymentToken)
	require.Equal(t, "Heathrow Airport", res.confirmation.Snapshot.Draft.Destination)
}

func TestRetire(t *testing.T) {
	c := readyConfigurator(t)
	require.NoError(t, c.Retire())

	_, err := c.SetOrigin("Mayfair")
	require.True(t, apperrors.IsCode(err, apperrors.CodeDraftReplaced))
	gw := &stubGateway{outcome: PaymentOutcome{Token: "pay_retired"}}
	_, err = c.Submit(context.Background(), gw)
	require.True(t, apperrors.IsCode(err, apperrors.CodeDraftReplaced))
	require.Zero(t, gw.calls)
	require.Equal(t, "123 Main St", c.Draft().Origin)
}

func TestRetireRefusedWhileSubmittingOrPaid(t *testing.T) {
	c := readyConfigurator(t)
	gw := newBlockingGateway("pay_321")

	done := make(chan submitResult, 1)
	go func() {
		conf, err := c.Submit(context.Background(), gw)
		done <- submitResult{confirmation: conf, err: err}
	}()
	<-gw.started

	require.True(t, apperrors.IsCode(c.Retire(), apperrors.CodeDraftFrozen))

	close(gw.release)
	require.NoError(t, (<-done).err)
	require.True(t, apperrors.IsCode(c.Retire(), apperrors.CodeDraftConsumed))
}

func TestCancelSubmissionRestoresDraft(t *testing.T) {
	c := readyConfigurator(t)
	before := c.Draft()
	require.False(t, c.CancelSubmission())

	gw := newBlockingGateway("never")
	done := make(chan submitResult, 1)
	go func() {
		conf, err := c.Submit(context.Background(), gw)
		done <- submitResult{confirmation: conf, err: err}
	}()
	<-gw.started

	require.True(t, c.CancelSubmission())
	res := <-done
	require.True(t, apperrors.IsCode(res.err, apperrors.CodeSubmissionCancelled))
	require.Equal(t, before, c.Draft())
	require.False(t, c.Submitting())
	require.False(t, c.Consumed())

	retry := &stubGateway{outcome: PaymentOutcome{Token: "pay_retry"}}
	conf, err := c.Submit(context.Background(), retry)
	require.NoError(t, err)
	require.Equal(t, "pay_retry", conf.PaymentToken)
}

func TestSubmitCancelledByCaller(t *testing.T) {
	c := readyConfigurator(t)
	ctx, cancel := context.WithCancel(context.Background())
	gw := newBlockingGateway("never")

	done := make(chan submitResult, 1)
	go func() {
		conf, err := c.Submit(ctx, gw)
		done <- submitResult{confirmation: conf, err: err}
	}()
	<-gw.started
	cancel()

	res := <-done
	require.True(t, apperrors.IsCode(res.err, apperrors.CodeSubmissionCancelled))
	require.True(t, c.State().Submittable)
}

func TestNewConfiguratorPanicsOnBadTerms(t *testing.T) {
	require.Panics(t, func() {
		NewConfigurator(catalog.Default(), []string{"a", "a"})
	})
}
