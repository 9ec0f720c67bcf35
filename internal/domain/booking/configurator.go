package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/giquina/armora-sub001/internal/domain/catalog"
	"github.com/giquina/armora-sub001/internal/domain/risk"
	apperrors "github.com/giquina/armora-sub001/pkg/errors"
	"github.com/giquina/armora-sub001/pkg/util"
)

// Configurator owns a single booking draft. The draft is frozen while a
// submission is outstanding and consumed once payment succeeds. A retired
// configurator has been replaced by a resumed copy and rejects every write.
type Configurator struct {
	mu sync.Mutex

	catalog    *catalog.Catalog
	draft      Draft
	assessment *risk.Assessment
	recent     *RecentDestinations
	recentSeen bool
	now        func() time.Time

	submitting   bool
	cancelSubmit context.CancelFunc
	consumed     bool
	retired      bool
}

// Option customises a Configurator.
type Option func(*Configurator)

// WithClock overrides the clock used to reject past scheduled times.
func WithClock(now func() time.Time) Option {
	return func(c *Configurator) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRecentDestinations seeds the side list from the location collaborator.
func WithRecentDestinations(limit int, seed []string) Option {
	return func(c *Configurator) {
		c.recent = NewRecentDestinations(limit, seed)
	}
}

// NewConfigurator starts an empty draft. termKeys lists the acknowledgements
// that must all be accepted; invalid keys are a configuration bug.
func NewConfigurator(cat *catalog.Catalog, termKeys []string, opts ...Option) *Configurator {
	keys, err := normalizeTermKeys(termKeys)
	if err != nil {
		panic("booking: " + err.Error())
	}
	c := &Configurator{
		catalog: cat,
		draft:   Draft{Terms: newTerms(keys)},
		recent:  NewRecentDestinations(DefaultRecentLimit, nil),
		now:     util.NowUTC,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Apply runs edits against a copy of the draft and commits them only if all
// succeed. The returned State is authoritative.
func (c *Configurator) Apply(edits ...Edit) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.writableLocked(); err != nil {
		return State{}, err
	}
	working := c.draft.Clone()
	ed := &editor{draft: &working, catalog: c.catalog}
	for _, edit := range edits {
		if err := edit(ed); err != nil {
			return State{}, err
		}
	}
	c.draft = working
	if shouldRecordDestination(c.draft) && c.recent.Add(c.draft.Destination) {
		c.recentSeen = true
	}
	return c.deriveLocked(), nil
}

// SetOrigin sets the pickup location.
func (c *Configurator) SetOrigin(origin string) (State, error) {
	return c.Apply(EditOrigin(origin))
}

// SetDestination sets the drop-off location.
func (c *Configurator) SetDestination(dest string) (State, error) {
	return c.Apply(EditDestination(dest))
}

// SelectScenario picks a journey scenario. Unknown ids are invalid input.
func (c *Configurator) SelectScenario(id string) (State, error) {
	return c.Apply(EditScenario(id))
}

// ClearScenario skips the optional scenario step.
func (c *Configurator) ClearScenario() (State, error) {
	return c.Apply(EditScenario(""))
}

// SelectTier panics when id is not in the catalog.
func (c *Configurator) SelectTier(id catalog.TierID) (State, error) {
	return c.Apply(EditTier(id))
}

// ClearTier deselects the service tier.
func (c *Configurator) ClearTier() (State, error) {
	return c.Apply(EditTier(""))
}

// SetTiming sets when protection starts; at only matters for TimingScheduled.
func (c *Configurator) SetTiming(choice TimingChoice, at time.Time) (State, error) {
	return c.Apply(EditTiming(choice, at))
}

// SetTerm accepts or withdraws one acknowledgement.
func (c *Configurator) SetTerm(key string, accepted bool) (State, error) {
	return c.Apply(EditTerm(key, accepted))
}

// AcceptAllTerms accepts every acknowledgement at once.
func (c *Configurator) AcceptAllTerms() (State, error) {
	return c.Apply(EditAllTerms(true))
}

// SetDiscountEligibility records whether the reward discount applies.
func (c *Configurator) SetDiscountEligibility(eligible bool) (State, error) {
	return c.Apply(EditDiscountEligibility(eligible))
}

// ApplyAssessment attaches an advisory risk assessment. It never selects a
// tier; nil removes the hint.
func (c *Configurator) ApplyAssessment(a *risk.Assessment) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writableLocked(); err != nil {
		return State{}, err
	}
	if a == nil {
		c.assessment = nil
	} else {
		copied := *a
		c.assessment = &copied
	}
	return c.deriveLocked(), nil
}

// State derives the current state without mutating anything.
func (c *Configurator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deriveLocked()
}

// Draft returns a copy of the current draft.
func (c *Configurator) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Clone()
}

// Assessment returns the attached risk hint, if any.
func (c *Configurator) Assessment() *risk.Assessment {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.assessment == nil {
		return nil
	}
	copied := *c.assessment
	return &copied
}

// RecentDestinations returns the side list, most recent first.
func (c *Configurator) RecentDestinations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recent.Items()
}

// TakeRecentChange returns the side list and whether it changed since the
// last call, so the caller can persist it.
func (c *Configurator) TakeRecentChange() ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := c.recentSeen
	c.recentSeen = false
	return c.recent.Items(), changed
}

// Submitting reports whether a payment call is outstanding.
func (c *Configurator) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Consumed reports whether the draft has been paid for.
func (c *Configurator) Consumed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consumed
}

// Retire marks the configurator as replaced so a caller still holding it
// cannot edit or pay for it. It fails while a submission is outstanding or
// after payment.
func (c *Configurator) Retire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writableLocked(); err != nil {
		return err
	}
	c.retired = true
	return nil
}

// Submit hands the draft to the gateway exactly once per attempt. The draft
// is read-only until the gateway returns. Failure and cancellation leave the
// draft exactly as it was; success consumes it.
func (c *Configurator) Submit(ctx context.Context, gateway PaymentGateway) (Confirmation, error) {
	c.mu.Lock()
	if err := c.writableLocked(); err != nil {
		c.mu.Unlock()
		return Confirmation{}, err
	}
	state := c.deriveLocked()
	if !state.Submittable {
		c.mu.Unlock()
		return Confirmation{}, apperrors.Wrap(apperrors.CodeNotSubmittable, state.Guidance, nil)
	}
	snapshot := c.snapshotLocked(state)
	req := PaymentRequest{Amount: state.Quote.FinalFee, Summary: c.summaryLocked()}
	submitCtx, cancel := context.WithCancel(ctx)
	c.submitting = true
	c.cancelSubmit = cancel
	c.mu.Unlock()

	outcome, err := gateway.Charge(submitCtx, req)
	cancelled := submitCtx.Err() != nil
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	c.cancelSubmit = nil

	if err != nil {
		if cancelled || errors.Is(err, context.Canceled) {
			return Confirmation{}, apperrors.Wrap(apperrors.CodeSubmissionCancelled, "submission cancelled", err)
		}
		return Confirmation{}, apperrors.Wrap(apperrors.CodePaymentFailed, "payment could not be completed", err)
	}
	if !outcome.Succeeded() {
		reason := outcome.FailureReason
		if reason == "" {
			reason = "payment was declined"
		}
		return Confirmation{}, apperrors.Wrap(apperrors.CodePaymentFailed, reason, nil)
	}

	c.consumed = true
	return Confirmation{
		PaymentToken: outcome.Token,
		Quote:        *state.Quote,
		Snapshot:     snapshot,
		ConfirmedAt:  c.now(),
	}, nil
}

// CancelSubmission abandons an outstanding submission. It reports whether
// there was one to cancel.
func (c *Configurator) CancelSubmission() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.submitting || c.cancelSubmit == nil {
		return false
	}
	c.cancelSubmit()
	return true
}

func (c *Configurator) writableLocked() error {
	if c.consumed {
		return apperrors.Wrap(apperrors.CodeDraftConsumed, "booking has already been paid for", nil)
	}
	if c.retired {
		return apperrors.Wrap(apperrors.CodeDraftReplaced, "booking was replaced by a resumed copy", nil)
	}
	if c.submitting {
		return apperrors.Wrap(apperrors.CodeDraftFrozen, "booking cannot change while payment is in progress", nil)
	}
	return nil
}

func (c *Configurator) deriveLocked() State {
	return DeriveState(c.draft, c.catalog, c.assessment, c.now())
}

func (c *Configurator) summaryLocked() Summary {
	d := c.draft.Clone()
	tier := c.catalog.MustTier(d.TierID)
	return Summary{
		Origin:      d.Origin,
		Destination: d.Destination,
		ScenarioID:  d.ScenarioID,
		TierID:      tier.ID,
		TierName:    tier.DisplayName,
		Timing:      d.Timing,
		ScheduledAt: d.ScheduledAt,
	}
}
