package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/giquina/armora-sub001/internal/domain/pricing"
)

// PaymentGateway charges the final fee for a submitted draft.
type PaymentGateway interface {
	Charge(ctx context.Context, req PaymentRequest) (PaymentOutcome, error)
}

// PaymentRequest is what the gateway sees of a submission.
type PaymentRequest struct {
	Amount  decimal.Decimal
	Summary Summary
}

// PaymentOutcome carries either an opaque success token or a failure reason.
type PaymentOutcome struct {
	Token         string
	FailureReason string
}

// Succeeded reports whether the charge went through.
func (o PaymentOutcome) Succeeded() bool {
	return o.Token != "" && o.FailureReason == ""
}

// Confirmation is returned once payment succeeds. It is the read-only
// handoff to the history collaborator.
type Confirmation struct {
	PaymentToken string        `json:"paymentToken"`
	Quote        pricing.Quote `json:"quote"`
	Snapshot     Snapshot      `json:"snapshot"`
	ConfirmedAt  time.Time     `json:"confirmedAt"`
}
