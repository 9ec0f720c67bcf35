package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/giquina/armora-sub001/internal/domain/booking"
)

// SimulatedGateway approves every charge after an optional delay. Charges
// above DeclineAbove are declined so the failure path can be exercised
// without a real processor.
type SimulatedGateway struct {
	Delay        time.Duration
	DeclineAbove decimal.Decimal
	logger       *slog.Logger
}

// NewSimulatedGateway constructs the gateway. A zero declineAbove approves
// every amount.
func NewSimulatedGateway(delay time.Duration, declineAbove decimal.Decimal, logger *slog.Logger) *SimulatedGateway {
	return &SimulatedGateway{
		Delay:        delay,
		DeclineAbove: declineAbove,
		logger:       logger.With("component", "payment.simulated"),
	}
}

// Charge implements booking.PaymentGateway.
func (g *SimulatedGateway) Charge(ctx context.Context, req booking.PaymentRequest) (booking.PaymentOutcome, error) {
	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return booking.PaymentOutcome{}, ctx.Err()
		case <-timer.C:
		}
	}
	if g.DeclineAbove.IsPositive() && req.Amount.GreaterThan(g.DeclineAbove) {
		g.logger.Info("simulated charge declined", "amount", req.Amount.StringFixed(2), "tier", req.Summary.TierID)
		return booking.PaymentOutcome{FailureReason: "amount exceeds the simulated card limit"}, nil
	}
	token := "sim_" + uuid.NewString()
	g.logger.Info("simulated charge approved", "amount", req.Amount.StringFixed(2), "tier", req.Summary.TierID)
	return booking.PaymentOutcome{Token: token}, nil
}

var _ booking.PaymentGateway = (*SimulatedGateway)(nil)
