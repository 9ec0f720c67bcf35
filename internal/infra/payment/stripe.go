package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/giquina/armora-sub001/internal/domain/booking"
	"github.com/giquina/armora-sub001/internal/domain/pricing"
)

// StripeGateway charges bookings through Stripe payment intents.
type StripeGateway struct {
	client        *client.API
	currency      string
	paymentMethod string
	logger        *slog.Logger
}

// NewStripeGateway constructs the gateway. paymentMethod is the saved method
// confirmed against each intent.
func NewStripeGateway(secretKey, currency, paymentMethod string, logger *slog.Logger) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeGateway{
		client:        sc,
		currency:      strings.ToLower(currency),
		paymentMethod: paymentMethod,
		logger:        logger.With("component", "payment.stripe"),
	}
}

// Charge implements booking.PaymentGateway. Card declines are reported as a
// failed outcome; transport and API errors are returned as errors.
func (g *StripeGateway) Charge(ctx context.Context, req booking.PaymentRequest) (booking.PaymentOutcome, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(pricing.MinorUnits(req.Amount)),
		Currency:      stripe.String(g.currency),
		PaymentMethod: stripe.String(g.paymentMethod),
		Description:   stripe.String(describe(req.Summary)),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata("tier", string(req.Summary.TierID))
	params.AddMetadata("timing", string(req.Summary.Timing))
	if req.Summary.ScenarioID != "" {
		params.AddMetadata("scenario", req.Summary.ScenarioID)
	}

	pi, err := g.client.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			g.logger.Info("stripe charge declined", "code", stripeErr.Code, "decline", stripeErr.DeclineCode)
			return booking.PaymentOutcome{FailureReason: stripeErr.Msg}, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return booking.PaymentOutcome{}, ctxErr
		}
		return booking.PaymentOutcome{}, fmt.Errorf("create payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		g.logger.Warn("stripe payment intent not settled", "intent", pi.ID, "status", pi.Status)
		return booking.PaymentOutcome{FailureReason: fmt.Sprintf("payment not completed (status %s)", pi.Status)}, nil
	}
	return booking.PaymentOutcome{Token: pi.ID}, nil
}

func describe(s booking.Summary) string {
	return fmt.Sprintf("%s: %s to %s", s.TierName, s.Origin, s.Destination)
}

var _ booking.PaymentGateway = (*StripeGateway)(nil)
