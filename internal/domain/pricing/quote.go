// Package pricing computes booking quotes. The minimum billable duration is
// always charged in full; there is no proration below it.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/giquina/armora-sub001/internal/domain/catalog"
)

var rewardDiscountRate = decimal.RequireFromString("0.5")

// RewardDiscountRate is the share of the base fee waived for reward holders.
func RewardDiscountRate() decimal.Decimal {
	return rewardDiscountRate
}

// Quote is derived from a tier and discount eligibility.
type Quote struct {
	TierID          catalog.TierID  `json:"tierId"`
	HourlyRate      decimal.Decimal `json:"hourlyRate"`
	BillableHours   int             `json:"billableHours"`
	BaseFee         decimal.Decimal `json:"baseFee"`
	DiscountApplied bool            `json:"discountApplied"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	FinalFee        decimal.Decimal `json:"finalFee"`
}

// ComputeQuote prices a tier at its minimum billable duration.
func ComputeQuote(tier catalog.ServiceTier, discountEligible bool) Quote {
	hours := tier.MinimumBillableHours
	base := tier.HourlyRate.Mul(decimal.NewFromInt(int64(hours)))
	discount := decimal.Zero
	if discountEligible {
		discount = base.Mul(rewardDiscountRate)
	}
	return Quote{
		TierID:          tier.ID,
		HourlyRate:      tier.HourlyRate,
		BillableHours:   hours,
		BaseFee:         base,
		DiscountApplied: discountEligible,
		DiscountAmount:  discount,
		FinalFee:        base.Sub(discount),
	}
}

// Equal compares quotes by value; decimals with different exponents but the
// same amount are equal.
func (q Quote) Equal(other Quote) bool {
	return q.TierID == other.TierID &&
		q.HourlyRate.Equal(other.HourlyRate) &&
		q.BillableHours == other.BillableHours &&
		q.BaseFee.Equal(other.BaseFee) &&
		q.DiscountApplied == other.DiscountApplied &&
		q.DiscountAmount.Equal(other.DiscountAmount) &&
		q.FinalFee.Equal(other.FinalFee)
}

// MinorUnits converts an amount to integer minor units (pence, cents),
// rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
