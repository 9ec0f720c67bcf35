package catalog

import "github.com/shopspring/decimal"

// TierID identifies a service tier in the catalog.
type TierID string

const (
	TierStandard  TierID = "standard"
	TierExecutive TierID = "executive"
	TierShadow    TierID = "shadow"
	TierUltra     TierID = "ultra"
)

// DefaultMinimumBillableHours is charged in full on every booking.
const DefaultMinimumBillableHours = 2

// ServiceTier is a catalog entry describing a protection offering.
type ServiceTier struct {
	ID                   TierID          `json:"id"`
	DisplayName          string          `json:"displayName"`
	HourlyRate           decimal.Decimal `json:"hourlyRate"`
	MinimumBillableHours int             `json:"minimumBillableHours"`
}

// Scenario maps a booking situation to the tier usually recommended for it.
type Scenario struct {
	ID              string `json:"id"`
	DisplayName     string `json:"displayName"`
	RecommendedTier TierID `json:"recommendedTier"`
}
