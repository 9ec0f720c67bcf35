package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Catalog is the read-only tier and scenario listing supplied at startup.
type Catalog struct {
	tiers     []ServiceTier
	tierIndex map[TierID]int
	scenarios []Scenario
	scenIndex map[string]int
}

// New validates the listings and builds lookup indexes. Tiers keep their
// supplied order for display.
func New(tiers []ServiceTier, scenarios []Scenario) (*Catalog, error) {
	c := &Catalog{
		tiers:     make([]ServiceTier, 0, len(tiers)),
		tierIndex: make(map[TierID]int, len(tiers)),
		scenarios: make([]Scenario, 0, len(scenarios)),
		scenIndex: make(map[string]int, len(scenarios)),
	}
	for _, tier := range tiers {
		id := TierID(strings.TrimSpace(string(tier.ID)))
		if id == "" {
			return nil, fmt.Errorf("tier id cannot be empty")
		}
		if _, dup := c.tierIndex[id]; dup {
			return nil, fmt.Errorf("duplicate tier %q", id)
		}
		if !tier.HourlyRate.IsPositive() {
			return nil, fmt.Errorf("tier %q must have a positive hourly rate", id)
		}
		if tier.MinimumBillableHours <= 0 {
			return nil, fmt.Errorf("tier %q must bill at least one hour", id)
		}
		tier.ID = id
		c.tierIndex[id] = len(c.tiers)
		c.tiers = append(c.tiers, tier)
	}
	for _, sc := range scenarios {
		id := strings.TrimSpace(sc.ID)
		if id == "" {
			return nil, fmt.Errorf("scenario id cannot be empty")
		}
		if _, dup := c.scenIndex[id]; dup {
			return nil, fmt.Errorf("duplicate scenario %q", id)
		}
		if _, ok := c.tierIndex[sc.RecommendedTier]; !ok {
			return nil, fmt.Errorf("scenario %q recommends unknown tier %q", id, sc.RecommendedTier)
		}
		sc.ID = id
		c.scenIndex[id] = len(c.scenarios)
		c.scenarios = append(c.scenarios, sc)
	}
	return c, nil
}

// Tier returns the tier registered under id.
func (c *Catalog) Tier(id TierID) (ServiceTier, bool) {
	idx, ok := c.tierIndex[id]
	if !ok {
		return ServiceTier{}, false
	}
	return c.tiers[idx], true
}

// MustTier is Tier for callers that already hold a validated id. An unknown
// id is a caller bug.
func (c *Catalog) MustTier(id TierID) ServiceTier {
	tier, ok := c.Tier(id)
	if !ok {
		panic(fmt.Sprintf("catalog: tier %q is not in the catalog", id))
	}
	return tier
}

// Tiers returns a copy of the tier listing.
func (c *Catalog) Tiers() []ServiceTier {
	return append([]ServiceTier(nil), c.tiers...)
}

// Scenario returns the scenario registered under id.
func (c *Catalog) Scenario(id string) (Scenario, bool) {
	idx, ok := c.scenIndex[id]
	if !ok {
		return Scenario{}, false
	}
	return c.scenarios[idx], true
}

// Scenarios returns a copy of the scenario listing.
func (c *Catalog) Scenarios() []Scenario {
	return append([]Scenario(nil), c.scenarios...)
}

// Covers reports whether every id is present in the tier listing.
func (c *Catalog) Covers(ids ...TierID) error {
	for _, id := range ids {
		if _, ok := c.tierIndex[id]; !ok {
			return fmt.Errorf("tier %q missing from catalog", id)
		}
	}
	return nil
}

// DefaultTiers is the stock tier listing.
func DefaultTiers() []ServiceTier {
	return []ServiceTier{
		{ID: TierStandard, DisplayName: "Essential Protection", HourlyRate: decimal.NewFromInt(50), MinimumBillableHours: DefaultMinimumBillableHours},
		{ID: TierExecutive, DisplayName: "Executive Shield", HourlyRate: decimal.NewFromInt(75), MinimumBillableHours: DefaultMinimumBillableHours},
		{ID: TierShadow, DisplayName: "Shadow Protection", HourlyRate: decimal.NewFromInt(95), MinimumBillableHours: DefaultMinimumBillableHours},
		{ID: TierUltra, DisplayName: "Ultra-Secure Convoy", HourlyRate: decimal.NewFromInt(150), MinimumBillableHours: DefaultMinimumBillableHours},
	}
}

// DefaultScenarios is the stock scenario listing.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{ID: "airport_transfer", DisplayName: "Airport transfer", RecommendedTier: TierExecutive},
		{ID: "business_meeting", DisplayName: "Business meeting", RecommendedTier: TierExecutive},
		{ID: "evening_event", DisplayName: "Evening event", RecommendedTier: TierStandard},
		{ID: "family_outing", DisplayName: "Family outing", RecommendedTier: TierStandard},
		{ID: "high_profile_appearance", DisplayName: "High-profile appearance", RecommendedTier: TierShadow},
		{ID: "hostile_environment", DisplayName: "Hostile environment", RecommendedTier: TierUltra},
	}
}

// Default builds the stock catalog.
func Default() *Catalog {
	c, err := New(DefaultTiers(), DefaultScenarios())
	if err != nil {
		panic(err)
	}
	return c
}
