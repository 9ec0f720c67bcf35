package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Len(t, c.Tiers(), 4)
	require.NoError(t, c.Covers(TierStandard, TierExecutive, TierShadow, TierUltra))

	exec, ok := c.Tier(TierExecutive)
	require.True(t, ok)
	require.True(t, exec.HourlyRate.Equal(decimal.NewFromInt(75)))
	require.Equal(t, 2, exec.MinimumBillableHours)

	sc, ok := c.Scenario("airport_transfer")
	require.True(t, ok)
	require.Equal(t, TierExecutive, sc.RecommendedTier)

	_, ok = c.Tier("platinum")
	require.False(t, ok)
}

func TestNewRejectsInvalidListings(t *testing.T) {
	rate := decimal.NewFromInt(10)
	tests := []struct {
		name      string
		tiers     []ServiceTier
		scenarios []Scenario
		wantErr   string
	}{
		{
			name:    "empty id",
			tiers:   []ServiceTier{{ID: " ", HourlyRate: rate, MinimumBillableHours: 2}},
			wantErr: "tier id cannot be empty",
		},
		{
			name: "duplicate tier",
			tiers: []ServiceTier{
				{ID: "a", HourlyRate: rate, MinimumBillableHours: 2},
				{ID: "a", HourlyRate: rate, MinimumBillableHours: 2},
			},
			wantErr: `duplicate tier "a"`,
		},
		{
			name:    "zero rate",
			tiers:   []ServiceTier{{ID: "a", HourlyRate: decimal.Zero, MinimumBillableHours: 2}},
			wantErr: `tier "a" must have a positive hourly rate`,
		},
		{
			name:    "zero hours",
			tiers:   []ServiceTier{{ID: "a", HourlyRate: rate}},
			wantErr: `tier "a" must bill at least one hour`,
		},
		{
			name:      "scenario with unknown tier",
			tiers:     []ServiceTier{{ID: "a", HourlyRate: rate, MinimumBillableHours: 2}},
			scenarios: []Scenario{{ID: "s", RecommendedTier: "b"}},
			wantErr:   `scenario "s" recommends unknown tier "b"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tiers, tt.scenarios)
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestMustTierPanicsOnUnknownID(t *testing.T) {
	c := Default()
	require.Panics(t, func() { c.MustTier("platinum") })
	require.Equal(t, TierShadow, c.MustTier(TierShadow).ID)
}

func TestTiersReturnsCopy(t *testing.T) {
	c := Default()
	listing := c.Tiers()
	listing[0].DisplayName = "changed"
	first, _ := c.Tier(TierStandard)
	require.Equal(t, "Essential Protection", first.DisplayName)
}
