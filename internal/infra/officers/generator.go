// Package officers produces illustrative officer availability for the tier
// listing. The numbers are mock data and never influence pricing or the
// booking flow.
package officers

import (
	"hash/fnv"
	"math/rand/v2"

	"github.com/giquina/armora-sub001/internal/domain/catalog"
)

// Availability is the mock headline shown next to a tier.
type Availability struct {
	TierID         catalog.TierID `json:"tierId"`
	Available      int            `json:"available"`
	NearestMinutes int            `json:"nearestMinutes"`
}

// Generator yields availability that is stable for a given seed.
type Generator struct {
	seed uint64
}

// NewGenerator constructs a generator. The same seed always yields the same
// numbers for the same tier.
func NewGenerator(seed uint64) *Generator {
	return &Generator{seed: seed}
}

// For returns availability for each tier in order.
func (g *Generator) For(tiers []catalog.ServiceTier) []Availability {
	out := make([]Availability, 0, len(tiers))
	for _, tier := range tiers {
		rng := rand.New(rand.NewPCG(g.seed, tierSalt(tier.ID)))
		out = append(out, Availability{
			TierID:         tier.ID,
			Available:      1 + rng.IntN(maxOfficers(tier)),
			NearestMinutes: 4 + rng.IntN(26),
		})
	}
	return out
}

// maxOfficers shrinks the pool as the hourly rate climbs.
func maxOfficers(tier catalog.ServiceTier) int {
	rate := tier.HourlyRate.IntPart()
	switch {
	case rate >= 120:
		return 3
	case rate >= 90:
		return 6
	case rate >= 70:
		return 10
	default:
		return 15
	}
}

func tierSalt(id catalog.TierID) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}
