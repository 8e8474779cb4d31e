package entity

import "math"

const (
	equityWeight    = 60.0
	ownershipWeight = 40.0
	fullTenureYears = 20.0
)

// IntentScore maps equity percent and years owned to a 0..100 score.
// Equity is worth up to 60 points (saturating at 100%) and tenure up to 40
// (saturating at 20 years). The clamp applies to the sum, not to each term.
func IntentScore(equityPercent, yearsOwned float64) int {
	equity := math.Min(equityPercent/100, 1) * equityWeight
	ownership := math.Min(yearsOwned/fullTenureYears, 1) * ownershipWeight
	return int(math.Round(math.Min(math.Max(equity+ownership, 0), 100)))
}

type Tier string

const (
	TierHot  Tier = "hot"
	TierWarm Tier = "warm"
	TierMild Tier = "mild"
	TierCold Tier = "cold"
)

// IntentTier buckets a score for display.
func IntentTier(score int) Tier {
	switch {
	case score >= 80:
		return TierHot
	case score >= 60:
		return TierWarm
	case score >= 40:
		return TierMild
	default:
		return TierCold
	}
}
