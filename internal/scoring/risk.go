package scoring

import (
	"math"

	"github.com/yashogale30/rfp-responder/internal/matching"
)

const (
	availabilityPointsPer = 10.0
	availabilityCap       = 50.0
	diversityPointsPer    = 10.0
	diversityScoreCap     = 30.0
	consistencyMax        = 20.0
	consistencySlope      = 40.0
)

// RiskScore rates supply risk: more matching products and more category
// spread mean lower risk, and consistent minimum order quantities suggest
// a predictable order profile. Higher is safer.
func RiskScore(matches []matching.MatchResult) float64 {
	if len(matches) == 0 {
		return 0
	}

	availability := math.Min(float64(len(matches))*availabilityPointsPer, availabilityCap)

	categories := make(map[string]bool)
	for _, m := range matches {
		categories[m.Category] = true
	}
	diversity := math.Min(float64(len(categories))*diversityPointsPer, diversityScoreCap)

	return round2(availability + diversity + moqConsistency(matches))
}

// moqConsistency scores the spread of minimum order quantities through
// their coefficient of variation. Fewer than two observed MOQs count as
// perfectly consistent.
func moqConsistency(matches []matching.MatchResult) float64 {
	var moqs []float64
	for _, m := range matches {
		if m.MinOrderQty > 0 {
			moqs = append(moqs, m.MinOrderQty)
		}
	}
	if len(moqs) < 2 {
		return consistencyMax
	}

	mean := 0.0
	for _, q := range moqs {
		mean += q
	}
	mean /= float64(len(moqs))

	variance := 0.0
	for _, q := range moqs {
		variance += (q - mean) * (q - mean)
	}
	variance /= float64(len(moqs))

	cv := 0.0
	if mean > 0 {
		cv = math.Sqrt(variance) / mean
	}

	return math.Max(0, consistencyMax-cv*consistencySlope)
}
