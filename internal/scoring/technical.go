package scoring

import (
	"math"

	"github.com/yashogale30/rfp-responder/internal/matching"
)

const (
	technicalTopN      = 5
	technicalDecay     = 0.3
	diversityStep      = 0.05
	diversityCap       = 1.15
	goodMatchThreshold = 70.0
)

// TechnicalScore rates how well the matched products cover the tender's
// technical requirements. The top matches dominate through exponential
// rank decay; having several strong matches earns a small diversity
// multiplier as evidence of broad capability.
func TechnicalScore(matches []matching.MatchResult) float64 {
	valid := make([]matching.MatchResult, 0, len(matches))
	for _, m := range matches {
		if m.MatchPercent > 0 {
			valid = append(valid, m)
		}
	}
	if len(valid) == 0 {
		return 0
	}

	totalScore := 0.0
	totalWeight := 0.0
	for i, m := range valid {
		if i >= technicalTopN {
			break
		}
		// Decay weights: 1.0, 0.74, 0.55, 0.41, 0.30.
		w := math.Exp(-technicalDecay * float64(i))
		totalScore += m.MatchPercent * w
		totalWeight += w
	}

	weightedAvg := totalScore / totalWeight

	good := 0
	for _, m := range valid {
		if m.MatchPercent >= goodMatchThreshold {
			good++
		}
	}
	multiplier := math.Min(1.0+float64(good-1)*diversityStep, diversityCap)

	return round2(math.Min(weightedAvg*multiplier, 100))
}
