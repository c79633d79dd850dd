package scoring

import (
	"math"

	"github.com/yashogale30/rfp-responder/internal/matching"
)

const (
	idealMargin         = 0.25
	marginTolerance     = 0.10
	sigmoidSteepness    = 10.0
	assumedCostFraction = 0.70

	tooCheapMargin       = 0.05
	tooCheapPenalty      = 0.5
	tooExpensiveMargin   = 0.50
	tooExpensivePenalty  = 0.6
)

// PriceScore rates the quoted price against the cost structure of the
// matched products. Scoring peaks at the ideal 25% margin and falls away
// on a sigmoid; implausibly thin or fat margins take an extra penalty
// because both tend to lose bids.
func PriceScore(estimatedPrice float64, matches []matching.MatchResult) float64 {
	if estimatedPrice <= 0 || len(matches) == 0 {
		return 0
	}

	actualCost := ActualCost(matches)
	if actualCost <= 0 {
		// No catalog-backed cost: assume a 30% margin structure.
		actualCost = estimatedPrice * assumedCostFraction
	}

	margin := (estimatedPrice - actualCost) / estimatedPrice

	deviation := math.Abs(margin - idealMargin)
	score := 100 / (1 + math.Exp(sigmoidSteepness*(deviation-marginTolerance)))

	if margin < tooCheapMargin {
		score *= tooCheapPenalty
	} else if margin > tooExpensiveMargin {
		score *= tooExpensivePenalty
	}

	return round2(clamp(score, 0, 100))
}

// ActualCost sums catalog-backed material cost (unit price x MOQ) across
// the matches.
func ActualCost(matches []matching.MatchResult) float64 {
	cost := 0.0
	for _, m := range matches {
		cost += m.UnitPrice * m.MinOrderQty
	}
	return cost
}
