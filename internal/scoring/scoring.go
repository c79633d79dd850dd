// Package scoring computes the composite go/no-go opportunity score from
// the matched products, the priced bid and the tender deadline.
package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/yashogale30/rfp-responder/internal/matching"
)

// Component names used in score maps.
const (
	ComponentTechnical  = "technical_match"
	ComponentPrice      = "price_competitiveness"
	ComponentDelivery   = "delivery_capability"
	ComponentCompliance = "compliance"
	ComponentRisk       = "risk_score"
)

// Weights follow the bid evaluation framework of the sourcing team and
// must sum to 1.0.
var componentWeights = map[string]float64{
	ComponentTechnical:  0.35,
	ComponentPrice:      0.25,
	ComponentDelivery:   0.15,
	ComponentCompliance: 0.15,
	ComponentRisk:       0.10,
}

func init() {
	sum := 0.0
	for _, w := range componentWeights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		panic(fmt.Sprintf("scoring: component weights sum to %v, want 1.0", sum))
	}
}

// OpportunityScore is the complete composite result. It is always
// structurally valid: missing inputs degrade component scores to zero
// instead of aborting.
type OpportunityScore struct {
	FinalScore            float64            `json:"final_score"`
	Grade                 string             `json:"grade"`
	ComponentScores       map[string]float64 `json:"component_scores"`
	WeightedContributions map[string]float64 `json:"weighted_contributions"`
	Recommendation        string             `json:"recommendation"`
}

// Score combines the five sub-scorers. It never recomputes their logic;
// each sub-scorer is independently callable and tested on its own.
func Score(matches []matching.MatchResult, estimatedPrice float64, deadline *time.Time, now time.Time) *OpportunityScore {
	components := map[string]float64{
		ComponentTechnical:  TechnicalScore(matches),
		ComponentPrice:      PriceScore(estimatedPrice, matches),
		ComponentDelivery:   DeliveryScore(matches, deadline, now),
		ComponentCompliance: ComplianceScore(matches),
		ComponentRisk:       RiskScore(matches),
	}

	final := 0.0
	contributions := make(map[string]float64, len(components))
	for name, score := range components {
		contribution := score * componentWeights[name]
		contributions[name] = round2(contribution)
		final += contribution
	}
	final = round2(final)

	grade := GradeFor(final)
	return &OpportunityScore{
		FinalScore:            final,
		Grade:                 grade,
		ComponentScores:       components,
		WeightedContributions: contributions,
		Recommendation:        Recommendation(final, grade),
	}
}

// GradeFor buckets a final score into the letter grades used for triage.
// Boundaries are inclusive lower bounds.
func GradeFor(finalScore float64) string {
	switch {
	case finalScore >= 85:
		return "A+"
	case finalScore >= 75:
		return "A"
	case finalScore >= 65:
		return "B+"
	case finalScore >= 55:
		return "B"
	case finalScore >= 45:
		return "C"
	default:
		return "D"
	}
}

// Recommendation renders the fixed per-grade template.
func Recommendation(finalScore float64, grade string) string {
	switch grade {
	case "A+":
		return fmt.Sprintf("STRONGLY RECOMMEND pursuing this RFP. Excellent match (%.1f/100) across all criteria. High probability of winning with competitive advantage.", finalScore)
	case "A":
		return fmt.Sprintf("RECOMMEND pursuing this RFP. Very good match (%.1f/100) with strong technical alignment and competitive pricing.", finalScore)
	case "B+":
		return fmt.Sprintf("CONDITIONAL RECOMMENDATION. Good opportunity (%.1f/100) but optimize pricing or delivery timeline before submission.", finalScore)
	case "B":
		return fmt.Sprintf("PROCEED WITH CAUTION. Satisfactory match (%.1f/100) but gaps exist. Consider if strategic value justifies effort.", finalScore)
	case "C":
		return fmt.Sprintf("MARGINAL OPPORTUNITY. Low score (%.1f/100) indicates poor fit. Recommend focusing on higher-scoring RFPs.", finalScore)
	case "D":
		return fmt.Sprintf("DO NOT PURSUE. Poor match (%.1f/100) across multiple criteria. Resource investment not justified.", finalScore)
	default:
		return fmt.Sprintf("Score: %.1f/100. Evaluate based on strategic priorities.", finalScore)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
