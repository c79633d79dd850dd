package scoring

import (
	"time"

	"github.com/yashogale30/rfp-responder/internal/matching"
	"github.com/yashogale30/rfp-responder/internal/tender"
)

const leadTimeSlope = 1.1

// DeliveryScore rates timeline feasibility from average lead time, with
// buffer penalties when the tender deadline leaves little room. A nil
// deadline means "no deadline": only the lead-time base applies.
func DeliveryScore(matches []matching.MatchResult, deadline *time.Time, now time.Time) float64 {
	if len(matches) == 0 {
		return 0
	}

	totalLead := 0.0
	for _, m := range matches {
		totalLead += m.LeadTimeDays
	}
	avgLead := totalLead / float64(len(matches))

	score := 100 - avgLead*leadTimeSlope
	if score < 0 {
		score = 0
	}

	if deadline != nil {
		score -= bufferPenalty(tender.DaysUntil(*deadline, now) - avgLead)
	}

	if score < 0 {
		score = 0
	}
	return round2(score)
}

// bufferPenalty grades the slack between the deadline and the lead time.
// A lapsed deadline yields a deeply negative buffer and the full penalty.
func bufferPenalty(buffer float64) float64 {
	switch {
	case buffer < 0:
		return 50
	case buffer < 14:
		return 30
	case buffer < 30:
		return 15
	default:
		return 0
	}
}
