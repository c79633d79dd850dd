package scoring

import (
	"strings"

	"github.com/yashogale30/rfp-responder/internal/matching"
)

const (
	certifiedWeight = 0.4
	standardsWeight = 0.4
	warrantyPoints  = 20.0
	fullWarrantyAt  = 2.0
)

// ComplianceScore blends certification coverage, standards coverage and
// warranty depth across the matched products. Two or more years of average
// warranty earn the full warranty points.
func ComplianceScore(matches []matching.MatchResult) float64 {
	if len(matches) == 0 {
		return 0
	}

	certified := 0
	withStandards := 0
	totalWarranty := 0.0
	for _, m := range matches {
		if m.Certified {
			certified++
		}
		if strings.TrimSpace(m.StandardsCompliance) != "" {
			withStandards++
		}
		totalWarranty += m.WarrantyYears
	}

	n := float64(len(matches))
	certifiedPercent := float64(certified) / n * 100
	standardsPercent := float64(withStandards) / n * 100
	avgWarranty := totalWarranty / n

	score := certifiedPercent*certifiedWeight +
		standardsPercent*standardsWeight +
		warrantyPoints*minFloat(avgWarranty/fullWarrantyAt, 1)

	return round2(score)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
