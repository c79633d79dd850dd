// Package matching scores catalog products against a tender's technical
// requirement text.
package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/yashogale30/rfp-responder/internal/catalog"
	"github.com/yashogale30/rfp-responder/internal/textnorm"
)

// Component names reported in MatchResult.ComponentScores.
const (
	ComponentVoltage    = "voltage"
	ComponentStandards  = "standards"
	ComponentConductor  = "conductor"
	ComponentInsulation = "insulation"
	ComponentCores      = "cores"
	ComponentArmoring   = "armoring"
)

// componentWeights must sum to 1.0 so the weighted total stays on the
// 0-100 scale of its component scores.
var componentWeights = map[string]float64{
	ComponentVoltage:    0.25,
	ComponentStandards:  0.20,
	ComponentConductor:  0.18,
	ComponentInsulation: 0.15,
	ComponentCores:      0.12,
	ComponentArmoring:   0.10,
}

// genericStandardsTokens earn partial standards credit when the full
// compliance string is absent from the requirement text.
var genericStandardsTokens = []string{"is", "iec", "ieee", "bis"}

const partialStandardsScore = 60.0

func init() {
	sum := 0.0
	for _, w := range componentWeights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		panic(fmt.Sprintf("matching: component weights sum to %v, want 1.0", sum))
	}
}

// MatchResult is one scored (tender, product) pair. The pricing-relevant
// product fields are copied in so downstream consumers never need a
// catalog lookup for them.
type MatchResult struct {
	ProductID       string             `json:"product_id"`
	ProductName     string             `json:"product_name"`
	MatchPercent    float64            `json:"match_percent"`
	ComponentScores map[string]float64 `json:"component_scores"`

	Category            string  `json:"category"`
	UnitPrice           float64 `json:"unit_price"`
	MinOrderQty         float64 `json:"min_order_qty"`
	LeadTimeDays        float64 `json:"lead_time_days"`
	Certified           bool    `json:"certified"`
	WarrantyYears       float64 `json:"warranty_years"`
	StandardsCompliance string  `json:"standards_compliance"`
}

// Options bound the result list.
type Options struct {
	MinScore   float64
	MaxResults int
}

// DefaultOptions returns the standard threshold and cap.
func DefaultOptions() Options {
	return Options{MinScore: 30.0, MaxResults: 10}
}

// Match scores every product against the requirement text and returns the
// thresholded, size-capped list, best first. An empty requirement text or
// catalog yields an empty list, never an error.
func Match(requirementText string, products []catalog.Product, opts Options) []MatchResult {
	normalized := textnorm.Normalize(requirementText)
	if normalized == "" || len(products) == 0 {
		return nil
	}

	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultOptions().MaxResults
	}

	results := make([]MatchResult, 0, len(products))
	for i := range products {
		r := scoreProduct(normalized, &products[i])
		if r.MatchPercent < opts.MinScore {
			continue
		}
		results = append(results, r)
	}

	// Stable: equal totals keep catalog order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercent > results[j].MatchPercent
	})

	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results
}

func scoreProduct(normalizedReq string, p *catalog.Product) MatchResult {
	components := map[string]float64{
		ComponentVoltage:    binary(voltageMatches(normalizedReq, p)),
		ComponentStandards:  standardsScore(normalizedReq, p),
		ComponentConductor:  binary(textnorm.FuzzyContains(p.ConductorMaterial, normalizedReq, textnorm.MaterialSynonyms)),
		ComponentInsulation: binary(textnorm.FuzzyContains(p.InsulationType, normalizedReq, textnorm.InsulationSynonyms)),
		ComponentCores:      binary(coresMatch(normalizedReq, p.CoreCount)),
		ComponentArmoring:   binary(armoringMatches(normalizedReq, p.Armoring)),
	}

	total := 0.0
	for name, score := range components {
		total += score * componentWeights[name]
	}

	return MatchResult{
		ProductID:           p.ID,
		ProductName:         p.Name,
		MatchPercent:        round2(total),
		ComponentScores:     components,
		Category:            p.Category,
		UnitPrice:           p.UnitPrice,
		MinOrderQty:         p.MinOrderQty,
		LeadTimeDays:        p.LeadTimeDays,
		Certified:           p.Certified.Bool(),
		WarrantyYears:       p.WarrantyYears,
		StandardsCompliance: p.StandardsCompliance,
	}
}

// voltageMatches compares space-squashed forms so "11 kV" in requirement
// text matches a catalog rating of "11kV" and vice versa.
func voltageMatches(normalizedReq string, p *catalog.Product) bool {
	v := squash(textnorm.Normalize(p.VoltageRating))
	return v != "" && strings.Contains(squash(normalizedReq), v)
}

func squash(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// standardsScore gives full credit when the product's whole compliance
// string appears in the requirement, partial credit when the requirement
// merely mentions a generic standards body.
func standardsScore(normalizedReq string, p *catalog.Product) float64 {
	full := textnorm.Normalize(p.StandardsCompliance)
	if full != "" && strings.Contains(normalizedReq, full) {
		return 100
	}

	// Tokens must stand alone as words: a substring check would trip on
	// "is" inside "insulation".
	for _, word := range strings.Fields(normalizedReq) {
		for _, token := range genericStandardsTokens {
			if word == token {
				return partialStandardsScore
			}
		}
	}
	return 0
}

// coresMatch accepts the count as a bare digit or with the common "c" /
// " core" suffixes.
func coresMatch(normalizedReq string, count int) bool {
	if count < 1 {
		return false
	}
	forms := []string{
		fmt.Sprintf("%d", count),
		fmt.Sprintf("%dc", count),
		fmt.Sprintf("%d core", count),
	}
	for _, form := range forms {
		if strings.Contains(normalizedReq, form) {
			return true
		}
	}
	return false
}

func armoringMatches(normalizedReq string, armoring string) bool {
	a := textnorm.Normalize(armoring)
	return a != "" && strings.Contains(normalizedReq, a)
}

func binary(ok bool) float64 {
	if ok {
		return 100
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
