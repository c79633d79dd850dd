package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashogale30/rfp-responder/internal/matching"
	"github.com/yashogale30/rfp-responder/internal/pricing"
	"github.com/yashogale30/rfp-responder/internal/scoring"
	"github.com/yashogale30/rfp-responder/internal/tender"
)

func TestRenderTextComplete(t *testing.T) {
	r := &Response{
		Tender: &tender.Tender{
			Reference: "RFP-2026-042",
			Title:     "11kV Cable Supply",
			IssuedBy:  "Metro Rail",
		},
		Matches: []matching.MatchResult{
			{ProductID: "PROD_001", ProductName: "11kV XLPE Cable", MatchPercent: 92.5},
		},
		Pricing: &pricing.Breakdown{
			Products:      []pricing.ProductCost{{ProductID: "PROD_001", Cost: 1200000}},
			BaseTotal:     1200000,
			MarginPercent: 15,
			MaterialTotal: 1380000,
			TestCosts:     []pricing.TestCost{{Name: "high voltage test", Cost: 20000}},
			TestSubtotal:  20000,
			GrandTotal:    1400000,
		},
		Score: &scoring.OpportunityScore{FinalScore: 86.5, Grade: "A+", Recommendation: "STRONGLY RECOMMEND"},
	}

	text := r.RenderText()
	assert.Contains(t, text, "RFP-2026-042")
	assert.Contains(t, text, "92.50% match")
	assert.Contains(t, text, "GRAND TOTAL:       1400000.00")
	assert.Contains(t, text, "grade A+")
}

func TestRenderTextDegradesGracefully(t *testing.T) {
	text := (&Response{}).RenderText()
	assert.Contains(t, text, "No tender selected")
	assert.Contains(t, text, "No matching products found")
	assert.Contains(t, text, "Pricing calculation failed")
	assert.Contains(t, text, "Scoring unavailable")
}

func TestRenderTextNoProductsNote(t *testing.T) {
	r := &Response{Pricing: &pricing.Breakdown{NoProducts: true, TestSubtotal: 30000, GrandTotal: 30000}}
	assert.Contains(t, r.RenderText(), "totals cover testing only")
}

func TestDumpToTmpFile(t *testing.T) {
	r := &Response{Tender: &tender.Tender{Reference: "RFP-001"}}
	name, err := r.DumpToTmpFile()
	require.NoError(t, err)
	assert.NotEmpty(t, name)
}
