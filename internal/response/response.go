// Package response assembles the consolidated RFP response handed to the
// presentation layer. It is a plain record plus a text renderer; no
// scoring logic lives here.
package response

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yashogale30/rfp-responder/internal/matching"
	"github.com/yashogale30/rfp-responder/internal/pricing"
	"github.com/yashogale30/rfp-responder/internal/scoring"
	"github.com/yashogale30/rfp-responder/internal/tender"
)

// Response is the full result of one respond cycle. All fields are plain
// immutable records readable without invoking core logic.
type Response struct {
	Tender  *tender.Tender            `json:"tender"`
	Matches []matching.MatchResult    `json:"matches"`
	Pricing *pricing.Breakdown        `json:"pricing"`
	Score   *scoring.OpportunityScore `json:"score"`
}

// RenderText produces the human-readable consolidated response. Missing
// pieces degrade to explanatory notes; the render never fails.
func (r *Response) RenderText() string {
	var b strings.Builder
	line := strings.Repeat("=", 70)

	b.WriteString(line + "\n")
	b.WriteString("RFP RESPONSE\n")
	b.WriteString(line + "\n")
	if r.Tender != nil {
		fmt.Fprintf(&b, "Title:     %s\n", r.Tender.Title)
		fmt.Fprintf(&b, "Reference: %s\n", r.Tender.Reference)
		fmt.Fprintf(&b, "Issued by: %s\n", r.Tender.IssuedBy)
		fmt.Fprintf(&b, "Category:  %s\n", r.Tender.Category)
		fmt.Fprintf(&b, "Deadline:  %s\n", r.Tender.SubmissionDeadline)
	} else {
		b.WriteString("No tender selected\n")
	}

	b.WriteString("\nTECHNICAL RECOMMENDATIONS\n")
	if len(r.Matches) == 0 {
		b.WriteString("No matching products found\n")
	}
	for _, m := range r.Matches {
		fmt.Fprintf(&b, "- %s (%s): %.2f%% match\n", m.ProductName, m.ProductID, m.MatchPercent)
	}

	b.WriteString("\nPRICING BREAKDOWN\n")
	if r.Pricing == nil {
		b.WriteString("Pricing calculation failed\n")
	} else {
		for _, p := range r.Pricing.Products {
			note := ""
			if p.FallbackEstimate {
				note = " (fallback estimate)"
			}
			fmt.Fprintf(&b, "- %s: %.2f%s\n", p.ProductID, p.Cost, note)
		}
		fmt.Fprintf(&b, "Material subtotal: %.2f\n", r.Pricing.BaseTotal)
		fmt.Fprintf(&b, "Margin applied:    %.2f%%\n", r.Pricing.MarginPercent)
		fmt.Fprintf(&b, "Material total:    %.2f\n", r.Pricing.MaterialTotal)
		for _, tc := range r.Pricing.TestCosts {
			fmt.Fprintf(&b, "- %s: %.2f\n", tc.Name, tc.Cost)
		}
		fmt.Fprintf(&b, "Testing subtotal:  %.2f\n", r.Pricing.TestSubtotal)
		fmt.Fprintf(&b, "GRAND TOTAL:       %.2f\n", r.Pricing.GrandTotal)
		if r.Pricing.NoProducts {
			b.WriteString("Note: no products to bid on; totals cover testing only\n")
		}
	}

	b.WriteString("\nOPPORTUNITY ASSESSMENT\n")
	if r.Score == nil {
		b.WriteString("Scoring unavailable\n")
	} else {
		fmt.Fprintf(&b, "Final score: %.2f/100 (grade %s)\n", r.Score.FinalScore, r.Score.Grade)
		fmt.Fprintf(&b, "%s\n", r.Score.Recommendation)
	}
	b.WriteString(line + "\n")

	return b.String()
}

// DumpToTmpFile writes the response as indented JSON to a temp file and
// returns its name.
func (r *Response) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "rfp_response_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
