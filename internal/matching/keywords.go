package matching

import (
	"math"
	"strings"

	"github.com/yashogale30/rfp-responder/internal/catalog"
	"github.com/yashogale30/rfp-responder/internal/textnorm"
)

// technicalKeywords is the fixed vocabulary of the coarse matching mode.
var technicalKeywords = []string{
	"xlpe", "pvc", "copper", "aluminium",
	"11 kv", "1.1 kv", "ht", "lt",
	"is 7098", "iec 60502", "bis",
}

// KeywordOverlap is the coarse pre-filtering score: the share of the fixed
// technical vocabulary present in both the requirement text and the
// product's flattened specification blob, as a percentage. It is a
// deliberately blunter instrument than Match and stays a separate entry
// point; consumers choose which mode they want.
func KeywordOverlap(requirementText string, p *catalog.Product) float64 {
	req := strings.ToLower(requirementText)
	specs := p.SpecBlob()

	if req == "" {
		return 0
	}

	hits := 0
	for _, k := range technicalKeywords {
		if strings.Contains(req, k) && strings.Contains(specs, k) {
			hits++
		}
	}

	return math.Round(float64(hits)/float64(len(technicalKeywords))*100*100) / 100
}

// FilterByCategory narrows the catalog to products whose category contains
// the tender's category text, the pre-filter step of the coarse mode.
func FilterByCategory(category string, products []catalog.Product) []catalog.Product {
	want := textnorm.Normalize(category)
	if want == "" {
		return products
	}

	var out []catalog.Product
	for _, p := range products {
		if strings.Contains(textnorm.Normalize(p.Category), want) {
			out = append(out, p)
		}
	}
	return out
}
