package pricing

import (
	"strings"

	"github.com/yashogale30/rfp-responder/internal/textnorm"
)

// testPrice pairs a vocabulary entry with its fixed price. Order matters
// for reporting, so this is a slice rather than a map.
type testPrice struct {
	name  string
	price float64
}

// testVocabulary is the fixed menu of compliance/acceptance tests the
// engine can price. Unknown tests in tender text contribute nothing.
var testVocabulary = []testPrice{
	{"high voltage test", 20000},
	{"insulation resistance test", 10000},
	{"fire resistance test", 8000},
	{"thermal cycling", 15000},
	{"vibration test", 12000},
	{"electrical acceptance", 18000},
	{"ip rating test", 9000},
	{"routine test", 5000},
	{"type test", 25000},
}

// DetectTests scans normalized acceptance/testing text for vocabulary
// entries and returns the per-test costs plus their subtotal.
func DetectTests(testingText string) ([]TestCost, float64) {
	text := textnorm.Normalize(testingText)
	if text == "" {
		return nil, 0
	}

	var (
		costs    []TestCost
		subtotal float64
	)
	for _, t := range testVocabulary {
		if strings.Contains(text, t.name) {
			costs = append(costs, TestCost{Name: t.name, Cost: t.price})
			subtotal += t.price
		}
	}

	return costs, subtotal
}
