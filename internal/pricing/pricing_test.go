package pricing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashogale30/rfp-responder/internal/catalog"
	"github.com/yashogale30/rfp-responder/internal/matching"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Validate([]catalog.Product{
		{
			ID: "P1", Category: "Power Cables", VoltageRating: "11kV",
			ConductorMaterial: "Copper", InsulationType: "XLPE", CoreCount: 3,
			UnitPrice: 1200, MinOrderQty: 1000, LeadTimeDays: 30,
		},
		{
			ID: "P2", Category: "Power Cables", VoltageRating: "11kV",
			ConductorMaterial: "Copper", InsulationType: "XLPE", CoreCount: 4,
			UnitPrice: 100, MinOrderQty: 500, LeadTimeDays: 35,
		},
	})
	require.NoError(t, err)
	return c
}

func match(id string) matching.MatchResult {
	return matching.MatchResult{ProductID: id, MatchPercent: 85}
}

func TestPriceMaterialCost(t *testing.T) {
	engine := NewEngine(testCatalog(t), rand.New(rand.NewSource(1)), 1.0)

	b := engine.Price([]matching.MatchResult{match("P1")}, "")
	require.Len(t, b.Products, 1)

	// unit_price 1200 * moq 1000.
	assert.Equal(t, 1200000.0, b.BaseTotal)
	assert.False(t, b.Products[0].FallbackEstimate)
	assert.False(t, b.NoProducts)

	// Base > 500k: 15% tier, jitter +-5%, clamped to [10, 35].
	assert.GreaterOrEqual(t, b.MarginPercent, 10.0)
	assert.LessOrEqual(t, b.MarginPercent, 20.0)

	wantMaterial := b.BaseTotal * (1 + b.MarginPercent/100)
	assert.InDelta(t, wantMaterial, b.MaterialTotal, 0.01)
	assert.InDelta(t, b.MaterialTotal+b.TestSubtotal, b.GrandTotal, 0.01)
}

func TestPriceMarginTiers(t *testing.T) {
	tests := []struct {
		name    string
		matches []matching.MatchResult
		lo, hi  float64
	}{
		{"large bid 15% tier", []matching.MatchResult{match("P1")}, 10, 20},
		{"small bid 25% tier", []matching.MatchResult{match("P2")}, 20, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(testCatalog(t), rand.New(rand.NewSource(7)), 1.0)
			b := engine.Price(tt.matches, "")
			assert.GreaterOrEqual(t, b.MarginPercent, tt.lo)
			assert.LessOrEqual(t, b.MarginPercent, tt.hi)
		})
	}
}

func TestPriceReproducibleWithSeed(t *testing.T) {
	matches := []matching.MatchResult{match("P1"), match("P2")}

	first := NewEngine(testCatalog(t), rand.New(rand.NewSource(42)), 1.0).Price(matches, "")
	second := NewEngine(testCatalog(t), rand.New(rand.NewSource(42)), 1.0).Price(matches, "")

	assert.Equal(t, first.MarginPercent, second.MarginPercent)
	assert.Equal(t, first.GrandTotal, second.GrandTotal)
}

func TestPriceFallbackForUnknownProduct(t *testing.T) {
	engine := NewEngine(testCatalog(t), rand.New(rand.NewSource(1)), 1.0)

	b := engine.Price([]matching.MatchResult{match("GHOST")}, "")
	require.Len(t, b.Products, 1)
	assert.True(t, b.Products[0].FallbackEstimate)
	assert.Equal(t, FallbackProductCost, b.Products[0].Cost)
	assert.Equal(t, FallbackProductCost, b.BaseTotal)
}

func TestPriceEmptyMatches(t *testing.T) {
	engine := NewEngine(testCatalog(t), rand.New(rand.NewSource(1)), 1.0)

	b := engine.Price(nil, "routine test and type test required")
	assert.True(t, b.NoProducts)
	assert.Equal(t, 0.0, b.BaseTotal)
	assert.Equal(t, 0.0, b.MarginPercent)
	assert.Equal(t, 0.0, b.MaterialTotal)
	assert.Equal(t, 30000.0, b.TestSubtotal)
	assert.Equal(t, b.TestSubtotal, b.GrandTotal)
}

func TestPriceQuantityMultiplier(t *testing.T) {
	engine := NewEngine(testCatalog(t), rand.New(rand.NewSource(1)), 2.0)

	b := engine.Price([]matching.MatchResult{match("P2")}, "")
	assert.Equal(t, 100000.0, b.BaseTotal)
}

func TestDetectTests(t *testing.T) {
	text := "Acceptance: High Voltage Test, Insulation Resistance Test, " +
		"and one Fire Resistance Test per lot."

	costs, subtotal := DetectTests(text)
	require.Len(t, costs, 3)
	assert.Equal(t, 38000.0, subtotal)
	assert.Equal(t, "high voltage test", costs[0].Name)
	assert.Equal(t, 20000.0, costs[0].Cost)
}

func TestDetectTestsNoMatches(t *testing.T) {
	costs, subtotal := DetectTests("visual inspection only")
	assert.Empty(t, costs)
	assert.Equal(t, 0.0, subtotal)

	costs, subtotal = DetectTests("")
	assert.Empty(t, costs)
	assert.Equal(t, 0.0, subtotal)
}
