package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashogale30/rfp-responder/internal/catalog"
)

func cableProduct(id string) catalog.Product {
	return catalog.Product{
		ID:                  id,
		Name:                "11kV XLPE 3-Core Cu Cable",
		Category:            "Power Cables",
		VoltageRating:       "11kV",
		ConductorMaterial:   "Copper",
		InsulationType:      "XLPE",
		CoreCount:           3,
		Armoring:            "SWA",
		UnitPrice:           1200,
		MinOrderQty:         1000,
		LeadTimeDays:        30,
		Certified:           true,
		WarrantyYears:       2,
		StandardsCompliance: "IS 7098, IEC 60502",
	}
}

func TestComponentWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, w := range componentWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestMatchFullSpecification(t *testing.T) {
	req := "Voltage Rating: 11 kV, Conductor: Copper, Insulation: XLPE, " +
		"Cores: 3, Armoring: SWA, Standards: IS 7098, IEC 60502"

	results := Match(req, []catalog.Product{cableProduct("PROD_001")}, DefaultOptions())
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, 100.0, r.MatchPercent)
	for name, score := range r.ComponentScores {
		assert.Equal(t, 100.0, score, name)
	}
}

func TestMatchNoComponents(t *testing.T) {
	req := "Supply of office furniture and stationery"

	results := Match(req, []catalog.Product{cableProduct("PROD_001")}, Options{MinScore: 0, MaxResults: 10})
	require.Len(t, results, 1)
	assert.Equal(t, 0.0, results[0].MatchPercent)
}

func TestMatchPartialComponents(t *testing.T) {
	// Voltage, conductor, insulation and cores match; armoring and
	// standards do not: 0.25+0.18+0.15+0.12 = 70.00.
	req := "Voltage Rating: 11 kV, Conductor: Copper, Insulation: XLPE, Cores: 3"

	results := Match(req, []catalog.Product{cableProduct("PROD_001")}, DefaultOptions())
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, 70.0, r.MatchPercent)
	assert.Equal(t, 100.0, r.ComponentScores[ComponentVoltage])
	assert.Equal(t, 100.0, r.ComponentScores[ComponentConductor])
	assert.Equal(t, 100.0, r.ComponentScores[ComponentInsulation])
	assert.Equal(t, 100.0, r.ComponentScores[ComponentCores])
	assert.Equal(t, 0.0, r.ComponentScores[ComponentArmoring])
	assert.Equal(t, 0.0, r.ComponentScores[ComponentStandards])
}

func TestMatchStandardsPartialCredit(t *testing.T) {
	// No full compliance string, but a standalone standards token.
	req := "11 kv copper cable per IEC requirements"

	results := Match(req, []catalog.Product{cableProduct("PROD_001")}, Options{MinScore: 0, MaxResults: 10})
	require.Len(t, results, 1)
	assert.Equal(t, 60.0, results[0].ComponentScores[ComponentStandards])
}

func TestMatchSynonymResolution(t *testing.T) {
	req := "11 kv cable, conductor Cu, cross-linked polyethylene insulated, 3 core"

	results := Match(req, []catalog.Product{cableProduct("PROD_001")}, DefaultOptions())
	require.Len(t, results, 1)
	assert.Equal(t, 100.0, results[0].ComponentScores[ComponentConductor])
	assert.Equal(t, 100.0, results[0].ComponentScores[ComponentInsulation])
}

func TestMatchThresholdDropsWeakProducts(t *testing.T) {
	weak := cableProduct("PROD_WEAK")
	weak.VoltageRating = "66kV"
	weak.ConductorMaterial = "Silver"
	weak.InsulationType = "EPR"
	weak.CoreCount = 19
	weak.Armoring = "AWA"
	weak.StandardsCompliance = "EN 50288"

	req := "Voltage Rating: 11 kV, Conductor: Copper, Insulation: XLPE, Cores: 3"
	results := Match(req, []catalog.Product{cableProduct("PROD_001"), weak}, DefaultOptions())

	require.Len(t, results, 1)
	assert.Equal(t, "PROD_001", results[0].ProductID)
}

func TestMatchSortedAndCapped(t *testing.T) {
	products := make([]catalog.Product, 0, 12)
	for i := 0; i < 12; i++ {
		products = append(products, cableProduct(makeID(i)))
	}

	req := "Voltage Rating: 11 kV, Conductor: Copper, Insulation: XLPE, Cores: 3"
	results := Match(req, products, DefaultOptions())

	require.Len(t, results, 10)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].MatchPercent, results[i].MatchPercent)
	}
	// Equal scores keep catalog order.
	assert.Equal(t, makeID(0), results[0].ProductID)
}

func makeID(i int) string {
	return "PROD_" + string(rune('A'+i))
}

func TestMatchEmptyInputs(t *testing.T) {
	assert.Empty(t, Match("", []catalog.Product{cableProduct("P1")}, DefaultOptions()))
	assert.Empty(t, Match("11 kv copper", nil, DefaultOptions()))
}

func TestMatchCopiesPricingFields(t *testing.T) {
	req := "Voltage Rating: 11 kV, Conductor: Copper, Insulation: XLPE, Cores: 3"
	results := Match(req, []catalog.Product{cableProduct("PROD_001")}, DefaultOptions())
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, 1200.0, r.UnitPrice)
	assert.Equal(t, 1000.0, r.MinOrderQty)
	assert.Equal(t, 30.0, r.LeadTimeDays)
	assert.True(t, r.Certified)
	assert.Equal(t, 2.0, r.WarrantyYears)
	assert.Equal(t, "Power Cables", r.Category)
}

func TestKeywordOverlap(t *testing.T) {
	p := cableProduct("PROD_001")

	// "xlpe" and "copper" are in both the requirement and the product
	// blob; that is 2 of the 11 vocabulary entries. "11 kv" misses
	// because the blob spells it "11kv".
	req := "11 kv xlpe copper cable required"
	want := math.Round(2.0/11.0*100*100) / 100
	assert.Equal(t, want, KeywordOverlap(req, &p))

	assert.Equal(t, 0.0, KeywordOverlap("", &p))
	assert.Equal(t, 0.0, KeywordOverlap("granite paving blocks", &p))
}

func TestFilterByCategory(t *testing.T) {
	power := cableProduct("PROD_001")
	control := cableProduct("PROD_002")
	control.Category = "Control Cables"

	out := FilterByCategory("power", []catalog.Product{power, control})
	require.Len(t, out, 1)
	assert.Equal(t, "PROD_001", out[0].ID)

	assert.Len(t, FilterByCategory("", []catalog.Product{power, control}), 2)
}
