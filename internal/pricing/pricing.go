// Package pricing turns a matched-product list and a tender's acceptance
// text into a consolidated bid breakdown.
package pricing

import (
	"math"
	"math/rand"

	"github.com/yashogale30/rfp-responder/internal/catalog"
	"github.com/yashogale30/rfp-responder/internal/matching"
)

// FallbackProductCost is charged per line when a matched product id has no
// catalog entry. The line is flagged as an estimate, not a calculation.
const FallbackProductCost = 50000.0

// Margin policy bounds, applied after the tier base and the random
// perturbation.
const (
	marginFloor = 0.10
	marginCeil  = 0.35

	marginJitter = 0.05

	largeBidThreshold  = 500000.0
	mediumBidThreshold = 200000.0

	largeBidMargin  = 0.15
	mediumBidMargin = 0.20
	smallBidMargin  = 0.25
)

// ProductCost is one material line of the breakdown.
type ProductCost struct {
	ProductID        string  `json:"product_id"`
	ProductName      string  `json:"product_name"`
	MatchPercent     float64 `json:"match_percent"`
	UnitPrice        float64 `json:"unit_price"`
	MinOrderQty      float64 `json:"min_order_qty"`
	Cost             float64 `json:"cost"`
	FallbackEstimate bool    `json:"fallback_estimate,omitempty"`
}

// TestCost is one detected compliance/acceptance test.
type TestCost struct {
	Name string  `json:"test"`
	Cost float64 `json:"cost"`
}

// Breakdown is the consolidated pricing result.
//
// Invariants: MaterialTotal = BaseTotal * (1 + MarginPercent/100) and
// GrandTotal = MaterialTotal + TestSubtotal.
type Breakdown struct {
	Products      []ProductCost `json:"products"`
	BaseTotal     float64       `json:"base_total"`
	MarginPercent float64       `json:"margin_percent"`
	MaterialTotal float64       `json:"material_total"`
	TestCosts     []TestCost    `json:"test_costs"`
	TestSubtotal  float64       `json:"test_subtotal"`
	GrandTotal    float64       `json:"grand_total"`

	// NoProducts distinguishes "nothing to bid on" from a numeric zero.
	NoProducts bool `json:"no_products,omitempty"`
}

// Engine prices bids against a catalog snapshot. The random source drives
// only the margin perturbation and is injected so runs are reproducible
// under a fixed seed.
type Engine struct {
	catalog            *catalog.Catalog
	rand               *rand.Rand
	quantityMultiplier float64
}

// NewEngine builds a pricing engine. quantityMultiplier scales every line
// quantity; it is a hook for demand estimation and stays 1.0 when <= 0.
func NewEngine(c *catalog.Catalog, rng *rand.Rand, quantityMultiplier float64) *Engine {
	if quantityMultiplier <= 0 {
		quantityMultiplier = 1.0
	}
	return &Engine{catalog: c, rand: rng, quantityMultiplier: quantityMultiplier}
}

// Price computes the full breakdown for the matches and the tender's
// acceptance/test requirement text.
func (e *Engine) Price(matches []matching.MatchResult, testingText string) *Breakdown {
	b := &Breakdown{}

	for _, m := range matches {
		line := e.priceLine(m)
		b.Products = append(b.Products, line)
		b.BaseTotal += line.Cost
	}

	if len(matches) == 0 {
		// Margin policy is skipped entirely, not applied to zero.
		b.NoProducts = true
	} else {
		// MaterialTotal derives from the rounded percent so the reported
		// numbers satisfy MaterialTotal = BaseTotal*(1+margin) exactly.
		b.MarginPercent = round2(e.margin(b.BaseTotal) * 100)
		b.MaterialTotal = round2(b.BaseTotal * (1 + b.MarginPercent/100))
	}

	b.TestCosts, b.TestSubtotal = DetectTests(testingText)
	b.GrandTotal = round2(b.MaterialTotal + b.TestSubtotal)

	return b
}

func (e *Engine) priceLine(m matching.MatchResult) ProductCost {
	line := ProductCost{
		ProductID:    m.ProductID,
		ProductName:  m.ProductName,
		MatchPercent: m.MatchPercent,
	}

	p := e.lookup(m.ProductID)
	if p == nil {
		line.Cost = FallbackProductCost
		line.FallbackEstimate = true
		return line
	}

	line.UnitPrice = p.UnitPrice
	line.MinOrderQty = p.MinOrderQty
	line.Cost = round2(p.UnitPrice * p.MinOrderQty * e.quantityMultiplier)
	return line
}

func (e *Engine) lookup(id string) *catalog.Product {
	if e.catalog == nil {
		return nil
	}
	return e.catalog.FindByID(id)
}

// margin picks the tier base for the bid size, perturbs it uniformly in
// [-marginJitter, +marginJitter] so quotes avoid round numbers, and clamps
// to the policy bounds.
func (e *Engine) margin(baseTotal float64) float64 {
	var base float64
	switch {
	case baseTotal > largeBidThreshold:
		base = largeBidMargin
	case baseTotal >= mediumBidThreshold:
		base = mediumBidMargin
	default:
		base = smallBidMargin
	}

	if e.rand != nil {
		base += (e.rand.Float64()*2 - 1) * marginJitter
	}

	return math.Min(math.Max(base, marginFloor), marginCeil)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
