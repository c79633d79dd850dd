// Package catalog provides the read-only product table consumed by the
// matching, pricing and scoring engines.
package catalog

import (
	"fmt"
	"strings"
)

// Product is a single catalog entry. Fields are validated at load time, so
// downstream code can assume non-negative numerics and a core count >= 1.
type Product struct {
	ID                  string       `json:"product_id"`
	Name                string       `json:"product_name"`
	Category            string       `json:"category"`
	VoltageRating       string       `json:"voltage_rating"`
	ConductorMaterial   string       `json:"conductor_material"`
	InsulationType      string       `json:"insulation_type"`
	CoreCount           int          `json:"number_of_cores"`
	Armoring            string       `json:"armoring"`
	UnitPrice           float64      `json:"unit_price"`
	MinOrderQty         float64      `json:"min_order_qty"`
	LeadTimeDays        float64      `json:"lead_time_days"`
	Certified           FlexibleBool `json:"certified"`
	WarrantyYears       float64      `json:"warranty_years"`
	StandardsCompliance string       `json:"standards_compliance"`
}

// SpecBlob flattens the product's specification fields into a single
// lower-cased string for coarse keyword matching.
func (p *Product) SpecBlob() string {
	parts := []string{
		p.Name, p.Category, p.VoltageRating, p.ConductorMaterial,
		p.InsulationType, fmt.Sprintf("%d core", p.CoreCount),
		p.Armoring, p.StandardsCompliance,
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Catalog is an immutable snapshot of products. Reloading produces a new
// snapshot; a snapshot handed to a scoring run is never mutated.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New builds a snapshot from validated products.
func New(products []Product) *Catalog {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return &Catalog{products: products, byID: byID}
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns the snapshot's entries. Callers must not mutate them.
func (c *Catalog) Products() []Product {
	return c.products
}

// FindByID returns the product with the given id, or nil when absent.
func (c *Catalog) FindByID(id string) *Product {
	idx, ok := c.byID[id]
	if !ok {
		return nil
	}
	return &c.products[idx]
}
