package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id string) Product {
	return Product{
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

func TestValidate(t *testing.T) {
	c, err := Validate([]Product{testProduct("PROD_001"), testProduct("PROD_002")})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	require.NotNil(t, c.FindByID("PROD_001"))
	assert.Nil(t, c.FindByID("PROD_999"))
}

func TestValidateRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Product)
	}{
		{"negative price", func(p *Product) { p.UnitPrice = -1 }},
		{"negative moq", func(p *Product) { p.MinOrderQty = -5 }},
		{"negative lead time", func(p *Product) { p.LeadTimeDays = -1 }},
		{"negative warranty", func(p *Product) { p.WarrantyYears = -2 }},
		{"zero cores", func(p *Product) { p.CoreCount = 0 }},
		{"missing id", func(p *Product) { p.ID = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProduct("PROD_001")
			tt.mutate(&p)
			_, err := Validate([]Product{p})
			assert.Error(t, err)
		})
	}
}

func TestValidateRejectsDuplicateIDs(t *testing.T) {
	_, err := Validate([]Product{testProduct("PROD_001"), testProduct("PROD_001")})
	assert.ErrorContains(t, err, "duplicate")
}

func TestValidateEmptyCatalog(t *testing.T) {
	c, err := Validate(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoadFile(t *testing.T) {
	products := []Product{testProduct("PROD_001")}
	data, err := json.Marshal(products)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.FindByID("PROD_001").Certified.Bool())
}

func TestFlexibleBool(t *testing.T) {
	var row struct {
		Certified FlexibleBool `json:"certified"`
	}

	tests := []struct {
		raw  string
		want bool
	}{
		{`{"certified": true}`, true},
		{`{"certified": "yes"}`, true},
		{`{"certified": "TRUE"}`, true},
		{`{"certified": "no"}`, false},
		{`{"certified": 1}`, true},
		{`{"certified": 0}`, false},
		{`{"certified": null}`, false},
	}

	for _, tt := range tests {
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &row), tt.raw)
		assert.Equal(t, tt.want, row.Certified.Bool(), tt.raw)
	}
}
