package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// FlexibleBool accepts bool, string ("true"/"1"/"yes") and numeric JSON
// values. Portal exports are inconsistent about how certification flags are
// encoded, so the coercion happens here at the boundary.
type FlexibleBool bool

func (fb *FlexibleBool) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.ToLower(strings.TrimSpace(s))
		*fb = FlexibleBool(s == "true" || s == "1" || s == "yes")
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*fb = FlexibleBool(b)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*fb = FlexibleBool(n != 0)
		return nil
	}

	*fb = false
	return nil
}

func (fb FlexibleBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(fb))
}

func (fb FlexibleBool) Bool() bool {
	return bool(fb)
}

// LoadFile reads a JSON product file and returns a validated snapshot. An
// empty file body ("[]") is a valid catalog with no products.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %q: %w", path, err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decoding catalog file %q: %w", path, err)
	}

	return Validate(products)
}

// Validate rejects malformed entries so the scoring engines can assume
// sane numeric ranges everywhere else.
func Validate(products []Product) (*Catalog, error) {
	seen := make(map[string]bool, len(products))

	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("product %d: missing product id", i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("product %q: duplicate product id", p.ID)
		}
		seen[p.ID] = true

		if p.UnitPrice < 0 {
			return nil, fmt.Errorf("product %q: negative unit price", p.ID)
		}
		if p.MinOrderQty < 0 {
			return nil, fmt.Errorf("product %q: negative min order quantity", p.ID)
		}
		if p.LeadTimeDays < 0 {
			return nil, fmt.Errorf("product %q: negative lead time", p.ID)
		}
		if p.WarrantyYears < 0 {
			return nil, fmt.Errorf("product %q: negative warranty", p.ID)
		}
		if p.CoreCount < 1 {
			return nil, fmt.Errorf("product %q: core count must be >= 1", p.ID)
		}
	}

	return New(products), nil
}
