// Package catalog serves product lookups and the search, filter and sort
// pipeline used by the listing page.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/utafrali/storefront/internal/domain"
)

//go:embed products.json
var seedJSON []byte

// DefaultProducts decodes the built-in catalog in listing order.
func DefaultProducts() ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(seedJSON, &products); err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}
	return products, nil
}
