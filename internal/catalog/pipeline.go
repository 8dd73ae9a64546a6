package catalog

import (
	"slices"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
)

// SortKey selects the listing order.
type SortKey string

const (
	SortRelevance    SortKey = "relevance"
	SortPriceLowHigh SortKey = "price-low-high"
	SortPriceHighLow SortKey = "price-high-low"
	SortRating       SortKey = "rating"
)

const filterAll = "all"

// ParseSort maps a query value to a SortKey. Anything unrecognised is
// relevance.
func ParseSort(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPriceLowHigh, SortPriceHighLow, SortRating:
		return k
	default:
		return SortRelevance
	}
}

// Query describes one listing request. The zero value matches everything
// in catalog order.
type Query struct {
	Text     string
	Brand    string
	Category string
	MinPrice *int64
	MaxPrice *int64
	Sort     SortKey
}

// Apply filters and orders products. The input is not modified and the
// result is never nil.
func Apply(products []domain.Product, q Query) []domain.Product {
	text := strings.ToLower(strings.TrimSpace(q.Text))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !matchesFacet(p.Brand, q.Brand) || !matchesFacet(p.Category, q.Category) {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		if text != "" && !matchesText(p, text) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceLowHigh:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmpInt64(a.Price, b.Price) })
	case SortPriceHighLow:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmpInt64(b.Price, a.Price) })
	case SortRating:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmpFloat(b.Rating, a.Rating) })
	}
	return out
}

func matchesFacet(value, want string) bool {
	return want == "" || want == filterAll || value == want
}

func matchesText(p domain.Product, text string) bool {
	for _, field := range [...]string{p.Name, p.Brand, p.Category, p.Details} {
		if strings.Contains(strings.ToLower(field), text) {
			return true
		}
	}
	return false
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// FacetSet lists the filter values available in a product list.
type FacetSet struct {
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
}

// Facets collects distinct brands and categories in first-seen order.
func Facets(products []domain.Product) FacetSet {
	fs := FacetSet{Brands: []string{}, Categories: []string{}}
	for _, p := range products {
		if p.Brand != "" && !slices.Contains(fs.Brands, p.Brand) {
			fs.Brands = append(fs.Brands, p.Brand)
		}
		if p.Category != "" && !slices.Contains(fs.Categories, p.Category) {
			fs.Categories = append(fs.Categories, p.Category)
		}
	}
	return fs
}
