package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/slug"
)

// ProductRepository serves a fixed catalog held in memory.
type ProductRepository struct {
	products []domain.Product
	byID     map[string]int
	bySlug   map[string]int
}

// NewProductRepository indexes products, deriving missing slugs from the
// name. Duplicate ids or slugs are rejected.
func NewProductRepository(products []domain.Product) (*ProductRepository, error) {
	r := &ProductRepository{
		products: make([]domain.Product, len(products)),
		byID:     make(map[string]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}
	for i, p := range products {
		if p.ID == "" {
			return nil, apperrors.InvalidInput(fmt.Sprintf("product at position %d has no id", i))
		}
		if p.Slug == "" {
			p.Slug = slug.Generate(p.Name)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, apperrors.Conflict(fmt.Sprintf("duplicate product id %q", p.ID))
		}
		if _, dup := r.bySlug[p.Slug]; dup {
			return nil, apperrors.Conflict(fmt.Sprintf("duplicate product slug %q", p.Slug))
		}
		r.products[i] = p
		r.byID[p.ID] = i
		r.bySlug[p.Slug] = i
	}
	return r, nil
}

func (r *ProductRepository) List(context.Context) ([]domain.Product, error) {
	return slices.Clone(r.products), nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	p := r.products[i]
	return &p, nil
}

func (r *ProductRepository) GetBySlug(_ context.Context, s string) (*domain.Product, error) {
	i, ok := r.bySlug[s]
	if !ok {
		return nil, apperrors.NotFound("product", s)
	}
	p := r.products[i]
	return &p, nil
}
