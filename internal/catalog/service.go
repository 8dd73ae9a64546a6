package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/pagination"
)

// SearchResult is one page of a listing plus the facets of the whole
// unfiltered catalog.
type SearchResult struct {
	httputil.Page[domain.Product]
	Facets FacetSet `json:"facets"`
}

type Service struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

func NewService(repo repository.ProductRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Search runs the pipeline over the catalog and returns the requested page.
func (s *Service) Search(ctx context.Context, q Query, page pagination.Params) (*SearchResult, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	matched := Apply(all, q)
	lo, hi := page.Bounds(len(matched))

	s.logger.DebugContext(ctx, "catalog search",
		slog.String("text", q.Text),
		slog.String("brand", q.Brand),
		slog.String("category", q.Category),
		slog.String("sort", string(q.Sort)),
		slog.Int("matched", len(matched)),
	)

	return &SearchResult{
		Page:   httputil.NewPage(matched[lo:hi], len(matched), page.Page, page.PerPage),
		Facets: Facets(all),
	}, nil
}

// Get returns the product with the given id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug returns the product with the given slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}
