// Package postgres reads the product catalog from PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

const productColumns = `id, name, slug, price, image_url, brand, category, rating, details, description`

// ProductRepository implements repository.ProductRepository.
type ProductRepository struct {
	db database.DBTX
}

func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns the whole catalog in display order.
func (r *ProductRepository) List(ctx context.Context) (_ []domain.Product, err error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY position, id`

	ctx, end := database.TraceOperation(ctx, database.SystemPostgres, "ListProducts", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.getOne(ctx, "GetProductByID", `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.getOne(ctx, "GetProductBySlug", `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
}

func (r *ProductRepository) getOne(ctx context.Context, op, query, arg string) (_ *domain.Product, err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemPostgres, op, query)
	defer func() { end(err) }()

	p, err := scanProduct(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("product", arg)
	}
	if err != nil {
		return nil, fmt.Errorf("get product %q: %w", arg, err)
	}
	return &p, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Price,
		&p.ImageURL,
		&p.Brand,
		&p.Category,
		&p.Rating,
		&p.Details,
		&p.Description,
	)
	return p, err
}
