package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/database"
)

// Copier is the COPY half of a pgx pool or connection.
type Copier interface {
	CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error)
}

var copyColumns = []string{"id", "name", "slug", "price", "image_url", "brand", "category", "rating", "details", "description", "position"}

// BulkInsert streams products into the catalog with COPY. Positions are
// assigned from firstPosition upwards so the new rows list after the
// existing ones.
func BulkInsert(ctx context.Context, db Copier, products []domain.Product, firstPosition int) (_ int64, err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemPostgres, "CopyProducts", "COPY products")
	defer func() { end(err) }()

	n, err := db.CopyFrom(ctx, pgx.Identifier{"products"}, copyColumns,
		pgx.CopyFromSlice(len(products), func(i int) ([]any, error) {
			p := products[i]
			return []any{p.ID, p.Name, p.Slug, p.Price, p.ImageURL, p.Brand, p.Category, p.Rating, p.Details, p.Description, firstPosition + i}, nil
		}),
	)
	if err != nil {
		return n, fmt.Errorf("copy products: %w", err)
	}
	return n, nil
}

// DeleteByIDPrefix removes products whose id starts with prefix and
// returns how many were deleted.
func DeleteByIDPrefix(ctx context.Context, db database.DBTX, prefix string) (_ int64, err error) {
	const query = `DELETE FROM products WHERE starts_with(id, $1)`

	ctx, end := database.TraceOperation(ctx, database.SystemPostgres, "DeleteProductsByPrefix", query)
	defer func() { end(err) }()

	tag, err := db.Exec(ctx, query, prefix)
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MaxPosition returns the largest position in use, or 0 for an empty table.
func MaxPosition(ctx context.Context, db database.DBTX) (int, error) {
	var pos int
	if err := db.QueryRow(ctx, `SELECT COALESCE(MAX(position), 0) FROM products`).Scan(&pos); err != nil {
		return 0, fmt.Errorf("max position: %w", err)
	}
	return pos, nil
}
