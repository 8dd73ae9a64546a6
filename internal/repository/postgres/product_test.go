package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

var columns = []string{"id", "name", "slug", "price", "image_url", "brand", "category", "rating", "details", "description"}

func row(p domain.Product) []any {
	return []any{p.ID, p.Name, p.Slug, p.Price, p.ImageURL, p.Brand, p.Category, p.Rating, p.Details, p.Description}
}

var (
	clock = domain.Product{ID: "clock", Name: "Clock", Slug: "clock", Price: 2999, ImageURL: "/images/clock.jpeg",
		Brand: "TimeCraft", Category: "Home", Rating: 4.5, Details: "Wall clock.", Description: "Elegant wall clock."}
	fan = domain.Product{ID: "fan", Name: "Fan", Slug: "fan", Price: 3999, Brand: "CoolAir", Category: "Electronics", Rating: 4.3}
)

func TestProductRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM products ORDER BY position").
		WillReturnRows(pgxmock.NewRows(columns).AddRow(row(clock)...).AddRow(row(fan)...))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{clock, fan}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_Empty(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("SELECT .+ FROM products").WillReturnRows(pgxmock.NewRows(columns))

	got, err := NewProductRepository(mock).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestProductRepository_List_QueryError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("SELECT .+ FROM products").WillReturnError(errors.New("connection reset"))

	_, err := NewProductRepository(mock).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list products")
}

func TestProductRepository_GetByID(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("SELECT .+ FROM products WHERE id").WithArgs("clock").
		WillReturnRows(pgxmock.NewRows(columns).AddRow(row(clock)...))

	got, err := NewProductRepository(mock).GetByID(context.Background(), "clock")
	require.NoError(t, err)
	assert.Equal(t, clock, *got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("SELECT .+ FROM products WHERE id").WithArgs("nope").WillReturnError(pgx.ErrNoRows)

	_, err := NewProductRepository(mock).GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductRepository_GetBySlug(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("SELECT .+ FROM products WHERE slug").WithArgs("fan").
		WillReturnRows(pgxmock.NewRows(columns).AddRow(row(fan)...))

	got, err := NewProductRepository(mock).GetBySlug(context.Background(), "fan")
	require.NoError(t, err)
	assert.Equal(t, "fan", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_SkipsAppliedFiles(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	for _, name := range []string{"001_create_products.up.sql", "002_seed_products.up.sql"} {
		mock.ExpectQuery("SELECT EXISTS").WithArgs(name).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	}

	require.NoError(t, Migrate(context.Background(), mock, slog.New(slog.NewTextHandler(io.Discard, nil))))
	assert.NoError(t, mock.ExpectationsWereMet())
}
