package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
)

func TestBulkInsert(t *testing.T) {
	mock := newMock(t)
	mock.ExpectCopyFrom(pgx.Identifier{"products"}, copyColumns).WillReturnResult(2)

	n, err := BulkInsert(context.Background(), mock, []domain.Product{clock, fan}, 15)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkInsert_Error(t *testing.T) {
	mock := newMock(t)
	mock.ExpectCopyFrom(pgx.Identifier{"products"}, copyColumns).WillReturnError(errors.New("duplicate key"))

	_, err := BulkInsert(context.Background(), mock, []domain.Product{clock}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copy products")
}

func TestDeleteByIDPrefix(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM products WHERE starts_with\(id, \$1\)`).
		WithArgs("gen-").
		WillReturnResult(pgxmock.NewResult("DELETE", 120))

	n, err := DeleteByIDPrefix(context.Background(), mock, "gen-")
	require.NoError(t, err)
	assert.Equal(t, int64(120), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaxPosition(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(position\), 0\) FROM products`).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(14))

	pos, err := MaxPosition(context.Background(), mock)
	require.NoError(t, err)
	assert.Equal(t, 14, pos)
}
