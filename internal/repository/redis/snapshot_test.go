package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*SnapshotRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSnapshotRepository(client, ttl), mr
}

var cartKey = repository.SnapshotKey{Kind: repository.KindCart, SessionID: "sess-1"}

func TestSnapshotRepository_SaveAndGet(t *testing.T) {
	repo, mr := setupTestRedis(t, 24*time.Hour)
	ctx := context.Background()

	payload := []byte(`[{"id":"clock","quantity":2}]`)
	require.NoError(t, repo.Save(ctx, cartKey, payload))

	raw, err := mr.Get("cart:sess-1")
	require.NoError(t, err)
	assert.Equal(t, string(payload), raw)
	assert.Equal(t, 24*time.Hour, mr.TTL("cart:sess-1"))

	got, err := repo.Get(ctx, cartKey)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestSnapshotRepository_Get_NotFound(t *testing.T) {
	repo, _ := setupTestRedis(t, time.Hour)

	_, err := repo.Get(context.Background(), cartKey)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSnapshotRepository_KindsAreSeparate(t *testing.T) {
	repo, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	wishKey := repository.SnapshotKey{Kind: repository.KindWishlist, SessionID: "sess-1"}
	require.NoError(t, repo.Save(ctx, cartKey, []byte(`["cart"]`)))
	require.NoError(t, repo.Save(ctx, wishKey, []byte(`["wish"]`)))

	assert.True(t, mr.Exists("cart:sess-1"))
	assert.True(t, mr.Exists("wishlist:sess-1"))
	assert.Zero(t, mr.TTL("wishlist:sess-1"))

	got, err := repo.Get(ctx, wishKey)
	require.NoError(t, err)
	assert.Equal(t, `["wish"]`, string(got))
}

func TestSnapshotRepository_SaveOverwritesAndRefreshesTTL(t *testing.T) {
	repo, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, cartKey, []byte(`[1]`)))
	mr.FastForward(30 * time.Minute)
	require.NoError(t, repo.Save(ctx, cartKey, []byte(`[2]`)))

	assert.Equal(t, time.Hour, mr.TTL("cart:sess-1"))
	got, err := repo.Get(ctx, cartKey)
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))
}

func TestSnapshotRepository_Expires(t *testing.T) {
	repo, mr := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, cartKey, []byte(`[]`)))
	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, cartKey)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSnapshotRepository_ConnectionError(t *testing.T) {
	repo, mr := setupTestRedis(t, time.Hour)
	mr.Close()

	_, err := repo.Get(context.Background(), cartKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.Error(t, repo.Save(context.Background(), cartKey, []byte(`[]`)))
}
