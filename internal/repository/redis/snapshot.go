package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// SnapshotRepository keeps snapshots as plain string values, one key per
// kind and session, refreshed to the TTL on every write.
type SnapshotRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotRepository returns a repository writing with ttl; zero means
// keys never expire.
func NewSnapshotRepository(client *redis.Client, ttl time.Duration) *SnapshotRepository {
	return &SnapshotRepository{client: client, ttl: ttl}
}

func (r *SnapshotRepository) Get(ctx context.Context, key repository.SnapshotKey) (data []byte, err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemRedis, "GetSnapshot", "GET "+key.Kind+":*")
	defer func() { end(err) }()

	data, err = r.client.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.NotFound(key.Kind, key.SessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (r *SnapshotRepository) Save(ctx context.Context, key repository.SnapshotKey, data []byte) (err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemRedis, "SaveSnapshot", "SET "+key.Kind+":*")
	defer func() { end(err) }()

	if err = r.client.Set(ctx, key.String(), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
