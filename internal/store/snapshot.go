package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
)

const (
	loadTimeout  = 3 * time.Second
	writeTimeout = 3 * time.Second
)

// snapshotter moves one collection between memory and its persisted JSON
// array. Neither direction ever returns an error to the caller.
type snapshotter[T any] struct {
	repo   repository.SnapshotRepository
	key    repository.SnapshotKey
	logger *slog.Logger
}

// load returns the persisted collection, or an empty one if nothing usable
// is stored. reachable is false when storage itself failed, as opposed to
// the snapshot being absent or malformed.
func (s snapshotter[T]) load(ctx context.Context) (items []T, reachable bool) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
	defer cancel()

	raw, err := s.repo.Get(ctx, s.key)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return []T{}, true
	case err != nil:
		snapshotLoadFailures.WithLabelValues(s.key.Kind, "unavailable").Inc()
		logger.WithContext(ctx, s.logger).WarnContext(ctx, "snapshot storage unavailable, starting empty",
			slog.String("key", s.key.String()),
			slog.String("error", err.Error()),
		)
		return []T{}, false
	}

	if err := json.Unmarshal(raw, &items); err != nil {
		snapshotLoadFailures.WithLabelValues(s.key.Kind, "malformed").Inc()
		logger.WithContext(ctx, s.logger).WarnContext(ctx, "discarding malformed snapshot",
			slog.String("key", s.key.String()),
			slog.String("error", err.Error()),
		)
		return []T{}, true
	}
	if items == nil {
		items = []T{}
	}
	return items, true
}

// persist overwrites the stored snapshot with items. The write outlives
// the caller's cancellation so a dropped request cannot leave the snapshot
// behind the in-memory state.
func (s snapshotter[T]) persist(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		snapshotWrites.WithLabelValues(s.key.Kind, "error").Inc()
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to encode snapshot",
			slog.String("key", s.key.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	if err := s.repo.Save(ctx, s.key, raw); err != nil {
		snapshotWrites.WithLabelValues(s.key.Kind, "error").Inc()
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to persist snapshot",
			slog.String("key", s.key.String()),
			slog.Int("items", len(items)),
			slog.String("error", err.Error()),
		)
		return
	}
	snapshotWrites.WithLabelValues(s.key.Kind, "ok").Inc()
}

// skip records a change that was kept in memory only because the snapshot
// could not be read when the store was opened.
func (s snapshotter[T]) skip(ctx context.Context, items int) {
	snapshotWrites.WithLabelValues(s.key.Kind, "skipped").Inc()
	logger.WithContext(ctx, s.logger).WarnContext(ctx, "snapshot not loaded, change kept in memory only",
		slog.String("key", s.key.String()),
		slog.Int("items", items),
	)
}
