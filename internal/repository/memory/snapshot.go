// Package memory provides in-process repositories for single-instance
// deployments and tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// SnapshotRepository keeps snapshots in a map. Nothing expires.
type SnapshotRepository struct {
	mu   sync.RWMutex
	data map[repository.SnapshotKey][]byte
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{data: make(map[repository.SnapshotKey][]byte)}
}

func (r *SnapshotRepository) Get(_ context.Context, key repository.SnapshotKey) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.data[key]
	if !ok {
		return nil, apperrors.NotFound(key.Kind, key.SessionID)
	}
	return slices.Clone(b), nil
}

func (r *SnapshotRepository) Save(_ context.Context, key repository.SnapshotKey, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = slices.Clone(data)
	return nil
}
