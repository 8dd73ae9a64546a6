// Package repository declares the storage ports used by the store and
// catalog layers.
package repository

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// Snapshot kinds.
const (
	KindCart     = "cart"
	KindWishlist = "wishlist"
)

// SnapshotKey addresses one persisted collection.
type SnapshotKey struct {
	Kind      string
	SessionID string
}

func (k SnapshotKey) String() string {
	return k.Kind + ":" + k.SessionID
}

// SnapshotRepository stores serialized collection snapshots. Get returns
// an error matching apperrors.ErrNotFound when nothing is stored.
type SnapshotRepository interface {
	Get(ctx context.Context, key SnapshotKey) ([]byte, error)
	Save(ctx context.Context, key SnapshotKey, data []byte) error
}

// ProductRepository reads the product catalog. List returns products in
// catalog order, which is the order "relevance" sorting preserves.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}
