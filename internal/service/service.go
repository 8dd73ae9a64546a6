// Package service holds the session-scoped cart and wishlist use cases
// behind the HTTP handlers.
package service

import (
	"context"
	"fmt"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/store"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// EventPublisher emits domain events after a store changes.
type EventPublisher interface {
	PublishCartUpdated(ctx context.Context, sessionID string, lines []domain.CartLine, currency string) error
	PublishCartCleared(ctx context.Context, sessionID string) error
	PublishWishlistUpdated(ctx context.Context, sessionID string, entries []domain.WishlistEntry) error
	PublishWishlistCleared(ctx context.Context, sessionID string) error
}

// ProductLookup resolves a product id against the catalog.
type ProductLookup interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
}

// CartView is the cart as returned to clients.
type CartView struct {
	Items      []domain.CartLine `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice int64             `json:"total_price"`
	Currency   string            `json:"currency"`
}

func newCartView(lines []domain.CartLine, currency string) *CartView {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return &CartView{
		Items:      lines,
		TotalItems: domain.CartTotalItems(lines),
		TotalPrice: domain.CartTotalPrice(lines),
		Currency:   currency,
	}
}

// WishlistView is the wishlist as returned to clients.
type WishlistView struct {
	Items      []domain.WishlistEntry `json:"items"`
	TotalItems int                    `json:"total_items"`
}

func newWishlistView(entries []domain.WishlistEntry) *WishlistView {
	if entries == nil {
		entries = []domain.WishlistEntry{}
	}
	return &WishlistView{Items: entries, TotalItems: len(entries)}
}

// MoveResult carries both collections after a wishlist to cart move.
type MoveResult struct {
	Cart     *CartView     `json:"cart"`
	Wishlist *WishlistView `json:"wishlist"`
}

// writableCart returns the session's cart for a mutation. A cart whose
// snapshot could not be read is refused with 503 so that the change is not
// acknowledged and then lost.
func writableCart(ctx context.Context, stores *store.Registry, sessionID string) (*store.CartStore, error) {
	cart := stores.Cart(ctx, sessionID)
	if !cart.Persistent() {
		return nil, apperrors.Unavailable("cart storage is unavailable", nil)
	}
	return cart, nil
}

func writableWishlist(ctx context.Context, stores *store.Registry, sessionID string) (*store.WishlistStore, error) {
	wl := stores.Wishlist(ctx, sessionID)
	if !wl.Persistent() {
		return nil, apperrors.Unavailable("wishlist storage is unavailable", nil)
	}
	return wl, nil
}

func quantityLimitError() error {
	return apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
}
