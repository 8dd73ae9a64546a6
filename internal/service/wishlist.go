package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/store"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
)

// WishlistService implements the wishlist use cases, including moving
// saved products into the cart.
type WishlistService struct {
	stores   *store.Registry
	products ProductLookup
	events   EventPublisher
	currency string
	logger   *slog.Logger
}

func NewWishlistService(stores *store.Registry, products ProductLookup, events EventPublisher, currency string, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		stores:   stores,
		products: products,
		events:   events,
		currency: currency,
		logger:   logger,
	}
}

func (s *WishlistService) GetWishlist(ctx context.Context, sessionID string) (*WishlistView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	return newWishlistView(s.stores.Wishlist(ctx, sessionID).Entries()), nil
}

// AddItem saves a catalog product. Saving it twice is a no-op.
func (s *WishlistService) AddItem(ctx context.Context, sessionID, productID string) (*WishlistView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	wl, err := writableWishlist(ctx, s.stores, sessionID)
	if err != nil {
		return nil, err
	}
	changed := wl.AddToWishlist(ctx, *p)
	view := newWishlistView(wl.Entries())
	if changed {
		s.publishUpdated(ctx, sessionID, view)
	}
	return view, nil
}

func (s *WishlistService) RemoveItem(ctx context.Context, sessionID, productID string) (*WishlistView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	wl, err := writableWishlist(ctx, s.stores, sessionID)
	if err != nil {
		return nil, err
	}
	changed := wl.RemoveFromWishlist(ctx, productID)
	view := newWishlistView(wl.Entries())
	if changed {
		s.publishUpdated(ctx, sessionID, view)
	}
	return view, nil
}

// Contains reports whether productID is saved in the session's wishlist.
func (s *WishlistService) Contains(ctx context.Context, sessionID, productID string) (bool, error) {
	if sessionID == "" {
		return false, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return false, apperrors.InvalidInput("product id is required")
	}
	return s.stores.Wishlist(ctx, sessionID).IsInWishlist(productID), nil
}

func (s *WishlistService) ClearWishlist(ctx context.Context, sessionID string) (*WishlistView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	wl, err := writableWishlist(ctx, s.stores, sessionID)
	if err != nil {
		return nil, err
	}
	wl.ClearWishlist(ctx)

	if err := s.events.PublishWishlistCleared(ctx, sessionID); err != nil {
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to publish wishlist cleared event",
			slog.String("error", err.Error()),
		)
	}
	return newWishlistView(wl.Entries()), nil
}

// MoveToCart adds one unit of a saved product to the cart and then removes
// it from the wishlist. The cart line carries the product as it was saved.
// A cart line already at the quantity limit leaves both collections as
// they were.
func (s *WishlistService) MoveToCart(ctx context.Context, sessionID, productID string) (*MoveResult, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	wl, err := writableWishlist(ctx, s.stores, sessionID)
	if err != nil {
		return nil, err
	}
	var (
		entry domain.WishlistEntry
		found bool
	)
	for _, e := range wl.Entries() {
		if e.ID == productID {
			entry, found = e, true
			break
		}
	}
	if !found {
		return nil, apperrors.NotFound("wishlist item", productID)
	}

	cart, err := writableCart(ctx, s.stores, sessionID)
	if err != nil {
		return nil, err
	}
	if !cart.Dispatch(ctx, domain.AddLine{Product: entry.Product, Limit: MaxQuantityPerLine}) {
		return nil, quantityLimitError()
	}
	wl.RemoveFromWishlist(ctx, productID)

	result := &MoveResult{
		Cart:     newCartView(cart.Lines(), s.currency),
		Wishlist: newWishlistView(wl.Entries()),
	}
	s.publishCartUpdated(ctx, sessionID, result.Cart)
	s.publishUpdated(ctx, sessionID, result.Wishlist)

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "wishlist item moved to cart",
		slog.String("product_id", productID),
	)
	return result, nil
}

// MoveAllToCart adds every saved product to the cart in wishlist order and
// then empties the wishlist. Products whose cart line is already at the
// quantity limit stay saved. An empty wishlist changes nothing.
func (s *WishlistService) MoveAllToCart(ctx context.Context, sessionID string) (*MoveResult, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	wl, err := writableWishlist(ctx, s.stores, sessionID)
	if err != nil {
		return nil, err
	}
	cart, err := writableCart(ctx, s.stores, sessionID)
	if err != nil {
		return nil, err
	}

	entries := wl.Entries()
	moved := make([]string, 0, len(entries))
	for _, e := range entries {
		if cart.Dispatch(ctx, domain.AddLine{Product: e.Product, Limit: MaxQuantityPerLine}) {
			moved = append(moved, e.ID)
		}
	}
	if len(moved) == len(entries) {
		if len(entries) > 0 {
			wl.ClearWishlist(ctx)
		}
	} else {
		for _, id := range moved {
			wl.RemoveFromWishlist(ctx, id)
		}
	}

	result := &MoveResult{
		Cart:     newCartView(cart.Lines(), s.currency),
		Wishlist: newWishlistView(wl.Entries()),
	}
	if len(moved) == 0 {
		return result, nil
	}

	s.publishCartUpdated(ctx, sessionID, result.Cart)
	if len(result.Wishlist.Items) == 0 {
		if err := s.events.PublishWishlistCleared(ctx, sessionID); err != nil {
			logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to publish wishlist cleared event",
				slog.String("error", err.Error()),
			)
		}
	} else {
		s.publishUpdated(ctx, sessionID, result.Wishlist)
	}
	logger.WithContext(ctx, s.logger).InfoContext(ctx, "wishlist moved to cart",
		slog.Int("moved", len(moved)),
		slog.Int("kept", len(result.Wishlist.Items)),
	)
	return result, nil
}

func (s *WishlistService) publishUpdated(ctx context.Context, sessionID string, view *WishlistView) {
	if err := s.events.PublishWishlistUpdated(ctx, sessionID, view.Items); err != nil {
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to publish wishlist updated event",
			slog.String("error", err.Error()),
		)
	}
}

func (s *WishlistService) publishCartUpdated(ctx context.Context, sessionID string, view *CartView) {
	if err := s.events.PublishCartUpdated(ctx, sessionID, view.Items, s.currency); err != nil {
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to publish cart updated event",
			slog.String("error", err.Error()),
		)
	}
}
