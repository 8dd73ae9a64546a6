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

// MaxQuantityPerLine caps a single cart line.
const MaxQuantityPerLine = 100

// UpdateQuantityInput is the body of a quantity change. Zero removes the line.
type UpdateQuantityInput struct {
	Quantity *int `json:"quantity" validate:"required,lte=100"`
}

// AddItemInput is the body of an add to cart or wishlist.
type AddItemInput struct {
	ProductID string `json:"product_id" validate:"required,max=128"`
}

// CartService implements the cart use cases for one session at a time.
type CartService struct {
	stores   *store.Registry
	products ProductLookup
	events   EventPublisher
	currency string
	logger   *slog.Logger
}

func NewCartService(stores *store.Registry, products ProductLookup, events EventPublisher, currency string, logger *slog.Logger) *CartService {
	return &CartService{
		stores:   stores,
		products: products,
		events:   events,
		currency: currency,
		logger:   logger,
	}
}

// GetCart returns the session's cart; a session with no cart gets an
// empty one.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	return newCartView(s.stores.Cart(ctx, sessionID).Lines(), s.currency), nil
}

// AddItem adds one unit of a catalog product to the cart.
func (s *CartService) AddItem(ctx context.Context, sessionID, productID string) (*CartView, error) {
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

	cart, err := writableCart(ctx, s.stores, sessionID)
	if err != nil {
		return nil, err
	}
	if !cart.Dispatch(ctx, domain.AddLine{Product: *p, Limit: MaxQuantityPerLine}) {
		return nil, quantityLimitError()
	}
	view := newCartView(cart.Lines(), s.currency)
	s.publishUpdated(ctx, sessionID, view)

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "item added to cart",
		slog.String("product_id", productID),
		slog.Int("total_items", view.TotalItems),
	)
	return view, nil
}

// UpdateItemQuantity sets a line's quantity. A quantity of zero or less
// removes the line; an id not in the cart leaves it unchanged.
func (s *CartService) UpdateItemQuantity(ctx context.Context, sessionID, productID string, quantity int) (*CartView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity > MaxQuantityPerLine {
		return nil, quantityLimitError()
	}

	cart, err := writableCart(ctx, s.stores, sessionID)
	if err != nil {
		return nil, err
	}
	changed := cart.UpdateQuantity(ctx, productID, quantity)
	view := newCartView(cart.Lines(), s.currency)
	if changed {
		s.publishUpdated(ctx, sessionID, view)
	}
	return view, nil
}

// RemoveItem drops a line from the cart. Removing an absent id is not an
// error.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (*CartView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := writableCart(ctx, s.stores, sessionID)
	if err != nil {
		return nil, err
	}
	changed := cart.RemoveFromCart(ctx, productID)
	view := newCartView(cart.Lines(), s.currency)
	if changed {
		s.publishUpdated(ctx, sessionID, view)
	}
	return view, nil
}

// ClearCart empties the cart.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) (*CartView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := writableCart(ctx, s.stores, sessionID)
	if err != nil {
		return nil, err
	}
	cart.ClearCart(ctx)

	if err := s.events.PublishCartCleared(ctx, sessionID); err != nil {
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to publish cart cleared event",
			slog.String("error", err.Error()),
		)
	}
	return newCartView(cart.Lines(), s.currency), nil
}

func (s *CartService) publishUpdated(ctx context.Context, sessionID string, view *CartView) {
	if err := s.events.PublishCartUpdated(ctx, sessionID, view.Items, s.currency); err != nil {
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to publish cart updated event",
			slog.String("error", err.Error()),
		)
	}
}
