package store

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
)

// CartStore owns one session's cart. Mutations are serialised and each
// one that changes the cart is written through to the snapshot before
// the next mutation starts.
type CartStore struct {
	mu        sync.Mutex
	lines     []domain.CartLine
	snap      snapshotter[domain.CartLine]
	reachable bool
}

// OpenCart loads the session's cart snapshot. It never fails: a missing,
// malformed or unreachable snapshot yields an empty cart.
func OpenCart(ctx context.Context, repo repository.SnapshotRepository, sessionID string, logger *slog.Logger) *CartStore {
	s := &CartStore{snap: snapshotter[domain.CartLine]{
		repo:   repo,
		key:    repository.SnapshotKey{Kind: repository.KindCart, SessionID: sessionID},
		logger: logger,
	}}
	loaded, reachable := s.snap.load(ctx)
	s.lines, _ = domain.ReduceCart(nil, domain.ReplaceLines{Lines: loaded})
	s.reachable = reachable
	return s
}

// Dispatch applies cmd and persists the result if the cart changed. It
// reports whether it did.
func (s *CartStore) Dispatch(ctx context.Context, cmd domain.CartCommand) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := domain.ReduceCart(s.lines, cmd)
	if !changed {
		return false
	}
	s.lines = next
	if s.reachable {
		s.snap.persist(ctx, next)
	} else {
		s.snap.skip(ctx, len(next))
	}
	return true
}

// AddToCart adds one unit of p.
func (s *CartStore) AddToCart(ctx context.Context, p domain.Product) bool {
	return s.Dispatch(ctx, domain.AddLine{Product: p})
}

// RemoveFromCart drops the line for productID, if any.
func (s *CartStore) RemoveFromCart(ctx context.Context, productID string) bool {
	return s.Dispatch(ctx, domain.RemoveLine{ProductID: productID})
}

// UpdateQuantity sets the quantity of an existing line; n <= 0 removes it.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, n int) bool {
	return s.Dispatch(ctx, domain.SetQuantity{ProductID: productID, Quantity: n})
}

// ClearCart empties the cart.
func (s *CartStore) ClearCart(ctx context.Context) bool {
	return s.Dispatch(ctx, domain.ClearLines{})
}

// Lines returns a copy of the lines in insertion order.
func (s *CartStore) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

func (s *CartStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CartTotalItems(s.lines)
}

func (s *CartStore) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CartTotalPrice(s.lines)
}

// Persistent reports whether the snapshot was read successfully. Changes
// to a store that is not persistent stay in memory and are never written,
// so they cannot overwrite a snapshot that was merely unreadable.
func (s *CartStore) Persistent() bool { return s.reachable }
