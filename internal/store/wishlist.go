package store

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
)

// WishlistStore owns one session's wishlist.
type WishlistStore struct {
	mu        sync.Mutex
	entries   []domain.WishlistEntry
	snap      snapshotter[domain.WishlistEntry]
	reachable bool
}

// OpenWishlist loads the session's wishlist snapshot; see OpenCart.
func OpenWishlist(ctx context.Context, repo repository.SnapshotRepository, sessionID string, logger *slog.Logger) *WishlistStore {
	s := &WishlistStore{snap: snapshotter[domain.WishlistEntry]{
		repo:   repo,
		key:    repository.SnapshotKey{Kind: repository.KindWishlist, SessionID: sessionID},
		logger: logger,
	}}
	loaded, reachable := s.snap.load(ctx)
	s.entries, _ = domain.ReduceWishlist(nil, domain.ReplaceEntries{Entries: loaded})
	s.reachable = reachable
	return s
}

func (s *WishlistStore) Dispatch(ctx context.Context, cmd domain.WishlistCommand) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := domain.ReduceWishlist(s.entries, cmd)
	if !changed {
		return false
	}
	s.entries = next
	if s.reachable {
		s.snap.persist(ctx, next)
	} else {
		s.snap.skip(ctx, len(next))
	}
	return true
}

func (s *WishlistStore) AddToWishlist(ctx context.Context, p domain.Product) bool {
	return s.Dispatch(ctx, domain.AddEntry{Product: p})
}

func (s *WishlistStore) RemoveFromWishlist(ctx context.Context, productID string) bool {
	return s.Dispatch(ctx, domain.RemoveEntry{ProductID: productID})
}

func (s *WishlistStore) ClearWishlist(ctx context.Context) bool {
	return s.Dispatch(ctx, domain.ClearEntries{})
}

func (s *WishlistStore) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.WishlistContains(s.entries, productID)
}

// Entries returns a copy of the saved products in insertion order.
func (s *WishlistStore) Entries() []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

func (s *WishlistStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *WishlistStore) Persistent() bool { return s.reachable }
