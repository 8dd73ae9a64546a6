package store

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/utafrali/storefront/internal/repository"
)

// Registry hands out one CartStore and one WishlistStore per session and
// drops stores that have been idle longer than the configured TTL. A
// dropped store is reloaded from its snapshot on next use.
type Registry struct {
	repo      repository.SnapshotRepository
	logger    *slog.Logger
	idleTTL   time.Duration
	interval  time.Duration
	now       func() time.Time
	carts     *table[*CartStore]
	wishlists *table[*WishlistStore]
}

// NewRegistry creates a registry over repo. Stores idle for idleTTL are
// swept every interval; idleTTL <= 0 disables eviction.
func NewRegistry(repo repository.SnapshotRepository, idleTTL, interval time.Duration, logger *slog.Logger) *Registry {
	r := &Registry{
		repo:     repo,
		logger:   logger,
		idleTTL:  idleTTL,
		interval: interval,
		now:      time.Now,
	}
	r.carts = newTable(repository.KindCart, func(ctx context.Context, id string) (*CartStore, bool) {
		s := OpenCart(ctx, r.repo, id, r.logger)
		return s, s.Persistent()
	})
	r.wishlists = newTable(repository.KindWishlist, func(ctx context.Context, id string) (*WishlistStore, bool) {
		s := OpenWishlist(ctx, r.repo, id, r.logger)
		return s, s.Persistent()
	})
	return r
}

// Cart returns the session's cart store, loading it on first use.
func (r *Registry) Cart(ctx context.Context, sessionID string) *CartStore {
	return r.carts.get(ctx, sessionID, r.now())
}

// Wishlist returns the session's wishlist store, loading it on first use.
func (r *Registry) Wishlist(ctx context.Context, sessionID string) *WishlistStore {
	return r.wishlists.get(ctx, sessionID, r.now())
}

// Sweep evicts stores not used since now minus the idle TTL and returns
// how many were dropped.
func (r *Registry) Sweep(now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-r.idleTTL)
	return r.carts.sweep(cutoff) + r.wishlists.sweep(cutoff)
}

// Len reports how many cart and wishlist stores are held.
func (r *Registry) Len() (carts, wishlists int) {
	return r.carts.len(), r.wishlists.len()
}

// Run sweeps on every tick until ctx is done.
func (r *Registry) Run(ctx context.Context) error {
	if r.interval <= 0 || r.idleTTL <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.Sweep(r.now()); n > 0 {
				r.logger.DebugContext(ctx, "evicted idle session stores", slog.Int("count", n))
			}
		}
	}
}

type slot[S any] struct {
	ready    chan struct{}
	store    S
	lastUsed atomic.Int64
}

// table is a keyed set of lazily opened stores. Concurrent first use of a
// session waits on a single load.
type table[S any] struct {
	kind  string
	open  func(ctx context.Context, id string) (S, bool)
	mu    sync.Mutex
	slots map[string]*slot[S]
}

func newTable[S any](kind string, open func(context.Context, string) (S, bool)) *table[S] {
	return &table[S]{kind: kind, open: open, slots: make(map[string]*slot[S])}
}

func (t *table[S]) get(ctx context.Context, id string, now time.Time) S {
	t.mu.Lock()
	sl, ok := t.slots[id]
	if !ok {
		sl = &slot[S]{ready: make(chan struct{})}
		t.slots[id] = sl
		liveStores.WithLabelValues(t.kind).Inc()
	}
	sl.lastUsed.Store(now.UnixNano())
	t.mu.Unlock()

	if ok {
		<-sl.ready
		return sl.store
	}

	store, cacheable := t.open(ctx, id)
	sl.store = store
	close(sl.ready)

	// A store opened while storage was unreachable serves this request
	// only; the next one retries the load.
	if !cacheable {
		t.mu.Lock()
		if t.slots[id] == sl {
			delete(t.slots, id)
			liveStores.WithLabelValues(t.kind).Dec()
		}
		t.mu.Unlock()
	}
	return store
}

func (t *table[S]) sweep(cutoff time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for id, sl := range t.slots {
		select {
		case <-sl.ready:
		default:
			continue
		}
		if sl.lastUsed.Load() < cutoff.UnixNano() {
			delete(t.slots, id)
			n++
		}
	}
	if n > 0 {
		liveStores.WithLabelValues(t.kind).Sub(float64(n))
	}
	return n
}

func (t *table[S]) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots)
}
