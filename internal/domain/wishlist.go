package domain

// WishlistEntry is a saved product. There is no quantity.
type WishlistEntry struct {
	Product
}

// WishlistCommand is a mutation accepted by ReduceWishlist.
type WishlistCommand interface {
	wishlistCommand()
}

type (
	AddEntry       struct{ Product Product }
	RemoveEntry    struct{ ProductID string }
	ClearEntries   struct{}
	ReplaceEntries struct{ Entries []WishlistEntry }
)

func (AddEntry) wishlistCommand()       {}
func (RemoveEntry) wishlistCommand()    {}
func (ClearEntries) wishlistCommand()   {}
func (ReplaceEntries) wishlistCommand() {}

// ReduceWishlist is the wishlist counterpart of ReduceCart. Adding a
// product that is already saved is a no-op.
func ReduceWishlist(entries []WishlistEntry, cmd WishlistCommand) (next []WishlistEntry, changed bool) {
	switch c := cmd.(type) {
	case AddEntry:
		if WishlistContains(entries, c.Product.ID) {
			return entries, false
		}
		next = make([]WishlistEntry, len(entries), len(entries)+1)
		copy(next, entries)
		return append(next, WishlistEntry{Product: c.Product}), true

	case RemoveEntry:
		i := indexEntry(entries, c.ProductID)
		if i < 0 {
			return entries, false
		}
		next = make([]WishlistEntry, 0, len(entries)-1)
		next = append(next, entries[:i]...)
		return append(next, entries[i+1:]...), true

	case ClearEntries:
		return []WishlistEntry{}, true

	case ReplaceEntries:
		return NormalizeEntries(c.Entries), true
	}
	return entries, false
}

// NormalizeEntries drops entries without an id and keeps the first of
// any repeated id.
func NormalizeEntries(in []WishlistEntry) []WishlistEntry {
	out := make([]WishlistEntry, 0, len(in))
	for _, e := range in {
		if e.ID == "" || WishlistContains(out, e.ID) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// WishlistContains reports whether productID is saved.
func WishlistContains(entries []WishlistEntry, productID string) bool {
	return indexEntry(entries, productID) >= 0
}

func indexEntry(entries []WishlistEntry, productID string) int {
	for i := range entries {
		if entries[i].ID == productID {
			return i
		}
	}
	return -1
}
