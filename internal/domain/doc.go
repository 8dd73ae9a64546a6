// Package domain holds the storefront's value types and the pure state
// transitions for carts and wishlists.
//
// Every change to a cart goes through ReduceCart and every change to a
// wishlist through ReduceWishlist, so the collection invariants (one line
// per product, quantities of at least one, no duplicate wishlist entries)
// are enforced in a single place.
package domain
