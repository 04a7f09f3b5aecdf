// Package basket implements the Basket aggregate and its Line entities.
//
// A basket belongs to one owner and accumulates lines, one per product. Each
// line snapshots the product price and currency when it is first created; later
// quantity changes never re-read the catalogue. Lines can only be written while
// the basket is editable (Open or Saved).
//
// Status lifecycle:
//
//	Open <──> Saved
//	  │         │
//	  └─> Frozen ─> Submitted
//	  │   (Thaw back to Open)
//	  └──────────────> Submitted
//
// The in-memory checks in this package mirror the guard the persistence layer
// applies against the stored basket status. The stored check is the one that
// decides under concurrency.
package basket
