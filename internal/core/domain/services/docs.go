// Package services provides domain services that span the basket and order
// aggregates.
//
// The package includes:
//   - CheckoutPolicy: validates a basket for checkout and converts it into an Order
//
// CheckoutPolicy is pure: loading, locking and persisting the aggregates is the
// job of the checkout command handler, which runs the policy inside one
// transaction.
package services
