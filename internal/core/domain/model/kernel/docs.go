// Package kernel holds the value objects shared by every aggregate of the checkout
// domain:
//   - UUID: identifiers of baskets, lines, orders, products and users
//   - Money: a non-negative amount with a fixed scale of two decimal places
//   - Currency: an ISO-like currency code; no conversion between codes exists
//   - Actor: the user acting on a request, possibly anonymous
//   - DomainEvent: facts raised by aggregates and relayed through the outbox
//
// All values are immutable and safe for concurrent use.
package kernel
