// Package order provides the Order aggregate: the immutable record of a checked
// out basket.
//
// The package includes:
//   - Order: the aggregate root holding the owner, the originating basket, the
//     currency and the total frozen at checkout time
//   - Status: the fulfilment state machine
//   - OrderPlaced: the domain event raised when an order is created
//
// Key business rules:
//   - An order always has an owner, a currency and a two decimal total
//   - The basket reference becomes nil if the basket is deleted later
//   - Status follows Created -> Processing -> Delivered, and Created or
//     Processing orders can be Cancelled
//
// Status changes after creation belong to the fulfilment workflow; checkout only
// ever creates orders in the Created status.
package order
