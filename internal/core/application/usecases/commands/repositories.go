// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"checkout/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	BasketRepoFactory interface {
		BasketRepository() ports.BasketRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// BasketUoW covers operations on the caller's basket and its lines.
	BasketUoW interface {
		TxManager
		BasketRepoFactory
		ProductRepoFactory
	}

	BasketUoWFactory interface {
		Create() BasketUoW
	}

	// CheckoutUoW spans the basket and the order it becomes.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   b, err := uow.BasketRepository().GetForUpdate(ctx, id)
	//   // ... place the order
	//   err = uow.OrderRepository().Add(ctx, o)
	//   err = uow.BasketRepository().Update(ctx, b)
	//
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		BasketRepoFactory
		OrderRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
