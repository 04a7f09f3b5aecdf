package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit writes the domain events of aggregates stored through this unit of
	// work to the outbox, then commits.
	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	BasketRepository() BasketRepository

	OrderRepository() OrderRepository

	ProductRepository() ProductRepository

	OutboxRepository() OutboxRepository
}
