package ports

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event waiting to be published.
type OutboxMessage struct {
	ID          kernel.UUID
	Name        string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredAt  time.Time
}

type OutboxRepository interface {
	Add(ctx context.Context, events ...kernel.DomainEvent) error

	// FetchPending locks up to limit unsent messages, oldest first, skipping rows
	// locked by other relays.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkSent(ctx context.Context, ids ...kernel.UUID) error
}

type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
