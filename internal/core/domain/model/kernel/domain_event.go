package kernel

import "time"

// DomainEvent is a fact raised by an aggregate. The unit of work stores raised
// events in the outbox in the same transaction as the aggregate change.
type DomainEvent interface {
	EventID() UUID
	// EventName doubles as the outbox routing key, e.g. "order.placed".
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventSource is implemented by aggregates that raise domain events.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
