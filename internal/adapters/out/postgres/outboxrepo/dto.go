// Package outboxrepo stores domain events in the transaction that raised them,
// until a relay publishes them.
package outboxrepo

import (
	"encoding/json"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"

	"github.com/google/uuid"
)

type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:128;not null"`
	AggregateID uuid.UUID `gorm:"type:uuid;not null"`
	Payload     []byte    `gorm:"type:bytea;not null"`
	OccurredAt  time.Time `gorm:"not null;index:idx_outbox_pending,where:sent_at IS NULL"`
	SentAt      *time.Time
}

func (MessageDTO) TableName() string {
	return "outbox"
}

func fromEvent(event kernel.DomainEvent) (MessageDTO, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return MessageDTO{}, err
	}

	return MessageDTO{
		ID:          event.EventID().Bytes(),
		Name:        event.EventName(),
		AggregateID: event.AggregateID().Bytes(),
		Payload:     payload,
		OccurredAt:  event.OccurredAt(),
	}, nil
}

func toMessage(dto MessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		Name:        dto.Name,
		AggregateID: aggregateID,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
	}, nil
}
