// Package kafka publishes outbox messages to a Kafka topic.
package kafka

import (
	"context"
	"strings"

	"checkout/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	HeaderEventName = "event-name"
	HeaderEventID   = "event-id"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OutboxPublisher writes each message keyed by its aggregate, so the events of
// one order land on one partition in the order they were raised.
type OutboxPublisher struct {
	writer messageWriter
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := make([]string, 0)
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func NewOutboxPublisher(writer messageWriter) *OutboxPublisher {
	return &OutboxPublisher{writer: writer}
}

// Publish writes the messages in one batch. Either call succeeds for all of them
// or the relay retries the batch, so consumers must tolerate duplicates by event id.
func (p *OutboxPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(m.AggregateID.String()),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []kafka.Header{
				{Key: HeaderEventName, Value: []byte(m.Name)},
				{Key: HeaderEventID, Value: []byte(m.ID.String())},
			},
		})
	}

	return p.writer.WriteMessages(ctx, batch...)
}

func (p *OutboxPublisher) Close() error {
	return p.writer.Close()
}
