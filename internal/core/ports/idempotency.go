package ports

import (
	"context"
	"time"
)

// IdempotentResponse is the stored reply to a request carrying an idempotency key.
type IdempotentResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

type IdempotencyStore interface {
	// Reserve claims key for a request in flight. It returns false when the key
	// is already reserved or completed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Get returns the completed response for key, or nil while the key is
	// unknown or still in flight.
	Get(ctx context.Context, key string) (*IdempotentResponse, error)

	Complete(ctx context.Context, key string, response IdempotentResponse, ttl time.Duration) error

	// Release drops a reservation so the request can be retried.
	Release(ctx context.Context, key string) error
}
