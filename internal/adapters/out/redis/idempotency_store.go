// Package redis keeps idempotency keys of HTTP requests in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"checkout/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

const (
	keyPrefix     = "checkout:idempotency:"
	pendingMarker = "pending"
)

type IdempotencyStore struct {
	rdb *redis.Client
}

func NewIdempotencyStore(rdb *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb}
}

type storedResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, keyPrefix+key, pendingMarker, ttl).Result()
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotentResponse, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if raw == pendingMarker {
		return nil, nil
	}

	var stored storedResponse
	if err = json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, err
	}

	return &ports.IdempotentResponse{
		StatusCode:  stored.StatusCode,
		ContentType: stored.ContentType,
		Body:        stored.Body,
	}, nil
}

func (s *IdempotencyStore) Complete(
	ctx context.Context,
	key string,
	response ports.IdempotentResponse,
	ttl time.Duration,
) error {
	raw, err := json.Marshal(storedResponse{
		StatusCode:  response.StatusCode,
		ContentType: response.ContentType,
		Body:        response.Body,
	})
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+key, raw, ttl).Err()
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, keyPrefix+key).Err()
}
