package http_test

import (
	"context"
	"sync"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/basket"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOpenBasketHandler struct{ mock.Mock }

func (m *MockOpenBasketHandler) Handle(ctx context.Context, cmd commands.OpenBasketCommand) (*basket.Basket, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*basket.Basket), args.Error(1)
}

type MockAddProductHandler struct{ mock.Mock }

func (m *MockAddProductHandler) Handle(ctx context.Context, cmd commands.AddProductCommand) (commands.AddProductResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AddProductResult), args.Error(1)
}

type MockFlushBasketHandler struct{ mock.Mock }

func (m *MockFlushBasketHandler) Handle(ctx context.Context, cmd commands.FlushBasketCommand) (*basket.Basket, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*basket.Basket), args.Error(1)
}

type MockCheckoutHandler struct{ mock.Mock }

func (m *MockCheckoutHandler) Handle(ctx context.Context, cmd commands.CheckoutCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockGetBasketHandler struct{ mock.Mock }

func (m *MockGetBasketHandler) Handle(ctx context.Context, query queries.GetBasketQuery) (queries.GetBasketQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetBasketQueryResponse), args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderResponse), args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderResponse), args.Error(1)
}

// memoryIdempotencyStore keeps keys in a map and ignores ttl.
type memoryIdempotencyStore struct {
	mu        sync.Mutex
	reserved  map[string]bool
	responses map[string]ports.IdempotentResponse
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{
		reserved:  make(map[string]bool),
		responses: make(map[string]ports.IdempotentResponse),
	}
}

func (s *memoryIdempotencyStore) Reserve(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, done := s.responses[key]; done || s.reserved[key] {
		return false, nil
	}
	s.reserved[key] = true
	return true, nil
}

func (s *memoryIdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resp, ok := s.responses[key]; ok {
		return &resp, nil
	}
	return nil, nil
}

func (s *memoryIdempotencyStore) Complete(_ context.Context, key string, resp ports.IdempotentResponse, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reserved, key)
	s.responses[key] = resp
	return nil
}

func (s *memoryIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reserved, key)
	return nil
}
