package ports

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
)

type OrderRepository interface {
	// Add fails with services.ErrDuplicateOrder when the basket already has an order.
	Add(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	ExistsForBasket(ctx context.Context, basketID kernel.UUID) (bool, error)
}
