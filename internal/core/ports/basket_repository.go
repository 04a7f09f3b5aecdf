package ports

import (
	"context"

	"checkout/internal/core/domain/model/basket"
	"checkout/internal/core/domain/model/catalogue"
	"checkout/internal/core/domain/model/kernel"
)

type BasketRepository interface {
	// AddOpen stores b unless its owner already has an Open basket, and returns
	// whichever Open basket the owner ends up with.
	AddOpen(ctx context.Context, b *basket.Basket) (*basket.Basket, error)

	Update(ctx context.Context, b *basket.Basket) error

	Get(ctx context.Context, id kernel.UUID) (*basket.Basket, error)

	// GetForUpdate loads the basket and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*basket.Basket, error)

	GetOpenByOwner(ctx context.Context, ownerID kernel.UUID) (*basket.Basket, error)

	// MergeLine atomically applies max(0, existing+delta) to the line of product,
	// creating it priced from product when absent and deleting it at zero. It
	// fails with basket.ErrBasketNotEditable unless the stored basket status is
	// editable at the time of the write.
	MergeLine(ctx context.Context, basketID kernel.UUID, product *catalogue.Product, delta int) (*basket.Line, bool, error)

	// DeleteLines flushes the basket under the same stored status guard.
	DeleteLines(ctx context.Context, basketID kernel.UUID) error
}
