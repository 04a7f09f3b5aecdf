package ports

import (
	"context"

	"checkout/internal/core/domain/model/catalogue"
	"checkout/internal/core/domain/model/kernel"
)

type ProductRepository interface {
	// Save inserts or replaces the product, as pushed by the catalogue.
	Save(ctx context.Context, product *catalogue.Product) error

	Get(ctx context.Context, id kernel.UUID) (*catalogue.Product, error)
}
