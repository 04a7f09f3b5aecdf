package commands

import (
	"context"
	"errors"

	"checkout/internal/core/domain/model/basket"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// openBasket returns the owner's Open basket, creating it on first use.
func openBasket(ctx context.Context, repo ports.BasketRepository, ownerID kernel.UUID) (*basket.Basket, error) {
	b, err := repo.GetOpenByOwner(ctx, ownerID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	b, err = basket.NewBasket(kernel.NewUUID(), ownerID)
	if err != nil {
		return nil, err
	}
	return repo.AddOpen(ctx, b)
}
