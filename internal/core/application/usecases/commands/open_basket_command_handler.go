package commands

import (
	"context"

	"checkout/internal/core/domain/model/basket"
)

// OpenBasketCommandHandler gets or creates the caller's Open basket.
type OpenBasketCommandHandler struct {
	uowFactory BasketUoWFactory
}

func NewOpenBasketCommandHandler(uowFactory BasketUoWFactory) OpenBasketCommandHandler {
	return OpenBasketCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h OpenBasketCommandHandler) Handle(ctx context.Context, cmd OpenBasketCommand) (*basket.Basket, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := requireAuthenticated(cmd.Actor()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	b, err := openBasket(ctx, uow.BasketRepository(), cmd.Actor().UserID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
