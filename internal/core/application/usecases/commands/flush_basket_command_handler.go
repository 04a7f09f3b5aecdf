package commands

import (
	"context"

	"checkout/internal/core/domain/model/basket"
)

// FlushBasketCommandHandler empties the caller's Open basket.
type FlushBasketCommandHandler struct {
	uowFactory BasketUoWFactory
}

func NewFlushBasketCommandHandler(uowFactory BasketUoWFactory) FlushBasketCommandHandler {
	return FlushBasketCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h FlushBasketCommandHandler) Handle(ctx context.Context, cmd FlushBasketCommand) (*basket.Basket, error) {
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

	basketRepo := uow.BasketRepository()
	b, err := openBasket(ctx, basketRepo, cmd.Actor().UserID())
	if err != nil {
		return nil, err
	}

	if err = b.Flush(); err != nil {
		return nil, err
	}

	if err = basketRepo.DeleteLines(ctx, b.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
