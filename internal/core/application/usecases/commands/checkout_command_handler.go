package commands

import (
	"context"
	"errors"

	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/services"
	"checkout/internal/pkg/errs"
)

// CheckoutCommandHandler runs the checkout in one transaction: the basket row is
// locked, validated, turned into an order and submitted. Either the order and the
// submitted basket are both committed or neither is.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	policy     services.CheckoutPolicy
}

func NewCheckoutCommandHandler(uowFactory CheckoutUoWFactory, policy services.CheckoutPolicy) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
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
	orderRepo := uow.OrderRepository()

	b, err := basketRepo.GetForUpdate(ctx, cmd.BasketID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, services.NewBasketNotFoundError(cmd.BasketID())
		}
		return nil, err
	}

	exists, err := orderRepo.ExistsForBasket(ctx, b.ID())
	if err != nil {
		return nil, err
	}

	o, err := h.policy.PlaceOrder(b, cmd.ClaimedTotal(), cmd.Actor(), exists)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = basketRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
