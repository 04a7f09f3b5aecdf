package services

import (
	"errors"
	"fmt"

	"checkout/internal/core/domain/model/basket"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
)

var (
	ErrBasketNotFound  = errors.New("basket not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrEmptyBasket     = errors.New("empty basket")
	ErrTotalMismatch   = errors.New("total mismatch")
	ErrDuplicateOrder  = errors.New("duplicate order")
)

// NewBasketNotFoundError rejects a checkout of a basket that is missing, not
// open, or not owned by the caller. The three cases are indistinguishable.
func NewBasketNotFoundError(basketID fmt.Stringer) *errs.NotAcceptableError {
	return errs.NewNotAcceptableErrorf(ErrBasketNotFound, "Invalid basket %q - object does not exist.", basketID.String())
}

// NewDuplicateOrderError is also used when the store rejects a second order for a basket.
func NewDuplicateOrderError() *errs.NotAcceptableError {
	return errs.NewNotAcceptableError(ErrDuplicateOrder, "There is already an order placed with this basket")
}

// CheckoutPolicy decides whether a basket may be checked out and builds the order.
type CheckoutPolicy struct{}

func NewCheckoutPolicy() CheckoutPolicy {
	return CheckoutPolicy{}
}

// Check runs the checkout rules in order and returns the first violation:
//  1. the basket is Open
//  2. the actor is authenticated (and owns the basket)
//  3. the basket has items
//  4. claimedTotal, when given, equals the basket total exactly
//  5. the basket total fits an order
//  6. the basket is still non-empty and editable
//  7. no order references the basket yet
func (p CheckoutPolicy) Check(
	b *basket.Basket,
	claimedTotal *kernel.Money,
	actor kernel.Actor,
	orderExists bool,
) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.Status() != basket.Open {
		return NewBasketNotFoundError(b.ID())
	}

	if actor.IsAnonymous() {
		return errs.NewNotAcceptableError(ErrUnauthenticated, "Anonymous checkout forbidden")
	}
	if !b.OwnerID().IsEqual(actor.UserID()) {
		return NewBasketNotFoundError(b.ID())
	}

	if b.NumItems() <= 0 {
		return errs.NewNotAcceptableError(ErrEmptyBasket, "Cannot checkout with empty basket")
	}

	if claimedTotal != nil {
		if total := b.Total(); !claimedTotal.Equal(total) {
			return errs.NewNotAcceptableErrorf(ErrTotalMismatch, "Total incorrect %s != %s", claimedTotal, total)
		}
	}

	if b.Total().CheckRange() != nil {
		return basket.NewTotalLimitError()
	}

	if b.IsEmpty() {
		return errs.NewNotAcceptableError(ErrEmptyBasket, "Empty baskets cannot be submitted")
	}
	if !b.CanBeEdited() {
		return errs.NewNotAcceptableError(basket.ErrBasketNotEditable, "This basket cannot be edited")
	}

	if orderExists {
		return NewDuplicateOrderError()
	}

	return nil
}

// PlaceOrder checks the basket, freezes it while the order is built from its
// currency, total and owner, then submits it. On failure the basket is left
// in the status it had.
func (p CheckoutPolicy) PlaceOrder(
	b *basket.Basket,
	claimedTotal *kernel.Money,
	actor kernel.Actor,
	orderExists bool,
) (*order.Order, error) {
	if err := p.Check(b, claimedTotal, actor, orderExists); err != nil {
		return nil, err
	}

	if err := b.Freeze(); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), b.ID(), actor.UserID(), b.Currency(), b.Total())
	if err != nil {
		return nil, errors.Join(err, b.Thaw())
	}

	if err := b.Submit(); err != nil {
		return nil, errors.Join(err, b.Thaw())
	}

	return o, nil
}
