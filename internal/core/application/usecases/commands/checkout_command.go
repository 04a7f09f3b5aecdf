package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand converts a basket into an order. ClaimedTotal is the total the
// client believes it is paying; nil skips the comparison.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	basketID     kernel.UUID
	claimedTotal *kernel.Money
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

func NewCheckoutCommand(basketID kernel.UUID, claimedTotal *kernel.Money, actor kernel.Actor) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		claimedTotal: claimedTotal,
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}

	if err := cmd.setBasketID(basketID); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) BasketID() kernel.UUID {
	return c.basketID
}

func (c CheckoutCommand) ClaimedTotal() *kernel.Money {
	return c.claimedTotal
}

func (c CheckoutCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CheckoutCommand) setBasketID(basketID kernel.UUID) error {
	if err := basketID.Validate(); err != nil {
		return err
	}

	c.basketID = basketID
	return nil
}
