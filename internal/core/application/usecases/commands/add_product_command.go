package commands

import (
	"errors"

	"checkout/internal/core/domain/model/basket"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrAddProductCommandIsNotConstructed = errors.New(
	"AddProductCommand must be created via NewAddProductCommand constructor",
)

// AddProductCommand adds quantity units of a product to the caller's basket.
// Negative quantities remove units. The quantity is bounded by ±basket.MaxQuantity.
type AddProductCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

func NewAddProductCommand(actor kernel.Actor, productID kernel.UUID, quantity int) (AddProductCommand, error) {
	cmd := AddProductCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddProductCommand{}, err
	}

	return cmd, nil
}

func (c AddProductCommand) Validate() error {
	return c.guard.Validate(ErrAddProductCommandIsNotConstructed)
}

func (c AddProductCommand) Actor() kernel.Actor {
	return c.actor
}

func (c AddProductCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c AddProductCommand) Quantity() int {
	return c.quantity
}

func (c *AddProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *AddProductCommand) setQuantity(quantity int) error {
	if quantity < -basket.MaxQuantity || quantity > basket.MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, -basket.MaxQuantity, basket.MaxQuantity)
	}

	c.quantity = quantity
	return nil
}
