package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrOpenBasketCommandIsNotConstructed = errors.New(
	"OpenBasketCommand must be created via NewOpenBasketCommand constructor",
)

type OpenBasketCommand struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewOpenBasketCommand(actor kernel.Actor) OpenBasketCommand {
	return OpenBasketCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}
}

func (c OpenBasketCommand) Validate() error {
	return c.guard.Validate(ErrOpenBasketCommandIsNotConstructed)
}

func (c OpenBasketCommand) Actor() kernel.Actor {
	return c.actor
}
