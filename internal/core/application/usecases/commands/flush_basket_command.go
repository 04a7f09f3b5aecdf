package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrFlushBasketCommandIsNotConstructed = errors.New(
	"FlushBasketCommand must be created via NewFlushBasketCommand constructor",
)

type FlushBasketCommand struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewFlushBasketCommand(actor kernel.Actor) FlushBasketCommand {
	return FlushBasketCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}
}

func (c FlushBasketCommand) Validate() error {
	return c.guard.Validate(ErrFlushBasketCommandIsNotConstructed)
}

func (c FlushBasketCommand) Actor() kernel.Actor {
	return c.actor
}
