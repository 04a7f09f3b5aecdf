package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/services"
	"checkout/internal/pkg/errs"
)

var ErrProductNotAvailable = errors.New("product not available")

// requireAuthenticated rejects anonymous callers of owner scoped commands.
func requireAuthenticated(actor kernel.Actor) error {
	if actor.IsAnonymous() {
		return errs.NewNotAcceptableError(services.ErrUnauthenticated, "Authentication credentials were not provided.")
	}
	return nil
}
