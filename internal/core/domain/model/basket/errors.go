package basket

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

var (
	ErrPricingUnavailable = errors.New("pricing unavailable")
	ErrBasketNotEditable  = errors.New("basket not editable")
	ErrBasketFrozen       = errors.New("basket frozen")
	ErrCurrencyMismatch   = errors.New("currency mismatch")
	ErrQuantityLimit      = errors.New("quantity limit")
	ErrTotalLimit         = errors.New("total limit")
)

// NewNotEditableError is the rejection of any line write on a basket in status.
func NewNotEditableError(status Status) *errs.NotAcceptableError {
	return errs.NewNotAcceptableErrorf(ErrBasketNotEditable, "You cannot modify a %s basket", status.lower())
}

func newFrozenError() *errs.NotAcceptableError {
	return errs.NewNotAcceptableError(ErrBasketFrozen, "A frozen basket cannot be flushed")
}

// NewCurrencyMismatchError rejects a product priced in another currency than the basket.
func NewCurrencyMismatchError(basket, product kernel.Currency) *errs.NotAcceptableError {
	return errs.NewNotAcceptableErrorf(
		ErrCurrencyMismatch,
		"Basket is priced in %s, product is priced in %s",
		basket, product,
	)
}

// NewQuantityLimitError rejects a merge that would take a line above MaxQuantity.
func NewQuantityLimitError() *errs.NotAcceptableError {
	return errs.NewNotAcceptableErrorf(ErrQuantityLimit, "A basket line cannot hold more than %d units", MaxQuantity)
}

// NewTotalLimitError rejects a basket whose total would reach kernel.MaxMoney.
func NewTotalLimitError() *errs.NotAcceptableError {
	return errs.NewNotAcceptableErrorf(ErrTotalLimit, "Basket total must stay below %s", kernel.MaxMoney())
}
