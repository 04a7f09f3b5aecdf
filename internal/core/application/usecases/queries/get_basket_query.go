package queries

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrGetBasketQueryIsNotConstructed = errors.New(
	"GetBasketQuery must be created via NewGetBasketQuery constructor",
)

type GetBasketQuery struct {
	basketID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetBasketQuery(basketID kernel.UUID) (GetBasketQuery, error) {
	if err := basketID.Validate(); err != nil {
		return GetBasketQuery{}, err
	}
	return GetBasketQuery{basketID: basketID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBasketQuery) Validate() error {
	return q.guard.Validate(ErrGetBasketQueryIsNotConstructed)
}

func (q GetBasketQuery) BasketID() kernel.UUID {
	return q.basketID
}

type GetBasketQueryResponse struct {
	ID       kernel.UUID
	OwnerID  kernel.UUID
	Status   string
	Lines    []BasketLineResponse
	Total    kernel.Money
	Currency kernel.Currency
}

type BasketLineResponse struct {
	ID        kernel.UUID
	BasketID  kernel.UUID
	ProductID *kernel.UUID
	Quantity  int
	Price     kernel.Money
	Currency  kernel.Currency
	Created   time.Time
}
