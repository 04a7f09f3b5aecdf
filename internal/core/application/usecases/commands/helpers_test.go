package commands_test

import (
	"testing"

	"checkout/internal/core/domain/model/basket"
	"checkout/internal/core/domain/model/catalogue"
	"checkout/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func customer(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.AuthenticatedActor(kernel.NewUUID())
	require.NoError(t, err)
	return actor
}

func pricedProduct(t *testing.T, price string) *catalogue.Product {
	t.Helper()
	m := kernel.MustMoney(price)
	p, err := catalogue.NewProduct(kernel.NewUUID(), "Kettle", &m, kernel.DefaultCurrency)
	require.NoError(t, err)
	return p
}

func openBasketOf(t *testing.T, actor kernel.Actor) *basket.Basket {
	t.Helper()
	b, err := basket.NewBasket(kernel.NewUUID(), actor.UserID())
	require.NoError(t, err)
	return b
}
