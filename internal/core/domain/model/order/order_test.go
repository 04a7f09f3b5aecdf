package order_test

import (
	"encoding/json"
	"testing"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	id := kernel.NewUUID()
	basketID := kernel.NewUUID()
	ownerID := kernel.NewUUID()
	total := kernel.MustMoney("500.00")

	t.Run("should create order in Created status", func(t *testing.T) {
		o, err := order.NewOrder(id, basketID, ownerID, kernel.DefaultCurrency, total)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		require.NotNil(t, o.BasketID())
		assert.True(t, o.BasketID().IsEqual(basketID))
		assert.True(t, o.BelongsTo(ownerID))
		assert.Equal(t, "INR", o.Currency().String())
		assert.Equal(t, "500.00", o.Total().String())
		assert.Equal(t, order.Created, o.Status())
		assert.False(t, o.Created().IsZero())
	})

	t.Run("should raise OrderPlaced", func(t *testing.T) {
		o, err := order.NewOrder(id, basketID, ownerID, kernel.DefaultCurrency, total)
		require.NoError(t, err)

		events := o.DomainEvents()

		require.Len(t, events, 1)
		placed, ok := events[0].(order.OrderPlaced)
		require.True(t, ok)
		assert.Equal(t, order.OrderPlacedEventName, placed.EventName())
		assert.True(t, placed.AggregateID().IsEqual(id))
		assert.True(t, placed.BasketID().IsEqual(basketID))

		o.ClearDomainEvents()
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should fail on missing fields", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, basketID, kernel.UUID{}, kernel.Currency{}, total)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Contains(t, err.Error(), "owner")
		assert.Contains(t, err.Error(), "currency")
	})

	t.Run("should require a basket", func(t *testing.T) {
		_, err := order.NewOrder(id, kernel.UUID{}, ownerID, kernel.DefaultCurrency, total)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a total the store cannot hold", func(t *testing.T) {
		tooLarge := kernel.MustMoney("9999999999.99").Times(1000)

		o, err := order.NewOrder(id, basketID, ownerID, kernel.DefaultCurrency, tooLarge)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Nil(t, o)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should allow a deleted basket and raise nothing", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), nil, kernel.NewUUID(), kernel.DefaultCurrency,
			kernel.MustMoney("1.00"), order.Delivered, time.Now())

		require.NoError(t, err)
		assert.Nil(t, o.BasketID())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), nil, kernel.NewUUID(), kernel.DefaultCurrency,
			kernel.MustMoney("1.00"), order.Unknown, time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())

	var zero order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, zero.Validate())
}

func TestOrder_Fulfilment(t *testing.T) {
	newOrder := func(t *testing.T) *order.Order {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.DefaultCurrency, kernel.MustMoney("1.00"))
		require.NoError(t, err)
		return o
	}

	t.Run("should go through processing to delivery", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.Process())
		require.NoError(t, o.Deliver())

		assert.Equal(t, order.Delivered, o.Status())
		require.Error(t, o.Cancel())
	})

	t.Run("should not deliver before processing", func(t *testing.T) {
		o := newOrder(t)

		err := o.Deliver()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Created is not a valid status to deliver")
		assert.Equal(t, order.Created, o.Status())
	})

	t.Run("should cancel while not final", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Process())

		require.NoError(t, o.Cancel())
		assert.True(t, o.Status().IsFinal())
		require.Error(t, o.Process())
	})
}

func TestOrderPlaced_MarshalJSON(t *testing.T) {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.DefaultCurrency, kernel.MustMoney("42.50"))
	require.NoError(t, err)

	raw, err := json.Marshal(o.DomainEvents()[0])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, o.ID().String(), payload["order_id"])
	assert.Equal(t, o.BasketID().String(), payload["basket_id"])
	assert.Equal(t, o.OwnerID().String(), payload["user_id"])
	assert.Equal(t, "42.50", payload["total"])
	assert.Equal(t, "INR", payload["currency"])
}
