package order

import (
	"encoding/json"
	"time"

	"checkout/internal/core/domain/model/kernel"
)

// OrderPlacedEventName is the outbox routing key of OrderPlaced.
const OrderPlacedEventName = "order.placed"

// OrderPlaced is raised once per order, when checkout creates it.
type OrderPlaced struct {
	id         kernel.UUID
	orderID    kernel.UUID
	basketID   kernel.UUID
	ownerID    kernel.UUID
	currency   kernel.Currency
	total      kernel.Money
	occurredAt time.Time
}

func NewOrderPlaced(o *Order) OrderPlaced {
	event := OrderPlaced{
		id:         kernel.NewUUID(),
		orderID:    o.ID(),
		ownerID:    o.OwnerID(),
		currency:   o.Currency(),
		total:      o.Total(),
		occurredAt: o.Created(),
	}
	if o.BasketID() != nil {
		event.basketID = *o.BasketID()
	}
	return event
}

func (e OrderPlaced) EventID() kernel.UUID     { return e.id }
func (e OrderPlaced) EventName() string        { return OrderPlacedEventName }
func (e OrderPlaced) AggregateID() kernel.UUID { return e.orderID }
func (e OrderPlaced) OccurredAt() time.Time    { return e.occurredAt }

func (e OrderPlaced) BasketID() kernel.UUID { return e.basketID }
func (e OrderPlaced) OwnerID() kernel.UUID  { return e.ownerID }
func (e OrderPlaced) Total() kernel.Money   { return e.total }

type orderPlacedPayload struct {
	EventID    string    `json:"event_id"`
	OrderID    string    `json:"order_id"`
	BasketID   string    `json:"basket_id"`
	UserID     string    `json:"user_id"`
	Currency   string    `json:"currency"`
	Total      string    `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}

// MarshalJSON is the payload stored in the outbox and published to the broker.
func (e OrderPlaced) MarshalJSON() ([]byte, error) {
	return json.Marshal(orderPlacedPayload{
		EventID:    e.id.String(),
		OrderID:    e.orderID.String(),
		BasketID:   e.basketID.String(),
		UserID:     e.ownerID.String(),
		Currency:   e.currency.String(),
		Total:      e.total.String(),
		OccurredAt: e.occurredAt,
	})
}
