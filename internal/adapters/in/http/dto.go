package http

import (
	"time"

	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/order"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Rejection is the body of every 4xx and 5xx response.
type Rejection struct {
	Reason string `json:"reason"`
}

type AddToCartRequest struct {
	Product  openapi_types.UUID `json:"product"`
	Quantity *int               `json:"quantity,omitempty"`
}

type CreateOrderRequest struct {
	Basket openapi_types.UUID `json:"basket"`
	Total  *string            `json:"total,omitempty"`
}

type Line struct {
	ID       openapi_types.UUID  `json:"id"`
	Product  *openapi_types.UUID `json:"product"`
	Quantity int                 `json:"quantity"`
	Currency string              `json:"currency"`
	Price    string              `json:"price"`
	Basket   openapi_types.UUID  `json:"basket"`
	Created  time.Time           `json:"created"`
}

type Basket struct {
	ID       openapi_types.UUID `json:"id"`
	Owner    openapi_types.UUID `json:"owner"`
	Status   string             `json:"status"`
	Lines    []Line             `json:"lines"`
	Total    string             `json:"total"`
	Currency string             `json:"currency"`
}

type Order struct {
	ID       openapi_types.UUID  `json:"id"`
	Basket   *openapi_types.UUID `json:"basket"`
	User     openapi_types.UUID  `json:"user"`
	Currency string              `json:"currency"`
	Total    string              `json:"total"`
	Status   string              `json:"status"`
	Created  time.Time           `json:"created"`
}

func basketFromQuery(resp queries.GetBasketQueryResponse) Basket {
	b := Basket{
		ID:       resp.ID.Bytes(),
		Owner:    resp.OwnerID.Bytes(),
		Status:   resp.Status,
		Lines:    make([]Line, 0, len(resp.Lines)),
		Total:    resp.Total.String(),
		Currency: resp.Currency.String(),
	}
	for _, l := range resp.Lines {
		line := Line{
			ID:       l.ID.Bytes(),
			Quantity: l.Quantity,
			Currency: l.Currency.String(),
			Price:    l.Price.String(),
			Basket:   l.BasketID.Bytes(),
			Created:  l.Created,
		}
		if l.ProductID != nil {
			product := openapi_types.UUID(l.ProductID.Bytes())
			line.Product = &product
		}
		b.Lines = append(b.Lines, line)
	}
	return b
}

func orderFromQuery(resp queries.OrderResponse) Order {
	o := Order{
		ID:       resp.ID.Bytes(),
		User:     resp.UserID.Bytes(),
		Currency: resp.Currency,
		Total:    resp.Total.String(),
		Status:   resp.Status,
		Created:  resp.Created,
	}
	if resp.BasketID != nil {
		basketID := openapi_types.UUID(resp.BasketID.Bytes())
		o.Basket = &basketID
	}
	return o
}

func orderFromDomain(placed *order.Order) Order {
	o := Order{
		ID:       placed.ID().Bytes(),
		User:     placed.OwnerID().Bytes(),
		Currency: placed.Currency().String(),
		Total:    placed.Total().String(),
		Status:   placed.Status().String(),
		Created:  placed.Created(),
	}
	if id := placed.BasketID(); id != nil {
		basketID := openapi_types.UUID(id.Bytes())
		o.Basket = &basketID
	}
	return o
}
