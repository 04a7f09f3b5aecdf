package http

import (
	"context"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/basket"
	"checkout/internal/core/domain/model/order"
)

// Use case handlers the server depends on. The command and query handlers of
// the application layer implement them.
type (
	OpenBasketHandler interface {
		Handle(ctx context.Context, cmd commands.OpenBasketCommand) (*basket.Basket, error)
	}

	AddProductHandler interface {
		Handle(ctx context.Context, cmd commands.AddProductCommand) (commands.AddProductResult, error)
	}

	FlushBasketHandler interface {
		Handle(ctx context.Context, cmd commands.FlushBasketCommand) (*basket.Basket, error)
	}

	CheckoutHandler interface {
		Handle(ctx context.Context, cmd commands.CheckoutCommand) (*order.Order, error)
	}

	GetBasketHandler interface {
		Handle(ctx context.Context, query queries.GetBasketQuery) (queries.GetBasketQueryResponse, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderResponse, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error)
	}
)
