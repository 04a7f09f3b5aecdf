package http

import (
	"net/http"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const defaultQuantity = 1

var _ ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	openBasketHandler  OpenBasketHandler
	addProductHandler  AddProductHandler
	flushBasketHandler FlushBasketHandler
	checkoutHandler    CheckoutHandler

	// Query handlers
	getBasketHandler  GetBasketHandler
	listOrdersHandler ListOrdersHandler
	getOrderHandler   GetOrderHandler

	metrics *Metrics
}

// NewServer creates a new HTTP server with the required command and query handlers.
// metrics may be nil.
func NewServer(
	openBasketHandler OpenBasketHandler,
	addProductHandler AddProductHandler,
	flushBasketHandler FlushBasketHandler,
	checkoutHandler CheckoutHandler,
	getBasketHandler GetBasketHandler,
	listOrdersHandler ListOrdersHandler,
	getOrderHandler GetOrderHandler,
	metrics *Metrics,
) *Server {
	return &Server{
		openBasketHandler:  openBasketHandler,
		addProductHandler:  addProductHandler,
		flushBasketHandler: flushBasketHandler,
		checkoutHandler:    checkoutHandler,
		getBasketHandler:   getBasketHandler,
		listOrdersHandler:  listOrdersHandler,
		getOrderHandler:    getOrderHandler,
		metrics:            metrics,
	}
}

// GetCart handles GET /api/v1/cart - returns the caller's open basket, creating it if needed.
func (s *Server) GetCart(ctx echo.Context) error {
	actor, err := actorOf(ctx)
	if err != nil {
		return err
	}

	b, err := s.openBasketHandler.Handle(ctx.Request().Context(), commands.NewOpenBasketCommand(actor))
	if err != nil {
		return err
	}

	return s.renderBasket(ctx, b.ID())
}

// AddToCart handles POST /api/v1/cart - merges a quantity of a product into the open basket.
func (s *Server) AddToCart(ctx echo.Context) error {
	actor, err := actorOf(ctx)
	if err != nil {
		return err
	}

	var body AddToCartRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	productID, err := kernel.UUIDFromBytes(body.Product[:])
	if err != nil {
		return err
	}
	quantity := defaultQuantity
	if body.Quantity != nil {
		quantity = *body.Quantity
	}

	cmd, err := commands.NewAddProductCommand(actor, productID, quantity)
	if err != nil {
		return err
	}

	result, err := s.addProductHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.renderBasket(ctx, result.BasketID)
}

// FlushCart handles DELETE /api/v1/cart - removes every line of the open basket.
func (s *Server) FlushCart(ctx echo.Context) error {
	actor, err := actorOf(ctx)
	if err != nil {
		return err
	}

	b, err := s.flushBasketHandler.Handle(ctx.Request().Context(), commands.NewFlushBasketCommand(actor))
	if err != nil {
		return err
	}

	return s.renderBasket(ctx, b.ID())
}

// ListOrders handles GET /api/v1/orders - the caller's orders, oldest first.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, err := actorOf(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(actor.UserID())
	if err != nil {
		return err
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = orderFromQuery(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders - checks out a basket.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorOf(ctx)
	if err != nil {
		return err
	}

	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	basketID, err := kernel.UUIDFromBytes(body.Basket[:])
	if err != nil {
		return err
	}

	var claimedTotal *kernel.Money
	if body.Total != nil {
		total, err := kernel.MoneyFromString(*body.Total)
		if err != nil {
			return err
		}
		claimedTotal = &total
	}

	cmd, err := commands.NewCheckoutCommand(basketID, claimedTotal, actor)
	if err != nil {
		return err
	}

	placed, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	s.metrics.ObserveCheckout(err)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(placed))
}

// GetOrder handles GET /api/v1/orders/{id} - one of the caller's orders.
func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorOf(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(orderID, actor.UserID())
	if err != nil {
		return err
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, orderFromQuery(o))
}

func (s *Server) renderBasket(ctx echo.Context, basketID kernel.UUID) error {
	query, err := queries.NewGetBasketQuery(basketID)
	if err != nil {
		return err
	}

	b, err := s.getBasketHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, basketFromQuery(b))
}
