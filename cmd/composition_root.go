package cmd

import (
	httpadapter "checkout/internal/adapters/in/http"
	"checkout/internal/adapters/out/postgres"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
}

// NewCompositionRoot wires use cases over gormDB. publisher may be nil when no
// broker is configured; the outbox relay is then unavailable.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, publisher ports.EventPublisher) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
	}
}

func (c *CompositionRoot) CreateOpenBasketCommandHandler() commands.OpenBasketCommandHandler {
	return commands.NewOpenBasketCommandHandler(c.basketUoWFactory())
}

func (c *CompositionRoot) CreateAddProductCommandHandler() commands.AddProductCommandHandler {
	return commands.NewAddProductCommandHandler(c.basketUoWFactory())
}

func (c *CompositionRoot) CreateFlushBasketCommandHandler() commands.FlushBasketCommandHandler {
	return commands.NewFlushBasketCommandHandler(c.basketUoWFactory())
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, services.NewCheckoutPolicy())
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetBasketQueryHandler() queries.GetBasketQueryHandler {
	return queries.NewGetBasketQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer(metrics *httpadapter.Metrics) *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateOpenBasketCommandHandler(),
		c.CreateAddProductCommandHandler(),
		c.CreateFlushBasketCommandHandler(),
		c.CreateCheckoutCommandHandler(),
		c.CreateGetBasketQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		metrics,
	)
}

func (c *CompositionRoot) basketUoWFactory() commands.BasketUoWFactory {
	return FuncBasketUoWFactory(func() commands.BasketUoW {
		return c.uowFactory.Create()
	})
}

type FuncBasketUoWFactory func() commands.BasketUoW

func (f FuncBasketUoWFactory) Create() commands.BasketUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
