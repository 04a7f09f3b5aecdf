package postgres_test

import (
	"context"
	"sync"
	"testing"

	postgres_adapter "checkout/internal/adapters/out/postgres"
	"checkout/internal/adapters/out/postgres/orderrepo"
	"checkout/internal/adapters/out/postgres/outboxrepo"
	"checkout/internal/adapters/out/postgres/pgtest"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/basket"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the GORM-based
// Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	pgtest.Suite
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	suite.Suite.SetupSuite()
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WritesOrderAndItsEventTogether() {
	ctx := context.Background()
	b := suite.SeedOpenBasket(kernel.NewUUID())
	o := suite.newOrder(b)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.assertCount(&orderrepo.OrderDTO{}, 1)
	suite.assertCount(&outboxrepo.MessageDTO{}, 1)
	suite.Empty(o.DomainEvents())

	var message outboxrepo.MessageDTO
	suite.Require().NoError(suite.DB.First(&message).Error)
	suite.Equal(order.OrderPlacedEventName, message.Name)
	suite.Equal(o.ID().Bytes(), message.AggregateID)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderAndEvent() {
	ctx := context.Background()
	b := suite.SeedOpenBasket(kernel.NewUUID())
	o := suite.newOrder(b)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertCount(&orderrepo.OrderDTO{}, 0)
	suite.assertCount(&outboxrepo.MessageDTO{}, 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_BasketOnly_WritesNoEvents() {
	ctx := context.Background()
	b := suite.SeedOpenBasket(kernel.NewUUID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(b.Freeze())
	suite.Require().NoError(uow.BasketRepository().Update(ctx, b))
	suite.Require().NoError(uow.Commit(ctx))

	stored, err := suite.factory.Create().BasketRepository().Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(basket.Frozen, stored.Status())
	suite.assertCount(&outboxrepo.MessageDTO{}, 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_Fails() {
	err := suite.factory.Create().Commit(context.Background())
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackAfterCommit_IsHarmless() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_Twice_KeepsOneTransaction() {
	ctx := context.Background()
	b := suite.SeedOpenBasket(kernel.NewUUID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder(b)))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertCount(&orderrepo.OrderDTO{}, 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCheckout_EndToEnd() {
	ctx := context.Background()
	owner := kernel.NewUUID()
	actor, err := kernel.AuthenticatedActor(owner)
	suite.Require().NoError(err)
	product := suite.SeedProduct("Pen", "2.50")

	add, err := commands.NewAddProductCommand(actor, product.ID(), 4)
	suite.Require().NoError(err)
	added, err := commands.NewAddProductCommandHandler(basketUoWFactory{suite.DB}).Handle(ctx, add)
	suite.Require().NoError(err)

	claimed := kernel.MustMoney("10.00")
	checkout, err := commands.NewCheckoutCommand(added.BasketID, &claimed, actor)
	suite.Require().NoError(err)
	placed, err := suite.checkoutHandler().Handle(ctx, checkout)
	suite.Require().NoError(err)

	suite.Equal("10.00", placed.Total().String())
	suite.Equal(owner, placed.OwnerID())

	stored, err := suite.factory.Create().BasketRepository().Get(ctx, added.BasketID)
	suite.Require().NoError(err)
	suite.Equal(basket.Submitted, stored.Status())
	suite.NotNil(stored.Submitted())
	suite.assertCount(&outboxrepo.MessageDTO{}, 1)

	// the submitted basket no longer accepts products and a new one is opened instead
	again, err := commands.NewAddProductCommandHandler(basketUoWFactory{suite.DB}).Handle(ctx, add)
	suite.Require().NoError(err)
	suite.NotEqual(added.BasketID, again.BasketID)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCheckout_ConcurrentDoubleCheckout_OneOrder() {
	owner := kernel.NewUUID()
	actor, err := kernel.AuthenticatedActor(owner)
	suite.Require().NoError(err)
	b := suite.SeedOpenBasket(owner)
	suite.SeedLine(b.ID(), suite.SeedProduct("Pen", "2.50"), 2)

	const attempts = 5
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, cmdErr := commands.NewCheckoutCommand(b.ID(), nil, actor)
			if cmdErr != nil {
				results[i] = cmdErr
				return
			}
			_, results[i] = suite.checkoutHandler().Handle(context.Background(), cmd)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		suite.ErrorIs(err, services.ErrBasketNotFound)
	}
	suite.Equal(1, succeeded)
	suite.assertCount(&orderrepo.OrderDTO{}, 1)
	suite.assertCount(&outboxrepo.MessageDTO{}, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) checkoutHandler() commands.CheckoutCommandHandler {
	return commands.NewCheckoutCommandHandler(checkoutUoWFactory{suite.DB}, services.NewCheckoutPolicy())
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(b *basket.Basket) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), b.ID(), b.OwnerID(), kernel.DefaultCurrency, kernel.MustMoney("3.00"))
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) assertCount(model any, expected int64) {
	var count int64
	suite.Require().NoError(suite.DB.Model(model).Count(&count).Error)
	suite.Equal(expected, count)
}

type basketUoWFactory struct{ db *gorm.DB }

func (f basketUoWFactory) Create() commands.BasketUoW {
	return postgres_adapter.NewGormUnitOfWork(f.db)
}

type checkoutUoWFactory struct{ db *gorm.DB }

func (f checkoutUoWFactory) Create() commands.CheckoutUoW {
	return postgres_adapter.NewGormUnitOfWork(f.db)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
