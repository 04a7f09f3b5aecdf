// Package pgtest runs integration suites against a PostgreSQL container with
// the service schema migrated.
package pgtest

import (
	"context"
	"time"

	adapter "checkout/internal/adapters/out/postgres"
	"checkout/internal/core/domain/model/basket"
	"checkout/internal/core/domain/model/catalogue"
	"checkout/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Suite starts one container per suite and empties every table before each test.
type Suite struct {
	suite.Suite
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

func (s *Suite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.Container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.DB = db

	s.Require().NoError(adapter.Migrate(db))
}

func (s *Suite) SetupTest() {
	s.Require().NoError(s.DB.Exec("TRUNCATE TABLE outbox, orders, basket_lines, baskets, products").Error)
}

func (s *Suite) TearDownSuite() {
	if s.Container != nil {
		s.Require().NoError(s.Container.Terminate(context.Background()))
	}
}

// SeedProduct stores a public product. An empty price stores it unpriced.
func (s *Suite) SeedProduct(title string, price string) *catalogue.Product {
	return s.SeedProductIn(title, price, kernel.DefaultCurrency)
}

// SeedProductIn is SeedProduct for a product priced in currency.
func (s *Suite) SeedProductIn(title string, price string, currency kernel.Currency) *catalogue.Product {
	var amount *kernel.Money
	if price != "" {
		m := kernel.MustMoney(price)
		amount = &m
	}
	product, err := catalogue.NewProduct(kernel.NewUUID(), title, amount, currency)
	s.Require().NoError(err)

	s.Require().NoError(adapter.NewGormUnitOfWork(s.DB).ProductRepository().Save(context.Background(), product))
	return product
}

// SeedOpenBasket stores an empty Open basket for owner.
func (s *Suite) SeedOpenBasket(owner kernel.UUID) *basket.Basket {
	b, err := basket.NewBasket(kernel.NewUUID(), owner)
	s.Require().NoError(err)

	stored, err := adapter.NewGormUnitOfWork(s.DB).BasketRepository().AddOpen(context.Background(), b)
	s.Require().NoError(err)
	return stored
}

// SeedLine merges quantity units of product into the stored basket.
func (s *Suite) SeedLine(basketID kernel.UUID, product *catalogue.Product, quantity int) *basket.Line {
	line, _, err := adapter.NewGormUnitOfWork(s.DB).BasketRepository().MergeLine(context.Background(), basketID, product, quantity)
	s.Require().NoError(err)
	return line
}

// MockAggregateTracker records the aggregates repositories report as modified.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}
