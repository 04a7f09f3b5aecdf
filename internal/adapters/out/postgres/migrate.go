package postgres

import (
	"checkout/internal/adapters/out/postgres/basketrepo"
	"checkout/internal/adapters/out/postgres/orderrepo"
	"checkout/internal/adapters/out/postgres/outboxrepo"
	"checkout/internal/adapters/out/postgres/productrepo"

	"gorm.io/gorm"
)

// Models lists every table of the service in dependency order.
func Models() []any {
	return []any{
		&productrepo.ProductDTO{},
		&basketrepo.BasketDTO{},
		&basketrepo.LineDTO{},
		&orderrepo.OrderDTO{},
		&outboxrepo.MessageDTO{},
	}
}

// Migrate creates or updates the schema, including the partial unique index
// that allows one Open basket per owner.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
