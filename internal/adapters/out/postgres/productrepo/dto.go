// Package productrepo persists the local read model of the product catalogue.
package productrepo

import (
	"checkout/internal/core/domain/model/catalogue"
	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID       uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Title    string           `gorm:"not null"`
	Price    *decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency string           `gorm:"size:12;not null"`
	IsPublic bool             `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(product *catalogue.Product) ProductDTO {
	dto := ProductDTO{
		ID:       product.ID().Bytes(),
		Title:    product.Title(),
		Currency: product.Currency().String(),
		IsPublic: product.IsPublic(),
	}
	if price, ok := product.Price(); ok {
		amount := price.Decimal()
		dto.Price = &amount
	}
	return dto
}

func toDomain(dto ProductDTO) (*catalogue.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var price *kernel.Money
	if dto.Price != nil {
		amount, moneyErr := kernel.NewMoney(*dto.Price)
		if moneyErr != nil {
			return nil, moneyErr
		}
		price = &amount
	}

	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}

	return catalogue.RestoreProduct(id, dto.Title, price, currency, dto.IsPublic)
}
