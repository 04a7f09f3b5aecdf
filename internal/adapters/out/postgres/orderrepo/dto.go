// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order keeps a nullable reference to the basket it was placed from, unique
// across orders, so a basket can be ordered at most once.
package orderrepo

import (
	"time"

	"checkout/internal/adapters/out/postgres/basketrepo"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BasketConstraint is the unique index on orders.basket_id.
const BasketConstraint = "idx_orders_basket"

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID       uuid.UUID             `gorm:"type:uuid;primaryKey"`
	BasketID *uuid.UUID            `gorm:"type:uuid;uniqueIndex:idx_orders_basket"`
	Basket   *basketrepo.BasketDTO `gorm:"foreignKey:BasketID;constraint:OnDelete:SET NULL"`
	UserID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	Currency string                `gorm:"size:12;not null"`
	Total    decimal.Decimal       `gorm:"type:numeric(12,2);not null"`
	Status   string                `gorm:"size:16;not null"`
	Created  time.Time             `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var basketID *uuid.UUID
	if id := o.BasketID(); id != nil {
		raw := id.Bytes()
		basketID = &raw
	}

	return OrderDTO{
		ID:       o.ID().Bytes(),
		BasketID: basketID,
		UserID:   o.OwnerID().Bytes(),
		Currency: o.Currency().String(),
		Total:    o.Total().Decimal(),
		Status:   o.Status().String(),
		Created:  o.Created(),
	}
}

// toDomain reconstructs the aggregate with RestoreOrder, so no OrderPlaced event is raised again.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var basketID *kernel.UUID
	if dto.BasketID != nil {
		bID, basketErr := kernel.UUIDFromBytes((*dto.BasketID)[:])
		if basketErr != nil {
			return nil, basketErr
		}
		basketID = &bID
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, basketID, userID, currency, total, status, dto.Created)
}
