// Package basketrepo persists baskets and their lines.
//
// At most one Open basket per owner is enforced by a partial unique index, and
// a product has at most one line per basket. Lines of a product removed from
// the catalogue keep their price snapshot with a NULL product.
package basketrepo

import (
	"time"

	"checkout/internal/adapters/out/postgres/productrepo"
	"checkout/internal/core/domain/model/basket"
	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BasketDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_baskets_owner;uniqueIndex:idx_baskets_open_owner,where:status = 'Open'"`
	Status    string     `gorm:"size:16;not null"`
	Created   time.Time  `gorm:"not null"`
	Submitted *time.Time
	Lines     []LineDTO `gorm:"foreignKey:BasketID;constraint:OnDelete:CASCADE"`
}

func (BasketDTO) TableName() string {
	return "baskets"
}

type LineDTO struct {
	ID        uuid.UUID               `gorm:"type:uuid;primaryKey"`
	BasketID  uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_basket_lines_product,priority:1"`
	ProductID *uuid.UUID              `gorm:"type:uuid;uniqueIndex:idx_basket_lines_product,priority:2"`
	Product   *productrepo.ProductDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
	Quantity  int                     `gorm:"type:integer;not null;check:chk_basket_lines_quantity,quantity >= 0"`
	Price     decimal.Decimal         `gorm:"type:numeric(12,2);not null"`
	Currency  string                  `gorm:"size:12;not null"`
	Created   time.Time               `gorm:"not null"`
}

func (LineDTO) TableName() string {
	return "basket_lines"
}

// fromDomain maps the basket row only. Lines are written by MergeLine and DeleteLines.
func fromDomain(b *basket.Basket) BasketDTO {
	return BasketDTO{
		ID:        b.ID().Bytes(),
		OwnerID:   b.OwnerID().Bytes(),
		Status:    b.Status().String(),
		Created:   b.Created(),
		Submitted: b.Submitted(),
	}
}

func toDomain(dto BasketDTO) (*basket.Basket, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	status, err := basket.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]*basket.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return basket.RestoreBasket(id, ownerID, status, dto.Created, dto.Submitted, lines)
}

func lineToDomain(dto LineDTO) (*basket.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var productID *kernel.UUID
	if dto.ProductID != nil {
		pID, productErr := kernel.UUIDFromBytes((*dto.ProductID)[:])
		if productErr != nil {
			return nil, productErr
		}
		productID = &pID
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}

	return basket.RestoreLine(id, productID, dto.Quantity, price, currency, dto.Created)
}
