package basketrepo

import (
	"context"
	"errors"
	"time"

	"checkout/internal/adapters/out/postgres/pgerr"
	"checkout/internal/core/domain/model/basket"
	"checkout/internal/core/domain/model/catalogue"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBasketRepository implements BasketRepository using GORM.
type GormBasketRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormBasketRepository(db *gorm.DB, tracker aggregateTracker) *GormBasketRepository {
	return &GormBasketRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddOpen inserts b unless the owner already has an Open basket. Either way the
// owner's Open basket is returned, so concurrent callers converge on one row.
func (r *GormBasketRepository) AddOpen(ctx context.Context, b *basket.Basket) (*basket.Basket, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if b.Status() != basket.Open {
		return nil, errs.NewValueIsInvalidError("status")
	}

	dto := fromDomain(b)
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "owner_id"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "status = 'Open'"}}},
			DoNothing:   true,
		}).
		Create(&dto)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 1 {
		r.tracker.TrackAggregate(b.ID(), b)
		return b, nil
	}

	return r.GetOpenByOwner(ctx, b.OwnerID())
}

// Update stores the status and submission time of b.
func (r *GormBasketRepository) Update(ctx context.Context, b *basket.Basket) error {
	if err := b.Validate(); err != nil {
		return err
	}

	dto := fromDomain(b)
	result := r.db.WithContext(ctx).
		Model(&BasketDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":    dto.Status,
			"submitted": dto.Submitted,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("basket", b.ID().String())
	}

	r.tracker.TrackAggregate(b.ID(), b)
	return nil
}

func (r *GormBasketRepository) Get(ctx context.Context, id kernel.UUID) (*basket.Basket, error) {
	return r.first(ctx, false, id, "id = ?", id.Bytes())
}

// GetForUpdate locks the basket row until the end of the transaction, so
// concurrent checkouts and line writes of the same basket are serialised.
func (r *GormBasketRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*basket.Basket, error) {
	return r.first(ctx, true, id, "id = ?", id.Bytes())
}

func (r *GormBasketRepository) GetOpenByOwner(ctx context.Context, ownerID kernel.UUID) (*basket.Basket, error) {
	return r.first(ctx, false, ownerID, "owner_id = ? AND status = ?", ownerID.Bytes(), basket.Open.String())
}

func (r *GormBasketRepository) first(
	ctx context.Context,
	forUpdate bool,
	id kernel.UUID,
	query string,
	args ...any,
) (*basket.Basket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	tx := db
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto BasketDTO
	if err := tx.Where(query, args...).Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("basket", id.String())
		}
		return nil, err
	}

	if err := db.Where("basket_id = ?", dto.ID).Order("created, id").Find(&dto.Lines).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// mergedLine is the row returned by the upsert in MergeLine.
type mergedLine struct {
	ID       uuid.UUID
	Quantity int
	Price    decimal.Decimal
	Currency string
	Created  time.Time
	Inserted bool
}

// MergeLine applies delta to the product's line in a single upsert, so
// concurrent additions of the same product never lose an update. The basket
// row is locked first, which serialises writers of the same basket, and the
// write is refused unless its stored status is editable and the product is
// priced in the currency of the basket's first line. A quantity that would
// overflow the column is refused with the basket quantity limit.
func (r *GormBasketRepository) MergeLine(
	ctx context.Context,
	basketID kernel.UUID,
	product *catalogue.Product,
	delta int,
) (*basket.Line, bool, error) {
	if err := product.Validate(); err != nil {
		return nil, false, err
	}
	price, ok := product.Price()
	if !ok {
		return nil, false, errs.NewValueIsRequiredError("price")
	}

	db := r.db.WithContext(ctx)
	status, err := r.lockStatus(db, basketID, "NO KEY UPDATE")
	if err != nil {
		return nil, false, err
	}
	if err = status.CheckEdit(); err != nil {
		return nil, false, err
	}
	if err = r.checkCurrency(db, basketID, product.Currency()); err != nil {
		return nil, false, err
	}

	var merged mergedLine
	err = db.Raw(`
		INSERT INTO basket_lines (id, basket_id, product_id, quantity, price, currency, created)
		VALUES (@id, @basket, @product, GREATEST(0, CAST(@delta AS integer)), @price, @currency, @created)
		ON CONFLICT (basket_id, product_id) DO UPDATE
			SET quantity = GREATEST(0, basket_lines.quantity + CAST(@delta AS integer))
		RETURNING id, quantity, price, currency, created, (xmax = 0) AS inserted
	`, map[string]any{
		"id":       kernel.NewUUID().Bytes(),
		"basket":   basketID.Bytes(),
		"product":  product.ID().Bytes(),
		"delta":    delta,
		"price":    price.Decimal(),
		"currency": product.Currency().String(),
		"created":  time.Now().UTC(),
	}).Scan(&merged).Error
	if err != nil {
		if pgerr.IsNumericOutOfRange(err) {
			return nil, false, basket.NewQuantityLimitError()
		}
		return nil, false, err
	}

	if merged.Quantity == 0 {
		if err = db.Delete(&LineDTO{}, "id = ?", merged.ID).Error; err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	productID := product.ID().Bytes()
	line, err := lineToDomain(LineDTO{
		ID:        merged.ID,
		ProductID: &productID,
		Quantity:  merged.Quantity,
		Price:     merged.Price,
		Currency:  merged.Currency,
		Created:   merged.Created,
	})
	if err != nil {
		return nil, false, err
	}

	return line, merged.Inserted, nil
}

// DeleteLines removes every line of the basket under the same status guard as MergeLine.
func (r *GormBasketRepository) DeleteLines(ctx context.Context, basketID kernel.UUID) error {
	db := r.db.WithContext(ctx)
	status, err := r.lockStatus(db, basketID, "SHARE")
	if err != nil {
		return err
	}
	if err = status.CheckFlush(); err != nil {
		return err
	}

	return db.Where("basket_id = ?", basketID.Bytes()).Delete(&LineDTO{}).Error
}

// checkCurrency compares currency with the first line of the basket. It must
// run under the basket row lock taken by MergeLine.
func (r *GormBasketRepository) checkCurrency(db *gorm.DB, basketID kernel.UUID, currency kernel.Currency) error {
	var first []string
	err := db.Model(&LineDTO{}).
		Where("basket_id = ?", basketID.Bytes()).
		Order("created, id").
		Limit(1).
		Pluck("currency", &first).Error
	if err != nil {
		return err
	}
	if len(first) == 0 || first[0] == currency.String() {
		return nil
	}

	current, err := kernel.NewCurrency(first[0])
	if err != nil {
		return err
	}
	return basket.NewCurrencyMismatchError(current, currency)
}

func (r *GormBasketRepository) lockStatus(db *gorm.DB, basketID kernel.UUID, strength string) (basket.Status, error) {
	if err := basketID.Validate(); err != nil {
		return basket.Unknown, err
	}

	var dto BasketDTO
	err := db.Clauses(clause.Locking{Strength: strength}).
		Select("status").
		Where("id = ?", basketID.Bytes()).
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return basket.Unknown, errs.NewObjectNotFoundError("basket", basketID.String())
		}
		return basket.Unknown, err
	}

	return basket.ParseStatus(dto.Status)
}
