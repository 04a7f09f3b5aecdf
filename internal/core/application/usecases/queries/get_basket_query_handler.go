package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"checkout/internal/core/domain/model/basket"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetBasketQueryHandler struct {
	db *gorm.DB
}

func NewGetBasketQueryHandler(db *gorm.DB) GetBasketQueryHandler {
	return GetBasketQueryHandler{db: db}
}

// Handle reads the basket and its lines in creation order. Totals and currency
// are derived with the basket's own rules.
func (h GetBasketQueryHandler) Handle(ctx context.Context, query GetBasketQuery) (GetBasketQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBasketQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var (
		ownerRaw  uuid.UUID
		statusRaw string
		created   time.Time
		submitted sql.NullTime
	)
	row := db.Raw(`
		SELECT owner_id, status, created, submitted
		FROM baskets
		WHERE id = ?
	`, query.BasketID().Bytes()).Row()
	if err := row.Scan(&ownerRaw, &statusRaw, &created, &submitted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetBasketQueryResponse{}, errs.NewObjectNotFoundError("basket", query.BasketID())
		}
		return GetBasketQueryResponse{}, err
	}

	lines, err := h.lines(db, query.BasketID())
	if err != nil {
		return GetBasketQueryResponse{}, err
	}

	ownerID, err := kernel.UUIDFromBytes(ownerRaw[:])
	if err != nil {
		return GetBasketQueryResponse{}, err
	}
	status, err := basket.ParseStatus(statusRaw)
	if err != nil {
		return GetBasketQueryResponse{}, err
	}
	var submittedAt *time.Time
	if submitted.Valid {
		submittedAt = &submitted.Time
	}

	b, err := basket.RestoreBasket(query.BasketID(), ownerID, status, created, submittedAt, lines)
	if err != nil {
		return GetBasketQueryResponse{}, err
	}

	resp := GetBasketQueryResponse{
		ID:       b.ID(),
		OwnerID:  b.OwnerID(),
		Status:   b.Status().String(),
		Lines:    make([]BasketLineResponse, 0, b.NumLines()),
		Total:    b.Total(),
		Currency: b.Currency(),
	}
	for _, line := range b.Lines() {
		lineResp := BasketLineResponse{
			ID:       line.ID(),
			BasketID: b.ID(),
			Quantity: line.Quantity(),
			Price:    line.Price(),
			Currency: line.Currency(),
			Created:  line.Created(),
		}
		if productID, ok := line.ProductID(); ok {
			lineResp.ProductID = &productID
		}
		resp.Lines = append(resp.Lines, lineResp)
	}

	return resp, nil
}

func (h GetBasketQueryHandler) lines(db *gorm.DB, basketID kernel.UUID) ([]*basket.Line, error) {
	rows, err := db.Raw(`
		SELECT id, product_id, quantity, price, currency, created
		FROM basket_lines
		WHERE basket_id = ?
		ORDER BY created, id
	`, basketID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]*basket.Line, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			productID uuid.NullUUID
			quantity  int
			price     decimal.Decimal
			currency  string
			created   time.Time
		)
		if err = rows.Scan(&id, &productID, &quantity, &price, &currency, &created); err != nil {
			return nil, err
		}

		line, lineErr := restoreLine(id, productID, quantity, price, currency, created)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func restoreLine(
	id uuid.UUID,
	productID uuid.NullUUID,
	quantity int,
	price decimal.Decimal,
	currencyCode string,
	created time.Time,
) (*basket.Line, error) {
	lineID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	var product *kernel.UUID
	if productID.Valid {
		pID, pErr := kernel.UUIDFromBytes(productID.UUID[:])
		if pErr != nil {
			return nil, pErr
		}
		product = &pID
	}
	money, err := kernel.NewMoney(price)
	if err != nil {
		return nil, err
	}
	currency, err := kernel.NewCurrency(currencyCode)
	if err != nil {
		return nil, err
	}
	return basket.RestoreLine(lineID, product, quantity, money, currency, created)
}
