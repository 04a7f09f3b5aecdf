package queries

import (
	"database/sql"
	"time"

	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderResponse is the read model of an order shared by the order queries.
type OrderResponse struct {
	ID       kernel.UUID
	BasketID *kernel.UUID
	UserID   kernel.UUID
	Currency string
	Total    kernel.Money
	Status   string
	Created  time.Time
}

const orderColumns = `id, basket_id, user_id, currency, total, status, created`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (OrderResponse, error) {
	var (
		id       uuid.UUID
		basketID uuid.NullUUID
		userID   uuid.UUID
		currency string
		total    decimal.Decimal
		status   string
		created  time.Time
	)
	if err := row.Scan(&id, &basketID, &userID, &currency, &total, &status, &created); err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	owner, err := kernel.UUIDFromBytes(userID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	amount, err := kernel.NewMoney(total)
	if err != nil {
		return OrderResponse{}, err
	}

	resp := OrderResponse{
		ID:       orderID,
		UserID:   owner,
		Currency: currency,
		Total:    amount,
		Status:   status,
		Created:  created,
	}
	if basketID.Valid {
		bID, bErr := kernel.UUIDFromBytes(basketID.UUID[:])
		if bErr != nil {
			return OrderResponse{}, bErr
		}
		resp.BasketID = &bID
	}
	return resp, nil
}

var _ rowScanner = (*sql.Row)(nil)
