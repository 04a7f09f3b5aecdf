package basket

import (
	"errors"
	"fmt"
	"math"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

// MaxQuantity is the largest quantity a line, or a single change to it, may carry.
const MaxQuantity = math.MaxInt32

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine")

// Line is a quantity of one product in a basket, priced when the line was created.
type Line struct {
	id        kernel.UUID
	productID *kernel.UUID
	quantity  int
	price     kernel.Money
	currency  kernel.Currency
	created   time.Time

	guard guard.ConstructorGuard
}

// NewLine creates a line for productID with a positive quantity.
func NewLine(
	id kernel.UUID,
	productID kernel.UUID,
	quantity int,
	price kernel.Money,
	currency kernel.Currency,
	created time.Time,
) (*Line, error) {
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return RestoreLine(id, &productID, quantity, price, currency, created)
}

// RestoreLine rebuilds a line from storage. productID is nil when the product
// was removed from the catalogue after the line was created.
func RestoreLine(
	id kernel.UUID,
	productID *kernel.UUID,
	quantity int,
	price kernel.Money,
	currency kernel.Currency,
	created time.Time,
) (*Line, error) {
	line := &Line{
		price:   price,
		created: created,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setID(id),
		line.setProductID(productID),
		line.setQuantity(quantity),
		line.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	return line, nil
}

func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l *Line) ID() kernel.UUID {
	return l.id
}

// ProductID returns the product of the line; ok is false when the product is gone.
func (l *Line) ProductID() (id kernel.UUID, ok bool) {
	if l.productID == nil {
		return kernel.UUID{}, false
	}
	return *l.productID, true
}

func (l *Line) HasProduct() bool {
	return l.productID != nil
}

func (l *Line) Quantity() int {
	return l.quantity
}

func (l *Line) Price() kernel.Money {
	return l.price
}

func (l *Line) Currency() kernel.Currency {
	return l.currency
}

func (l *Line) Created() time.Time {
	return l.created
}

// Total is price times quantity.
func (l *Line) Total() kernel.Money {
	return l.price.Times(l.quantity)
}

func (l *Line) isFor(productID kernel.UUID) bool {
	return l.productID != nil && l.productID.IsEqual(productID)
}

// MergedQuantity is max(0, existing+delta). A delta outside ±MaxQuantity is
// invalid input; a sum above MaxQuantity is refused rather than wrapped.
func MergedQuantity(existing, delta int) (int, error) {
	if delta < -MaxQuantity || delta > MaxQuantity {
		return 0, errs.NewValueIsOutOfRangeError("quantity", delta, -MaxQuantity, MaxQuantity)
	}
	merged := existing + delta
	if merged > MaxQuantity {
		return 0, NewQuantityLimitError()
	}
	return max(0, merged), nil
}

// before orders lines by creation time, then identity.
func (l *Line) before(other *Line) bool {
	if !l.created.Equal(other.created) {
		return l.created.Before(other.created)
	}
	return l.id.String() < other.id.String()
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setProductID(productID *kernel.UUID) error {
	if productID != nil {
		if err := productID.Validate(); err != nil {
			return err
		}
	}
	l.productID = productID
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", quantity))
	}
	if quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, MaxQuantity)
	}
	l.quantity = quantity
	return nil
}

func (l *Line) setCurrency(currency kernel.Currency) error {
	if currency.IsZero() {
		return errs.NewValueIsRequiredError("currency")
	}
	l.currency = currency
	return nil
}
