package basket

import (
	"errors"
	"slices"
	"time"

	"checkout/internal/core/domain/model/catalogue"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrBasketIsNotConstructed = errors.New("Basket must be created via NewBasket or RestoreBasket")

// Basket is the aggregate root of an owner's pending purchase.
//
// Counts and totals are always derived from the lines, never stored.
type Basket struct {
	id        kernel.UUID
	ownerID   kernel.UUID
	status    Status
	created   time.Time
	submitted *time.Time
	lines     []*Line

	guard guard.ConstructorGuard
}

// NewBasket creates an empty Open basket for ownerID.
func NewBasket(id kernel.UUID, ownerID kernel.UUID) (*Basket, error) {
	return RestoreBasket(id, ownerID, Open, time.Now().UTC(), nil, nil)
}

// RestoreBasket rebuilds a basket and its lines from storage.
func RestoreBasket(
	id kernel.UUID,
	ownerID kernel.UUID,
	status Status,
	created time.Time,
	submitted *time.Time,
	lines []*Line,
) (*Basket, error) {
	basket := &Basket{
		created:   created,
		submitted: submitted,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		basket.setID(id),
		basket.setOwnerID(ownerID),
		basket.setStatus(status),
		basket.setLines(lines),
	); err != nil {
		return nil, err
	}

	return basket, nil
}

func (b *Basket) Validate() error {
	if b == nil {
		return ErrBasketIsNotConstructed
	}
	return b.guard.Validate(ErrBasketIsNotConstructed)
}

func (b *Basket) IsEqual(other *Basket) bool {
	return other != nil && b.id.IsEqual(other.id)
}

func (b *Basket) ID() kernel.UUID {
	return b.id
}

func (b *Basket) OwnerID() kernel.UUID {
	return b.ownerID
}

func (b *Basket) Status() Status {
	return b.status
}

func (b *Basket) Created() time.Time {
	return b.created
}

// Submitted is nil until the basket has been checked out.
func (b *Basket) Submitted() *time.Time {
	return b.submitted
}

// Lines returns the lines in creation order.
func (b *Basket) Lines() []*Line {
	return slices.Clone(b.lines)
}

// AddProduct merges quantity units of product into the basket.
//
// A product without a line gets a new one priced from the catalogue. An existing
// line has its quantity set to max(0, existing+quantity) and is removed once it
// reaches zero, in which case the returned line is nil. A call that would create
// a line with no items is a no-op. Growing a line past MaxQuantity, or the basket
// total to MaxMoney, is refused.
func (b *Basket) AddProduct(product *catalogue.Product, quantity int) (line *Line, created bool, err error) {
	if err := product.Validate(); err != nil {
		return nil, false, err
	}
	if err := b.status.CheckEdit(); err != nil {
		return nil, false, err
	}
	price, ok := product.Price()
	if !ok || !product.HasPrice() {
		return nil, false, errs.NewNotAcceptableErrorf(ErrPricingUnavailable, "No price found for product %s", product)
	}

	existing := b.findLine(product.ID())
	current := 0
	if existing != nil {
		current = existing.Quantity()
		price = existing.Price()
	}
	merged, err := MergedQuantity(current, quantity)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		if merged == 0 {
			return nil, false, nil
		}
		if err := b.checkCurrency(product.Currency()); err != nil {
			return nil, false, err
		}
	}
	if merged > current {
		if err := b.checkTotal(product.ID(), price.Times(merged)); err != nil {
			return nil, false, err
		}
	}

	if existing != nil {
		existing.quantity = merged
		if merged == 0 {
			b.removeLine(existing)
			return nil, false, nil
		}
		return existing, false, nil
	}

	line, err = NewLine(kernel.NewUUID(), product.ID(), merged, price, product.Currency(), time.Now().UTC())
	if err != nil {
		return nil, false, err
	}
	b.insertLine(line)
	return line, true, nil
}

// Flush removes every line.
func (b *Basket) Flush() error {
	if err := b.status.CheckFlush(); err != nil {
		return err
	}
	b.lines = nil
	return nil
}

func (b *Basket) Freeze() error {
	status, err := b.status.Freeze()
	if err != nil {
		return err
	}
	b.status = status
	return nil
}

func (b *Basket) Thaw() error {
	status, err := b.status.Thaw()
	if err != nil {
		return err
	}
	b.status = status
	return nil
}

// Submit marks the basket as ordered. Emptiness is the caller's concern.
func (b *Basket) Submit() error {
	status, err := b.status.Submit()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	b.status = status
	b.submitted = &now
	return nil
}

func (b *Basket) NumLines() int {
	return len(b.lines)
}

func (b *Basket) NumItems() int {
	items := 0
	for _, line := range b.lines {
		items += line.Quantity()
	}
	return items
}

// IsEmpty is true for an unsaved basket and for one without items.
func (b *Basket) IsEmpty() bool {
	return b.id.Validate() != nil || b.NumLines() == 0 || b.NumItems() == 0
}

// Total sums price times quantity over the lines whose product still exists.
func (b *Basket) Total() kernel.Money {
	total := kernel.ZeroMoney()
	for _, line := range b.lines {
		if !line.HasProduct() {
			continue
		}
		total = total.Add(line.Total())
	}
	return total
}

// Currency is the currency of the first line, or the zero Currency for an empty basket.
func (b *Basket) Currency() kernel.Currency {
	if len(b.lines) == 0 {
		return kernel.Currency{}
	}
	return b.lines[0].Currency()
}

func (b *Basket) CanBeEdited() bool {
	return b.status.CanBeEdited()
}

// ProductQuantity is the quantity of productID in the basket, 0 if it has no line.
func (b *Basket) ProductQuantity(productID kernel.UUID) int {
	if line := b.findLine(productID); line != nil {
		return line.Quantity()
	}
	return 0
}

func (b *Basket) checkCurrency(currency kernel.Currency) error {
	current := b.Currency()
	if current.IsZero() || current.IsEqual(currency) {
		return nil
	}
	return NewCurrencyMismatchError(current, currency)
}

// checkTotal checks the basket total with productID's line priced at lineTotal.
func (b *Basket) checkTotal(productID kernel.UUID, lineTotal kernel.Money) error {
	total := lineTotal
	for _, line := range b.lines {
		if line.HasProduct() && !line.isFor(productID) {
			total = total.Add(line.Total())
		}
	}
	if total.CheckRange() != nil {
		return NewTotalLimitError()
	}
	return nil
}

func (b *Basket) findLine(productID kernel.UUID) *Line {
	for _, line := range b.lines {
		if line.isFor(productID) {
			return line
		}
	}
	return nil
}

func (b *Basket) insertLine(line *Line) {
	i, _ := slices.BinarySearchFunc(b.lines, line, func(existing, target *Line) int {
		if existing.before(target) {
			return -1
		}
		return 1
	})
	b.lines = slices.Insert(b.lines, i, line)
}

func (b *Basket) removeLine(line *Line) {
	b.lines = slices.DeleteFunc(b.lines, func(l *Line) bool {
		return l.ID().IsEqual(line.ID())
	})
}

func (b *Basket) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Basket) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	b.ownerID = ownerID
	return nil
}

func (b *Basket) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	b.status = status
	return nil
}

func (b *Basket) setLines(lines []*Line) error {
	sorted := make([]*Line, 0, len(lines))
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		sorted = append(sorted, line)
	}
	slices.SortFunc(sorted, func(a, c *Line) int {
		switch {
		case a.before(c):
			return -1
		case c.before(a):
			return 1
		default:
			return 0
		}
	})
	b.lines = sorted
	return nil
}
