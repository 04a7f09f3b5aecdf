package order

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the record of a completed checkout. It is the aggregate root for
// fulfilment and is never edited by the checkout flow after creation.
//
// Order follows these invariants:
//   - Must have a valid identifier and owner
//   - Currency is set and total is a non-negative two decimal amount
//   - Status transitions follow the fulfilment state machine
type Order struct {
	id kernel.UUID

	// basketID is nil once the originating basket has been deleted
	basketID *kernel.UUID

	ownerID  kernel.UUID
	currency kernel.Currency
	total    kernel.Money
	status   Status
	created  time.Time

	events []kernel.DomainEvent

	guard guard.ConstructorGuard
}

// NewOrder places an order for basketID and raises OrderPlaced.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), b.ID(), b.OwnerID(), b.Currency(), b.Total())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	basketID kernel.UUID,
	ownerID kernel.UUID,
	currency kernel.Currency,
	total kernel.Money,
) (*Order, error) {
	if err := basketID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("basket", err)
	}

	o, err := RestoreOrder(id, &basketID, ownerID, currency, total, Created, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	o.raise(NewOrderPlaced(o))
	return o, nil
}

// RestoreOrder rebuilds an order from storage without raising events.
func RestoreOrder(
	id kernel.UUID,
	basketID *kernel.UUID,
	ownerID kernel.UUID,
	currency kernel.Currency,
	total kernel.Money,
	status Status,
	created time.Time,
) (*Order, error) {
	o := &Order{
		basketID: basketID,
		created:  created,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwnerID(ownerID),
		o.setCurrency(currency),
		o.setTotal(total),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// BasketID returns the originating basket, or nil if it no longer exists.
func (o *Order) BasketID() *kernel.UUID {
	return o.basketID
}

func (o *Order) OwnerID() kernel.UUID {
	return o.ownerID
}

func (o *Order) Currency() kernel.Currency {
	return o.currency
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Created() time.Time {
	return o.created
}

// BelongsTo reports whether userID owns the order.
func (o *Order) BelongsTo(userID kernel.UUID) bool {
	return o.ownerID.IsEqual(userID)
}

// Process marks the start of fulfilment.
func (o *Order) Process() error {
	return o.transition(o.status.Process)
}

// Deliver completes fulfilment.
func (o *Order) Deliver() error {
	return o.transition(o.status.Deliver)
}

// Cancel stops fulfilment of an order that has not been delivered.
func (o *Order) Cancel() error {
	return o.transition(o.status.Cancel)
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	out := make([]kernel.DomainEvent, len(o.events))
	copy(out, o.events)
	return out
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) raise(event kernel.DomainEvent) {
	o.events = append(o.events, event)
}

func (o *Order) transition(next func() (Status, error)) error {
	status, err := next()
	if err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	o.ownerID = ownerID
	return nil
}

func (o *Order) setCurrency(currency kernel.Currency) error {
	if currency.IsZero() {
		return errs.NewValueIsRequiredError("currency")
	}
	o.currency = currency
	return nil
}

func (o *Order) setTotal(total kernel.Money) error {
	if err := total.CheckRange(); err != nil {
		return err
	}
	o.total = total
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
