// Package catalogue is the checkout service's read model of the external product
// catalogue. Products are managed elsewhere; baskets only need their price,
// currency and whether they are listed for sale.
package catalogue

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

// Product is a priced (or not yet priced) catalogue entry.
type Product struct {
	id       kernel.UUID
	title    string
	price    *kernel.Money
	currency kernel.Currency
	isPublic bool

	isConstructed bool
}

// NewProduct creates a public product. A nil price means the product has no price yet
// and cannot be added to a basket.
func NewProduct(id kernel.UUID, title string, price *kernel.Money, currency kernel.Currency) (*Product, error) {
	return RestoreProduct(id, title, price, currency, true)
}

// RestoreProduct rebuilds a product from storage.
func RestoreProduct(
	id kernel.UUID,
	title string,
	price *kernel.Money,
	currency kernel.Currency,
	isPublic bool,
) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}
	if currency.IsZero() {
		currency = kernel.DefaultCurrency
	}
	return &Product{
		id:            id,
		title:         title,
		price:         price,
		currency:      currency,
		isPublic:      isPublic,
		isConstructed: true,
	}, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Title() string {
	return p.title
}

// Price reports the current catalogue price; ok is false when none is set.
func (p *Product) Price() (price kernel.Money, ok bool) {
	if p.price == nil {
		return kernel.Money{}, false
	}
	return *p.price, true
}

// HasPrice is false for unpriced products and for a price of 0.00, which the
// catalogue uses as "no price found".
func (p *Product) HasPrice() bool {
	return p.price != nil && !p.price.IsZero()
}

func (p *Product) Currency() kernel.Currency {
	return p.currency
}

// IsPublic tells whether the product is listed for sale.
func (p *Product) IsPublic() bool {
	return p.isPublic
}

// Unlist hides the product from sale.
func (p *Product) Unlist() {
	p.isPublic = false
}

// String is used in user facing messages.
func (p *Product) String() string {
	return p.title
}
