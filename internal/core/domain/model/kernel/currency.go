package kernel

import (
	"strings"
	"unicode"

	"checkout/internal/pkg/errs"
)

const (
	currencyMinLength = 3
	currencyMaxLength = 12
)

// DefaultCurrency is used for products that do not carry a code.
var DefaultCurrency = Currency{code: "INR"}

// Currency is an upper-case currency code. The zero value means "no currency",
// which is what an empty basket reports.
type Currency struct {
	code string
}

// NewCurrency normalises code to upper case and checks it is 3 to 12 letters.
func NewCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Currency{}, errs.NewValueIsRequiredError("currency")
	}
	if len(code) < currencyMinLength || len(code) > currencyMaxLength {
		return Currency{}, errs.NewValueIsOutOfRangeError("currency length", len(code), currencyMinLength, currencyMaxLength)
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return Currency{}, errs.NewValueIsInvalidError("currency")
		}
	}
	return Currency{code: code}, nil
}

func (c Currency) String() string {
	return c.code
}

func (c Currency) IsZero() bool {
	return c.code == ""
}

func (c Currency) IsEqual(other Currency) bool {
	return c.code == other.code
}
