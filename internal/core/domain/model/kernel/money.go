package kernel

import (
	"errors"
	"fmt"

	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// MoneyScale is the number of decimal places every amount is kept at.
	MoneyScale         = 2
	// moneyIntegerDigits mirrors numeric(12,2) in the store.
	moneyIntegerDigits = 10
)

var (
	ErrMoneyIsNegative = errors.New("money amount must not be negative")
	ErrMoneyScale      = fmt.Errorf("money amount must have at most %d decimal places", MoneyScale)
	maxMoney           = decimal.New(1, moneyIntegerDigits)
)

// Money is a non-negative fixed-point amount with two decimal places.
// Arithmetic never rounds: inputs with more precision are rejected up front.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney is the identity for Add ("0.00").
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney validates sign, scale and magnitude of amount.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", ErrMoneyIsNegative)
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", ErrMoneyScale)
	}
	if amount.GreaterThanOrEqual(maxMoney) {
		return Money{}, errs.NewValueIsOutOfRangeError("money", amount.String(), "0.00", maxMoney.String())
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal string such as "100.00" or "7.5".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(d)
}

// MustMoney is MoneyFromString for literals known to be valid.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MaxMoney is the exclusive upper bound NewMoney enforces.
func MaxMoney() Money {
	return Money{amount: maxMoney}
}

// CheckRange re-applies the NewMoney bounds to the result of Add or Times,
// which do not enforce them.
func (m Money) CheckRange() error {
	_, err := NewMoney(m.amount)
	return err
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times multiplies by a non-negative quantity.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Equal compares values, so 100 equals 100.00.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
