package valueobjects

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

var ErrAmountOutOfRange = errors.New("amount out of range")

// Amount is an integer cent value paired with an ISO 4217 currency code. It is
// the payload of every provider action.
type Amount struct {
	amountInCents int64
	currency      string
}

func NewAmount(amountInCents int64, currencyCode string) (Amount, error) {
	code, err := NormalizeCurrency(currencyCode)
	if err != nil {
		return Amount{}, err
	}
	return Amount{amountInCents: amountInCents, currency: code}, nil
}

// AmountFromDecimal converts an amount in currency units, rounding to whole cents.
func AmountFromDecimal(value decimal.Decimal, currencyCode string) (Amount, error) {
	cents, err := CentsFromDecimal(value)
	if err != nil {
		return Amount{}, err
	}
	return NewAmount(cents, currencyCode)
}

// ParseAmount parses a decimal string such as "12.50".
func ParseAmount(value string, currencyCode string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return AmountFromDecimal(d, currencyCode)
}

func (a Amount) AmountInCents() int64 {
	return a.amountInCents
}

func (a Amount) Currency() string {
	return a.currency
}

// InCurrencyUnits returns the amount as a two-decimal value, e.g. 1050 -> 10.50.
func (a Amount) InCurrencyUnits() decimal.Decimal {
	return FormatToCurrency(a.amountInCents)
}

func (a Amount) IsPositive() bool {
	return a.amountInCents > 0
}

func (a Amount) Equals(other Amount) bool {
	return a.amountInCents == other.amountInCents && a.currency == other.currency
}

func (a Amount) String() string {
	return fmt.Sprintf("%s %s", a.InCurrencyUnits().StringFixed(2), a.currency)
}

// CentsFromDecimal is FormatToCents for untrusted input: values whose cents do
// not fit an int64 return ErrAmountOutOfRange.
func CentsFromDecimal(value decimal.Decimal) (int64, error) {
	scaled := value.Mul(hundred).Round(0)
	if scaled.GreaterThan(maxCents) || scaled.LessThan(minCents) {
		return 0, fmt.Errorf("%w: %s", ErrAmountOutOfRange, value.String())
	}
	return scaled.IntPart(), nil
}

// FormatToCents converts currency units to cents, rounding half away from zero.
// The value must fit int64 cents; see CentsFromDecimal.
func FormatToCents(value decimal.Decimal) int64 {
	return value.Mul(hundred).Round(0).IntPart()
}

// FormatToCurrency converts cents to currency units.
func FormatToCurrency(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// NormalizeCurrency upper-cases and validates an ISO 4217 code.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", fmt.Errorf("currency is required")
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("invalid currency %q: %w", code, err)
	}
	return unit.String(), nil
}
