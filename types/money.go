// Package types provides common value types used across Bullion.
package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency every shop ledger is kept in.
const DefaultCurrency = "inr"

// Money represents a monetary value in the smallest currency unit.
// All arithmetic is integer-only; products with weights or rates go through
// decimal and are rounded back to the minor unit.
//
// Examples:
//   - INR(625000) = ₹6250.00 (625000 paise)
//   - Rupees(46875) = ₹46875.00
type Money struct {
	Amount   int64  `json:"amount"`   // Smallest unit (paise)
	Currency string `json:"currency"` // ISO 4217 lowercase: "inr"
}

// INR creates a Money value in Indian Rupees (paise).
func INR(paise int64) Money { return Money{Amount: paise, Currency: DefaultCurrency} }

// Rupees creates a Money value from whole rupees.
func Rupees(r int64) Money { return INR(r * 100) }

// Zero returns a zero Money value in the specified currency.
func Zero(currency string) Money { return Money{Amount: 0, Currency: strings.ToLower(currency)} }

// FromDecimal converts a major-unit decimal (rupees) to Money, rounding
// half away from zero to the nearest paisa.
func FromDecimal(d decimal.Decimal, currency string) Money {
	minor := d.Shift(int32(currencyDecimals(currency))).Round(0)
	return Money{Amount: minor.IntPart(), Currency: strings.ToLower(currency)}
}

// Decimal returns the value in major units (rupees).
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount, -int32(currencyDecimals(m.Currency)))
}

// Add adds two Money values. Panics if currencies don't match.
func (m Money) Add(other Money) Money {
	m.assertSameCurrency(other)
	return Money{Amount: m.Amount + other.Amount, Currency: m.currency(other)}
}

// Subtract subtracts another Money value. Panics if currencies don't match.
func (m Money) Subtract(other Money) Money {
	m.assertSameCurrency(other)
	return Money{Amount: m.Amount - other.Amount, Currency: m.currency(other)}
}

// Multiply multiplies the Money by an integer quantity.
func (m Money) Multiply(qty int64) Money {
	return Money{Amount: m.Amount * qty, Currency: m.Currency}
}

// MulDecimal multiplies the Money by a decimal factor (a weight in grams,
// a fraction of days) and rounds to the minor unit.
func (m Money) MulDecimal(f decimal.Decimal) Money {
	return FromDecimal(m.Decimal().Mul(f), m.Currency)
}

// RoundMajor rounds to a whole major unit, half away from zero.
func (m Money) RoundMajor() Money {
	return FromDecimal(m.Decimal().Round(0), m.Currency)
}

// Negate returns the negative of the Money value.
func (m Money) Negate() Money {
	return Money{Amount: -m.Amount, Currency: m.Currency}
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool { return m.Amount == 0 }

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool { return m.Amount > 0 }

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool { return m.Amount < 0 }

// Equal returns true if both Money values are equal (same amount and currency).
func (m Money) Equal(other Money) bool {
	return m.Amount == other.Amount && m.Currency == other.Currency
}

// GreaterThan returns true if this Money is greater than other. Panics if currencies don't match.
func (m Money) GreaterThan(other Money) bool {
	m.assertSameCurrency(other)
	return m.Amount > other.Amount
}

// FormatMajor returns the major unit string without currency symbol.
// "6250.00" for INR(625000).
func (m Money) FormatMajor() string {
	decimals := currencyDecimals(m.Currency)
	if decimals == 0 {
		return fmt.Sprintf("%d", m.Amount)
	}
	return m.Decimal().StringFixed(int32(decimals))
}

// String returns a human-readable string with currency symbol.
// Examples: "₹6250.00", "$49.00"
func (m Money) String() string {
	return currencySymbol(m.Currency) + m.FormatMajor()
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Display  string `json:"display"`
	}{
		Amount:   m.Amount,
		Currency: m.Currency,
		Display:  m.String(),
	})
}

// assertSameCurrency panics if currencies don't match. A zero value with no
// currency is compatible with anything so that struct zero values can be summed.
func (m Money) assertSameCurrency(other Money) {
	if m.Currency == "" || other.Currency == "" {
		return
	}
	if m.Currency != other.Currency {
		panic(fmt.Sprintf("money: currency mismatch: %s != %s", m.Currency, other.Currency))
	}
}

func (m Money) currency(other Money) string {
	if m.Currency != "" {
		return m.Currency
	}
	return other.Currency
}

// currencySymbol returns the symbol for a currency code.
func currencySymbol(currency string) string {
	symbols := map[string]string{
		"inr": "₹",
		"usd": "$",
		"aed": "AED ",
	}
	if sym, ok := symbols[strings.ToLower(currency)]; ok {
		return sym
	}
	return strings.ToUpper(currency) + " "
}

// currencyDecimals returns the number of decimal places for a currency.
func currencyDecimals(currency string) int {
	zeroDecimal := map[string]bool{
		"jpy": true,
		"krw": true,
		"vnd": true,
	}
	if zeroDecimal[strings.ToLower(currency)] {
		return 0
	}
	return 2
}

// CheckMoney fills an empty currency with DefaultCurrency and rejects any
// other currency. Books only ever hold DefaultCurrency amounts, so mixed
// currencies never reach Add.
func CheckMoney(field string, m *Money) error {
	switch strings.ToLower(m.Currency) {
	case "":
		m.Currency = DefaultCurrency
	case DefaultCurrency:
		m.Currency = DefaultCurrency
	default:
		return Invalid(field, "currency %q is not %q", m.Currency, DefaultCurrency)
	}
	return nil
}

// CheckMonies applies CheckMoney to each named amount in order.
func CheckMonies(fields map[string]*Money) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := CheckMoney(name, fields[name]); err != nil {
			return err
		}
	}
	return nil
}

// Sum calculates the sum of multiple Money values. All must have the same currency.
func Sum(values ...Money) Money {
	result := Zero(DefaultCurrency)
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}
