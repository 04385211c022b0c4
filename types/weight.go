package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Weight is a metal weight in grams. It is backed by an exact decimal so that
// repeated credits and debits of fractional grams conserve the total exactly.
type Weight struct {
	d decimal.Decimal
}

// Grams builds a Weight from a string such as "450.5". It panics on malformed
// input and is meant for literals; use ParseGrams for user input.
func Grams(s string) Weight {
	return Weight{d: decimal.RequireFromString(s)}
}

// ParseGrams parses a decimal gram value.
func ParseGrams(s string) (Weight, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Weight{}, err
	}
	return Weight{d: d}, nil
}

// GramsFromFloat converts a float gram value, rounded to milligrams.
func GramsFromFloat(f float64) Weight {
	return Weight{d: decimal.NewFromFloat(f).Round(3)}
}

// WeightOf wraps a decimal gram value.
func WeightOf(d decimal.Decimal) Weight { return Weight{d: d} }

// Decimal returns the underlying gram value.
func (w Weight) Decimal() decimal.Decimal { return w.d }

func (w Weight) Add(o Weight) Weight { return Weight{d: w.d.Add(o.d)} }
func (w Weight) Sub(o Weight) Weight { return Weight{d: w.d.Sub(o.d)} }
func (w Weight) Neg() Weight         { return Weight{d: w.d.Neg()} }

func (w Weight) IsZero() bool     { return w.d.IsZero() }
func (w Weight) IsPositive() bool { return w.d.IsPositive() }
func (w Weight) IsNegative() bool { return w.d.IsNegative() }

func (w Weight) Equal(o Weight) bool       { return w.d.Equal(o.d) }
func (w Weight) LessThan(o Weight) bool    { return w.d.LessThan(o.d) }
func (w Weight) GreaterThan(o Weight) bool { return w.d.GreaterThan(o.d) }

// FloorZero returns w, or zero when w is negative. Used for display only.
func (w Weight) FloorZero() Weight {
	if w.d.IsNegative() {
		return Weight{}
	}
	return w
}

// String renders the weight with up to three decimals, e.g. "12.4g".
func (w Weight) String() string {
	return w.d.Round(3).String() + "g"
}

// MarshalJSON encodes the weight as a JSON string of grams to keep precision.
func (w Weight) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.d.String())
}

// UnmarshalJSON accepts both string and number encodings.
func (w *Weight) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	w.d = d
	return nil
}

// SumWeights adds all weights.
func SumWeights(ws ...Weight) Weight {
	var total Weight
	for _, w := range ws {
		total = total.Add(w)
	}
	return total
}
