package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount with two fractional digits.
// The zero value is the empty amount.
type Money struct {
	d decimal.Decimal
}

// NewMoney builds Money from a decimal, rounding to cents. Negative input clamps to zero.
func NewMoney(d decimal.Decimal) Money {
	if d.IsNegative() {
		return Money{}
	}
	return Money{d: d.Round(2)}
}

// MoneyFromFloat is a convenience for tests and fixed values.
func MoneyFromFloat(f float64) Money {
	return NewMoney(decimal.NewFromFloat(f))
}

// ParseMoney parses an amount token like "1,234.56" or "1 234.56".
// Thousands separators and internal spaces are dropped.
func ParseMoney(s string) (Money, error) {
	cleaned := strings.NewReplacer(",", "", " ", "", " ", "").Replace(strings.TrimSpace(s))
	cleaned = strings.TrimPrefix(cleaned, "$")
	if cleaned == "" {
		return Money{}, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return Money{}, fmt.Errorf("negative amount %q", s)
	}
	return NewMoney(d), nil
}

func (m Money) IsZero() bool { return m.d.IsZero() }

func (m Money) Decimal() decimal.Decimal { return m.d }

func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

func (m Money) GreaterThan(o Money) bool { return m.d.GreaterThan(o.d) }

func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

// String always renders two fractional digits.
func (m Money) String() string { return m.d.StringFixed(2) }

// MarshalJSON encodes as a JSON number with two fractional digits.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*m = Money{}
		return nil
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
