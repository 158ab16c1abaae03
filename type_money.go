package wealthtrack

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a currency, as a major-unit decimal.
// The zero value has an empty currency, which merges weakly with any other
// currency in binary operations.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M creates a Money from any common numeric type and a currency code.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency resolves the full go-money currency, never nil.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the value with its currency symbol and fraction rules.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString is like String but with an explicit sign, and "-" for zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string          { return m.cur }
func (m Money) Equal(n Money) bool        { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool              { return m.value.IsZero() }
func (m Money) IsPositive() bool          { return m.value.IsPositive() }
func (m Money) IsNegative() bool          { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool     { return m.value.LessThan(n.value) }
func (m Money) Neg() Money                { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money      { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) DivUnits(q Quantity) Money { return Money{value: m.value.Div(q.value), cur: m.cur} }

func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Ratio returns m / n as a percentage. The caller must guard against a zero n.
func (m Money) Ratio(n Money) Percent {
	return Percent(m.value.Div(n.value).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

// Decimal returns the underlying decimal value, for encoding and export.
func (m Money) Decimal() decimal.Decimal { return m.value }

// cur makes the "" currency totally weak. Sums in this book are taken at face
// value even across currencies, matching the manual-entry origin of the data,
// so a mismatch keeps the first currency instead of failing.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	return a.cur
}

// Percent is a ratio expressed in percentage points.
type Percent float64

func (p Percent) String() string {
	if p == 0 {
		return "-"
	}
	sign := ""
	if p > 0 {
		sign = "+"
	}
	return sign + decimal.NewFromFloat(float64(p)).Round(2).String() + "%"
}
