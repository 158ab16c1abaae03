package wealthtrack

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is a number of units of an instrument. Backed by a decimal to keep
// unit arithmetic exact; fund units are routinely fractional.
type Quantity struct {
	value decimal.Decimal
}

// Q creates a Quantity from any common numeric type.
func Q[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

func (q Quantity) Add(p Quantity) Quantity     { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity     { return Quantity{value: q.value.Sub(p.value)} }
func (q Quantity) Mul(p Quantity) Quantity     { return Quantity{value: q.value.Mul(p.value)} }
func (q Quantity) Div(p Quantity) Quantity     { return Quantity{value: q.value.Div(p.value)} }
func (q Quantity) Equal(p Quantity) bool       { return q.value.Equal(p.value) }
func (q Quantity) LessThan(p Quantity) bool    { return q.value.LessThan(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool { return q.value.GreaterThan(p.value) }
func (q Quantity) IsZero() bool                { return q.value.IsZero() }
func (q Quantity) IsPositive() bool            { return q.value.IsPositive() }
func (q Quantity) IsNegative() bool            { return q.value.IsNegative() }
func (q Quantity) String() string              { return q.value.String() }

// Decimal returns the underlying decimal value, for encoding and export.
func (q Quantity) Decimal() decimal.Decimal { return q.value }

func (q Quantity) MarshalJSON() ([]byte, error) {
	return q.value.MarshalJSON()
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	return q.value.UnmarshalJSON(data)
}
