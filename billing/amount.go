package billing

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Limits on what ParseAmount accepts. Anything larger or finer than this is
// treated as unparseable text.
const (
	maxAmountDigits   = 30
	minAmountExponent = -20
)

// Amount is a numeric bill figure. It keeps full decimal precision; rounding
// only happens when a presenter formats it.
type Amount struct {
	decimal.Decimal
}

// NewAmount builds an Amount from an integer value.
func NewAmount(v int64) Amount {
	return Amount{decimal.NewFromInt(v)}
}

// AmountFrom wraps a decimal.
func AmountFrom(d decimal.Decimal) Amount {
	return Amount{d}
}

// ParseAmount reads user-entered text. Blank or unparseable text is zero,
// never an error: the form keeps recomputing while the user types. Exponent
// notation and values beyond 30 digits or 20 decimal places count as
// unparseable.
func ParseAmount(text string) Amount {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return Amount{}
	}
	if strings.ContainsAny(s, "eE") {
		return Amount{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return bounded(d)
}

func bounded(d decimal.Decimal) Amount {
	exp, n := d.Exponent(), d.NumDigits()
	if exp < minAmountExponent || n > maxAmountDigits || (exp > 0 && int(exp)+n > maxAmountDigits) {
		return Amount{}
	}
	return Amount{d}
}

// Percent returns v percent of a with no rounding.
func (a Amount) Percent(v Amount) Amount {
	return Amount{a.Mul(v.Decimal).Shift(-2)}
}

// Plus returns a + b.
func (a Amount) Plus(b Amount) Amount {
	return Amount{a.Add(b.Decimal)}
}

// Minus returns a - b.
func (a Amount) Minus(b Amount) Amount {
	return Amount{a.Sub(b.Decimal)}
}

// UnmarshalJSON accepts numbers, quoted numbers, blanks and null. Anything
// that does not parse is stored as zero.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		b = b[1 : len(b)-1]
	}
	*a = ParseAmount(string(b))
	return nil
}

func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(a.String())
}

func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	if s, ok := raw.StringValueOK(); ok {
		*a = ParseAmount(s)
		return nil
	}
	if f, ok := raw.DoubleOK(); ok {
		*a = bounded(decimal.NewFromFloat(f))
		return nil
	}
	*a = Amount{}
	return nil
}
