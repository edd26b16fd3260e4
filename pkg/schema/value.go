package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Value is a rule field that holds either a JSON number or a JSON
// string. The LIMS accepts both in the same position (numeric bounds
// vs. qualitative match texts vs. the dummy sentinel), so the union is
// explicit rather than an interface{} field. Numeric values keep their
// raw JSON literal so a payload round-trips without reformatting.
type Value struct {
	isString bool
	str      string
	num      json.Number
}

// NumberValue builds a numeric Value from a decimal.
func NumberValue(d decimal.Decimal) Value {
	return Value{num: json.Number(d.String())}
}

// IntValue builds a numeric Value from an integer.
func IntValue(n int64) Value {
	return Value{num: json.Number(fmt.Sprintf("%d", n))}
}

// NumberLiteral builds a numeric Value from a raw JSON number literal,
// keeping it verbatim.
func NumberLiteral(n json.Number) Value {
	return Value{num: n}
}

// FloatValue builds a numeric Value from a float.
func FloatValue(f float64) Value {
	return NumberValue(decimal.NewFromFloat(f))
}

// StringValue builds a string Value. StringValue(DummyValue) yields the
// dummy sentinel.
func StringValue(s string) Value {
	return Value{isString: true, str: s}
}

// IsString reports whether the value holds a string.
func (v Value) IsString() bool { return v.isString }

// String returns the string content; ok is false for numeric values.
func (v Value) String() (s string, ok bool) {
	return v.str, v.isString
}

// Number returns the numeric literal; ok is false for string values.
func (v Value) Number() (n json.Number, ok bool) {
	return v.num, !v.isString
}

// Decimal returns the numeric content as a decimal; ok is false for
// string values or malformed literals.
func (v Value) Decimal() (decimal.Decimal, bool) {
	if v.isString {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(v.num.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// IsDummy reports whether the value is the dummy sentinel.
func (v Value) IsDummy() bool {
	return v.isString && v.str == DummyValue
}

// Equal reports semantic equality (numbers compare by value, strings by
// content). Used by go-cmp in tests.
func (v Value) Equal(o Value) bool {
	if v.isString != o.isString {
		return false
	}
	if v.isString {
		return v.str == o.str
	}
	a, aok := v.Decimal()
	b, bok := o.Decimal()
	if !aok || !bok {
		return v.num == o.num
	}
	return a.Equal(b)
}

// MarshalJSON emits the string or the raw numeric literal.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isString {
		return json.Marshal(v.str)
	}
	if v.num == "" {
		return nil, fmt.Errorf("marshal value: empty numeric literal")
	}
	return []byte(v.num), nil
}

// UnmarshalJSON accepts a JSON string or number; anything else is an
// error. The numeric literal is kept verbatim.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("unmarshal value: empty input")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("unmarshal value string: %w", err)
		}
		*v = Value{isString: true, str: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("unmarshal value number: %w", err)
	}
	*v = Value{num: n}
	return nil
}
