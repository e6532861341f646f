// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/jstrict/internal/numeral"
	"github.com/shopspring/decimal"
)

// A Number is an arbitrary-precision decimal JSON number. Numbers preserve
// the text from which they were constructed, but compare by numeric value:
// 5, 5.0, 5.00 and 0.5e1 are all equal.
//
// The zero Number is equal to 0.
type Number struct {
	text string // valid JSON numeral text
	key  string // canonical numeric key
}

// ParseNumber constructs a Number from its JSON text. It reports an error if
// text does not conform to the JSON number grammar.
func ParseNumber(text string) (Number, error) {
	key, ok := numeral.Key(text)
	if !ok {
		return Number{}, fmt.Errorf("invalid number %q", text)
	}
	return Number{text: text, key: key}, nil
}

// MustParseNumber is as ParseNumber, but panics on error.
func MustParseNumber(text string) Number {
	n, err := ParseNumber(text)
	if err != nil {
		panic(err)
	}
	return n
}

// Int constructs a Number with the value of z.
func Int(z int64) Number { return MustParseNumber(strconv.FormatInt(z, 10)) }

// Float constructs a Number with the value of f.
// It panics if f is infinite or NaN, which JSON cannot represent.
func Float(f float64) Number {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		panic(fmt.Sprintf("unrepresentable number %v", f))
	}
	return MustParseNumber(strconv.FormatFloat(f, 'g', -1, 64))
}

// FromDecimal constructs a Number with the value of d.
func FromDecimal(d decimal.Decimal) Number { return MustParseNumber(d.String()) }

func (Number) Kind() Kind { return NumberKind }
func (Number) Depth() int { return 1 }
func (Number) isValue()   {}

// JSON returns the text of the number as it was constructed.
func (n Number) JSON() string { return n.Text() }

func (n Number) String() string { return n.Text() }

// Text returns the JSON text of n.
func (n Number) Text() string {
	if n.text == "" {
		return "0"
	}
	return n.text
}

func (n Number) canon() string {
	if n.key == "" {
		return "0"
	}
	return n.key
}

// Equal reports whether n and m have the same numeric value.
func (n Number) Equal(m Number) bool { return n.canon() == m.canon() }

// IsInt reports whether n was written as an integer, without a fraction or
// exponent.
func (n Number) IsInt() bool { return numeral.IsInt(n.Text()) }

// Int64 returns the value of n as an int64, and reports whether n is an
// integer that fits exactly. Numbers such as 2.50e1 that have an integer
// value are accepted.
func (n Number) Int64() (int64, bool) {
	key := n.canon()
	if key == "0" {
		return 0, true
	}
	neg := strings.HasPrefix(key, "-")
	mant, exps, _ := strings.Cut(strings.TrimPrefix(key, "-"), "e")
	digits := strings.TrimPrefix(mant, "0.")
	exp, err := strconv.ParseInt(exps, 10, 64)
	if err != nil || exp < int64(len(digits)) || exp > 19 {
		return 0, false // fractional, or too large for int64
	}
	text := digits + strings.Repeat("0", int(exp)-len(digits))
	if neg {
		text = "-" + text
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Float64 returns the nearest float64 value to n. It reports an error if n
// is out of range for a float64.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(n.Text(), 64)
}

// Decimal returns the value of n as a decimal. It reports an error if the
// exponent of n is outside the range supported by decimal.Decimal.
func (n Number) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(n.Text())
}
