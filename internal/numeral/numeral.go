// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package numeral validates JSON number text and computes canonical keys for
// numeric comparison.
package numeral

import (
	"math/big"
	"strings"
)

// IsMember reports whether ch may appear in the text of a JSON number.
// Membership does not imply the accumulated text is valid; see Valid.
func IsMember(ch rune) bool {
	return isDigit(ch) || ch == '-' || ch == '+' || ch == '.' || ch == 'e' || ch == 'E'
}

// IsStart reports whether ch may begin a JSON number.
func IsStart(ch rune) bool { return ch == '-' || isDigit(ch) }

// Valid reports whether s matches the JSON number grammar:
//
//	-? (0 | [1-9][0-9]*) (\.[0-9]+)? ([eE][+-]?[0-9]+)?
func Valid(s string) bool {
	_, ok := split(s)
	return ok
}

// parts are the components of a valid numeral.
type parts struct {
	neg         bool
	whole, frac string
	exp         string // including sign, if any
}

func split(s string) (parts, bool) {
	var p parts
	if strings.HasPrefix(s, "-") {
		p.neg = true
		s = s[1:]
	}

	// Integer part: zero or a non-zero-leading run of digits.
	n := digits(s)
	if n == 0 || (n > 1 && s[0] == '0') {
		return p, false
	}
	p.whole, s = s[:n], s[n:]

	if strings.HasPrefix(s, ".") {
		s = s[1:]
		n = digits(s)
		if n == 0 {
			return p, false
		}
		p.frac, s = s[:n], s[n:]
	}

	if s != "" && (s[0] == 'e' || s[0] == 'E') {
		s = s[1:]
		sign := ""
		if s != "" && (s[0] == '+' || s[0] == '-') {
			sign, s = s[:1], s[1:]
		}
		n = digits(s)
		if n == 0 {
			return p, false
		}
		p.exp, s = sign+s[:n], s[n:]
	}
	return p, s == ""
}

// IsInt reports whether s is a valid numeral with no fraction or exponent.
func IsInt(s string) bool {
	p, ok := split(s)
	return ok && p.frac == "" && p.exp == ""
}

// Key returns a canonical key for the numeric value of s, such that two valid
// numerals have equal keys exactly when they denote the same number. It
// reports false if s is not a valid numeral.
//
// The key has the form [-]0.DIGITSeEXP, where DIGITS has no leading or
// trailing zeroes. Zero (with either sign) has the key "0".
func Key(s string) (string, bool) {
	p, ok := split(s)
	if !ok {
		return "", false
	}
	ds := p.whole + p.frac
	point := int64(len(p.whole))

	trimmed := strings.TrimLeft(ds, "0")
	point -= int64(len(ds) - len(trimmed))
	trimmed = strings.TrimRight(trimmed, "0")
	if trimmed == "" {
		return "0", true
	}

	// The exponent text may be arbitrarily long, so do the adjustment in
	// arbitrary precision.
	exp := new(big.Int)
	if p.exp != "" {
		if _, ok := exp.SetString(strings.TrimPrefix(p.exp, "+"), 10); !ok {
			return "", false
		}
	}
	exp.Add(exp, big.NewInt(point))

	var sb strings.Builder
	if p.neg {
		sb.WriteByte('-')
	}
	sb.WriteString("0.")
	sb.WriteString(trimmed)
	sb.WriteByte('e')
	sb.WriteString(exp.String())
	return sb.String(), true
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

// digits returns the length of the run of ASCII digits at the front of s.
func digits(s string) int {
	for i := 0; i < len(s); i++ {
		if !isDigit(rune(s[i])) {
			return i
		}
	}
	return len(s)
}
