// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"fmt"
	"io"

	"github.com/creachadair/jstrict/internal/escape"
)

// EncoderOptions are settings for an Encoder. A nil *EncoderOptions provides
// default values as described.
type EncoderOptions struct {
	// If positive, cache the escaped form of up to this many distinct string
	// values and object keys, evicting the least recently used entries first.
	// Caching pays off when the same strings recur across many values.
	// By default no cache is used.
	EscapeCacheSize int

	// If non-empty, write each value across multiple lines, indenting nested
	// elements by this string per level. Arrays of up to three basic values,
	// and objects with at most one basic member, stay on one line.
	// By default values are written compactly.
	Indent string
}

// An Encoder writes the JSON encoding of values to an output stream.
// An Encoder is not safe for concurrent use.
type Encoder struct {
	w      io.Writer
	cache  *escape.Cache
	indent string
	buf    []byte
}

// NewEncoder constructs an Encoder that writes to w. The caller retains
// ownership of w. It reports an error if opts are invalid.
func NewEncoder(w io.Writer, opts *EncoderOptions) (*Encoder, error) {
	e := &Encoder{w: w}
	if opts != nil {
		e.indent = opts.Indent
	}
	if opts != nil && opts.EscapeCacheSize > 0 {
		c, err := escape.NewCache(opts.EscapeCacheSize)
		if err != nil {
			return nil, err
		}
		e.cache = c
	}
	return e, nil
}

// Encode writes the JSON encoding of v to the output, followed by a newline.
func (e *Encoder) Encode(v Value) error {
	if v == nil {
		return ErrNilValue
	}
	if e.indent == "" {
		e.buf = appendJSON(e.buf[:0], e.cache, v)
	} else {
		e.buf = appendIndented(e.buf[:0], e.cache, v, e.indent, "")
	}
	e.buf = append(e.buf, '\n')
	_, err := e.w.Write(e.buf)
	return err
}

// appendJSON appends the compact JSON encoding of v to buf.
func appendJSON(buf []byte, c *escape.Cache, v Value) []byte {
	switch t := v.(type) {
	case Null, Bool, Number:
		return append(buf, v.JSON()...)
	case String:
		return quoteString(buf, c, string(t))
	case Array:
		buf = append(buf, '[')
		for i, elt := range t.elems {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendJSON(buf, c, elt)
		}
		return append(buf, ']')
	case Object:
		buf = append(buf, '{')
		for i, key := range t.Keys() {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = quoteString(buf, c, key)
			buf = append(buf, ':')
			buf = appendJSON(buf, c, t.members[key])
		}
		return append(buf, '}')
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

// quoteString appends the quoted JSON encoding of s to buf.
// The cache may be nil.
func quoteString(buf []byte, c *escape.Cache, s string) []byte {
	buf = append(buf, '"')
	buf = append(buf, c.Quote(s)...)
	return append(buf, '"')
}

// maxLineItems is the largest array that fits on one line when indenting.
const maxLineItems = 3

// isCompact reports whether v is written on a single line when indenting.
func isCompact(v Value) bool {
	switch t := v.(type) {
	case Array:
		if len(t.elems) > maxLineItems {
			return false
		}
		for _, elt := range t.elems {
			if !elt.Kind().IsBasic() {
				return false
			}
		}
	case Object:
		if len(t.members) > 1 {
			return false
		}
		for _, elt := range t.members {
			if !elt.Kind().IsBasic() {
				return false
			}
		}
	}
	return true
}

// appendIndented appends an indented JSON encoding of v to buf. The first line
// is not indented; following lines are prefixed by indent and a multiple of
// unit.
func appendIndented(buf []byte, c *escape.Cache, v Value, unit, indent string) []byte {
	if isCompact(v) {
		return appendLine(buf, c, v)
	}
	inner := indent + unit
	switch t := v.(type) {
	case Array:
		buf = append(buf, "[\n"...)
		for i, elt := range t.elems {
			if i > 0 {
				buf = append(buf, ",\n"...)
			}
			buf = append(buf, inner...)
			buf = appendIndented(buf, c, elt, unit, inner)
		}
		buf = append(append(buf, '\n'), indent...)
		return append(buf, ']')
	case Object:
		buf = append(buf, "{\n"...)
		for i, key := range t.Keys() {
			if i > 0 {
				buf = append(buf, ",\n"...)
			}
			buf = append(buf, inner...)
			buf = append(quoteString(buf, c, key), ": "...)
			buf = appendIndented(buf, c, t.members[key], unit, inner)
		}
		buf = append(append(buf, '\n'), indent...)
		return append(buf, '}')
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

// appendLine appends a single-line encoding of v to buf, with a space after
// each separator. All the elements of v must be basic.
func appendLine(buf []byte, c *escape.Cache, v Value) []byte {
	switch t := v.(type) {
	case Array:
		buf = append(buf, '[')
		for i, elt := range t.elems {
			if i > 0 {
				buf = append(buf, ", "...)
			}
			buf = appendJSON(buf, c, elt)
		}
		return append(buf, ']')
	case Object:
		buf = append(buf, '{')
		for key, elt := range t.members {
			buf = append(quoteString(buf, c, key), ": "...)
			buf = appendJSON(buf, c, elt)
		}
		return append(buf, '}')
	default:
		return appendJSON(buf, c, v)
	}
}
