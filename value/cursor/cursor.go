// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the structure of a JSON value.
package cursor

import (
	"fmt"

	"github.com/creachadair/jstrict/value"
)

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method. This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its value.
func Path[T value.Value](v value.Value, path ...any) (T, error) {
	c := New(v).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	result, ok := c.Value().(T)
	if !ok {
		return result, fmt.Errorf("wrong value type %v", c.Value().Kind())
	}
	return result, nil
}

// A Cursor is a pointer that navigates into the structure of a value.Value.
type Cursor struct {
	org value.Value
	stk []step
	err error
}

// A step records one value reached by a cursor, and the path element used to
// reach it.
type step struct {
	elt any
	val value.Value
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin value.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() value.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() value.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1].val
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []value.Value {
	out := []value.Value{c.org}
	for _, s := range c.stk {
		out = append(out, s.val)
	}
	return out
}

// Keys reports the object keys and array indices traversed from the origin to
// the current location in c. Array indices are normalized, so negative
// offsets are reported as counted from the front.
func (c *Cursor) Keys() []any {
	var out []any
	for _, s := range c.stk {
		out = append(out, s.elt)
	}
	return out
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays), or functions (see below).
// If the path cannot be completely consumed, traversal stops at the last
// value reached and an error is recorded. Use Err to recover the error.
//
// If a path element is a string, the corresponding value must be an object,
// and the string selects the value of the member with that key.
//
// If a path element is an integer, the corresponding value must be an array,
// and the integer selects the element at that offset. Negative offsets count
// backward from the end (-1 is last, -2 second last). An error is reported
// if the offset is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(value.Value) (value.Value, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			o, ok := cur.(value.Object)
			if !ok {
				return c.setErrorf("cannot traverse %v with %q", cur.Kind(), t)
			}
			next, ok := o.Get(t)
			if !ok {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(t, next)

		case int:
			a, ok := cur.(value.Array)
			if !ok {
				return c.setErrorf("cannot traverse %v with %d", cur.Kind(), t)
			}
			i, ok := fixArrayBound(a.Len(), t)
			if !ok {
				return c.setErrorf("array index %d out of bounds (n=%d)", t, a.Len())
			}
			cur = c.push(i, a.At(i))

		case func(value.Value) (value.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			} else if next == nil {
				return c.setErrorf("path function returned nil")
			}
			cur = c.push(t, next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(elt any, v value.Value) value.Value {
	c.stk = append(c.stk, step{elt: elt, val: v})
	return v
}

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
