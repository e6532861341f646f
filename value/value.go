// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package value defines an immutable tree of JSON values.
//
// A Value is one of the concrete types Null, Bool, Number, String, Array, or
// Object. The set of types is closed: Value has an unexported method, so no
// other package can implement it. Use a type switch or the Kind method to
// distinguish them:
//
//	switch t := v.(type) {
//	case value.Null:
//	case value.Bool:
//	case value.Number:
//	case value.String:
//	case value.Array:
//	case value.Object:
//	}
//
// Arrays and objects cannot be modified after construction. They are built
// either by a parser, by NewArray and NewObject, or with an ArrayBuilder or
// ObjectBuilder. An aggregate never contains a nil Value; a missing value is
// represented by Null.
package value

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Kind identifies the concrete type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	NullKind   Kind = iota + 1 // null
	BoolKind                   // true, false
	NumberKind                 // number
	StringKind                 // string
	ArrayKind                  // [ ... ]
	ObjectKind                 // { ... }
)

var kindStr = [...]string{
	0:          "invalid",
	NullKind:   "null",
	BoolKind:   "bool",
	NumberKind: "number",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[0]
	}
	return kindStr[k]
}

// IsBasic reports whether k is a leaf kind (null, bool, number, string).
func (k Kind) IsBasic() bool { return k >= NullKind && k <= StringKind }

// A Value is an arbitrary JSON value.
type Value interface {
	// Kind reports the concrete type of the value.
	Kind() Kind

	// Depth reports the nesting depth of the value: 1 for basic values and
	// empty aggregates, otherwise 1 + the maximum depth of its children.
	Depth() int

	// JSON renders the value as compact JSON text.
	JSON() string

	isValue()
}

// Null is the JSON null constant. All values of this type are identical.
type Null struct{}

func (Null) Kind() Kind     { return NullKind }
func (Null) Depth() int     { return 1 }
func (Null) JSON() string   { return "null" }
func (Null) String() string { return "null" }
func (Null) isValue()       {}

// Bool is a JSON Boolean constant.
type Bool bool

// The Boolean constants.
const (
	True  = Bool(true)
	False = Bool(false)
)

func (Bool) Kind() Kind { return BoolKind }
func (Bool) Depth() int { return 1 }
func (Bool) isValue()   {}

func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// String is a JSON string value. The text is stored decoded, without quotes.
type String string

func (String) Kind() Kind       { return StringKind }
func (String) Depth() int       { return 1 }
func (s String) JSON() string   { return string(quoteString(nil, nil, string(s))) }
func (String) isValue()         {}
func (s String) String() string { return string(s) }

// An Array is an immutable sequence of values.
// The zero Array is a valid empty array.
type Array struct {
	elems []Value
	depth int // of the deepest element
}

// NewArray constructs an array containing the given values in order.
// It panics if any of the values is nil.
func NewArray(vs ...Value) Array {
	var b ArrayBuilder
	for i, v := range vs {
		if err := b.Append(v); err != nil {
			panic(fmt.Sprintf("element %d: %v", i, err))
		}
	}
	return b.Build()
}

func (Array) Kind() Kind     { return ArrayKind }
func (a Array) Depth() int   { return 1 + a.depth }
func (a Array) JSON() string { return string(appendJSON(nil, nil, a)) }
func (Array) isValue()       {}

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a.elems) }

// At returns the element of a at index i. It panics if i is out of range.
func (a Array) At(i int) Value { return a.elems[i] }

// Values returns a copy of the elements of a.
func (a Array) Values() []Value { return slices.Clone(a.elems) }

// All is a range function over the index and value of each element of a.
func (a Array) All() iter.Seq2[int, Value] { return slices.All(a.elems) }

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a.elems)) }

// An Object is an immutable collection of key-value members. Member order is
// not significant; iteration visits members in ascending order of key.
// The zero Object is a valid empty object.
type Object struct {
	members map[string]Value
	depth   int // of the deepest member value
}

// A Member is a single key-value pair, used to construct an Object.
type Member struct {
	Key   string
	Value Value
}

// Field is a convenience constructor for a Member.
func Field(key string, v Value) Member { return Member{Key: key, Value: v} }

// NewObject constructs an object from the given members. If a key occurs
// more than once, the last occurrence wins. It panics if any value is nil.
func NewObject(ms ...Member) Object {
	var b ObjectBuilder
	for _, m := range ms {
		if err := b.Put(m.Key, m.Value); err != nil {
			panic(fmt.Sprintf("member %q: %v", m.Key, err))
		}
	}
	return b.Build()
}

func (Object) Kind() Kind     { return ObjectKind }
func (o Object) Depth() int   { return 1 + o.depth }
func (o Object) JSON() string { return string(appendJSON(nil, nil, o)) }
func (Object) isValue()       {}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o.members) }

// Get returns the value of the member of o with the given key, and reports
// whether such a member exists.
func (o Object) Get(key string) (Value, bool) {
	v, ok := o.members[key]
	return v, ok
}

// Keys returns the keys of o in ascending order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o.members))
	for key := range o.members {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// All is a range function over the key and value of each member of o, in
// ascending order of key.
func (o Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, key := range o.Keys() {
			if !yield(key, o.members[key]) {
				return
			}
		}
	}
}

func (o Object) String() string {
	return fmt.Sprintf("Object(%s)", strings.Join(o.Keys(), ","))
}
