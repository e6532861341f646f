// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import "errors"

// ErrNilValue is reported by a builder when asked to add a nil Value.
// Use Null to represent an absent value.
var ErrNilValue = errors.New("nil value (use value.Null)")

// An ArrayBuilder accumulates the elements of an Array.
// A zero ArrayBuilder is ready for use.
type ArrayBuilder struct {
	elems []Value
	depth int
}

// Append adds v to the end of the array under construction.
func (b *ArrayBuilder) Append(v Value) error {
	if v == nil {
		return ErrNilValue
	}
	b.elems = append(b.elems, v)
	b.depth = max(b.depth, v.Depth())
	return nil
}

// Len reports the number of elements added since the last Build.
func (b *ArrayBuilder) Len() int { return len(b.elems) }

// Build returns an Array containing the elements added so far, and resets b
// to empty. The Array takes ownership of the elements.
func (b *ArrayBuilder) Build() Array {
	a := Array{elems: b.elems, depth: b.depth}
	*b = ArrayBuilder{}
	return a
}

// An ObjectBuilder accumulates the members of an Object.
// A zero ObjectBuilder is ready for use.
type ObjectBuilder struct {
	members map[string]Value
}

// Put sets the member with the given key to v. If b already has a member
// with that key, its value is replaced.
func (b *ObjectBuilder) Put(key string, v Value) error {
	if v == nil {
		return ErrNilValue
	}
	if b.members == nil {
		b.members = make(map[string]Value)
	}
	b.members[key] = v
	return nil
}

// Len reports the number of distinct keys added since the last Build.
func (b *ObjectBuilder) Len() int { return len(b.members) }

// Build returns an Object containing the members added so far, and resets b
// to empty. The Object takes ownership of the members.
func (b *ObjectBuilder) Build() Object {
	o := Object{members: b.members}
	for _, v := range o.members {
		o.depth = max(o.depth, v.Depth())
	}
	*b = ObjectBuilder{}
	return o
}
