// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package value

import "fmt"

// Equal reports whether a and b are structurally equal: they have the same
// kind and, for numbers, the same numeric value; for arrays, pairwise equal
// elements in the same order; for objects, the same keys with pairwise equal
// values. A nil Value is equal only to nil.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x.Equal(y)
	case Array:
		y, ok := b.(Array)
		if !ok || x.Len() != y.Len() || x.depth != y.depth {
			return false
		}
		for i, v := range x.elems {
			if !Equal(v, y.elems[i]) {
				return false
			}
		}
		return true
	case Object:
		y, ok := b.(Object)
		if !ok || x.Len() != y.Len() || x.depth != y.depth {
			return false
		}
		for key, v := range x.members {
			w, ok := y.members[key]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("unknown value type %T", a))
	}
}
