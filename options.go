// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstrict

// Options are settings for a Parser. A nil *Options provides default values
// as described.
type Options struct {
	// If positive, the maximum nesting depth of arrays and objects the parser
	// will accept. By default nesting depth is limited only by memory.
	MaxDepth int

	// Initial capacity of the parser frame stack.
	// If zero, a small default is used.
	StackHint int
}

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return 0
	}
	return o.MaxDepth
}

func (o *Options) stackHint() int {
	if o == nil || o.StackHint <= 0 {
		return 16
	}
	return o.StackHint
}
