// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstrict

import "fmt"

// A LineCol describes the line number and column of a location in source
// text. Both are 1-based, and columns count characters (runes), not bytes.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // character offset in line, 1-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// advance returns the location following lc after reading ch.
func (lc LineCol) advance(ch rune) LineCol {
	if ch == '\n' {
		return LineCol{Line: lc.Line + 1, Column: 1}
	}
	return LineCol{Line: lc.Line, Column: lc.Column + 1}
}
