// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstrict

import "fmt"

// Kind is the type of a lexical token in the JSON grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // invalid token
	LBrace              // left brace "{"
	RBrace              // right brace "}"
	LSquare             // left square bracket "["
	RSquare             // right square bracket "]"
	Comma               // comma ","
	Colon               // colon ":"
	Number              // number
	String              // quoted string
	True                // constant: true
	False               // constant: false
	Null                // constant: null
)

var kindStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// A Token is a single lexical token read by a Scanner.
type Token struct {
	Kind Kind

	// For String, the decoded contents without quotation marks.
	// For Number, the numeral as written.
	// For other kinds, the canonical text of the token.
	Text string

	// The location of the first character of the token.
	Pos LineCol
}

// String renders a human-readable description of t for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case String:
		return fmt.Sprintf("string %q", t.Text)
	case Number:
		return "number " + t.Text
	default:
		return t.Kind.String()
	}
}

// punct maps each self-delimiting character to its token.
var punct = map[rune]Token{
	'{': {Kind: LBrace, Text: "{"},
	'}': {Kind: RBrace, Text: "}"},
	'[': {Kind: LSquare, Text: "["},
	']': {Kind: RSquare, Text: "]"},
	',': {Kind: Comma, Text: ","},
	':': {Kind: Colon, Text: ":"},
}
