// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jstrict implements a strict streaming JSON scanner and parser.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a scanner
// from an io.Reader and call HasNext and Next to iterate over its tokens:
//
//	s := jstrict.NewScanner(input)
//	for s.HasNext() {
//	   log.Printf("Next token: %v", s.Next())
//	}
//
// HasNext reports false at the end of input or on error. Err distinguishes
// the two:
//
//	if err := s.Err(); err != nil {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//
// String tokens are decoded: escape sequences are replaced, and a surrogate
// pair written as two \u escapes becomes a single rune. Number tokens are
// checked against the JSON number grammar.
//
// # Parsing
//
// The Parser type assembles tokens into immutable values of the value
// package. It keeps partially-built values on an explicit stack rather than
// recursing, so deeply-nested input cannot overflow the goroutine stack.
//
// To parse a single document, call Parse. Content after the first value is
// an error:
//
//	v, err := jstrict.NewParser(input, nil).Parse()
//
// To parse a stream of documents separated by whitespace, call Next until it
// returns io.EOF, or range over All:
//
//	p := jstrict.NewParser(input, nil)
//	for v, err := range p.All() {
//	   if err != nil {
//	      log.Fatalf("Parse failed: %v", err)
//	   }
//	   log.Printf("Value: %s", v.JSON())
//	}
//
// # Errors
//
// Malformed input is reported as an error of concrete type *SyntaxError,
// carrying the 1-based line and column of the problem. A SyntaxError is
// either Lexical (a malformed token) or Structural (a token out of place);
// use errors.Is with ErrLexical or ErrStructural to tell them apart. Errors
// from the underlying reader are returned unchanged.
package jstrict
