// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstrict

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/creachadair/jstrict/internal/numeral"
	"go4.org/mem"
)

// scanState is the state of the lexical state machine.
type scanState byte

const (
	stInitial scanState = iota // between tokens
	stString                   // inside a quoted string
	stEscape                   // after a backslash in a string
	stUnicode                  // reading the hex digits of a \u escape
	stNumeral                  // accumulating a number
	stLiteral                  // accumulating true, false, or null
)

// A Scanner reads lexical tokens from an input stream. Call HasNext to
// advance to the next token, and Next to consume it:
//
//	s := jstrict.NewScanner(input)
//	for s.HasNext() {
//	   log.Printf("Next token: %v", s.Next())
//	}
//	if err := s.Err(); err != nil {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//
// A Scanner is not resumable after an error.
type Scanner struct {
	src   *source
	state scanState
	buf   bytes.Buffer // text of the current token
	start LineCol      // location of the current token

	hex  rune // value of the \u escape being read
	nhex int  // number of hex digits read so far
	high rune // pending high surrogate, or 0

	tok   Token // buffered token, if ready
	ready bool
	done  bool  // no further tokens will be produced
	err   error // the error that ended the scan, nil for end of input
}

// NewScanner constructs a new lexical scanner that consumes input from r.
// The scanner takes ownership of r: if r is an io.Closer, it is closed by
// the Close method of the scanner.
func NewScanner(r io.Reader) *Scanner { return &Scanner{src: newSource(r)} }

// HasNext reports whether another token is available, reading it from the
// input if necessary. It returns false at the end of the input or if an
// error occurs; use Err to distinguish these cases.
func (s *Scanner) HasNext() bool {
	if s.ready {
		return true
	} else if s.done {
		return false
	}
	tok, err := s.scan()
	if err != nil {
		s.done = true
		if err != io.EOF {
			s.err = err
		}
		return false
	}
	s.tok, s.ready = tok, true
	return true
}

// Next consumes and returns the token buffered by the most recent call to
// HasNext. It panics if HasNext was not called, or reported false.
func (s *Scanner) Next() Token {
	if !s.ready {
		panic("jstrict: Next called without a successful HasNext")
	}
	s.ready = false
	return s.tok
}

// Err returns the error that ended the scan, if any. It returns nil if the
// input was consumed without error. A malformed token is reported as a
// *SyntaxError; an error from the underlying reader is returned unchanged.
func (s *Scanner) Err() error { return s.err }

// Position reports the location of the next unread character of the input.
func (s *Scanner) Position() LineCol { return s.src.pos }

// Close closes the input of s, if it is an io.Closer. Only the first call
// to Close has any effect; subsequent calls return nil.
func (s *Scanner) Close() error { return s.src.Close() }

// scan reads the next complete token from the input. It returns io.EOF if
// the input ends between tokens.
func (s *Scanner) scan() (Token, error) {
	s.buf.Reset()
	s.state = stInitial
	s.high = 0
	for {
		ch, bad, err := s.src.rune()
		if err == io.EOF {
			return s.atEOF()
		} else if err != nil {
			return Token{}, err
		}
		if tok, ok, err := s.step(ch, bad); err != nil {
			return Token{}, err
		} else if ok {
			return tok, nil
		}
	}
}

// step advances the state machine by one input rune. It reports true when a
// complete token is available.
func (s *Scanner) step(ch rune, bad bool) (Token, bool, error) {
	switch s.state {
	case stInitial:
		if isSpace(ch) {
			return Token{}, false, nil
		}
		s.start = s.src.last
		if tok, ok := punct[ch]; ok {
			tok.Pos = s.start
			return tok, true, nil
		}
		switch {
		case bad:
			return Token{}, false, s.failf(s.start, "invalid UTF-8 in input")
		case ch == '"':
			s.state = stString
		case numeral.IsStart(ch):
			s.buf.WriteRune(ch)
			s.state = stNumeral
		case isNameRune(ch):
			s.buf.WriteRune(ch)
			s.state = stLiteral
		default:
			return Token{}, false, s.failf(s.start, "unexpected %q", ch)
		}

	case stString:
		if bad {
			return Token{}, false, s.failf(s.src.last, "invalid UTF-8 in string")
		}
		switch {
		case ch == '\\':
			s.state = stEscape
		case ch == '"':
			s.flushHigh()
			return s.token(String), true, nil
		case ch < ' ':
			return Token{}, false, s.failf(s.src.last, "unescaped control %q in string", ch)
		default:
			s.flushHigh()
			s.buf.WriteRune(ch)
		}

	case stEscape:
		if ch == 'u' {
			s.hex, s.nhex = 0, 0
			s.state = stUnicode
			return Token{}, false, nil
		}
		dec, ok := simpleEscape(ch)
		if !ok || bad {
			return Token{}, false, s.failf(s.src.last, "invalid %q after escape", ch)
		}
		s.flushHigh()
		s.buf.WriteByte(dec)
		s.state = stString

	case stUnicode:
		d, ok := hexValue(ch)
		if !ok || bad {
			return Token{}, false, s.failf(s.src.last, "invalid Unicode escape: not a hex digit: %q", ch)
		}
		s.hex = s.hex<<4 | d
		if s.nhex++; s.nhex == 4 {
			s.unit(s.hex)
			s.state = stString
		}

	case stNumeral:
		if numeral.IsMember(ch) {
			s.buf.WriteRune(ch)
			return Token{}, false, nil
		}
		s.src.unrune()
		tok, err := s.finishNumber()
		return tok, err == nil, err

	case stLiteral:
		if isNameRune(ch) {
			s.buf.WriteRune(ch)
			return Token{}, false, nil
		}
		s.src.unrune()
		tok, err := s.finishLiteral()
		return tok, err == nil, err

	default:
		panic(fmt.Sprintf("invalid scanner state %d", s.state))
	}
	return Token{}, false, nil
}

// atEOF handles the end of input in the current state.
func (s *Scanner) atEOF() (Token, error) {
	switch s.state {
	case stInitial:
		return Token{}, io.EOF
	case stNumeral:
		return s.finishNumber()
	case stLiteral:
		return s.finishLiteral()
	default:
		return Token{}, s.failf(s.src.pos, "unexpected end of input in string")
	}
}

func (s *Scanner) finishNumber() (Token, error) {
	if !numeral.Valid(s.buf.String()) {
		return Token{}, s.failf(s.start, "invalid number %q", s.buf.String())
	}
	return s.token(Number), nil
}

var literals = []struct {
	text string
	kind Kind
}{
	{"true", True},
	{"false", False},
	{"null", Null},
}

func (s *Scanner) finishLiteral() (Token, error) {
	got := mem.B(s.buf.Bytes())
	for _, lit := range literals {
		if got.EqualString(lit.text) {
			return Token{Kind: lit.kind, Text: lit.text, Pos: s.start}, nil
		}
	}
	return Token{}, s.failf(s.start, "unknown literal %q", got.StringCopy())
}

func (s *Scanner) token(kind Kind) Token {
	return Token{Kind: kind, Text: s.buf.String(), Pos: s.start}
}

// unit records a UTF-16 code unit decoded from a \u escape. A high surrogate
// is held until the next unit arrives, so that a valid surrogate pair decodes
// to a single rune. Unpaired surrogates become U+FFFD.
func (s *Scanner) unit(u rune) {
	if s.high != 0 && isLowSurrogate(u) {
		s.buf.WriteRune(utf16.DecodeRune(s.high, u))
		s.high = 0
		return
	}
	s.flushHigh()
	switch {
	case isHighSurrogate(u):
		s.high = u
	case utf16.IsSurrogate(u):
		s.buf.WriteRune(utf8.RuneError)
	default:
		s.buf.WriteRune(u)
	}
}

// flushHigh writes a replacement rune for an unpaired high surrogate.
func (s *Scanner) flushHigh() {
	if s.high != 0 {
		s.buf.WriteRune(utf8.RuneError)
		s.high = 0
	}
}

func (s *Scanner) failf(loc LineCol, msg string, args ...any) error {
	return &SyntaxError{
		Kind:     Lexical,
		Location: loc,
		Message:  fmt.Sprintf(msg, args...),
	}
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }

func isHighSurrogate(u rune) bool { return 0xd800 <= u && u < 0xdc00 }
func isLowSurrogate(u rune) bool  { return 0xdc00 <= u && u < 0xe000 }

func simpleEscape(ch rune) (byte, bool) {
	switch ch {
	case '"', '\\', '/':
		return byte(ch), true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

func hexValue(ch rune) (rune, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return ch - '0', true
	case 'a' <= ch && ch <= 'f':
		return ch - 'a' + 10, true
	case 'A' <= ch && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}
