// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstrict

import (
	"fmt"
	"io"
	"iter"

	"github.com/creachadair/jstrict/value"
)

// frameKind identifies the variant of a parser stack frame.
type frameKind byte

const (
	fObject frameKind = iota + 1 // an object under construction
	fArray                       // an array under construction
	fName                        // an object key awaiting its value
	fColon                       // separator between key and value
	fComma                       // separator between members or elements
	fRoot                        // a complete top-level value
)

// A frame is a single element of the parser stack.
type frame struct {
	kind frameKind
	obj  value.ObjectBuilder // fObject
	arr  value.ArrayBuilder  // fArray
	name string              // fName
	root value.Value         // fRoot
}

// isEmpty reports whether f is an aggregate with no members yet.
func (f *frame) isEmpty() bool {
	switch f.kind {
	case fObject:
		return f.obj.Len() == 0
	case fArray:
		return f.arr.Len() == 0
	}
	return false
}

// A Parser reads JSON values from an input stream. The parser assembles
// values on an explicit stack rather than by recursion, so the depth of
// nesting it accepts is bounded only by memory (or by Options.MaxDepth).
//
// Parse reads a single JSON document. Next and All read a stream of
// documents separated by whitespace.
//
// A Parser is not safe for concurrent use. After any error, the parser is
// finished and every further call reports the same error.
type Parser struct {
	s     *Scanner
	stk   []frame
	depth int // number of open aggregates
	max   int // maximum depth, or 0 for no limit
	err   error
}

// NewParser constructs a Parser that reads input from r. The parser takes
// ownership of r; see Close.
func NewParser(r io.Reader, opts *Options) *Parser {
	return NewParserWithScanner(NewScanner(r), opts)
}

// NewParserWithScanner constructs a Parser that reads tokens from s.
func NewParserWithScanner(s *Scanner, opts *Options) *Parser {
	return &Parser{
		s:   s,
		stk: make([]frame, 0, opts.stackHint()),
		max: opts.maxDepth(),
	}
}

// Parse reads a single JSON value, which must be the only content of the
// input apart from whitespace. Empty input is reported as an unexpected end
// of input, and content after the value is reported as an error.
func (p *Parser) Parse() (value.Value, error) {
	v, err := p.Next()
	if err == io.EOF {
		return nil, p.setErr(p.failf(p.s.Position(), "unexpected end of input"))
	} else if err != nil {
		return nil, err
	}
	if p.s.HasNext() {
		tok := p.s.Next()
		return nil, p.setErr(p.failf(tok.Pos, "trailing content: unexpected %v", tok))
	} else if err := p.s.Err(); err != nil {
		return nil, p.setErr(err)
	}
	return v, nil
}

// Next reads the next JSON value from a stream of values. It returns io.EOF
// if the input holds no further values.
func (p *Parser) Next() (value.Value, error) {
	if p.err != nil {
		return nil, p.err
	}
	v, err := p.next()
	if err != nil {
		return nil, p.setErr(err)
	}
	return v, nil
}

// All returns an iterator over the values of a stream. Iteration ends at the
// end of input, or after the first error is yielded.
func (p *Parser) All() iter.Seq2[value.Value, error] {
	return func(yield func(value.Value, error) bool) {
		for {
			v, err := p.Next()
			if err == io.EOF || !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// Position reports the location of the next unread character of the input.
func (p *Parser) Position() LineCol { return p.s.Position() }

// Close closes the input of p, if it is an io.Closer. Only the first call to
// Close has any effect.
func (p *Parser) Close() error { return p.s.Close() }

func (p *Parser) setErr(err error) error {
	p.err = err
	p.stk = nil
	return err
}

func (p *Parser) next() (value.Value, error) {
	for {
		if n := len(p.stk); n != 0 && p.stk[n-1].kind == fRoot {
			v := p.stk[n-1].root
			p.pop()
			return v, nil
		}
		if !p.s.HasNext() {
			if err := p.s.Err(); err != nil {
				return nil, err
			} else if len(p.stk) == 0 {
				return nil, io.EOF
			}
			return nil, p.failf(p.s.Position(), "unexpected end of input")
		}
		if err := p.step(p.s.Next()); err != nil {
			return nil, err
		}
	}
}

// step applies a single token to the stack.
func (p *Parser) step(tok Token) error {
	top := p.top()
	switch tok.Kind {
	case Colon:
		if top != nil && top.kind == fName {
			p.push(frame{kind: fColon})
			return nil
		}

	case Comma:
		if top != nil && (top.kind == fObject || top.kind == fArray) && !top.isEmpty() {
			p.push(frame{kind: fComma})
			return nil
		}

	case LBrace, LSquare:
		if p.wantValue() {
			p.depth++
			if p.max > 0 && p.depth > p.max {
				return &SyntaxError{
					Kind:     Structural,
					Location: tok.Pos,
					Message:  fmt.Sprintf("nesting depth exceeds %d", p.max),
					err:      ErrMaxDepth,
				}
			}
			if tok.Kind == LBrace {
				p.push(frame{kind: fObject})
			} else {
				p.push(frame{kind: fArray})
			}
			return nil
		}

	case RBrace:
		if top != nil && top.kind == fObject {
			obj := top.obj.Build()
			p.pop()
			p.depth--
			return p.handle(obj, tok)
		}

	case RSquare:
		if top != nil && top.kind == fArray {
			arr := top.arr.Build()
			p.pop()
			p.depth--
			return p.handle(arr, tok)
		}

	case String:
		if p.wantName() {
			if top.kind == fComma {
				p.pop()
			}
			p.push(frame{kind: fName, name: tok.Text})
			return nil
		}
		return p.handle(value.String(tok.Text), tok)

	case Number:
		n, err := value.ParseNumber(tok.Text)
		if err != nil {
			return &SyntaxError{Kind: Lexical, Location: tok.Pos, Message: err.Error()}
		}
		return p.handle(n, tok)

	case True:
		return p.handle(value.True, tok)
	case False:
		return p.handle(value.False, tok)
	case Null:
		return p.handle(value.Null{}, tok)
	}
	return p.unexpected(tok)
}

// handle routes a complete value v, which ended at tok, to its destination:
// the root of the stack, an object member, or an array element.
func (p *Parser) handle(v value.Value, tok Token) error {
	n := len(p.stk)
	if n == 0 {
		p.push(frame{kind: fRoot, root: v})
		return nil
	}
	switch top := &p.stk[n-1]; top.kind {
	case fColon:
		// Stack: ... object name colon
		name := p.stk[n-2].name
		p.pop()
		p.pop()
		return p.stk[n-3].obj.Put(name, v)

	case fComma:
		// Stack: ... array comma
		if below := &p.stk[n-2]; below.kind == fArray {
			p.pop()
			return below.arr.Append(v)
		}

	case fArray:
		if top.isEmpty() {
			return top.arr.Append(v)
		}
	}
	return p.unexpected(tok)
}

// wantValue reports whether the stack is in a state to accept the start of a
// new value.
func (p *Parser) wantValue() bool {
	n := len(p.stk)
	if n == 0 {
		return true
	}
	switch top := &p.stk[n-1]; top.kind {
	case fColon:
		return true
	case fComma:
		return p.stk[n-2].kind == fArray
	case fArray:
		return top.isEmpty()
	}
	return false
}

// wantName reports whether the stack is in a state to accept an object key.
func (p *Parser) wantName() bool {
	n := len(p.stk)
	if n == 0 {
		return false
	}
	switch top := &p.stk[n-1]; top.kind {
	case fObject:
		return top.isEmpty()
	case fComma:
		return p.stk[n-2].kind == fObject
	}
	return false
}

func (p *Parser) top() *frame {
	if n := len(p.stk); n != 0 {
		return &p.stk[n-1]
	}
	return nil
}

func (p *Parser) push(f frame) { p.stk = append(p.stk, f) }

func (p *Parser) pop() {
	n := len(p.stk) - 1
	p.stk[n] = frame{} // release references
	p.stk = p.stk[:n]
}

func (p *Parser) unexpected(tok Token) error {
	return p.failf(tok.Pos, "unexpected %v", tok)
}

func (p *Parser) failf(loc LineCol, msg string, args ...any) error {
	return &SyntaxError{
		Kind:     Structural,
		Location: loc,
		Message:  fmt.Sprintf(msg, args...),
	}
}
