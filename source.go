// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstrict

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// A source reads runes from an input stream, tracking line and column
// locations. It can push back a single rune.
type source struct {
	in     io.Reader // as provided, for Close
	r      *bufio.Reader
	closed bool

	pos  LineCol // location of the next rune to read
	last LineCol // location of the most recently read rune

	// One-slot pushback buffer.
	ch     rune
	chBad  bool
	unread bool
}

func newSource(r io.Reader) *source {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &source{
		in:  r,
		r:   br,
		pos: LineCol{Line: 1, Column: 1},
	}
}

// rune reads the next rune from the input. The bad flag is true if the input
// at this point is not valid UTF-8. At the end of input it returns io.EOF.
func (s *source) rune() (ch rune, bad bool, err error) {
	if s.unread {
		s.unread = false
		ch, bad = s.ch, s.chBad
	} else {
		var nb int
		ch, nb, err = s.r.ReadRune()
		if err != nil {
			return 0, false, err
		}
		bad = ch == utf8.RuneError && nb == 1
	}
	s.ch, s.chBad = ch, bad
	s.last = s.pos
	s.pos = s.pos.advance(ch)
	return ch, bad, nil
}

// unrune pushes back the most recently read rune, so that the next call to
// rune returns it again. Only one rune of pushback is supported.
func (s *source) unrune() {
	if s.unread {
		panic("source: double unread")
	}
	s.unread = true
	s.pos = s.last
}

// Close closes the underlying reader, if it is an io.Closer. Only the first
// call has any effect.
func (s *source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if c, ok := s.in.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
