// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstrict

import (
	"io"
	"strings"

	"github.com/creachadair/jstrict/value"
)

// Parse parses a single JSON document from r, which must contain nothing
// else but whitespace. If r is an io.Closer, it is not closed.
func Parse(r io.Reader) (value.Value, error) {
	return NewParser(io.NopCloser(r), nil).Parse()
}

// ParseString parses a single JSON document from s.
func ParseString(s string) (value.Value, error) {
	return NewParser(strings.NewReader(s), nil).Parse()
}

// ParseAll parses and returns all the JSON values in a stream read from r.
// In case of error, any complete values already parsed are returned along
// with the error. If r is an io.Closer, it is not closed.
func ParseAll(r io.Reader) ([]value.Value, error) {
	var vs []value.Value
	for v, err := range NewParser(io.NopCloser(r), nil).All() {
		if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}
