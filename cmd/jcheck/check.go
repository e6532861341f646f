// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-kit/log/level"

	"github.com/creachadair/jstrict"
	"github.com/creachadair/jstrict/internal/conformance"
	"github.com/creachadair/jstrict/value"
	"github.com/creachadair/jstrict/value/cursor"
)

type checkCmd struct {
	Stream    bool     `help:"Treat each input as a stream of whitespace-separated values."`
	MaxDepth  int      `help:"Maximum nesting depth of arrays and objects (0 for no limit)." default:"-1"`
	Canonical bool     `help:"Print each value as compact JSON with sorted keys."`
	Indent    string   `help:"Print each value as indented JSON, indenting by this string per level."`
	Select    []string `help:"Print the value at this path of object keys and array indices." short:"s"`

	Files []string `arg:"" optional:"" help:"Input files (default stdin)."`
}

// apply merges the flags of c into cfg. Flags left at their defaults do not
// change the configured values.
func (c *checkCmd) apply(cfg *Config) {
	if c.Stream {
		cfg.Stream = true
	}
	if c.MaxDepth >= 0 {
		cfg.MaxDepth = c.MaxDepth
	}
	if c.Canonical {
		cfg.Canonical = true
	}
	if c.Indent != "" {
		cfg.Indent = c.Indent
	}
}

// Run checks each input, logging the first error in each invalid one.
func (c *checkCmd) Run(e *env) error {
	c.apply(e.cfg)
	enc, err := value.NewEncoder(e.stdout, e.cfg.encoderOptions())
	if err != nil {
		return err
	}
	path := selectPath(c.Select)
	emit := e.cfg.Canonical || e.cfg.Indent != "" || len(path) != 0

	inputs := c.Files
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	var nbad int
	for _, name := range inputs {
		n, err := c.checkFile(e, name, func(v value.Value) error {
			if !emit {
				return nil
			}
			if len(path) != 0 {
				c := cursor.New(v).Down(path...)
				if err := c.Err(); err != nil {
					return fmt.Errorf("select after %v: %w", c.Keys(), err)
				}
				v = c.Value()
			}
			return enc.Encode(v)
		})
		if err != nil {
			nbad++
			level.Error(e.logger).Log("msg", "invalid input", "file", name, "err", err)
			continue
		}
		level.Debug(e.logger).Log("msg", "input OK", "file", name, "values", n)
	}
	if nbad != 0 {
		level.Info(e.logger).Log("msg", "check failed", "inputs", len(inputs), "invalid", nbad)
		return errFailed
	}
	return nil
}

// checkFile parses the named input, calling f for each value. It returns the
// number of values parsed. The name "-" denotes stdin.
func (c *checkCmd) checkFile(e *env, name string, f func(value.Value) error) (int, error) {
	var r io.Reader = e.stdin
	if name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return 0, err
		}
		defer file.Close()
		r = file
	}
	p := jstrict.NewParser(r, e.cfg.parserOptions())
	if !e.cfg.Stream {
		v, err := p.Parse()
		if err != nil {
			return 0, err
		}
		return 1, f(v)
	}
	var n int
	for v, err := range p.All() {
		if err != nil {
			return n, err
		}
		n++
		if err := f(v); err != nil {
			return n, fmt.Errorf("value %d: %w", n, err)
		}
	}
	return n, nil
}

// selectPath converts path arguments to the form accepted by a cursor.
// Arguments that parse as integers are array indices.
func selectPath(args []string) []any {
	var out []any
	for _, arg := range args {
		if i, err := strconv.Atoi(arg); err == nil {
			out = append(out, i)
		} else {
			out = append(out, arg)
		}
	}
	return out
}

type conformanceCmd struct {
	Dir string `arg:"" help:"Directory of y_, n_, and i_ test files." type:"existingdir"`
}

// Run parses every test file in the directory and reports the results.
func (c *conformanceCmd) Run(e *env) error {
	rep, err := conformance.Run(os.DirFS(c.Dir), ".", e.cfg.parserOptions())
	if err != nil {
		return err
	}
	for _, res := range rep.Results {
		if res.Passed() {
			level.Debug(e.logger).Log("msg", "pass", "file", res.Path, "class", res.Class, "err", res.Err)
			continue
		}
		level.Warn(e.logger).Log("msg", "fail", "file", res.Path, "class", res.Class, "err", res.Err)
	}
	level.Info(e.logger).Log("msg", "conformance",
		"accept", rep.Accept, "accept_failed", rep.AcceptFailed,
		"reject", rep.Reject, "reject_failed", rep.RejectFailed,
		"indeterminate", rep.Indeterminate)
	fmt.Fprintf(e.stdout, "%d/%d accept, %d/%d reject, %d indeterminate\n",
		rep.Accept-rep.AcceptFailed, rep.Accept, rep.Reject-rep.RejectFailed, rep.Reject, rep.Indeterminate)
	if !rep.OK() {
		return errFailed
	}
	return nil
}
