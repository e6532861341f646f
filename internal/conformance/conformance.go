// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package conformance runs a parser against a directory of test files laid
// out in the manner of the JSONTestSuite collection described by "Parsing
// JSON is a Minefield", https://seriot.ch/projects/parsing_json.html.
//
// Each test is a file whose base name has the form <class>_<name>.json, where
// class is "y" (the input must be accepted), "n" (the input must be rejected),
// or "i" (either outcome is permitted). Other files are ignored.
package conformance

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/creachadair/jstrict"
)

// Class is the expected outcome of a test file.
type Class byte

const (
	Accept        Class = 'y' // the document must parse
	Reject        Class = 'n' // the document must fail to parse
	Indeterminate Class = 'i' // the document may or may not parse
)

func (c Class) String() string {
	switch c {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	case Indeterminate:
		return "indeterminate"
	}
	return fmt.Sprintf("Class(%d)", c)
}

// A Result records the outcome of a single test file.
type Result struct {
	Path  string // the path of the file within the test filesystem
	Class Class
	Err   error // the parse error, or nil if the document was accepted
}

// Passed reports whether r has the outcome its class requires.
func (r Result) Passed() bool {
	switch r.Class {
	case Accept:
		return r.Err == nil
	case Reject:
		return r.Err != nil
	}
	return true
}

// A Report summarizes the outcomes of a conformance run.
type Report struct {
	Results []Result

	Accept, AcceptFailed int // y_ files and how many of them failed to parse
	Reject, RejectFailed int // n_ files and how many of them parsed
	Indeterminate        int // i_ files
}

// OK reports whether every accept and reject test passed.
func (r *Report) OK() bool { return r.AcceptFailed == 0 && r.RejectFailed == 0 }

// Failures returns the results that did not pass.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed() {
			out = append(out, res)
		}
	}
	return out
}

// ClassOf reports the class of the test file with the given name, and
// whether name is a test file at all.
func ClassOf(name string) (Class, bool) {
	base := path.Base(name)
	if path.Ext(base) != ".json" {
		return 0, false
	}
	tag, rest, ok := strings.Cut(strings.TrimSuffix(base, ".json"), "_")
	if !ok || rest == "" || len(tag) != 1 {
		return 0, false
	}
	switch c := Class(tag[0]); c {
	case Accept, Reject, Indeterminate:
		return c, true
	}
	return 0, false
}

// Run parses every test file under root in fsys as a single JSON document
// with the given parser options, and reports the results in lexical order of
// path. Errors reading the filesystem end the run.
func Run(fsys fs.FS, root string, opts *jstrict.Options) (*Report, error) {
	rep := new(Report)
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		} else if d.IsDir() {
			return nil
		}
		class, ok := ClassOf(p)
		if !ok {
			return nil
		}
		perr, err := parseFile(fsys, p, opts)
		if err != nil {
			return err
		}
		rep.add(Result{Path: p, Class: class, Err: perr})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	switch res.Class {
	case Accept:
		r.Accept++
		if !res.Passed() {
			r.AcceptFailed++
		}
	case Reject:
		r.Reject++
		if !res.Passed() {
			r.RejectFailed++
		}
	case Indeterminate:
		r.Indeterminate++
	}
}

// parseFile reports the error from parsing the named file, if any. The
// second result reports a failure to open the file.
func parseFile(fsys fs.FS, name string, opts *jstrict.Options) (perr, err error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	_, perr = jstrict.NewParser(f, opts).Parse()
	var serr *jstrict.SyntaxError
	if perr != nil && !errors.As(perr, &serr) {
		return nil, fmt.Errorf("read %s: %w", name, perr)
	}
	return perr, nil
}
