// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jcheck validates JSON documents with a strict parser.
//
// Usage:
//
//	jcheck check [--stream] [--max-depth N] [--canonical] [--indent S] [--select key ...] [FILE ...]
//	jcheck conformance DIR
//
// The check command parses each named file (or stdin, if none are given) and
// reports the location of the first error in each invalid input. With
// --canonical it also prints each value as compact JSON with object keys in
// sorted order; numbers keep the text they had in the input. The conformance
// command runs a directory of JSONTestSuite files.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// CLI defines the command-line interface.
type CLI struct {
	Config  string `help:"Path to a YAML configuration file." short:"c" type:"path"`
	Verbose bool   `help:"Enable debug logging." short:"v"`

	Check       checkCmd       `cmd:"" help:"Check that the inputs are valid JSON."`
	Conformance conformanceCmd `cmd:"" help:"Run a directory of conformance test files."`
}

// env carries the settings and I/O channels shared by commands.
type env struct {
	cfg    *Config
	logger log.Logger
	stdin  io.Reader
	stdout io.Writer
}

// errFailed reports that a command ran but its inputs did not pass. The
// details have already been logged.
var errFailed = errors.New("check failed")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "jcheck: %v\n", err)
		}
		os.Exit(1)
	}
}

// run parses args and executes the selected command.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("jcheck"),
		kong.Description("Validate JSON documents with a strict parser."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg := NewConfig()
	if cli.Config != "" {
		cfg, err = LoadConfig(cli.Config)
		if err != nil {
			return err
		}
	}
	if cli.Verbose {
		cfg.Verbose = true
	}
	return ctx.Run(&env{
		cfg:    cfg,
		logger: newLogger(stderr, cfg.Verbose),
		stdin:  stdin,
		stdout: stdout,
	})
}

// newLogger returns a logfmt logger writing to w. Debug messages are
// included only if verbose is true.
func newLogger(w io.Writer, verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	allow := level.AllowInfo()
	if verbose {
		allow = level.AllowDebug()
	}
	return level.NewFilter(logger, allow)
}
