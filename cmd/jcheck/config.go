// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/creachadair/jstrict"
	"github.com/creachadair/jstrict/value"
)

// Config holds settings for jcheck that may be loaded from a YAML file.
// Command-line flags override the values in the file.
type Config struct {
	MaxDepth        int    `yaml:"max_depth"`         // 0 for no limit
	Stream          bool   `yaml:"stream"`            // inputs are streams of values
	EscapeCacheSize int    `yaml:"escape_cache_size"` // 0 disables the cache
	Verbose         bool   `yaml:"verbose"`           // enable debug logging
	Canonical       bool   `yaml:"canonical"`         // print compact JSON with sorted keys
	Indent          string `yaml:"indent"`            // print indented JSON for each value
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{EscapeCacheSize: 256}
}

// LoadConfig loads configuration from a YAML file. Settings missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative, got %d", c.MaxDepth)
	}
	if c.EscapeCacheSize < 0 {
		return fmt.Errorf("escape_cache_size must be non-negative, got %d", c.EscapeCacheSize)
	}
	return nil
}

// parserOptions returns parser options reflecting c.
func (c *Config) parserOptions() *jstrict.Options {
	return &jstrict.Options{MaxDepth: c.MaxDepth}
}

// encoderOptions returns encoder options reflecting c.
func (c *Config) encoderOptions() *value.EncoderOptions {
	return &value.EncoderOptions{EscapeCacheSize: c.EscapeCacheSize, Indent: c.Indent}
}
