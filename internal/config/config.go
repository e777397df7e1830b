// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads simulation run configurations.
package config

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/hwtest"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is a simulation run configuration.
type Config struct {
	// Circuit is the name of a built-in circuit.
	Circuit string `yaml:"circuit"`
	// Width is the number of requesters of arbiter circuits.
	Width int `yaml:"width"`
	// Cycles is the number of free running cycles after the test vectors.
	Cycles        int             `yaml:"cycles"`
	MaxIterations int             `yaml:"max_iterations"`
	CommitNotify  bool            `yaml:"commit_notify"`
	LogLevel      string          `yaml:"log_level"`
	Trace         Trace           `yaml:"trace"`
	Vectors       []hwtest.Vector `yaml:"vectors"`
}

// Trace configures signal tracing. Tracing is disabled when both VCD and
// SQLite are empty.
type Trace struct {
	VCD     string   `yaml:"vcd"`
	SQLite  string   `yaml:"sqlite"`
	Signals []string `yaml:"signals"`
}

// Enabled returns true if at least one trace output is configured.
func (t *Trace) Enabled() bool { return t.VCD != "" || t.SQLite != "" }

var validCircuits = map[string]bool{
	"arbiter": true, "arbiter-en": true, "sorter": true, "sorter-flat": true,
}

// Circuits returns the names of the built-in circuits in lexical order.
func Circuits() []string {
	names := make([]string, 0, len(validCircuits))
	for n := range validCircuits {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Circuit:       "arbiter",
		Width:         4,
		MaxIterations: rtlsim.DefaultMaxIterations,
		LogLevel:      "info",
	}
}

// Load reads and validates the configuration file at path. Fields missing
// from the file keep their default value.
// Uses strict parsing: unrecognized keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	cfg, err := Parse(bytes.NewReader(data))
	return cfg, errors.Wrapf(err, "config %s", path)
}

// Parse decodes and validates a configuration.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "parsing config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all fields in the configuration are valid.
func (c *Config) Validate() error {
	if !validCircuits[c.Circuit] {
		return errors.Errorf("unknown circuit %q; valid: %v", c.Circuit, Circuits())
	}
	if c.Width < 1 || c.Width > rtlsim.MaxWidth {
		return errors.Errorf("width must be in [1, %d], got %d", rtlsim.MaxWidth, c.Width)
	}
	if c.Cycles < 0 {
		return errors.Errorf("cycles must not be negative, got %d", c.Cycles)
	}
	if c.MaxIterations < 0 {
		return errors.Errorf("max_iterations must not be negative, got %d", c.MaxIterations)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	for i, v := range c.Vectors {
		if len(v.In) == 0 && len(v.Out) == 0 {
			return errors.Errorf("vectors[%d]: empty vector", i)
		}
	}
	return nil
}

// Options returns the circuit options for c.
func (c *Config) Options() []rtlsim.Option {
	return []rtlsim.Option{
		rtlsim.WithMaxIterations(c.MaxIterations),
		rtlsim.WithCommitNotify(c.CommitNotify),
	}
}
