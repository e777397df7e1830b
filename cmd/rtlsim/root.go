// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"strings"

	"github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/hwlib"
	"github.com/db47h/rtlsim/internal/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// flags holds the command line flags. Flags that are set override the
// configuration file.
type flags struct {
	config       string
	circuit      string
	width        int
	cycles       int
	maxIter      int
	commitNotify bool
	logLevel     string
	vcd          string
	sqlite       string
	signals      []string
}

type circuit struct {
	build func(cfg *config.Config) *rtlsim.Module
	// pipelined circuits only work with commit notification.
	pipelined bool
}

var circuits = map[string]circuit{
	"arbiter": {build: func(cfg *config.Config) *rtlsim.Module {
		return hwlib.RoundRobinArbiter("arbiter", cfg.Width)
	}},
	"arbiter-en": {build: func(cfg *config.Config) *rtlsim.Module {
		return hwlib.RoundRobinArbiterEn("arbiter", cfg.Width)
	}},
	"sorter": {build: func(*config.Config) *rtlsim.Module {
		return hwlib.Sorter("sorter")
	}, pipelined: true},
	"sorter-flat": {build: func(*config.Config) *rtlsim.Module {
		return hwlib.SorterFlat("sorter")
	}, pipelined: true},
}

func newRootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "rtlsim",
		Short:         "Cycle-based digital logic simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "YAML configuration file")
	pf.StringVar(&f.circuit, "circuit", "", "Built-in circuit ("+strings.Join(config.Circuits(), ", ")+")")
	pf.IntVar(&f.width, "width", 0, "Number of requesters of arbiter circuits")
	pf.IntVar(&f.maxIter, "max-iterations", 0, "Maximum number of reactions per settlement")
	pf.BoolVar(&f.commitNotify, "commit-notify", false, "Notify register readers after each commit")
	pf.StringVar(&f.logLevel, "log", "", "Log level (trace, debug, info, warn, error, fatal, panic)")

	root.AddCommand(newRunCmd(&f), newGroupsCmd(&f))
	return root
}

// load loads the configuration file, if any, and applies the flags set on the
// command line.
func (f *flags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return nil, err
		}
	}
	fs := cmd.Flags()
	if fs.Changed("circuit") {
		cfg.Circuit = f.circuit
	}
	if fs.Changed("width") {
		cfg.Width = f.width
	}
	if fs.Changed("cycles") {
		cfg.Cycles = f.cycles
	}
	if fs.Changed("max-iterations") {
		cfg.MaxIterations = f.maxIter
	}
	if fs.Changed("commit-notify") {
		cfg.CommitNotify = f.commitNotify
	}
	if fs.Changed("log") {
		cfg.LogLevel = f.logLevel
	}
	if fs.Changed("vcd") {
		cfg.Trace.VCD = f.vcd
	}
	if fs.Changed("sqlite") {
		cfg.Trace.SQLite = f.sqlite
	}
	if fs.Changed("signals") {
		cfg.Trace.Signals = f.signals
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	logrus.SetLevel(level)
	return cfg, nil
}

func build(cfg *config.Config) (*rtlsim.Module, error) {
	ct, ok := circuits[cfg.Circuit]
	if !ok {
		return nil, errors.Errorf("no built-in circuit named %q", cfg.Circuit)
	}
	if ct.pipelined && !cfg.CommitNotify {
		logrus.WithField("circuit", cfg.Circuit).Warn("pipelined circuit without commit notification, outputs will not change")
	}
	return ct.build(cfg), nil
}
