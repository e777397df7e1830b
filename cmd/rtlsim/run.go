// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/hwtest"
	"github.com/db47h/rtlsim/internal/config"
	"github.com/db47h/rtlsim/trace"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRunCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a circuit against its test vectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd, cfg)
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&f.cycles, "cycles", 0, "Number of free running cycles after the test vectors")
	fs.StringVar(&f.vcd, "vcd", "", "Write a Value Change Dump to this file")
	fs.StringVar(&f.sqlite, "sqlite", "", "Record signal changes in this SQLite database")
	fs.StringSliceVar(&f.signals, "signals", nil, "Traced signals (default: top module inputs and outputs)")
	return cmd
}

func openSinks(ctx context.Context, cfg *config.Config, scope string) ([]trace.Sink, error) {
	var sinks []trace.Sink
	if cfg.Trace.VCD != "" {
		f, err := os.Create(cfg.Trace.VCD)
		if err != nil {
			return nil, errors.Wrap(err, "create vcd")
		}
		sinks = append(sinks, trace.NewVCDSink(f, scope))
	}
	if cfg.Trace.SQLite != "" {
		s, err := trace.OpenSQLiteSink(ctx, cfg.Trace.SQLite)
		if err != nil {
			for _, s := range sinks {
				s.Close()
			}
			return nil, err
		}
		sinks = append(sinks, s)
	}
	return sinks, nil
}

func run(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	top, err := build(cfg)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	opts := append(cfg.Options(),
		rtlsim.WithLogger(logrus.StandardLogger()),
		rtlsim.WithMetrics(reg))

	var rec *trace.Recorder
	if cfg.Trace.Enabled() {
		var (
			ports []*rtlsim.Port
			sinks []trace.Sink
		)
		if ports, err = trace.Lookup(top, cfg.Trace.Signals); err != nil {
			return err
		}
		if sinks, err = openSinks(ctx, cfg, top.Name()); err != nil {
			return err
		}
		rec = trace.NewRecorder(ports, sinks...)
		defer func() {
			if cerr := rec.Close(); err == nil {
				err = cerr
			}
		}()
		opts = append(opts, rtlsim.WithProbe(rec))
	}

	c, err := rtlsim.NewCircuit(top, opts...)
	if err != nil {
		return err
	}
	if rec != nil {
		rec.Sample(c)
	}

	start := time.Now()
	ms, err := hwtest.Apply(c, cfg.Vectors)
	for _, m := range ms {
		logrus.WithFields(logrus.Fields{
			"vector": m.Vector,
			"cycle":  m.Cycle,
			"port":   m.Port,
		}).Errorf("got %#x, expected %#x", m.Got, m.Want)
	}
	if err != nil {
		return err
	}
	if err = c.Run(cfg.Cycles); err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "circuit %s: %d vectors, %d cycles, %d mismatches\n", cfg.Circuit, len(cfg.Vectors), c.Cycles(), len(ms))
	logMetrics(reg, elapsed)
	if len(ms) > 0 {
		return errors.Errorf("%d mismatches", len(ms))
	}
	return nil
}

// logMetrics logs the totals of the counters in reg.
func logMetrics(reg *prometheus.Registry, elapsed time.Duration) {
	mfs, err := reg.Gather()
	if err != nil {
		logrus.WithError(err).Warn("gather metrics")
		return
	}
	fields := logrus.Fields{"elapsed": elapsed}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, l := range m.GetLabel() {
				name += "." + l.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				fields[name] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				fields[name+".count"] = m.GetHistogram().GetSampleCount()
			}
		}
	}
	logrus.WithFields(fields).Info("simulation complete")
}
