// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// DefaultMaxIterations is the default cap on the number of combinational
// reactions run during a single settlement.
//
const DefaultMaxIterations = 1 << 16

// A Probe observes a circuit after every clock cycle.
//
// Probes are sampled by Step right after registers are committed and before
// the next settlement. With WithCommitNotify(true), combinational outputs
// that depend on registers still hold the values computed before the clock
// edge; call Settle from the probe if it needs settled values. Reset also
// samples every probe once registers are restored.
//
type Probe interface {
	Sample(c *Circuit)
}

// ProbeFunc adapts a function to the Probe interface.
//
type ProbeFunc func(c *Circuit)

// Sample calls f(c).
//
func (f ProbeFunc) Sample(c *Circuit) { f(c) }

type config struct {
	maxIter      int
	commitNotify bool
	log          logrus.Ext1FieldLogger
	metrics      prometheus.Registerer
	probes       []Probe
}

// An Option configures a Circuit.
//
type Option func(*config)

// WithMaxIterations sets the maximum number of combinational reactions run
// during a single settlement before Step or Settle give up with a
// *NonTerminationError. Values <= 0 select DefaultMaxIterations.
//
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = DefaultMaxIterations
		}
		c.maxIter = n
	}
}

// WithCommitNotify controls whether register commits schedule the
// combinational reactions sensitive to registers.
//
// When disabled (the default), a reaction sensitive only to a register does not
// run when the register changes on commit, but only when the register cell
// is explicitly notified by some other write. When enabled, every register
// cell is notified right after commit and dependent reactions run during
// the next settlement.
//
func WithCommitNotify(enable bool) Option {
	return func(c *config) { c.commitNotify = enable }
}

// WithLogger sets the logger used by the circuit. The default is the logrus
// standard logger.
//
func WithLogger(l logrus.Ext1FieldLogger) Option {
	return func(c *config) { c.log = l }
}

// WithMetrics registers the circuit's metrics with r.
//
func WithMetrics(r prometheus.Registerer) Option {
	return func(c *config) { c.metrics = r }
}

// WithProbe adds a probe called after every clock cycle and after Reset.
//
func WithProbe(p Probe) Option {
	return func(c *config) { c.probes = append(c.probes, p) }
}
