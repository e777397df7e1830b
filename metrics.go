// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the circuit's prometheus collectors. A nil *metrics is valid
// and records nothing.
type metrics struct {
	cycles    prometheus.Counter
	reactions *prometheus.CounterVec
	settle    prometheus.Histogram
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	if r == nil {
		return nil, nil
	}
	m := &metrics{
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rtlsim_cycles_total",
			Help: "Total number of simulated clock cycles.",
		}),
		reactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtlsim_reactions_total",
			Help: "Total number of reactions run, by kind.",
		}, []string{"kind"}),
		settle: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rtlsim_settle_reactions",
			Help:    "Number of combinational reactions run per settlement.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	cs := []prometheus.Collector{m.cycles, m.reactions, m.settle}
	for i, c := range cs {
		if err := r.Register(c); err != nil {
			for _, c := range cs[:i] {
				r.Unregister(c)
			}
			return nil, errors.Wrap(err, "register metrics")
		}
	}
	return m, nil
}

func (m *metrics) settled(n int) {
	if m == nil {
		return
	}
	m.settle.Observe(float64(n))
	m.reactions.WithLabelValues("combinational").Add(float64(n))
}

func (m *metrics) cycle(edges int) {
	if m == nil {
		return
	}
	m.reactions.WithLabelValues("clock").Add(float64(edges))
	m.cycles.Inc()
}
