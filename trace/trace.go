// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package trace records signal values of a running circuit.
//
// A Recorder is an rtlsim.Probe: once registered with rtlsim.WithProbe, it is
// sampled after every clock cycle and forwards value changes to one or more
// sinks. This package provides a Value Change Dump sink (VCDSink) and an
// SQLite sink (SQLiteSink).
//
package trace

import (
	"strings"

	"github.com/db47h/rtlsim"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A Signal describes a traced port.
//
type Signal struct {
	Name  string
	Width int
}

// A Change is a new value for the signal at index Signal in the list passed
// to Sink.Begin.
//
type Change struct {
	Signal int
	Value  uint64
}

// A Sink receives value changes from a Recorder.
//
type Sink interface {
	// Begin is called once with the list of traced signals, before any call to
	// Record.
	Begin(signals []Signal) error
	// Record is called with the signals that changed at the given cycle. The
	// first call reports all signals.
	Record(cycle uint64, changes []Change) error
	Close() error
}

// Recorder samples a set of ports and forwards changes to sinks.
//
type Recorder struct {
	ports   []*rtlsim.Port
	signals []Signal
	last    []uint64
	changes []Change
	sinks   []Sink
	started bool
	now     uint64 // time of the last sample
	offset  uint64 // added to the cycle count after a circuit reset
	err     error
	log     logrus.FieldLogger
}

// NewRecorder returns a new recorder for the given ports. Signal names are
// the ports full names.
//
func NewRecorder(ports []*rtlsim.Port, sinks ...Sink) *Recorder {
	r := &Recorder{
		ports:   ports,
		signals: make([]Signal, len(ports)),
		last:    make([]uint64, len(ports)),
		sinks:   sinks,
		log:     logrus.StandardLogger(),
	}
	for i, p := range ports {
		r.signals[i] = Signal{Name: p.FullName(), Width: p.Width()}
	}
	return r
}

// Signals returns the traced signals.
//
func (r *Recorder) Signals() []Signal { return r.signals }

// Sample implements rtlsim.Probe. The first call reports the value of all
// signals, subsequent calls only report the signals that changed.
//
// Sinks receive a time that never goes backwards: when the circuit is reset,
// its cycle count restarts at 0 and the recorder keeps counting from the time
// of the last sample plus one.
//
// Sample stops recording after the first sink error. See Err.
//
func (r *Recorder) Sample(c *rtlsim.Circuit) {
	if r.err != nil {
		return
	}
	if !r.started {
		for _, s := range r.sinks {
			if err := s.Begin(r.signals); err != nil {
				r.fail(errors.Wrap(err, "begin trace"))
				return
			}
		}
	}
	now := c.Cycles() + r.offset
	if r.started && now < r.now {
		r.offset += r.now + 1 - now
		now = r.now + 1
	}
	r.now = now
	r.changes = r.changes[:0]
	for i, p := range r.ports {
		v := c.Read(p)
		if !r.started || v != r.last[i] {
			r.changes = append(r.changes, Change{Signal: i, Value: v})
			r.last[i] = v
		}
	}
	r.started = true
	if len(r.changes) == 0 {
		return
	}
	for _, s := range r.sinks {
		if err := s.Record(now, r.changes); err != nil {
			r.fail(errors.Wrapf(err, "record cycle %d", now))
			return
		}
	}
}

func (r *Recorder) fail(err error) {
	r.err = err
	r.log.WithError(err).Error("trace stopped")
}

// Err returns the first error returned by a sink.
//
func (r *Recorder) Err() error { return r.err }

// Close closes all sinks and returns the first error encountered while
// recording or closing.
//
func (r *Recorder) Close() error {
	err := r.err
	for _, s := range r.sinks {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close trace")
		}
	}
	return err
}

// Lookup returns the ports of top named by names. A name is either the name
// of a port of top or a dotted path relative to top, like "sub.port". If
// names is empty, Lookup returns the input and output ports of top.
//
func Lookup(top *rtlsim.Module, names []string) ([]*rtlsim.Port, error) {
	if len(names) == 0 {
		var ps []*rtlsim.Port
		for _, p := range top.Ports() {
			if k := p.Kind(); k == rtlsim.KindIn || k == rtlsim.KindOut {
				ps = append(ps, p)
			}
		}
		return ps, nil
	}
	ps := make([]*rtlsim.Port, 0, len(names))
	for _, n := range names {
		p, err := lookup(top, n)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func lookup(top *rtlsim.Module, name string) (*rtlsim.Port, error) {
	path := strings.Split(name, ".")
	m := top
	for _, sub := range path[:len(path)-1] {
		var next *rtlsim.Module
		for _, s := range m.Submodules() {
			if s.Name() == sub {
				next = s
				break
			}
		}
		if next == nil {
			return nil, errors.Errorf("signal %q: module %s has no submodule %q", name, m.Path(), sub)
		}
		m = next
	}
	pn := path[len(path)-1]
	for _, p := range m.Ports() {
		if p.Name() == pn {
			return p, nil
		}
	}
	return nil, errors.Errorf("signal %q: module %s has no port %q", name, m.Path(), pn)
}
