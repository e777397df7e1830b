// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"fmt"
	"maps"
	"slices"
	"testing"

	"github.com/db47h/rtlsim"
	"github.com/pkg/errors"
)

// A Vector is one line of a test vector table. In maps input port names of
// the top module to the values to drive, Out maps output port names to their
// expected values.
//
type Vector struct {
	In  map[string]uint64 `yaml:"in"`
	Out map[string]uint64 `yaml:"out"`
}

// A Mismatch reports an output port that did not have the expected value.
//
type Mismatch struct {
	Vector int
	Cycle  uint64
	Port   string
	Want   uint64
	Got    uint64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("vector %d (cycle %d): %s = %#x, expected %#x", m.Vector, m.Cycle, m.Port, m.Got, m.Want)
}

// Apply runs the test vectors against c. For each vector, it writes the
// inputs, settles combinational logic, checks the outputs, then advances the
// clock by one cycle.
//
// Inputs are written in port name order. Apply returns all output mismatches
// and stops at the first simulation error. Unknown port names are reported as
// errors.
//
func Apply(c *rtlsim.Circuit, vectors []Vector) ([]Mismatch, error) {
	var ms []Mismatch
	top := c.Top()
	for i, v := range vectors {
		for _, name := range slices.Sorted(maps.Keys(v.In)) {
			p, err := lookup(top, name)
			if err != nil {
				return ms, errors.Wrapf(err, "vector %d", i)
			}
			c.Write(p, v.In[name])
		}
		if _, err := c.Settle(); err != nil {
			return ms, errors.Wrapf(err, "vector %d", i)
		}
		for _, name := range slices.Sorted(maps.Keys(v.Out)) {
			p, err := lookup(top, name)
			if err != nil {
				return ms, errors.Wrapf(err, "vector %d", i)
			}
			if got, want := c.Read(p), v.Out[name]; got != want {
				ms = append(ms, Mismatch{Vector: i, Cycle: c.Cycles(), Port: name, Want: want, Got: got})
			}
		}
		if err := c.Step(); err != nil {
			return ms, errors.Wrapf(err, "vector %d", i)
		}
	}
	return ms, nil
}

func lookup(m *rtlsim.Module, name string) (*rtlsim.Port, error) {
	for _, p := range m.Ports() {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, errors.Errorf("module %s has no port named %q", m.Name(), name)
}

// RunVectors applies the test vectors to c and reports every mismatch as a
// test error.
//
func RunVectors(t testing.TB, c *rtlsim.Circuit, vectors []Vector) {
	t.Helper()
	ms, err := Apply(c, vectors)
	for _, m := range ms {
		t.Error(m)
	}
	if err != nil {
		t.Fatal(err)
	}
}
