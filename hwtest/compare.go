// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/rtlsim"
	"github.com/pkg/errors"
)

// A NewModuleFn returns a new instance of a module.
//
type NewModuleFn func() *rtlsim.Module

// pinout returns the input and output ports of m in declaration order.
func pinout(m *rtlsim.Module) (in, out []*rtlsim.Port) {
	for _, p := range m.Ports() {
		switch p.Kind() {
		case rtlsim.KindIn:
			in = append(in, p)
		case rtlsim.KindOut:
			out = append(out, p)
		}
	}
	return in, out
}

func sameInterface(a, b []*rtlsim.Port) error {
	if len(a) != len(b) {
		return errors.Errorf("got %d ports, expected %d", len(b), len(a))
	}
	for i := range a {
		if a[i].Name() != b[i].Name() || a[i].Width() != b[i].Width() {
			return errors.Errorf("port %d is %s[%d], expected %s[%d]",
				i, b[i].Name(), b[i].Width(), a[i].Name(), a[i].Width())
		}
	}
	return nil
}

// ComparePart takes two modules and compares their outputs given the same
// inputs for the given number of clock cycles. Both modules must have the same
// input/output interface. Inputs are all zeros on the first cycle, all ones
// on the second, then random.
//
// Outputs are compared after settling combinational logic, before each clock
// edge. Both circuits are built with the same options.
//
func ComparePart(t testing.TB, cycles int, part1, part2 NewModuleFn, opts ...rtlsim.Option) {
	t.Helper()

	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))

	m1, m2 := part1(), part2()
	in1, out1 := pinout(m1)
	in2, out2 := pinout(m2)
	if err := sameInterface(in1, in2); err != nil {
		t.Fatalf("inputs: %v", err)
	}
	if err := sameInterface(out1, out2); err != nil {
		t.Fatalf("outputs: %v", err)
	}

	c1, err := rtlsim.NewCircuit(m1, opts...)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := rtlsim.NewCircuit(m2, opts...)
	if err != nil {
		t.Fatal(err)
	}

	inputs := make([]uint64, len(in1))
	errString := func(cycle int, o int, ex, got uint64) string {
		var b strings.Builder
		for i, p := range in1 {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%#x", p.Name(), inputs[i])
		}
		return fmt.Sprintf("\ncycle %d (seed %d)\nExpected %s => %s=%#x\nGot %#x", cycle, seed, b.String(), out1[o].Name(), ex, got)
	}

	start := time.Now()
	for cycle := 0; cycle < cycles; cycle++ {
		for i, p := range in1 {
			switch cycle {
			case 0:
				inputs[i] = 0
			case 1:
				inputs[i] = p.Mask()
			default:
				inputs[i] = rnd.Uint64() & p.Mask()
			}
			c1.Write(p, inputs[i])
			c2.Write(in2[i], inputs[i])
		}
		if _, err = c1.Settle(); err != nil {
			t.Fatal(err)
		}
		if _, err = c2.Settle(); err != nil {
			t.Fatal(err)
		}
		for o := range out1 {
			if ex, got := c1.Read(out1[o]), c2.Read(out2[o]); ex != got {
				t.Fatal(errString(cycle, o, ex, got))
			}
		}
		if err = c1.Step(); err != nil {
			t.Fatal(err)
		}
		if err = c2.Step(); err != nil {
			t.Fatal(err)
		}
	}

	elapsed := time.Since(start)
	t.Logf("%d+%d reactions. %d clock cycles in %v => %.2f Hz", c1.Size(), c2.Size(), cycles, elapsed, float64(cycles)/elapsed.Seconds())
}
