// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/rtlsim"
)

// Not returns a N-bits NOT gate.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out = ^in
//
func Not(name string, bits int) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	in, out := m.In(pIn, bits), m.Out(pOut, bits)
	m.Combinational("not", func(c *rtlsim.Circuit) { c.Write(out, ^c.Read(in)) }, in)
	return m
}

// GateFn is the function of a two inputs gate, applied bitwise.
//
type GateFn func(a, b uint64) uint64

// Gate returns a N-bits logic gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = f(a, b)
//
func Gate(name string, bits int, f GateFn) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	a, b, out := m.In(pA, bits), m.In(pB, bits), m.Out(pOut, bits)
	m.Combinational("eval", func(c *rtlsim.Circuit) {
		c.Write(out, f(c.Read(a), c.Read(b)))
	}, a, b)
	return m
}

// And returns a N-bits AND gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = a & b
//
func And(name string, bits int) *rtlsim.Module {
	return Gate(name, bits, func(a, b uint64) uint64 { return a & b })
}

// Nand returns a N-bits NAND gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = ^(a & b)
//
func Nand(name string, bits int) *rtlsim.Module {
	return Gate(name, bits, func(a, b uint64) uint64 { return ^(a & b) })
}

// Or returns a N-bits OR gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = a | b
//
func Or(name string, bits int) *rtlsim.Module {
	return Gate(name, bits, func(a, b uint64) uint64 { return a | b })
}

// Nor returns a N-bits NOR gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = ^(a | b)
//
func Nor(name string, bits int) *rtlsim.Module {
	return Gate(name, bits, func(a, b uint64) uint64 { return ^(a | b) })
}

// Xor returns a N-bits XOR gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = a ^ b
//
func Xor(name string, bits int) *rtlsim.Module {
	return Gate(name, bits, func(a, b uint64) uint64 { return a ^ b })
}

// Xnor returns a N-bits XNOR gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = ^(a ^ b)
//
func Xnor(name string, bits int) *rtlsim.Module {
	return Gate(name, bits, func(a, b uint64) uint64 { return ^(a ^ b) })
}

// OrNWay returns a N-Way OR gate.
//
//	Inputs: in_0 ... in_(ways-1)
//	Outputs: out
//	Function: out = in_0 | in_1 | ... | in_(ways-1)
//
func OrNWay(name string, ways int) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	in := bus(m, rtlsim.KindIn, pIn, ways, 1)
	out := m.Out(pOut, 1)
	m.Combinational("eval", func(c *rtlsim.Circuit) {
		for _, p := range in {
			if c.Read(p) != 0 {
				c.Write(out, 1)
				return
			}
		}
		c.Write(out, 0)
	}, in...)
	return m
}

// AndNWay returns a N-Way AND gate.
//
//	Inputs: in_0 ... in_(ways-1)
//	Outputs: out
//	Function: out = in_0 & in_1 & ... & in_(ways-1)
//
func AndNWay(name string, ways int) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	in := bus(m, rtlsim.KindIn, pIn, ways, 1)
	out := m.Out(pOut, 1)
	m.Combinational("eval", func(c *rtlsim.Circuit) {
		for _, p := range in {
			if c.Read(p) == 0 {
				c.Write(out, 0)
				return
			}
		}
		c.Write(out, 1)
	}, in...)
	return m
}
