// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/rtlsim"
)

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder(name string) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	a, b := m.In(pA, 1), m.In(pB, 1)
	s, cout := m.Out("s", 1), m.Out("c", 1)
	m.Combinational("eval", func(c *rtlsim.Circuit) {
		va, vb := c.Read(a), c.Read(b)
		c.Write(s, va^vb)
		c.Write(cout, va&vb)
	}, a, b)
	return m
}

// FullAdder returns a 3 bit adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder(name string) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	a, b, cin := m.In(pA, 1), m.In(pB, 1), m.In("cin", 1)
	s, cout := m.Out("s", 1), m.Out("cout", 1)
	m.Combinational("eval", func(c *rtlsim.Circuit) {
		sum := c.Read(a) + c.Read(b) + c.Read(cin)
		c.Write(s, sum)
		c.Write(cout, sum>>1)
	}, a, b, cin)
	return m
}

// Adder returns a N-bits adder.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//	Function: out = lsb(a + b)
//	          c = carry out of the most significant bit
//
func Adder(name string, bits int) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	a, b := m.In(pA, bits), m.In(pB, bits)
	out, cout := m.Out(pOut, bits), m.Out("c", 1)
	m.Combinational("eval", func(c *rtlsim.Circuit) {
		va, vb := c.Read(a), c.Read(b)
		sum := va + vb
		c.Write(out, sum)
		if bits == rtlsim.MaxWidth {
			// carry out of bit 63
			if sum < va {
				c.Write(cout, 1)
			} else {
				c.Write(cout, 0)
			}
			return
		}
		c.Write(cout, sum>>uint(bits))
	}, a, b)
	return m
}

// Inc returns a N-bits incrementer.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out = in + 1
//
func Inc(name string, bits int) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	in, out := m.In(pIn, bits), m.Out(pOut, bits)
	m.Combinational("eval", func(c *rtlsim.Circuit) { c.Write(out, c.Read(in)+1) }, in)
	return m
}
