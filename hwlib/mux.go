// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/rtlsim"
)

// Mux returns a N-bits multiplexer.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux(name string, bits int) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	a, b, sel := m.In(pA, bits), m.In(pB, bits), m.In(pSel, 1)
	out := m.Out(pOut, bits)
	m.Combinational("eval", func(c *rtlsim.Circuit) {
		if c.Read(sel) != 0 {
			c.Write(out, c.Read(b))
		} else {
			c.Write(out, c.Read(a))
		}
	}, a, b, sel)
	return m
}

// DMux returns a N-bits demultiplexer.
//
//	Inputs: in[bits], sel
//	Outputs: a[bits], b[bits]
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux(name string, bits int) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	in, sel := m.In(pIn, bits), m.In(pSel, 1)
	a, b := m.Out(pA, bits), m.Out(pB, bits)
	m.Combinational("eval", func(c *rtlsim.Circuit) {
		if c.Read(sel) != 0 {
			c.Write(a, 0)
			c.Write(b, c.Read(in))
		} else {
			c.Write(a, c.Read(in))
			c.Write(b, 0)
		}
	}, in, sel)
	return m
}

// MuxMWay returns a M-Way N-bits multiplexer. ways must be a power of two.
//
//	Inputs: in_0[bits] ... in_(ways-1)[bits], sel[log2(ways)]
//	Outputs: out[bits]
//	Function: out = in_sel
//
func MuxMWay(name string, ways, bits int) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	in := bus(m, rtlsim.KindIn, pIn, ways, bits)
	sel := m.In(pSel, log2(ways))
	out := m.Out(pOut, bits)
	m.Combinational("eval", func(c *rtlsim.Circuit) {
		c.Write(out, c.Read(in[c.Read(sel)]))
	}, append(in, sel)...)
	return m
}

func log2(n int) int {
	if n <= 0 || n&(n-1) != 0 {
		panic("not a power of two")
	}
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}
	if l == 0 {
		return 1
	}
	return l
}
