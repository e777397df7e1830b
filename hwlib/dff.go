// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/rtlsim"

// DFF returns a clocked data flip flop.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
func DFF(name string) *rtlsim.Module {
	return Reg(name, 1, 0)
}

// Reg returns a N-bits register with the given reset value.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out(t) = in(t-1)
//
func Reg(name string, bits int, reset uint64) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	in, out := m.In(pIn, bits), m.Out(pOut, bits)
	m.Register(out, reset)
	m.OnClockEdge("latch", func(c *rtlsim.Circuit) { c.Write(out, c.Read(in)) })
	return m
}

// RegEn returns a N-bits register with load enable.
//
//	Inputs: in[bits], load
//	Outputs: out[bits]
//	Function: if load(t-1) { out(t) = in(t-1) } else { out(t) = out(t-1) }
//
func RegEn(name string, bits int, reset uint64) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	in, load, out := m.In(pIn, bits), m.In(pLoad, 1), m.Out(pOut, bits)
	m.Register(out, reset)
	m.OnClockEdge("latch", func(c *rtlsim.Circuit) {
		if c.Read(load) != 0 {
			c.Write(out, c.Read(in))
		}
	})
	return m
}

// Counter returns a N-bits free running counter.
//
//	Inputs: en
//	Outputs: out[bits]
//	Function: if en(t-1) { out(t) = out(t-1) + 1 } else { out(t) = out(t-1) }
//
func Counter(name string, bits int) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	en, out := m.In(pEn, 1), m.Out(pOut, bits)
	m.Register(out, 0)
	m.OnClockEdge("count", func(c *rtlsim.Circuit) {
		if c.Read(en) != 0 {
			c.Write(out, c.Read(out)+1)
		}
	})
	return m
}
