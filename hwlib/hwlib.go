// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for rtlsim.
//
// Every part is returned as a new *rtlsim.Module that can be mounted into a
// host module with Module.Mount, or used as the top module of a circuit.
// Buses of same-width ports are named name_0, name_1, etc. (see
// rtlsim.BusName).
//
package hwlib

import (
	"github.com/db47h/rtlsim"
)

// common port names
const (
	pA    = "a"
	pB    = "b"
	pIn   = "in"
	pSel  = "sel"
	pOut  = "out"
	pLoad = "load"
	pEn   = "en"
)

// bus declares n ports of the given kind and width named name_0 ... name_(n-1).
func bus(m *rtlsim.Module, kind rtlsim.Kind, name string, n, width int) []*rtlsim.Port {
	ps := make([]*rtlsim.Port, n)
	for i := range ps {
		bn := rtlsim.BusName(name, i)
		switch kind {
		case rtlsim.KindIn:
			ps[i] = m.In(bn, width)
		case rtlsim.KindOut:
			ps[i] = m.Out(bn, width)
		default:
			ps[i] = m.Wire(bn, width)
		}
	}
	return ps
}

// Output creates an output probe. f is called with the value of in every time
// it is written.
//
//	Inputs: in[bits]
//	Function: f(in)
//
func Output(name string, bits int, f func(uint64)) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	in := m.In(pIn, bits)
	m.Combinational("probe", func(c *rtlsim.Circuit) { f(c.Read(in)) }, in)
	return m
}
