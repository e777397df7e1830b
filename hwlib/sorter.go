// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/rtlsim"
)

// SorterWidth is the width of the values sorted by Sorter and SorterFlat.
const SorterWidth = 16

// MinMax returns a N-bits comparator.
//
//	Inputs: a[bits], b[bits]
//	Outputs: min[bits], max[bits]
//	Function: if a >= b { max = a; min = b } else { max = b; min = a }
//
func MinMax(name string, bits int) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	a, b := m.In(pA, bits), m.In(pB, bits)
	lo, hi := m.Out("min", bits), m.Out("max", bits)
	m.Combinational("eval", func(c *rtlsim.Circuit) {
		lo1, hi1 := minmax(c.Read(a), c.Read(b))
		c.Write(lo, lo1)
		c.Write(hi, hi1)
	}, a, b)
	return m
}

func minmax(a, b uint64) (lo, hi uint64) {
	if a >= b {
		return b, a
	}
	return a, b
}

// SorterFlat returns a three stage pipelined sorter of four 16 bits values,
// with all its logic in a single module.
//
//	Inputs: in_0 ... in_3
//	Outputs: out_0 ... out_3
//	Function: out_0 <= out_1 <= out_2 <= out_3 is the sorted input of two
//	          cycles earlier.
//
// Stage A latches the inputs into the reg_AB registers. Stage B sorts
// (reg_AB_0, reg_AB_1) and (reg_AB_2, reg_AB_3) pairwise into the reg_BC
// registers. Stage C merges the two sorted pairs into the outputs.
//
// The stages are sensitive to the pipeline registers, so the circuit must be
// built with rtlsim.WithCommitNotify(true) for values to flow through it.
//
func SorterFlat(name string) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	in := bus(m, rtlsim.KindIn, pIn, 4, SorterWidth)
	out := bus(m, rtlsim.KindOut, pOut, 4, SorterWidth)
	ab := bus(m, rtlsim.KindWire, "reg_AB", 4, SorterWidth)
	bc := bus(m, rtlsim.KindWire, "reg_BC", 4, SorterWidth)
	b := bus(m, rtlsim.KindWire, "stage_B", 4, SorterWidth)
	for i := range ab {
		m.Register(ab[i], 0)
		m.Register(bc[i], 0)
	}

	m.OnClockEdge("reg_ab", func(c *rtlsim.Circuit) {
		for i := range ab {
			c.Write(ab[i], c.Read(in[i]))
		}
	})

	// stage_B_0/1 are the min/max of the first pair, 2/3 of the second.
	m.Combinational("stage_b", func(c *rtlsim.Circuit) {
		lo, hi := minmax(c.Read(ab[0]), c.Read(ab[1]))
		c.Write(b[0], lo)
		c.Write(b[1], hi)
		lo, hi = minmax(c.Read(ab[2]), c.Read(ab[3]))
		c.Write(b[2], lo)
		c.Write(b[3], hi)
	}, ab...)

	m.OnClockEdge("reg_bc", func(c *rtlsim.Circuit) {
		for i := range bc {
			c.Write(bc[i], c.Read(b[i]))
		}
	})

	m.Combinational("stage_c", func(c *rtlsim.Circuit) {
		c0min, c0max := minmax(c.Read(bc[0]), c.Read(bc[2]))
		c1min, c1max := minmax(c.Read(bc[1]), c.Read(bc[3]))
		c2min, c2max := minmax(c0max, c1min)
		c.Write(out[0], c0min)
		c.Write(out[1], c2min)
		c.Write(out[2], c2max)
		c.Write(out[3], c1max)
	}, bc...)
	return m
}

// Sorter returns the same sorter as SorterFlat, built from Reg and MinMax
// parts.
//
//	Inputs: in_0 ... in_3
//	Outputs: out_0 ... out_3
//
func Sorter(name string) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	bus(m, rtlsim.KindIn, pIn, 4, SorterWidth)
	bus(m, rtlsim.KindOut, pOut, 4, SorterWidth)

	m.Mount(Reg("reg_AB_0", SorterWidth, 0), "in=in_0, out=ab_0")
	m.Mount(Reg("reg_AB_1", SorterWidth, 0), "in=in_1, out=ab_1")
	m.Mount(Reg("reg_AB_2", SorterWidth, 0), "in=in_2, out=ab_2")
	m.Mount(Reg("reg_AB_3", SorterWidth, 0), "in=in_3, out=ab_3")

	m.Mount(MinMax("B0", SorterWidth), "a=ab_0, b=ab_1, min=b0_min, max=b0_max")
	m.Mount(MinMax("B1", SorterWidth), "a=ab_2, b=ab_3, min=b1_min, max=b1_max")

	m.Mount(Reg("reg_BC_0", SorterWidth, 0), "in=b0_min, out=bc_0")
	m.Mount(Reg("reg_BC_1", SorterWidth, 0), "in=b0_max, out=bc_1")
	m.Mount(Reg("reg_BC_2", SorterWidth, 0), "in=b1_min, out=bc_2")
	m.Mount(Reg("reg_BC_3", SorterWidth, 0), "in=b1_max, out=bc_3")

	m.Mount(MinMax("C0", SorterWidth), "a=bc_0, b=bc_2, min=out_0, max=c0_max")
	m.Mount(MinMax("C1", SorterWidth), "a=bc_1, b=bc_3, min=c1_min, max=out_3")
	m.Mount(MinMax("C2", SorterWidth), "a=c0_max, b=c1_min, min=out_1, max=out_2")
	return m
}
