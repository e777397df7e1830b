// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/rtlsim"
)

// RoundRobinArbiter returns a round-robin arbiter for n requesters.
//
//	Inputs: reqs[n]
//	Outputs: grants[n]
//	Function: grants is one-hot for the first requester at or after the
//	          current priority position, wrapping around. When a grant is
//	          issued, priority moves to the requester after the granted one.
//
// The priority is held in a one-hot register named "priority", initially
// pointing at requester 0.
//
func RoundRobinArbiter(name string, n int) *rtlsim.Module {
	return newArbiter(name, n, false)
}

// RoundRobinArbiterEn returns a round-robin arbiter with an enable input.
//
//	Inputs: en, reqs[n]
//	Outputs: grants[n]
//	Function: like RoundRobinArbiter when en is set. When en is clear, grants
//	          is 0 and the priority does not change.
//
func RoundRobinArbiterEn(name string, n int) *rtlsim.Module {
	return newArbiter(name, n, true)
}

func newArbiter(name string, n int, withEn bool) *rtlsim.Module {
	m := rtlsim.NewModule(name)
	var en *rtlsim.Port
	if withEn {
		en = m.In(pEn, 1)
	}
	reqs, grants := m.In("reqs", n), m.Out("grants", n)
	prio := m.Wire("priority", n)
	m.Register(prio, 1)

	senses := []*rtlsim.Port{reqs, prio}
	if en != nil {
		senses = append(senses, en)
	}
	m.Combinational("grant", func(c *rtlsim.Circuit) {
		if en != nil && c.Read(en) == 0 {
			c.Write(grants, 0)
			return
		}
		c.Write(grants, arbitrate(c.Read(reqs), c.Read(prio), n))
	}, senses...)

	m.OnClockEdge("rotate", func(c *rtlsim.Circuit) {
		if en != nil && c.Read(en) == 0 {
			return
		}
		if g := c.Read(grants); g != 0 {
			c.Write(prio, rotl(g, n))
		}
	})
	return m
}

// arbitrate returns the one-hot grant for reqs given the one-hot priority
// prio over n requesters.
func arbitrate(reqs, prio uint64, n int) uint64 {
	if reqs == 0 {
		return 0
	}
	start := 0
	for prio > 1 {
		prio >>= 1
		start++
	}
	for i := 0; i < n; i++ {
		bit := uint64(1) << uint((start+i)%n)
		if reqs&bit != 0 {
			return bit
		}
	}
	return 0
}

// rotl rotates the n-bits value v left by one bit.
func rotl(v uint64, n int) uint64 {
	return v<<1 | v>>uint(n-1)
}
