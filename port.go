// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import "strconv"

// Kind is the kind of an endpoint.
//
type Kind uint8

// Endpoint kinds. Directions are informative only: connectivity is
// undirected and any endpoint may be read or written by reactions.
//
const (
	KindIn Kind = iota
	KindOut
	KindWire
	KindConst
)

func (k Kind) String() string {
	switch k {
	case KindIn:
		return "in"
	case KindOut:
		return "out"
	case KindWire:
		return "wire"
	case KindConst:
		return "const"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// A Port is a signal endpoint of a module: an input or output port, an
// internal wire or a constant. Ports are connected to each other with Connect.
// All ports transitively connected together share a single storage cell once
// the circuit is built.
//
type Port struct {
	name  string
	kind  Kind
	width uint
	mask  uint64
	owner *Module
	conns []*Port
	pre   *cell // pre-owned cell, const ports only

	// set by the resolver
	c  *Circuit
	id CellID
}

func newPort(m *Module, name string, kind Kind, width int) *Port {
	if width <= 0 || width > MaxWidth {
		panic("invalid width " + strconv.Itoa(width) + " for port " + name)
	}
	return &Port{
		name:  name,
		kind:  kind,
		width: uint(width),
		mask:  mask(uint(width)),
		owner: m,
		id:    -1,
	}
}

// Name returns the port name, local to its module.
//
func (p *Port) Name() string { return p.name }

// FullName returns the hierarchical name of the port, like "top.alu.a".
//
func (p *Port) FullName() string {
	if p.owner == nil {
		return p.name
	}
	return p.owner.Path() + "." + p.name
}

// Kind returns the port kind.
//
func (p *Port) Kind() Kind { return p.kind }

// Width returns the declared bit width of p.
//
func (p *Port) Width() int { return int(p.width) }

// Mask returns a bit mask covering the declared width of p.
//
func (p *Port) Mask() uint64 { return p.mask }

func (p *Port) String() string { return p.FullName() }

// Connect connects two ports. Connections are undirected and transitive:
// connecting a to b and b to c puts a, b and c on the same net.
//
func Connect(a, b *Port) {
	if a == nil || b == nil {
		panic("connect: nil port")
	}
	if a == b {
		return
	}
	a.conns = append(a.conns, b)
	b.conns = append(b.conns, a)
}

// ConnectAll connects all the given ports to the first one.
//
func ConnectAll(ps ...*Port) {
	for i := 1; i < len(ps); i++ {
		Connect(ps[0], ps[i])
	}
}
