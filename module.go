// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import "strconv"

// A Reaction is a unit of behavior in a circuit. Reactions read and write
// ports through the Circuit they are given.
//
// For example, a combinational AND gate can be defined like this:
//
//	m := rtlsim.NewModule("and")
//	a, b, out := m.In("a", 1), m.In("b", 1), m.Out("out", 1)
//	m.Combinational("eval", func(c *rtlsim.Circuit) {
//		c.Write(out, c.Read(a)&c.Read(b))
//	}, a, b)
//
type Reaction func(c *Circuit)

type combinational struct {
	name   string
	fn     Reaction
	senses []*Port
}

type clockEdge struct {
	name string
	fn   Reaction
}

type register struct {
	port  *Port
	reset uint64
}

// A Module is a node in a circuit hierarchy. It owns ports, wires,
// submodules, and the reactions and registers that implement its behavior.
//
// Modules are assembled with the methods below, then elaborated into a
// runnable Circuit by NewCircuit. A module tree can only be elaborated once.
//
type Module struct {
	name   string
	parent *Module
	ports  []*Port
	byName map[string]*Port
	subs   []*Module
	comb   []combinational
	edge   []clockEdge
	regs   []register
	built  bool
}

// NewModule returns a new empty module.
//
func NewModule(name string) *Module {
	return &Module{name: name, byName: make(map[string]*Port)}
}

// Name returns the module name.
//
func (m *Module) Name() string { return m.name }

// Path returns the hierarchical name of the module.
//
func (m *Module) Path() string {
	if m.parent == nil {
		return m.name
	}
	return m.parent.Path() + "." + m.name
}

// Parent returns the parent module or nil for a top module.
//
func (m *Module) Parent() *Module { return m.parent }

// Submodules returns the submodules of m in the order they were added.
//
func (m *Module) Submodules() []*Module { return m.subs }

// Ports returns the ports of m in declaration order.
//
func (m *Module) Ports() []*Port { return m.ports }

func (m *Module) addPort(name string, kind Kind, width int) *Port {
	if _, ok := m.byName[name]; ok {
		panic("duplicate port " + name + " in module " + m.Path())
	}
	p := newPort(m, name, kind, width)
	m.ports = append(m.ports, p)
	m.byName[name] = p
	return p
}

// In declares an input port.
//
func (m *Module) In(name string, width int) *Port { return m.addPort(name, KindIn, width) }

// Out declares an output port.
//
func (m *Module) Out(name string, width int) *Port { return m.addPort(name, KindOut, width) }

// Wire declares an internal wire.
//
func (m *Module) Wire(name string, width int) *Port { return m.addPort(name, KindWire, width) }

// Const declares a constant source. A const port pre-owns its storage cell:
// every port connected to it shares that cell, and connecting two distinct
// constants together is a build error.
//
func (m *Module) Const(name string, width int, value uint64) *Port {
	p := m.addPort(name, KindConst, width)
	p.pre = newCell(p.width, value)
	p.pre.constant = true
	return p
}

// Port returns the named port. It panics if no such port exists.
//
func (m *Module) Port(name string) *Port {
	p, ok := m.byName[name]
	if !ok {
		panic("port " + name + " does not exist in module " + m.Path())
	}
	return p
}

// Bus returns the ports named name_0, name_1, ... name_(n-1).
//
func (m *Module) Bus(name string, n int) []*Port {
	ps := make([]*Port, n)
	for i := range ps {
		ps[i] = m.Port(BusName(name, i))
	}
	return ps
}

// Add adds sub as a submodule of m and returns it.
//
func (m *Module) Add(sub *Module) *Module {
	if sub.parent != nil {
		panic("module " + sub.name + " already has a parent")
	}
	if sub == m {
		panic("module " + m.name + " added to itself")
	}
	sub.parent = m
	m.subs = append(m.subs, sub)
	return sub
}

// Combinational registers a combinational reaction. fn is run during
// settlement every time one of the senses ports is written.
//
func (m *Module) Combinational(name string, fn Reaction, senses ...*Port) {
	m.comb = append(m.comb, combinational{name: name, fn: fn, senses: senses})
}

// OnClockEdge registers a clock-edge reaction. fn is run exactly once per
// cycle, after combinational logic has settled. It should only write to
// registers.
//
func (m *Module) OnClockEdge(name string, fn Reaction) {
	m.edge = append(m.edge, clockEdge{name: name, fn: fn})
}

// Register marks the cell behind p as a register with the given reset value.
//
func (m *Module) Register(p *Port, reset uint64) {
	m.regs = append(m.regs, register{port: p, reset: reset})
}

// BusName returns the name of the i-th port of a bus.
//
//	BusName("in", 2) // returns "in_2"
//
func BusName(name string, i int) string {
	return name + "_" + strconv.Itoa(i)
}
