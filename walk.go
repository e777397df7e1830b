// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import "github.com/pkg/errors"

// walker elaborates a module tree into a circuit.
type walker struct {
	c       *Circuit
	modules []*Module
}

// collect visits the module tree depth-first, parents before children, and
// returns every port in visiting order.
func (w *walker) collect(m *Module, seen map[*Module]bool) ([]*Port, error) {
	if seen[m] {
		return nil, errors.Errorf("module %s appears more than once in the hierarchy", m.Path())
	}
	if m.built {
		return nil, errors.Errorf("module %s is already part of a circuit", m.Path())
	}
	seen[m] = true
	w.modules = append(w.modules, m)
	ports := append([]*Port(nil), m.ports...)
	for _, sub := range m.subs {
		ps, err := w.collect(sub, seen)
		if err != nil {
			return nil, err
		}
		ports = append(ports, ps...)
	}
	return ports, nil
}

// cellOf returns the cell bound to p in the circuit being built.
func (w *walker) cellOf(m *Module, reaction string, p *Port) (CellID, error) {
	if p == nil {
		return -1, &ResolveError{Module: m.Path(), Reaction: reaction, Reason: "nil port"}
	}
	if p.c != w.c {
		return -1, &ResolveError{Module: m.Path(), Reaction: reaction, Port: p.FullName(),
			Reason: "port is not part of the circuit"}
	}
	return p.id, nil
}

// register populates the sensitivity registry, the clock-edge list and the
// register list from the modules collected by collect.
func (w *walker) register() error {
	c := w.c
	for _, m := range w.modules {
		for _, r := range m.comb {
			if r.fn == nil {
				return &ResolveError{Module: m.Path(), Reaction: r.name, Reason: "no function"}
			}
			idx := len(c.comb)
			c.comb = append(c.comb, reaction{name: m.Path() + "." + r.name, fn: r.fn})
			for _, p := range r.senses {
				id, err := w.cellOf(m, r.name, p)
				if err != nil {
					return err
				}
				c.reg.add(id, idx)
			}
		}
		for _, r := range m.edge {
			if r.fn == nil {
				return &ResolveError{Module: m.Path(), Reaction: r.name, Reason: "no function"}
			}
			c.edge = append(c.edge, reaction{name: m.Path() + "." + r.name, fn: r.fn})
		}
	}
	// registers go last so that sensitivities are resolved against final cells
	isReg := make(map[CellID]bool)
	for _, m := range w.modules {
		for _, r := range m.regs {
			id, err := w.cellOf(m, "", r.port)
			if err != nil {
				return err
			}
			cl := c.cells[id]
			switch {
			case cl.constant:
				return &ConflictError{Kind: ResetConflict, Group: names(c.members[id]),
					Detail: "constant declared as register by " + m.Path()}
			case isReg[id]:
				if cl.reset != r.reset&cl.mask {
					return &ConflictError{Kind: ResetConflict, Group: names(c.members[id]),
						Detail: "conflicting reset values"}
				}
				continue
			}
			isReg[id] = true
			cl.toRegister(r.reset)
			c.regs = append(c.regs, id)
		}
	}
	return nil
}
