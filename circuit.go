// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type reaction struct {
	name string
	fn   Reaction
}

// Circuit is a runnable circuit simulation.
//
// A Circuit is not safe for concurrent use.
//
type Circuit struct {
	top     *Module
	cells   []*cell
	members [][]*Port // CellID -> group members
	comb    []reaction
	edge    []reaction
	regs    []CellID
	reg     *registry
	sched   *scheduler
	cycles  uint64

	cfg     config
	log     logrus.Ext1FieldLogger
	metrics *metrics
}

// NewCircuit elaborates the module tree rooted at top into a new circuit.
//
// It resolves connectivity between ports, allocates one storage cell per
// connectivity group, then registers every reaction and register declared in
// the hierarchy. Build errors are fatal: the returned error is one of
// *ConflictError, *ResolveError, or a plain error for malformed hierarchies,
// possibly wrapped (use errors.Cause).
//
func NewCircuit(top *Module, opts ...Option) (*Circuit, error) {
	if top == nil {
		return nil, errors.New("nil top module")
	}
	cfg := config{maxIter: DefaultMaxIterations}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.log == nil {
		cfg.log = logrus.StandardLogger()
	}
	c := &Circuit{top: top, cfg: cfg, log: cfg.log.WithField("circuit", top.Path())}

	w := &walker{c: c}
	ports, err := w.collect(top, make(map[*Module]bool))
	if err != nil {
		return nil, err
	}
	if err = resolve(c, ports); err != nil {
		return nil, errors.Wrap(err, "resolve connectivity")
	}
	c.reg = newRegistry(len(c.cells))
	if err = w.register(); err != nil {
		c.unbind(ports)
		return nil, errors.Wrap(err, "register reactions")
	}
	c.sched = newScheduler(c.reg, len(c.comb))
	if c.metrics, err = newMetrics(cfg.metrics); err != nil {
		c.unbind(ports)
		return nil, err
	}
	for _, m := range w.modules {
		m.built = true
	}
	c.log.WithFields(logrus.Fields{
		"modules":       len(w.modules),
		"ports":         len(ports),
		"cells":         len(c.cells),
		"registers":     len(c.regs),
		"combinational": len(c.comb),
		"clock":         len(c.edge),
	}).Debug("circuit elaborated")
	return c, nil
}

func (c *Circuit) unbind(ports []*Port) {
	for _, p := range ports {
		p.c, p.id = nil, -1
	}
}

func (c *Circuit) cellOf(p *Port) *cell {
	if p == nil {
		panic("nil port")
	}
	if p.c != c {
		panic("port " + p.FullName() + " is not part of this circuit")
	}
	return c.cells[p.id]
}

// Read returns the current value of the net p is connected to, truncated to
// the width of p.
//
func (c *Circuit) Read(p *Port) uint64 {
	return c.cellOf(p).get() & p.mask
}

// Write drives the net p is connected to with value v truncated to the width
// of p.
//
// If the net is a wire, its value changes immediately and all the
// combinational reactions sensitive to it are scheduled. If it is a register,
// v is buffered and becomes visible on the next commit.
//
// Write panics if p is a constant.
//
func (c *Circuit) Write(p *Port, v uint64) {
	cl := c.cellOf(p)
	if cl.constant {
		panic("write to constant " + p.FullName())
	}
	if cl.set(v & p.mask) {
		c.sched.notify(p.id)
	}
}

// Cell returns the ID of the cell bound to p.
//
func (c *Circuit) Cell(p *Port) CellID {
	c.cellOf(p)
	return p.id
}

// Mode returns the update mode of the net p is connected to.
//
func (c *Circuit) Mode(p *Port) Mode {
	return c.cellOf(p).mode
}

// Settle runs pending combinational reactions until no reaction remains
// pending and returns the number of reactions run.
//
func (c *Circuit) Settle() (int, error) {
	n, pending, ok := c.sched.drain(c.cfg.maxIter, c.runComb)
	c.metrics.settled(n)
	if ok {
		return n, nil
	}
	err := &NonTerminationError{Iterations: n, Pending: make([]string, len(pending))}
	for i, r := range pending {
		err.Pending[i] = c.comb[r].name
	}
	c.log.WithField("pending", err.Pending).Warn("combinational logic did not settle")
	return n, err
}

func (c *Circuit) runComb(r int) { c.comb[r].fn(c) }

// Step advances the simulation by one clock cycle:
//
//	1. settle combinational logic
//	2. run every clock-edge reaction once, in registration order
//	3. commit all registers
//	4. increment the cycle counter
//
// If settlement fails, Step returns the error before any clock-edge reaction
// runs and the cycle counter is left unchanged.
//
func (c *Circuit) Step() error {
	if _, err := c.Settle(); err != nil {
		return errors.Wrapf(err, "cycle %d", c.cycles)
	}
	for i := range c.edge {
		c.edge[i].fn(c)
	}
	for _, id := range c.regs {
		c.cells[id].commit()
	}
	if c.cfg.commitNotify {
		for _, id := range c.regs {
			c.sched.notify(id)
		}
	}
	c.cycles++
	c.metrics.cycle(len(c.edge))
	c.log.Tracef("cycle %d committed", c.cycles)
	for _, p := range c.cfg.probes {
		p.Sample(c)
	}
	return nil
}

// Run runs n clock cycles and stops at the first error.
//
func (c *Circuit) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Reset restores every register to its reset value, drops pending reactions
// and resets the cycle counter. Wires keep their current value.
//
func (c *Circuit) Reset() {
	for _, id := range c.regs {
		c.cells[id].restore()
	}
	c.sched.clear()
	c.cycles = 0
	for _, p := range c.cfg.probes {
		p.Sample(c)
	}
}

// Cycles returns the number of clock cycles run since the circuit was built
// or last reset.
//
func (c *Circuit) Cycles() uint64 { return c.cycles }

// Top returns the top module of the circuit.
//
func (c *Circuit) Top() *Module { return c.top }

// Size returns the number of reactions in the circuit.
//
func (c *Circuit) Size() int { return len(c.comb) + len(c.edge) }

// Groups returns the resolved connectivity groups of the circuit, indexed by
// CellID.
//
func (c *Circuit) Groups() []Group {
	gs := make([]Group, len(c.cells))
	for i, cl := range c.cells {
		gs[i] = Group{
			Cell:    CellID(i),
			Width:   int(cl.width),
			Mode:    cl.mode,
			Members: names(c.members[i]),
		}
	}
	return gs
}
