// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import "strconv"

// MaxWidth is the maximum bit width of a port or cell.
//
const MaxWidth = 64

// A CellID identifies a storage cell in a Circuit. It is an index into the
// circuit's cell arena and stays valid for the lifetime of the circuit.
//
type CellID int

// Mode is the update mode of a cell.
//
type Mode uint8

// Cell modes. The mode of a cell is fixed once the circuit is built.
//
const (
	// ModeWire cells change immediately when written and schedule the
	// reactions sensitive to them.
	ModeWire Mode = iota
	// ModeRegister cells buffer writes and only change on commit.
	ModeRegister
)

func (m Mode) String() string {
	switch m {
	case ModeWire:
		return "wire"
	case ModeRegister:
		return "register"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// cell is the storage for one electrical net.
type cell struct {
	width uint
	mask  uint64
	value uint64
	next  uint64 // register mode only
	reset uint64 // register mode only
	mode  Mode
	// const cells are pre-owned by a Const port and may not be written.
	constant bool
}

func newCell(width uint, value uint64) *cell {
	m := mask(width)
	return &cell{width: width, mask: m, value: value & m}
}

func mask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return 1<<width - 1
}

// set stores v into the cell and reports whether dependents must be
// notified, which is only the case in wire mode.
func (c *cell) set(v uint64) bool {
	v &= c.mask
	if c.mode == ModeRegister {
		c.next = v
		return false
	}
	c.value = v
	return true
}

func (c *cell) get() uint64 { return c.value }

func (c *cell) commit() {
	c.value = c.next
}

// toRegister switches the cell to register mode with the given reset value.
func (c *cell) toRegister(reset uint64) {
	reset &= c.mask
	c.mode = ModeRegister
	c.reset = reset
	c.value = reset
	c.next = reset
}

func (c *cell) restore() {
	if c.mode == ModeRegister {
		c.value = c.reset
		c.next = c.reset
	}
}
