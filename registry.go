// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

// registry maps cells to the combinational reactions sensitive to them.
// It is only written to while the circuit is being built.
type registry struct {
	deps [][]int // CellID -> reaction indices
}

func newRegistry(cells int) *registry {
	return &registry{deps: make([][]int, cells)}
}

// add registers reaction r as sensitive to cell id. Registering the same pair
// twice is a no-op.
func (r *registry) add(id CellID, reaction int) {
	for _, x := range r.deps[id] {
		if x == reaction {
			return
		}
	}
	r.deps[id] = append(r.deps[id], reaction)
}

func (r *registry) lookup(id CellID) []int {
	return r.deps[id]
}
