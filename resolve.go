// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import "strconv"

// A Group describes a resolved connectivity group: the set of endpoints
// sharing a single storage cell.
//
type Group struct {
	Cell    CellID
	Width   int
	Mode    Mode
	Members []string
}

// resolver partitions endpoints into connectivity groups.
type resolver struct {
	ports  []*Port
	index  map[*Port]int
	parent []int
}

func newResolver(ports []*Port) *resolver {
	r := &resolver{
		ports:  ports,
		index:  make(map[*Port]int, len(ports)),
		parent: make([]int, len(ports)),
	}
	for i, p := range ports {
		r.index[p] = i
		r.parent[i] = i
	}
	return r
}

func (r *resolver) find(i int) int {
	for r.parent[i] != i {
		r.parent[i] = r.parent[r.parent[i]]
		i = r.parent[i]
	}
	return i
}

// union keeps the lowest index as root so that group order follows
// declaration order.
func (r *resolver) union(a, b int) {
	a, b = r.find(a), r.find(b)
	switch {
	case a == b:
		return
	case a < b:
		r.parent[b] = a
	default:
		r.parent[a] = b
	}
}

// groups returns the connectivity groups, ordered by their first member.
func (r *resolver) groups() ([][]*Port, error) {
	for i, p := range r.ports {
		for _, q := range p.conns {
			j, ok := r.index[q]
			if !ok {
				return nil, &ResolveError{
					Module: p.owner.Path(),
					Port:   p.name,
					Reason: "connected to " + q.FullName() + " which is not part of the circuit",
				}
			}
			r.union(i, j)
		}
	}
	slot := make(map[int]int)
	var gs [][]*Port
	for i, p := range r.ports {
		root := r.find(i)
		n, ok := slot[root]
		if !ok {
			n = len(gs)
			slot[root] = n
			gs = append(gs, nil)
		}
		gs[n] = append(gs[n], p)
	}
	return gs, nil
}

// resolve allocates one cell per connectivity group and binds every port to
// its group's cell.
func resolve(c *Circuit, ports []*Port) error {
	gs, err := newResolver(ports).groups()
	if err != nil {
		return err
	}
	cells := make([]*cell, 0, len(gs))
	for _, g := range gs {
		var (
			width uint
			pre   *cell
			owner *Port
		)
		for _, p := range g {
			if p.width > width {
				width = p.width
			}
			if p.pre == nil || p.pre == pre {
				continue
			}
			if pre != nil {
				return &ConflictError{
					Kind:   MergeConflict,
					Group:  names(g),
					Detail: "pre-owned cells of " + owner.FullName() + " and " + p.FullName(),
				}
			}
			pre, owner = p.pre, p
		}
		if pre == nil {
			pre = newCell(width, 0)
		} else if pre.width < width {
			return &ConflictError{
				Kind:  WidthMismatch,
				Group: names(g),
				Detail: owner.FullName() + " is " + strconv.Itoa(int(pre.width)) +
					" bits wide, group needs " + strconv.Itoa(int(width)),
			}
		}
		cells = append(cells, pre)
	}
	// bind only once every group resolved
	c.cells, c.members = cells, gs
	for id, g := range gs {
		for _, p := range g {
			p.c, p.id = c, CellID(id)
		}
	}
	return nil
}

func names(ps []*Port) []string {
	ns := make([]string, len(ps))
	for i, p := range ps {
		ns[i] = p.FullName()
	}
	return ns
}
