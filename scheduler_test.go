package rtlsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestScheduler returns a scheduler over cells reactions where deps[i]
// lists the reactions sensitive to cell i.
func newTestScheduler(cells int, reactions int, deps map[CellID][]int) *scheduler {
	reg := newRegistry(cells)
	for id, rs := range deps {
		for _, r := range rs {
			reg.add(id, r)
		}
	}
	return newScheduler(reg, reactions)
}

func TestScheduler_notify_idempotent(t *testing.T) {
	s := newTestScheduler(2, 3, map[CellID][]int{0: {0, 1}, 1: {1, 2}})
	s.notify(0)
	s.notify(0)
	s.notify(1)

	var order []int
	n, _, ok := s.drain(100, func(r int) { order = append(order, r) })
	require.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestScheduler_fifo(t *testing.T) {
	s := newTestScheduler(3, 3, map[CellID][]int{0: {2}, 1: {0}, 2: {1}})
	s.notify(0)
	s.notify(2)
	s.notify(1)

	var order []int
	_, _, ok := s.drain(100, func(r int) { order = append(order, r) })
	require.True(t, ok)
	assert.Equal(t, []int{2, 1, 0}, order)
}

func TestScheduler_drain_to_fixpoint(t *testing.T) {
	// 0 -> cell 1 -> 1 -> cell 2 -> 2
	s := newTestScheduler(3, 3, map[CellID][]int{0: {0}, 1: {1}, 2: {2}})
	var order []int
	run := func(r int) {
		order = append(order, r)
		if r < 2 {
			s.notify(CellID(r + 1))
		}
	}
	s.notify(0)
	n, _, ok := s.drain(100, run)
	require.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{0, 1, 2}, order)

	// nothing written since: no reaction runs
	n, _, ok = s.drain(100, run)
	require.True(t, ok)
	assert.Zero(t, n)
}

func TestScheduler_rescheduled_while_running(t *testing.T) {
	// reaction 0 is no longer pending while it runs, so it may be queued again.
	s := newTestScheduler(1, 1, map[CellID][]int{0: {0}})
	runs := 0
	s.notify(0)
	n, _, ok := s.drain(100, func(r int) {
		runs++
		if runs < 3 {
			s.notify(0)
		}
	})
	require.True(t, ok)
	assert.Equal(t, 3, n)
}

func TestScheduler_cap(t *testing.T) {
	s := newTestScheduler(2, 2, map[CellID][]int{0: {0}, 1: {1}})
	s.notify(0)
	n, pending, ok := s.drain(10, func(r int) {
		s.notify(0)
		s.notify(1)
	})
	assert.False(t, ok)
	assert.Equal(t, 10, n)
	assert.ElementsMatch(t, []int{0, 1}, pending)
	assert.True(t, s.empty())
	assert.Equal(t, []bool{false, false}, s.pending)
}

func TestRegistry_add_dedup(t *testing.T) {
	r := newRegistry(2)
	r.add(1, 3)
	r.add(1, 3)
	r.add(1, 4)
	assert.Equal(t, []int{3, 4}, r.lookup(1))
	assert.Empty(t, r.lookup(0))
}
