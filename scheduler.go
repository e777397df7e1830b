// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

// scheduler is a deduplicating FIFO of pending combinational reactions.
type scheduler struct {
	reg     *registry
	queue   []int
	head    int
	pending []bool
}

func newScheduler(reg *registry, reactions int) *scheduler {
	return &scheduler{reg: reg, pending: make([]bool, reactions)}
}

func (s *scheduler) schedule(r int) {
	if s.pending[r] {
		return
	}
	s.pending[r] = true
	s.queue = append(s.queue, r)
}

// notify schedules every reaction sensitive to cell id that is not already
// pending.
func (s *scheduler) notify(id CellID) {
	for _, r := range s.reg.lookup(id) {
		s.schedule(r)
	}
}

func (s *scheduler) empty() bool { return s.head == len(s.queue) }

func (s *scheduler) next() int {
	r := s.queue[s.head]
	s.head++
	s.pending[r] = false
	if s.head == len(s.queue) {
		s.queue, s.head = s.queue[:0], 0
	}
	return r
}

// snapshot returns the pending reactions in queue order.
func (s *scheduler) snapshot() []int {
	return append([]int(nil), s.queue[s.head:]...)
}

func (s *scheduler) clear() {
	for _, r := range s.queue[s.head:] {
		s.pending[r] = false
	}
	s.queue, s.head = s.queue[:0], 0
}

// drain runs pending reactions in FIFO order until the queue is empty.
// Reactions scheduled while draining are run within the same call. It returns
// the number of reactions run. If more than max reactions run, drain stops,
// clears the queue and returns the pending reactions with ok set to false.
func (s *scheduler) drain(max int, run func(r int)) (n int, pending []int, ok bool) {
	for !s.empty() {
		if n >= max {
			pending = s.snapshot()
			s.clear()
			return n, pending, false
		}
		run(s.next())
		n++
	}
	return n, nil, true
}
