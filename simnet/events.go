package simnet

import (
	"container/heap"
)

// event is a single scheduled callback on the simulation clock.
// Events at the same instant fire in scheduling order, which keeps a
// run fully deterministic under a fixed seed.
type event struct {
	time float64
	seq  uint64
	fn   func()
}

type eventQueue []*event

func (eq eventQueue) Len() int { return len(eq) }

func (eq eventQueue) Less(i, j int) bool {
	if eq[i].time != eq[j].time {
		return eq[i].time < eq[j].time
	}
	return eq[i].seq < eq[j].seq
}

func (eq eventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *eventQueue) Push(x interface{}) {
	*eq = append(*eq, x.(*event))
}

func (eq *eventQueue) Pop() interface{} {
	oldQueue := *eq
	oldLength := len(oldQueue)
	popped := oldQueue[oldLength-1]
	oldQueue[oldLength-1] = nil
	*eq = oldQueue[0 : oldLength-1]
	return popped
}

// schedule enqueues fn to run `delay` seconds after the current
// simulation time. Negative delays collapse to "now".
func (s *Simulation) schedule(delay float64, fn func()) {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	heap.Push(&s.events, &event{
		time: s.clock + delay,
		seq:  s.seq,
		fn:   fn,
	})
}

func (s *Simulation) nextEvent() *event {
	if len(s.events) == 0 {
		return nil
	}
	return heap.Pop(&s.events).(*event)
}
