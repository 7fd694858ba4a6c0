package blockdag

import (
	"container/heap"
)

// baseHeap is an implementation for heap.Interface that sorts blocks by
// their ordering priority
type baseHeap []*blockNode

func (h baseHeap) Len() int      { return len(h) }
func (h baseHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *baseHeap) Push(x interface{}) {
	*h = append(*h, x.(*blockNode))
}

func (h *baseHeap) Pop() interface{} {
	oldHeap := *h
	oldLength := len(oldHeap)
	popped := oldHeap[oldLength-1]
	*h = oldHeap[0 : oldLength-1]
	return popped
}

// orderingHeap extends baseHeap with the GHOSTDAG emission priority:
// the greatest blue score first, then the earlier creation time, then
// the lesser id.
type orderingHeap struct{ baseHeap }

func (h orderingHeap) Less(i, j int) bool {
	a, b := h.baseHeap[i], h.baseHeap[j]
	if a.blueScore != b.blueScore {
		return a.blueScore > b.blueScore
	}
	if a.timeCreated() != b.timeCreated() {
		return a.timeCreated() < b.timeCreated()
	}
	return a.id() < b.id()
}

// blockHeap represents a mutable heap of blocks, popped in GHOSTDAG
// emission priority order
type blockHeap struct {
	impl heap.Interface
}

// newOrderingHeap initializes and returns a new blockHeap
func newOrderingHeap() blockHeap {
	h := blockHeap{impl: &orderingHeap{}}
	heap.Init(h.impl)
	return h
}

// pop removes the block with the greatest emission priority from this
// heap and returns it
func (bh blockHeap) pop() *blockNode {
	return heap.Pop(bh.impl).(*blockNode)
}

// push pushes the block onto the heap
func (bh blockHeap) push(node *blockNode) {
	heap.Push(bh.impl, node)
}

// Len returns the length of this heap
func (bh blockHeap) Len() int {
	return bh.impl.Len()
}
