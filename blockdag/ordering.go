package blockdag

// ComputeOrdering returns a deterministic total order over all accepted
// blocks: parents always precede children, and among blocks whose
// parents have all been emitted the one with the greatest blue score
// comes first, ties broken by the earlier creation time and then the
// lesser id.
//
// The ordering is a pure function of the current index: calling it
// twice without an intervening acceptance yields identical sequences.
func (dag *BlockDAG) ComputeOrdering() []int64 {
	ordering := make([]int64, 0, len(dag.index))
	pendingParents := make(map[int64]int, len(dag.index))
	ready := newOrderingHeap()

	for _, id := range dag.sortedIndexIDs() {
		node := dag.index[id]
		pendingParents[id] = len(node.parents)
		if len(node.parents) == 0 {
			ready.push(node)
		}
	}

	for ready.Len() > 0 {
		current := ready.pop()
		ordering = append(ordering, current.id())

		for _, child := range current.children.byIDAscending() {
			pendingParents[child.id()]--
			if pendingParents[child.id()] == 0 {
				ready.push(child)
			}
		}
	}

	return ordering
}
