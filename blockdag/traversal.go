package blockdag

// past returns the set of all ancestors of the node reachable via
// parent edges, excluding the node itself. Breadth-first from the
// node's parents.
func (dag *BlockDAG) past(node *blockNode) blockSet {
	past := newSet()
	queue := make([]*blockNode, 0, len(node.parents))
	for _, parent := range node.parents {
		queue = append(queue, parent)
	}

	for len(queue) > 0 {
		var current *blockNode
		current, queue = queue[0], queue[1:]
		if past.contains(current) {
			continue
		}
		past.add(current)
		for _, parent := range current.parents {
			if !past.contains(parent) {
				queue = append(queue, parent)
			}
		}
	}

	return past
}

// future returns the set of all descendants of the node reachable via
// child edges, excluding the node itself.
func (dag *BlockDAG) future(node *blockNode) blockSet {
	future := newSet()
	queue := make([]*blockNode, 0, len(node.children))
	for _, child := range node.children {
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		var current *blockNode
		current, queue = queue[0], queue[1:]
		if future.contains(current) {
			continue
		}
		future.add(current)
		for _, child := range current.children {
			if !future.contains(child) {
				queue = append(queue, child)
			}
		}
	}

	return future
}

// Past returns the ids of all ancestors of the block with the given id,
// excluding the block itself, in ascending order. Unknown ids yield an
// empty set.
func (dag *BlockDAG) Past(id int64) []int64 {
	node, ok := dag.index[id]
	if !ok {
		return nil
	}
	return dag.past(node).ids()
}

// Future returns the ids of all descendants of the block with the given
// id, excluding the block itself, in ascending order. Unknown ids yield
// an empty set.
func (dag *BlockDAG) Future(id int64) []int64 {
	node, ok := dag.index[id]
	if !ok {
		return nil
	}
	return dag.future(node).ids()
}

// Anticone returns the ids of all accepted blocks other than a and b
// that lie in neither the past nor the future of a, and in neither the
// past nor the future of b, in ascending order. If a and b are ordered
// relative to each other the anticone is empty by definition. Unknown
// ids yield an empty set.
func (dag *BlockDAG) Anticone(a, b int64) []int64 {
	nodeA, okA := dag.index[a]
	nodeB, okB := dag.index[b]
	if !okA || !okB {
		return nil
	}

	reach := newReachabilityCache(dag)
	if reach.isOrdered(nodeA, nodeB) {
		return nil
	}

	anticone := newSet()
	for _, node := range dag.index {
		if node == nodeA || node == nodeB {
			continue
		}
		if !reach.isOrdered(node, nodeA) && !reach.isOrdered(node, nodeB) {
			anticone.add(node)
		}
	}
	return anticone.ids()
}

// reachabilityCache memoizes past and future sets during a single
// colouring run. Past sets of accepted blocks are immutable, but future
// sets grow with the DAG, so the cache must not outlive the AddBlock
// call that created it.
type reachabilityCache struct {
	dag     *BlockDAG
	pasts   map[int64]blockSet
	futures map[int64]blockSet
}

func newReachabilityCache(dag *BlockDAG) *reachabilityCache {
	return &reachabilityCache{
		dag:     dag,
		pasts:   make(map[int64]blockSet),
		futures: make(map[int64]blockSet),
	}
}

func (rc *reachabilityCache) pastOf(node *blockNode) blockSet {
	past, ok := rc.pasts[node.id()]
	if !ok {
		past = rc.dag.past(node)
		rc.pasts[node.id()] = past
	}
	return past
}

func (rc *reachabilityCache) futureOf(node *blockNode) blockSet {
	future, ok := rc.futures[node.id()]
	if !ok {
		future = rc.dag.future(node)
		rc.futures[node.id()] = future
	}
	return future
}

// isOrdered returns whether a and b are comparable in the DAG's partial
// order, i.e. one lies in the past of the other.
func (rc *reachabilityCache) isOrdered(a, b *blockNode) bool {
	return rc.pastOf(b).contains(a) || rc.futureOf(b).contains(a)
}
