package blockdag

import (
	"sort"
)

// processOrphans drains the orphan pool after an acceptance. Every
// orphan whose parents have all become known is removed from the pool
// and accepted, in ascending orphan id order, and the scan repeats
// until a full pass accepts nothing. An explicit work loop is used
// rather than recursion so that large orphan cascades cannot exhaust
// the stack.
func (dag *BlockDAG) processOrphans() {
	for {
		accepted := false
		for _, orphanID := range dag.orphanIDs() {
			orphan := dag.orphans[orphanID]
			if !dag.allParentsKnown(orphan) {
				continue
			}
			delete(dag.orphans, orphanID)
			dag.acceptBlock(orphan)
			accepted = true
		}
		if !accepted {
			return
		}
	}
}

// orphanIDs returns the ids of all pooled orphans in ascending order.
func (dag *BlockDAG) orphanIDs() []int64 {
	ids := make([]int64, 0, len(dag.orphans))
	for id := range dag.orphans {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// MissingAncestors returns the ids an orphan's sub-DAG is still waiting
// for: every parent reference reachable through the orphan pool that is
// neither accepted nor itself pooled, in ascending order. The sync
// layer uses this to request the antipast of an orphan from the peer
// that announced it. Unknown or accepted ids yield an empty set.
func (dag *BlockDAG) MissingAncestors(id int64) []int64 {
	if _, ok := dag.orphans[id]; !ok {
		return nil
	}

	missing := make(map[int64]struct{})
	visited := map[int64]struct{}{id: {}}
	queue := []int64{id}
	for len(queue) > 0 {
		var current int64
		current, queue = queue[0], queue[1:]

		orphan, isOrphan := dag.orphans[current]
		if !isOrphan {
			continue
		}
		for _, parentID := range orphan.ParentIDs {
			if _, seen := visited[parentID]; seen {
				continue
			}
			visited[parentID] = struct{}{}
			if dag.HasBlock(parentID) {
				continue
			}
			if _, pooled := dag.orphans[parentID]; pooled {
				queue = append(queue, parentID)
				continue
			}
			missing[parentID] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(missing))
	for missingID := range missing {
		ids = append(ids, missingID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
