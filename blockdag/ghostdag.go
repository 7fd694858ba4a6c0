package blockdag

// ghostdag computes the block's blue set and selected parent via the
// greedy k-cluster heuristic, relative to the parent with the greatest
// blue score.
//
// The blue set starts from the blue ancestors the selected parent
// inherited (read through each ancestor's frozen colour flag) plus the
// selected parent itself if blue. Every other block in the new block's
// past is then admitted in ascending id order iff the k-cluster
// property still holds with it, and finally the same admission test is
// applied to the new block itself. Candidate order and all tie-breaks
// are functions of the id ordering, so every node colours an identical
// DAG identically.
func (dag *BlockDAG) ghostdag(node *blockNode) (blueSet blockSet, selectedParent *blockNode) {
	reach := newReachabilityCache(dag)
	blueSet = newSet()

	past := reach.pastOf(node)
	if len(past) == 0 {
		// Genesis: its blue set is itself.
		blueSet.add(node)
		return blueSet, nil
	}

	selectedParent = selectedParentOf(node)

	for _, ancestor := range reach.pastOf(selectedParent).byIDAscending() {
		if ancestor.isBlue {
			blueSet.add(ancestor)
		}
	}
	if selectedParent.isBlue {
		blueSet.add(selectedParent)
	}

	for _, candidate := range past.byIDAscending() {
		if blueSet.contains(candidate) {
			continue
		}
		if dag.admitsToBlueSet(blueSet, candidate, reach) {
			blueSet.add(candidate)
		}
	}

	if dag.admitsToBlueSet(blueSet, node, reach) {
		blueSet.add(node)
	}

	return blueSet, selectedParent
}

// selectedParentOf returns the parent with the greatest blue score,
// ties broken by the lesser id.
func selectedParentOf(node *blockNode) *blockNode {
	var selected *blockNode
	for _, parent := range node.parents.byIDAscending() {
		if selected == nil || parent.blueScore > selected.blueScore {
			selected = parent
		}
	}
	return selected
}

// admitsToBlueSet returns whether blueSet extended with the candidate
// still satisfies the k-cluster property.
func (dag *BlockDAG) admitsToBlueSet(blueSet blockSet, candidate *blockNode, reach *reachabilityCache) bool {
	test := blueSet.clone()
	test.add(candidate)
	return dag.isKCluster(test, reach)
}

// isKCluster returns whether the set satisfies the k-cluster property:
// for every pair of members that are not ordered relative to each
// other, at most k other members lie in their joint anticone.
func (dag *BlockDAG) isKCluster(set blockSet, reach *reachabilityCache) bool {
	members := set.byIDAscending()
	for i, x := range members {
		for _, y := range members[i+1:] {
			if reach.isOrdered(x, y) {
				continue
			}

			count := uint32(0)
			for _, member := range members {
				if member == x || member == y {
					continue
				}
				if !reach.isOrdered(member, x) && !reach.isOrdered(member, y) {
					count++
					if count > dag.k {
						return false
					}
				}
			}
		}
	}
	return true
}

// IsKCluster returns whether the accepted blocks with the given ids
// satisfy the k-cluster property for the DAG's k. It is not used by
// acceptance; it is exposed for tests and audit. Ids that are not
// accepted blocks are ignored.
func (dag *BlockDAG) IsKCluster(ids []int64) bool {
	set := newSet()
	for _, id := range ids {
		if node, ok := dag.index[id]; ok {
			set.add(node)
		}
	}
	return dag.isKCluster(set, newReachabilityCache(dag))
}

// calculateBlueScore returns the count of blue-set members in the
// block's past, plus one if the block itself made it in. The blue set
// only ever contains ancestors of the block plus the block itself, so
// the defining count collapses to the set's size.
func calculateBlueScore(node *blockNode, blueSet blockSet) uint64 {
	return uint64(len(blueSet))
}
