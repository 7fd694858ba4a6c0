package blockdag

import (
	"sort"
	"strconv"
	"strings"
)

// blockSet implements a basic unsorted set of blocks keyed by block id
type blockSet map[int64]*blockNode

// newSet creates a new, empty blockSet
func newSet() blockSet {
	return map[int64]*blockNode{}
}

// setFromSlice converts a slice of blocks into an unordered set
// represented as map
func setFromSlice(blocks ...*blockNode) blockSet {
	set := newSet()
	for _, node := range blocks {
		set.add(node)
	}
	return set
}

// add adds a block to this blockSet
func (bs blockSet) add(node *blockNode) {
	bs[node.id()] = node
}

// remove removes a block from this blockSet, if exists
// Does nothing if this set does not contain the block
func (bs blockSet) remove(node *blockNode) {
	delete(bs, node.id())
}

// clone clones this block set
func (bs blockSet) clone() blockSet {
	clone := newSet()
	for _, node := range bs {
		clone.add(node)
	}
	return clone
}

// contains returns true iff this set contains the block
func (bs blockSet) contains(node *blockNode) bool {
	_, ok := bs[node.id()]
	return ok
}

// containsID returns true iff this set contains a block with the given
// id
func (bs blockSet) containsID(id int64) bool {
	_, ok := bs[id]
	return ok
}

// ids returns the ids of the blocks in this set in ascending order.
// Iterating a blockSet through ids keeps every traversal of the DAG
// deterministic.
func (bs blockSet) ids() []int64 {
	ids := make([]int64, 0, len(bs))
	for id := range bs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// byIDAscending returns the blocks in this set ordered by ascending id
func (bs blockSet) byIDAscending() []*blockNode {
	nodes := make([]*blockNode, 0, len(bs))
	for _, node := range bs {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].id() < nodes[j].id() })
	return nodes
}

func (bs blockSet) String() string {
	ids := make([]string, 0, len(bs))
	for _, id := range bs.ids() {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	return strings.Join(ids, ",")
}
