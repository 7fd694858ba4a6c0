// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockdag

import (
	"sort"
)

// genesisMinerID is the miner id recorded on the genesis block.
const genesisMinerID = -1

// BlockDAG provides functions for working with the simulated block DAG.
// It includes functionality such as rejecting duplicate blocks, orphan
// handling, GHOSTDAG colouring, tip selection and total ordering.
//
// The BlockDAG is not safe for concurrent access: the simulator drives
// it from a single event loop, and every operation runs to completion.
// Callers that need concurrent ingestion must serialise access with an
// exclusive lock of their own.
type BlockDAG struct {
	// k is the GHOSTDAG anticone tolerance parameter. Fixed for the
	// lifetime of the store.
	k uint32

	// nextBlockID is the store-owned id counter. Genesis takes the
	// first value.
	nextBlockID int64

	// genesis is the genesis block node, created at construction.
	genesis *blockNode

	// index houses every accepted block, keyed by block id.
	index map[int64]*blockNode

	// tips is the set of accepted blocks with no accepted children.
	tips blockSet

	// orphans houses blocks whose parents are not all accepted, keyed
	// by block id.
	orphans map[int64]*Block
}

// New returns a BlockDAG containing only the genesis block, using the
// given GHOSTDAG k parameter. Genesis takes the store's first id (0),
// miner id -1, creation time 0, colour blue, blue score 1 and selected
// parent -1.
func New(k uint32) *BlockDAG {
	dag := &BlockDAG{
		k:       k,
		index:   make(map[int64]*blockNode),
		tips:    newSet(),
		orphans: make(map[int64]*Block),
	}

	genesisBlock := &Block{
		ID:          dag.NextBlockID(),
		MinerID:     genesisMinerID,
		TimeCreated: 0,
	}
	genesis := newBlockNode(genesisBlock, newSet())
	genesis.blues = setFromSlice(genesis)
	genesis.isBlue = true
	genesis.blueScore = 1

	dag.genesis = genesis
	dag.index[genesis.id()] = genesis
	dag.tips.add(genesis)

	return dag
}

// NextBlockID returns the next unused block id and advances the
// store-owned counter. The genesis block consumes the first value at
// construction, so external producers that draw ids from the store
// never collide with it.
func (dag *BlockDAG) NextBlockID() int64 {
	id := dag.nextBlockID
	dag.nextBlockID++
	return id
}

// K returns the DAG's anticone tolerance parameter.
func (dag *BlockDAG) K() uint32 {
	return dag.k
}

// AddBlock is the sole mutating entry point of the DAG.
//
// If any parent of the block is unknown the block is placed in the
// orphan pool and true is returned; no other state changes. Otherwise
// the block is accepted: it is indexed, the tip set is updated, the
// colouring engine assigns its colour, blue score and selected parent,
// and any orphans whose parents have all become known are drained into
// the DAG in ascending id order.
//
// A block whose id is already known - accepted or orphaned - is
// rejected as a no-op; re-delivery never mutates the store.
func (dag *BlockDAG) AddBlock(block *Block) (isOrphan bool) {
	if _, ok := dag.index[block.ID]; ok {
		return false
	}
	if _, ok := dag.orphans[block.ID]; ok {
		return true
	}

	if !dag.allParentsKnown(block) {
		dag.orphans[block.ID] = block
		return true
	}

	dag.acceptBlock(block)
	dag.processOrphans()
	return false
}

// allParentsKnown returns whether every parent of the block has been
// accepted.
func (dag *BlockDAG) allParentsKnown(block *Block) bool {
	for _, parentID := range block.ParentIDs {
		if _, ok := dag.index[parentID]; !ok {
			return false
		}
	}
	return true
}

// acceptBlock indexes the block, updates the tip set, and runs the
// colouring engine. The block's parents must all be accepted.
func (dag *BlockDAG) acceptBlock(block *Block) {
	parents := newSet()
	for _, parentID := range block.ParentIDs {
		parents.add(dag.index[parentID])
	}

	node := newBlockNode(block, parents)
	dag.index[node.id()] = node
	node.updateParentsChildren()

	for _, parent := range parents {
		dag.tips.remove(parent)
	}
	dag.tips.add(node)

	blueSet, selectedParent := dag.ghostdag(node)
	node.selectedParent = selectedParent
	node.blues = blueSet
	node.isBlue = blueSet.contains(node)
	node.blueScore = calculateBlueScore(node, blueSet)
}

// BlueSet returns the blue set frozen on the block at its acceptance:
// the ids of the blue ancestors it inherited plus its own id if it was
// admitted, in ascending order.
func (dag *BlockDAG) BlueSet(id int64) (blues []int64, ok bool) {
	node, ok := dag.index[id]
	if !ok {
		return nil, false
	}
	return node.blues.ids(), true
}

// HasBlock returns whether the block with the given id has been
// accepted into the DAG. Orphans are not accepted.
func (dag *BlockDAG) HasBlock(id int64) bool {
	_, ok := dag.index[id]
	return ok
}

// IsOrphan returns whether the block with the given id currently
// resides in the orphan pool.
func (dag *BlockDAG) IsOrphan(id int64) bool {
	_, ok := dag.orphans[id]
	return ok
}

// IsRed returns whether the accepted block with the given id was
// coloured red at its acceptance. Unknown ids return false.
func (dag *BlockDAG) IsRed(id int64) bool {
	node, ok := dag.index[id]
	if !ok {
		return false
	}
	return !node.isBlue
}

// BlueScore returns the blue score assigned to the block at its
// acceptance, and whether the block is known.
func (dag *BlockDAG) BlueScore(id int64) (blueScore uint64, ok bool) {
	node, ok := dag.index[id]
	if !ok {
		return 0, false
	}
	return node.blueScore, true
}

// SelectedParent returns the id of the parent with the greatest blue
// score of the accepted block with the given id, -1 for genesis, and
// whether the block is known.
func (dag *BlockDAG) SelectedParent(id int64) (selectedParentID int64, ok bool) {
	node, ok := dag.index[id]
	if !ok {
		return -1, false
	}
	return node.selectedParentID(), true
}

// BlockByID returns the accepted block with the given id.
func (dag *BlockDAG) BlockByID(id int64) (block *Block, ok bool) {
	node, ok := dag.index[id]
	if !ok {
		return nil, false
	}
	return node.block, true
}

// GetParents returns the parent blocks of the accepted block with the
// given id, ordered by ascending id. Unknown ids return an empty
// slice.
func (dag *BlockDAG) GetParents(id int64) []*Block {
	node, ok := dag.index[id]
	if !ok {
		return nil
	}
	return blocksFromSet(node.parents)
}

// GetChildren returns the accepted children of the block with the given
// id, ordered by ascending id. Unknown ids return an empty slice.
func (dag *BlockDAG) GetChildren(id int64) []*Block {
	node, ok := dag.index[id]
	if !ok {
		return nil
	}
	return blocksFromSet(node.children)
}

func blocksFromSet(set blockSet) []*Block {
	blocks := make([]*Block, 0, len(set))
	for _, node := range set.byIDAscending() {
		blocks = append(blocks, node.block)
	}
	return blocks
}

// Tips returns the ids of the current tips in ascending order.
func (dag *BlockDAG) Tips() []int64 {
	return dag.tips.ids()
}

// GetDagWidth returns the number of current tips.
func (dag *BlockDAG) GetDagWidth() int {
	return len(dag.tips)
}

// BlockCount returns the number of accepted blocks, genesis included.
func (dag *BlockDAG) BlockCount() int {
	return len(dag.index)
}

// OrphanCount returns the number of blocks currently in the orphan
// pool.
func (dag *BlockDAG) OrphanCount() int {
	return len(dag.orphans)
}

// SelectTip returns the id of the tip with the greatest blue score,
// breaking ties in favour of the lesser id. It returns -1 iff the tip
// set is empty, which cannot happen on a constructed DAG since genesis
// remains a tip until it has an accepted child.
func (dag *BlockDAG) SelectTip() int64 {
	selectedTip := int64(-1)
	found := false
	var maxBlueScore uint64

	for _, id := range dag.tips.ids() {
		tip := dag.tips[id]
		if !found || tip.blueScore > maxBlueScore {
			found = true
			maxBlueScore = tip.blueScore
			selectedTip = id
		}
	}

	return selectedTip
}

// sortedIndexIDs returns the ids of all accepted blocks in ascending
// order.
func (dag *BlockDAG) sortedIndexIDs() []int64 {
	ids := make([]int64, 0, len(dag.index))
	for id := range dag.index {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
