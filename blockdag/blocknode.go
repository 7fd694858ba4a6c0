// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockdag

import (
	"fmt"
)

// blockNode represents a block within the block DAG. It carries the
// consensus state the colouring engine writes exactly once when the
// block is accepted; everything else is immutable from creation.
type blockNode struct {
	// block is the block this node indexes.
	block *Block

	// parents is the parent blocks for this node.
	parents blockSet

	// children are all the blocks that refer to this block as a parent
	children blockSet

	// selectedParent is the parent with the greatest blue score, ties
	// broken toward the lesser id. nil for genesis.
	selectedParent *blockNode

	// blues is the block's blue set as computed at its own acceptance:
	// the blue ancestors it inherited plus itself if admitted. Frozen
	// alongside the colour flag.
	blues blockSet

	// isBlue is the block's own colouring at its own acceptance. Later
	// blocks read this frozen flag instead of re-colouring ancestors.
	isBlue bool

	// blueScore is the count of blue blocks in this block's past, plus
	// one if the block itself is blue.
	blueScore uint64
}

// newBlockNode returns a new block node for the given block and parent
// nodes. The colouring fields are left zeroed; acceptance fills them.
func newBlockNode(block *Block, parents blockSet) *blockNode {
	return &blockNode{
		block:    block,
		parents:  parents,
		children: newSet(),
	}
}

// updateParentsChildren updates the node's parents to point to new node
func (node *blockNode) updateParentsChildren() {
	for _, parent := range node.parents {
		parent.children.add(node)
	}
}

func (node *blockNode) id() int64 {
	return node.block.ID
}

func (node *blockNode) timeCreated() float64 {
	return node.block.TimeCreated
}

// selectedParentID returns the id of the node's selected parent, or -1
// if the node has none (genesis).
func (node *blockNode) selectedParentID() int64 {
	if node.selectedParent == nil {
		return -1
	}
	return node.selectedParent.id()
}

// isGenesis returns if the current block is the genesis block
func (node *blockNode) isGenesis() bool {
	return len(node.parents) == 0
}

// String returns a string that contains the block id and blue score.
func (node *blockNode) String() string {
	return fmt.Sprintf("%d (%d)", node.id(), node.blueScore)
}
