package simnet

import (
	"github.com/eramoss/ghostdagsim/blockdag"
)

// scheduleMining arms the miner's next block event. Inter-block times
// are exponential, scaled so that the whole network produces one block
// per target interval on average, split by hash-rate share.
func (n *Node) scheduleMining() {
	rate := (n.hashRate / n.sim.totalHashRate) / n.sim.params.TargetBlockInterval
	delay := n.sim.rng.ExpFloat64() / rate
	n.sim.schedule(delay, func() {
		n.mineBlock()
		n.scheduleMining()
	})
}

// mineBlock produces a block referencing every current tip of the
// miner's DAG, filled with mempool transactions up to the block size
// bound, and advertises it to all peers.
func (n *Node) mineBlock() {
	block := &blockdag.Block{
		ID:          n.sim.allocateBlockID(),
		MinerID:     n.id,
		TimeCreated: n.sim.clock,
		ParentIDs:   n.dag.Tips(),
	}

	budget := n.sim.params.MaxBlockSize - block.HeaderSizeInBytes()
	for _, transactionID := range n.mempool.TransactionIDs() {
		if budget < transactionEntrySize {
			break
		}
		block.TransactionIDs = append(block.TransactionIDs, transactionID)
		budget -= transactionEntrySize
	}
	block.SizeInBytes = block.TotalSizeInBytes()

	// The miner's own block can never be an orphan: its parents are the
	// miner's own tips.
	n.dag.AddBlock(block)
	n.stats.MinerGeneratedBlocks++
	n.stats.blockMined(block)
	n.afterBlockAccepted(block)
	n.advertiseBlock(block, nil)

	log.Debugf("Node %d mined block %d with %d parents and %d transactions",
		n.id, block.ID, len(block.ParentIDs), len(block.TransactionIDs))
}

// transactionEntrySize mirrors the per-transaction wire accounting of
// blockdag.Block.TotalSizeInBytes.
const transactionEntrySize = 4
