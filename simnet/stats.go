package simnet

import (
	"github.com/eramoss/ghostdagsim/blockdag"
)

// NodeStats is the per-node outcome of a run, mirroring what the node
// itself could observe: counts and colours from its own consensus
// core, plus transport accounting.
type NodeStats struct {
	NodeID               int64
	Region               string
	IsMiner              bool
	MinerGeneratedBlocks int

	TotalBlocks int
	BlueBlocks  int
	RedBlocks   int

	OrphansSeen int
	OrphanRate  float64

	MeanBlockReceiveTime     float64
	MeanBlockPropagationTime float64
	MeanBlockSize            float64
	MaxDagWidthSeen          int

	Connections   int
	BytesSent     int64
	BytesReceived int64

	// MempoolSimilarityScore is the Jaccard similarity between this
	// node's final mempool and the observer node's.
	MempoolSimilarityScore float64
}

// statsAccumulator carries the running aggregates a node updates while
// the simulation runs. The exported fields land in NodeStats verbatim;
// the rest are folded in at collection time.
type statsAccumulator struct {
	MinerGeneratedBlocks int
	OrphansSeen          int
	MaxDagWidthSeen      int
	BytesSent            int64
	BytesReceived        int64

	blocksReceived      int
	previousReceiveTime float64
	receiveIntervalSum  float64
	propagationSum      float64
	blockSizeSum        float64
}

// blockReceived folds a downloaded block into the running receive-time,
// propagation and size aggregates.
func (sa *statsAccumulator) blockReceived(now float64, block *blockdag.Block) {
	if sa.blocksReceived > 0 {
		sa.receiveIntervalSum += now - sa.previousReceiveTime
	}
	sa.previousReceiveTime = now
	sa.blocksReceived++
	sa.propagationSum += now - block.TimeCreated
	sa.blockSizeSum += float64(block.SizeInBytes)
}

// blockMined folds a self-produced block into the size aggregate only;
// it did not propagate to reach us.
func (sa *statsAccumulator) blockMined(block *blockdag.Block) {
	sa.blockSizeSum += float64(block.SizeInBytes)
}

// collectStats freezes a node's accumulators into the reported
// NodeStats, reading colours and counts out of the consensus core.
func collectStats(n *Node, observer *Node) NodeStats {
	stats := NodeStats{
		NodeID:               n.id,
		Region:               n.region.String(),
		IsMiner:              n.isMiner,
		MinerGeneratedBlocks: n.stats.MinerGeneratedBlocks,
		TotalBlocks:          n.dag.BlockCount(),
		OrphansSeen:          n.stats.OrphansSeen,
		MaxDagWidthSeen:      n.stats.MaxDagWidthSeen,
		Connections:          len(n.peers),
		BytesSent:            n.stats.BytesSent,
		BytesReceived:        n.stats.BytesReceived,
	}

	for _, id := range n.dag.ComputeOrdering() {
		if n.dag.IsRed(id) {
			stats.RedBlocks++
		} else {
			stats.BlueBlocks++
		}
	}

	if received := n.stats.blocksReceived; received > 0 {
		stats.MeanBlockPropagationTime = n.stats.propagationSum / float64(received)
		stats.OrphanRate = float64(n.stats.OrphansSeen) / float64(received)
		if received > 1 {
			stats.MeanBlockReceiveTime = n.stats.receiveIntervalSum / float64(received-1)
		}
	}
	if produced := n.stats.blocksReceived + n.stats.MinerGeneratedBlocks; produced > 0 {
		stats.MeanBlockSize = n.stats.blockSizeSum / float64(produced)
	}

	stats.MempoolSimilarityScore = mempoolSimilarity(n, observer)
	return stats
}

// mempoolSimilarity returns the Jaccard similarity of two nodes' final
// mempools: 1 when identical, and by convention 1 when both are empty.
func mempoolSimilarity(a, b *Node) float64 {
	observerIDs := b.mempool.TransactionIDs()
	intersection := a.mempool.IntersectionSize(observerIDs)
	union := a.mempool.Count() + len(observerIDs) - intersection
	if union == 0 {
		return 1
	}
	return float64(intersection) / float64(union)
}
