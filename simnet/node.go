package simnet

import (
	"github.com/eramoss/ghostdagsim/blockdag"
	"github.com/eramoss/ghostdagsim/mempool"
)

// Node is a single participant of the simulated network. It owns its
// consensus core and mempool and reacts to messages delivered by the
// simulation's event loop; all of its handlers run to completion on
// that loop, so the core never sees concurrent access.
type Node struct {
	id  int64
	sim *Simulation

	region        Region
	downloadSpeed float64
	uploadSpeed   float64
	peers         []*Node

	dag     *blockdag.BlockDAG
	mempool *mempool.Mempool

	isMiner  bool
	hashRate float64

	// requestedBlocks tracks outstanding block requests so that a
	// flood of inventories yields a single download.
	requestedBlocks map[int64]struct{}

	// requestedTransactions is the same guard for transaction gossip.
	requestedTransactions map[int64]struct{}

	// pendingOrphanBodies remembers the bodies of orphaned blocks so
	// their transactions can be purged once the orphans drain.
	pendingOrphanBodies map[int64][]int64

	stats statsAccumulator
}

func newNode(id int64, sim *Simulation, region Region) *Node {
	return &Node{
		id:                    id,
		sim:                   sim,
		region:                region,
		downloadSpeed:         regionDownloadSpeed[region],
		uploadSpeed:           regionUploadSpeed[region],
		dag:                   blockdag.New(sim.params.K),
		mempool:               mempool.New(),
		requestedBlocks:       make(map[int64]struct{}),
		requestedTransactions: make(map[int64]struct{}),
		pendingOrphanBodies:   make(map[int64][]int64),
	}
}

func (n *Node) isPeerOf(other *Node) bool {
	for _, peer := range n.peers {
		if peer == other {
			return true
		}
	}
	return false
}

// handleMessage dispatches a delivered message to its handler.
func (n *Node) handleMessage(from *Node, msg *message) {
	switch msg.kind {
	case invRelayBlock:
		n.handleBlockInv(from, msg.blockID)
	case reqRelayBlock:
		n.handleBlockRequest(from, msg.blockID)
	case msgBlock:
		n.receiveBlock(from, msg.block)
	case reqMissingAncestors:
		n.handleMissingAncestorsRequest(from, msg.missingIDs)
	case invTransaction:
		n.handleTransactionInv(from, msg.transactionID)
	case reqTransaction:
		n.handleTransactionRequest(from, msg.transactionID)
	case msgTransaction:
		n.receiveTransaction(from, msg.transaction)
	}
}

func (n *Node) handleBlockInv(from *Node, blockID int64) {
	if n.dag.HasBlock(blockID) || n.dag.IsOrphan(blockID) {
		return
	}
	if _, requested := n.requestedBlocks[blockID]; requested {
		return
	}
	n.requestedBlocks[blockID] = struct{}{}
	n.sim.sendMessage(n, from, &message{kind: reqRelayBlock, blockID: blockID})
}

func (n *Node) handleBlockRequest(from *Node, blockID int64) {
	block, ok := n.dag.BlockByID(blockID)
	if !ok {
		return
	}
	n.sim.sendMessage(n, from, &message{kind: msgBlock, block: block})
}

func (n *Node) handleMissingAncestorsRequest(from *Node, missingIDs []int64) {
	for _, blockID := range missingIDs {
		n.handleBlockRequest(from, blockID)
	}
}

// receiveBlock hands a downloaded block to the consensus core. An
// orphaned block triggers a request for its whole missing antipast
// from the delivering peer; an accepted block purges its transactions
// and is advertised onward.
func (n *Node) receiveBlock(from *Node, block *blockdag.Block) {
	delete(n.requestedBlocks, block.ID)
	if n.dag.HasBlock(block.ID) || n.dag.IsOrphan(block.ID) {
		return
	}

	n.stats.blockReceived(n.sim.clock, block)

	if isOrphan := n.dag.AddBlock(block); isOrphan {
		log.Tracef("Node %d orphaned block %d", n.id, block.ID)
		n.stats.OrphansSeen++
		n.pendingOrphanBodies[block.ID] = block.TransactionIDs
		if missing := n.dag.MissingAncestors(block.ID); len(missing) > 0 {
			n.sim.sendMessage(n, from, &message{kind: reqMissingAncestors, missingIDs: missing})
		}
		return
	}

	n.afterBlockAccepted(block)
	n.advertiseBlock(block, from)
}

// afterBlockAccepted updates the node's mempool and stats after the
// core accepted a block (and possibly drained orphans with it).
func (n *Node) afterBlockAccepted(block *blockdag.Block) {
	n.mempool.RemoveTransactions(block.TransactionIDs)

	for orphanID, body := range n.pendingOrphanBodies {
		if n.dag.HasBlock(orphanID) {
			n.mempool.RemoveTransactions(body)
			delete(n.pendingOrphanBodies, orphanID)
		}
	}

	if width := n.dag.GetDagWidth(); width > n.stats.MaxDagWidthSeen {
		n.stats.MaxDagWidthSeen = width
	}
}

// advertiseBlock sends a block inventory to every peer except the one
// the block came from.
func (n *Node) advertiseBlock(block *blockdag.Block, except *Node) {
	for _, peer := range n.peers {
		if peer == except {
			continue
		}
		n.sim.sendMessage(n, peer, &message{kind: invRelayBlock, blockID: block.ID})
	}
}

func (n *Node) handleTransactionInv(from *Node, transactionID int64) {
	if n.mempool.HasTransaction(transactionID) {
		return
	}
	if _, requested := n.requestedTransactions[transactionID]; requested {
		return
	}
	n.requestedTransactions[transactionID] = struct{}{}
	n.sim.sendMessage(n, from, &message{kind: reqTransaction, transactionID: transactionID})
}

func (n *Node) handleTransactionRequest(from *Node, transactionID int64) {
	transaction, ok := n.mempool.Transaction(transactionID)
	if !ok {
		return
	}
	n.sim.sendMessage(n, from, &message{kind: msgTransaction, transaction: transaction})
}

func (n *Node) receiveTransaction(from *Node, transaction *mempool.Transaction) {
	delete(n.requestedTransactions, transaction.ID)
	if n.mempool.HasTransaction(transaction.ID) {
		return
	}
	n.mempool.AddTransaction(transaction)
	n.advertiseTransaction(transaction, from)
}

// acceptLocalTransaction injects a transaction that originated at this
// node and gossips it to every peer.
func (n *Node) acceptLocalTransaction(transaction *mempool.Transaction) {
	n.mempool.AddTransaction(transaction)
	n.advertiseTransaction(transaction, nil)
}

func (n *Node) advertiseTransaction(transaction *mempool.Transaction, except *Node) {
	for _, peer := range n.peers {
		if peer == except {
			continue
		}
		n.sim.sendMessage(n, peer, &message{kind: invTransaction, transactionID: transaction.ID})
	}
}
