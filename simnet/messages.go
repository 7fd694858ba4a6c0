package simnet

import (
	"github.com/eramoss/ghostdagsim/blockdag"
	"github.com/eramoss/ghostdagsim/mempool"
)

// Message kinds exchanged between simulated nodes. Payloads travel as
// in-memory values; the declared sizes only feed bandwidth accounting.
type messageType int

const (
	invRelayBlock messageType = iota
	reqRelayBlock
	msgBlock
	reqMissingAncestors
	invTransaction
	reqTransaction
	msgTransaction
)

var messageTypeNames = [...]string{
	"InvRelayBlock", "ReqRelayBlock", "MsgBlock", "ReqMissingAncestors",
	"InvTransaction", "ReqTransaction", "MsgTransaction",
}

func (mt messageType) String() string {
	if mt < 0 || int(mt) >= len(messageTypeNames) {
		return "Unknown"
	}
	return messageTypeNames[mt]
}

// Wire accounting constants, approximating TCP/IP framing plus the
// protocol's own headers.
const (
	messageHeaderSize = 90
	inventorySize     = 36
	countEntrySize    = 4
)

// message is a payload in flight between two nodes.
type message struct {
	kind messageType

	// blockID is set on inventories and requests.
	blockID int64

	// block is set on msgBlock.
	block *blockdag.Block

	// missingIDs is set on reqMissingAncestors.
	missingIDs []int64

	// transactionID is set on transaction inventories and requests.
	transactionID int64

	// transaction is set on msgTransaction.
	transaction *mempool.Transaction
}

// sizeInBytes returns the wire size charged for the message.
func (m *message) sizeInBytes() int {
	switch m.kind {
	case invRelayBlock, reqRelayBlock, invTransaction, reqTransaction:
		return messageHeaderSize + inventorySize
	case reqMissingAncestors:
		return messageHeaderSize + countEntrySize + len(m.missingIDs)*inventorySize
	case msgBlock:
		return messageHeaderSize + m.block.SizeInBytes
	case msgTransaction:
		return messageHeaderSize + m.transaction.SizeInBytes
	default:
		return messageHeaderSize
	}
}

// sendMessage delivers the message to the peer after the link's
// transfer delay, charging both ends' bandwidth accounting.
func (s *Simulation) sendMessage(from, to *Node, msg *message) {
	size := msg.sizeInBytes()
	from.stats.BytesSent += int64(size)
	to.stats.BytesReceived += int64(size)

	delay := transferDelay(from, to, size)
	s.schedule(delay, func() {
		to.handleMessage(from, msg)
	})
}
