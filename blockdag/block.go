package blockdag

// blockHeaderBaseSize approximates a standard 80-byte header. Parent
// references are counted as 32-byte hashes preceded by a varint, which
// is how the wire accounting of the simulated network sizes headers.
const (
	blockHeaderBaseSize  = 80
	parentReferenceSize  = 32
	transactionEntrySize = 4
)

// Block is a block as handed to the DAG by the network layer. A block
// is immutable: the DAG keeps its own per-block consensus state
// (colour, blue score, selected parent) separately and never writes
// through this struct.
type Block struct {
	// ID uniquely identifies the block across the simulated network.
	ID int64

	// MinerID is the id of the node that produced the block. The
	// genesis block carries miner id -1.
	MinerID int64

	// TimeCreated is the monotonic simulation time at which the block
	// was produced, in seconds.
	TimeCreated float64

	// ParentIDs is the ordered list of parent block ids. Empty only for
	// genesis.
	ParentIDs []int64

	// TransactionIDs is the block body. The ids are opaque to
	// consensus.
	TransactionIDs []int64

	// SizeInBytes is the total serialized size used for bandwidth
	// accounting. Informational only.
	SizeInBytes int
}

// HeaderSizeInBytes returns the approximated wire size of the block's
// header.
func (block *Block) HeaderSizeInBytes() int {
	varintSize := 1
	if len(block.ParentIDs) >= 253 {
		varintSize = 3
	}
	return blockHeaderBaseSize + varintSize + len(block.ParentIDs)*parentReferenceSize
}

// TotalSizeInBytes returns the approximated wire size of the whole
// block: its header plus a fixed per-transaction reference size.
func (block *Block) TotalSizeInBytes() int {
	return block.HeaderSizeInBytes() + len(block.TransactionIDs)*transactionEntrySize
}
