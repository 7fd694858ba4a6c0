package dbaccess

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/eramoss/ghostdagsim/blockdag"
	"github.com/eramoss/ghostdagsim/database"
)

var blocksBucket = database.MakeBucket([]byte("blocks"))

// blockKey maps a block id to its archive key. Ids are encoded
// big-endian so that cursor iteration walks the archive in ascending
// id order.
func blockKey(blockID int64) *database.Key {
	var suffix [8]byte
	binary.BigEndian.PutUint64(suffix[:], uint64(blockID))
	return blocksBucket.Key(suffix[:])
}

// StoreBlock stores the given block in the archive.
func StoreBlock(context *DatabaseContext, block *blockdag.Block) error {
	// Make sure that the block does not already exist.
	exists, err := HasBlock(context, block.ID)
	if err != nil {
		return err
	}
	if exists {
		return errors.Errorf("block %d already exists in the archive", block.ID)
	}

	blockBytes, err := blockdag.SerializeBlockBytes(block)
	if err != nil {
		return err
	}
	return context.db.Put(blockKey(block.ID), blockBytes)
}

// HasBlock returns whether the block of the given id has been
// previously stored in the archive.
func HasBlock(context *DatabaseContext, blockID int64) (bool, error) {
	return context.db.Has(blockKey(blockID))
}

// FetchBlock returns the block of the given id. Returns ErrNotFound if
// the block had not been previously stored in the archive.
func FetchBlock(context *DatabaseContext, blockID int64) (*blockdag.Block, error) {
	blockBytes, err := context.db.Get(blockKey(blockID))
	if err != nil {
		return nil, err
	}
	return blockdag.DeserializeBlockBytes(blockBytes)
}

// FetchAllBlocks returns every archived block in ascending id order.
func FetchAllBlocks(context *DatabaseContext) ([]*blockdag.Block, error) {
	cursor, err := context.db.Cursor(blocksBucket)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	blocks := []*blockdag.Block{}
	for cursor.Next() {
		blockBytes, err := cursor.Value()
		if err != nil {
			return nil, err
		}
		block, err := blockdag.DeserializeBlockBytes(blockBytes)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}
