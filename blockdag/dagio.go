// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockdag

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/eramoss/ghostdagsim/util/binaryserializer"
)

// maxBlockReferences bounds the parent and transaction counts accepted
// by deserialization, so a corrupt archive cannot trigger an absurd
// allocation.
const maxBlockReferences = 1 << 20

// SerializeBlock serializes the block into the given writer using the
// compact little-endian archive format.
func SerializeBlock(w io.Writer, block *Block) error {
	err := binaryserializer.PutInt64(w, block.ID)
	if err != nil {
		return err
	}
	err = binaryserializer.PutInt64(w, block.MinerID)
	if err != nil {
		return err
	}
	err = binaryserializer.PutFloat64(w, block.TimeCreated)
	if err != nil {
		return err
	}
	err = binaryserializer.PutUint32(w, uint32(block.SizeInBytes))
	if err != nil {
		return err
	}
	err = putIDSlice(w, block.ParentIDs)
	if err != nil {
		return err
	}
	return putIDSlice(w, block.TransactionIDs)
}

// DeserializeBlock parses a block out of the given reader, expecting
// the format written by SerializeBlock.
func DeserializeBlock(r io.Reader) (*Block, error) {
	block := &Block{}

	id, err := binaryserializer.Int64(r)
	if err != nil {
		return nil, err
	}
	block.ID = id

	minerID, err := binaryserializer.Int64(r)
	if err != nil {
		return nil, err
	}
	block.MinerID = minerID

	timeCreated, err := binaryserializer.Float64(r)
	if err != nil {
		return nil, err
	}
	block.TimeCreated = timeCreated

	sizeInBytes, err := binaryserializer.Uint32(r)
	if err != nil {
		return nil, err
	}
	block.SizeInBytes = int(sizeInBytes)

	block.ParentIDs, err = readIDSlice(r)
	if err != nil {
		return nil, err
	}

	block.TransactionIDs, err = readIDSlice(r)
	if err != nil {
		return nil, err
	}

	return block, nil
}

// SerializeBlockBytes returns the block serialized to a fresh byte
// slice.
func SerializeBlockBytes(block *Block) ([]byte, error) {
	var buf bytes.Buffer
	err := SerializeBlock(&buf, block)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeBlockBytes parses a block out of the given byte slice.
func DeserializeBlockBytes(serialized []byte) (*Block, error) {
	return DeserializeBlock(bytes.NewReader(serialized))
}

func putIDSlice(w io.Writer, ids []int64) error {
	err := binaryserializer.PutUint32(w, uint32(len(ids)))
	if err != nil {
		return err
	}
	for _, id := range ids {
		err = binaryserializer.PutInt64(w, id)
		if err != nil {
			return err
		}
	}
	return nil
}

func readIDSlice(r io.Reader) ([]int64, error) {
	count, err := binaryserializer.Uint32(r)
	if err != nil {
		return nil, err
	}
	if count > maxBlockReferences {
		return nil, errors.Errorf("id list claims %d entries, above the sanity bound %d",
			count, maxBlockReferences)
	}
	if count == 0 {
		return nil, nil
	}
	ids := make([]int64, count)
	for i := range ids {
		ids[i], err = binaryserializer.Int64(r)
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}
