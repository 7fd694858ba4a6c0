// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockdag

import (
	"testing"
)

// buildBlock assembles a test block. Creation time defaults to the id
// so that ordering tie-breaks stay predictable unless a test overrides
// it explicitly.
func buildBlock(id int64, parentIDs ...int64) *Block {
	return buildBlockAt(id, float64(id), parentIDs...)
}

func buildBlockAt(id int64, timeCreated float64, parentIDs ...int64) *Block {
	return &Block{
		ID:          id,
		MinerID:     0,
		TimeCreated: timeCreated,
		ParentIDs:   parentIDs,
	}
}

// addBlock adds a block that the test expects to be accepted
// immediately.
func addBlock(t *testing.T, dag *BlockDAG, block *Block) {
	t.Helper()
	if isOrphan := dag.AddBlock(block); isOrphan {
		t.Fatalf("AddBlock: block %d unexpectedly orphaned", block.ID)
	}
}

func checkBlueScore(t *testing.T, dag *BlockDAG, id int64, want uint64) {
	t.Helper()
	got, ok := dag.BlueScore(id)
	if !ok {
		t.Fatalf("BlueScore: block %d not in DAG", id)
	}
	if got != want {
		t.Errorf("BlueScore: block %d got %d, want %d", id, got, want)
	}
}

func int64SlicesEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
