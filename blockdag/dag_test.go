// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockdag

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestGenesis(t *testing.T) {
	dag := New(3)

	if !dag.HasBlock(0) {
		t.Fatal("genesis is missing from a freshly constructed DAG")
	}
	genesis, _ := dag.BlockByID(0)
	if genesis.MinerID != -1 {
		t.Errorf("genesis miner id: got %d, want -1", genesis.MinerID)
	}
	if genesis.TimeCreated != 0 {
		t.Errorf("genesis creation time: got %f, want 0", genesis.TimeCreated)
	}
	if len(genesis.ParentIDs) != 0 {
		t.Errorf("genesis has parents: %v", genesis.ParentIDs)
	}
	if dag.IsRed(0) {
		t.Error("genesis is red")
	}
	checkBlueScore(t, dag, 0, 1)
	if selectedParent, _ := dag.SelectedParent(0); selectedParent != -1 {
		t.Errorf("genesis selected parent: got %d, want -1", selectedParent)
	}
	if tips := dag.Tips(); !int64SlicesEqual(tips, []int64{0}) {
		t.Errorf("tips of a fresh DAG: got %v, want [0]", tips)
	}
	if width := dag.GetDagWidth(); width != 1 {
		t.Errorf("width of a fresh DAG: got %d, want 1", width)
	}
	if id := dag.NextBlockID(); id != 1 {
		t.Errorf("first id after construction: got %d, want 1", id)
	}
}

// TestLinearChain covers the simplest DAG shape: every block extends
// the previous one, so blue scores grow by one per block.
func TestLinearChain(t *testing.T) {
	dag := New(3)
	addBlock(t, dag, buildBlock(1, 0))
	addBlock(t, dag, buildBlock(2, 1))
	addBlock(t, dag, buildBlock(3, 2))

	for id, want := range map[int64]uint64{0: 1, 1: 2, 2: 3, 3: 4} {
		checkBlueScore(t, dag, id, want)
		if dag.IsRed(id) {
			t.Errorf("block %d is red in a linear chain", id)
		}
	}
	if tips := dag.Tips(); !int64SlicesEqual(tips, []int64{3}) {
		t.Errorf("tips: got %v, want [3]", tips)
	}
	if tip := dag.SelectTip(); tip != 3 {
		t.Errorf("SelectTip: got %d, want 3", tip)
	}
	if ordering := dag.ComputeOrdering(); !int64SlicesEqual(ordering, []int64{0, 1, 2, 3}) {
		t.Errorf("ordering: got %v, want [0 1 2 3]", ordering)
	}
}

// TestParallelTips merges two parallel blocks and checks scores, tie
// broken tip selection and the final tip set.
func TestParallelTips(t *testing.T) {
	dag := New(3)
	addBlock(t, dag, buildBlock(1, 0))
	addBlock(t, dag, buildBlock(2, 0))

	// Both tips carry blue score 2, so the lesser id must win.
	if tip := dag.SelectTip(); tip != 1 {
		t.Errorf("SelectTip on a score tie: got %d, want 1", tip)
	}
	if width := dag.GetDagWidth(); width != 2 {
		t.Errorf("width: got %d, want 2", width)
	}

	addBlock(t, dag, buildBlock(3, 1, 2))
	for id, want := range map[int64]uint64{0: 1, 1: 2, 2: 2, 3: 4} {
		checkBlueScore(t, dag, id, want)
		if dag.IsRed(id) {
			t.Errorf("block %d is red", id)
		}
	}
	if tips := dag.Tips(); !int64SlicesEqual(tips, []int64{3}) {
		t.Errorf("tips after merge: got %v, want [3]", tips)
	}
}

// TestOutOfOrderArrival delivers a merge block before its parents and
// expects the exact same final state as an in-order delivery.
func TestOutOfOrderArrival(t *testing.T) {
	dag := New(3)

	if isOrphan := dag.AddBlock(buildBlock(3, 1, 2)); !isOrphan {
		t.Fatal("block with unknown parents was not orphaned")
	}
	if !dag.IsOrphan(3) {
		t.Fatal("orphaned block is not reported by IsOrphan")
	}
	if dag.HasBlock(3) {
		t.Fatal("orphaned block is reported as accepted")
	}

	addBlock(t, dag, buildBlock(1, 0))
	if !dag.IsOrphan(3) {
		t.Fatal("orphan was drained while a parent was still missing")
	}
	addBlock(t, dag, buildBlock(2, 0))

	if dag.IsOrphan(3) {
		t.Fatal("orphan was not drained after all parents arrived")
	}
	if !dag.HasBlock(3) {
		t.Fatal("drained orphan is not accepted")
	}
	for id, want := range map[int64]uint64{0: 1, 1: 2, 2: 2, 3: 4} {
		checkBlueScore(t, dag, id, want)
	}
	if tips := dag.Tips(); !int64SlicesEqual(tips, []int64{3}) {
		t.Errorf("tips: got %v, want [3]", tips)
	}
}

// TestDuplicateDelivery re-adds already known blocks, accepted and
// orphaned, and expects no state change either way.
func TestDuplicateDelivery(t *testing.T) {
	dag := New(3)
	addBlock(t, dag, buildBlock(1, 0))
	addBlock(t, dag, buildBlock(2, 1))

	orderingBefore := dag.ComputeOrdering()
	tipsBefore := dag.Tips()

	// Re-deliver an accepted block with a conflicting parent list. The
	// duplicate must be ignored entirely, not re-indexed.
	if isOrphan := dag.AddBlock(buildBlock(2, 0)); isOrphan {
		t.Error("duplicate of an accepted block was orphaned")
	}
	if parents := dag.GetParents(2); len(parents) != 1 || parents[0].ID != 1 {
		t.Errorf("duplicate delivery rewrote parents: %s", spew.Sdump(parents))
	}
	if !int64SlicesEqual(dag.ComputeOrdering(), orderingBefore) {
		t.Error("duplicate delivery changed the ordering")
	}
	if !int64SlicesEqual(dag.Tips(), tipsBefore) {
		t.Error("duplicate delivery changed the tip set")
	}

	// Duplicates of pooled orphans are no-ops as well.
	if isOrphan := dag.AddBlock(buildBlock(9, 8)); !isOrphan {
		t.Fatal("block with unknown parent was not orphaned")
	}
	if isOrphan := dag.AddBlock(buildBlock(9, 8)); !isOrphan {
		t.Error("duplicate of an orphan was not reported as orphaned")
	}
	if dag.OrphanCount() != 1 {
		t.Errorf("orphan pool size: got %d, want 1", dag.OrphanCount())
	}
}

func TestQueriesOnUnknownIDs(t *testing.T) {
	dag := New(3)

	if dag.HasBlock(42) {
		t.Error("HasBlock(42) on a fresh DAG")
	}
	if dag.IsOrphan(42) {
		t.Error("IsOrphan(42) on a fresh DAG")
	}
	if dag.IsRed(42) {
		t.Error("IsRed(42) on a fresh DAG")
	}
	if past := dag.Past(42); len(past) != 0 {
		t.Errorf("Past(42): got %v, want empty", past)
	}
	if future := dag.Future(42); len(future) != 0 {
		t.Errorf("Future(42): got %v, want empty", future)
	}
	if anticone := dag.Anticone(42, 0); len(anticone) != 0 {
		t.Errorf("Anticone(42, 0): got %v, want empty", anticone)
	}
	if children := dag.GetChildren(42); len(children) != 0 {
		t.Errorf("GetChildren(42): got %s, want empty", spew.Sdump(children))
	}
	if parents := dag.GetParents(42); len(parents) != 0 {
		t.Errorf("GetParents(42): got %s, want empty", spew.Sdump(parents))
	}
	if _, ok := dag.BlueScore(42); ok {
		t.Error("BlueScore(42) reported a score")
	}
}

// TestPastFutureDuality checks I1/I2: membership in past mirrors
// membership in future, and parent edges appear in both adjacencies.
func TestPastFutureDuality(t *testing.T) {
	dag := New(3)
	addBlock(t, dag, buildBlock(1, 0))
	addBlock(t, dag, buildBlock(2, 0))
	addBlock(t, dag, buildBlock(3, 1, 2))
	addBlock(t, dag, buildBlock(4, 3))

	for _, a := range []int64{0, 1, 2, 3, 4} {
		future := dag.Future(a)
		for _, b := range future {
			past := dag.Past(b)
			found := false
			for _, p := range past {
				if p == a {
					found = true
				}
			}
			if !found {
				t.Errorf("%d in future(%d) but %d not in past(%d)", b, a, a, b)
			}
		}
	}

	for _, b := range []int64{1, 2, 3, 4} {
		for _, parent := range dag.GetParents(b) {
			childIDs := []int64{}
			for _, child := range dag.GetChildren(parent.ID) {
				childIDs = append(childIDs, child.ID)
			}
			found := false
			for _, id := range childIDs {
				if id == b {
					found = true
				}
			}
			if !found {
				t.Errorf("block %d missing from children of its parent %d", b, parent.ID)
			}
		}
	}
}

func TestAnticone(t *testing.T) {
	// Shape: 1, 2 and 5 branch off genesis; 3 extends 1; 4 extends 2.
	dag := New(3)
	addBlock(t, dag, buildBlock(1, 0))
	addBlock(t, dag, buildBlock(2, 0))
	addBlock(t, dag, buildBlock(3, 1))
	addBlock(t, dag, buildBlock(4, 2))
	addBlock(t, dag, buildBlock(5, 0))

	tests := []struct {
		name string
		a, b int64
		want []int64
	}{
		{name: "parallel branch roots", a: 1, b: 2, want: []int64{5}},
		{name: "branch tip vs other root", a: 3, b: 2, want: []int64{5}},
		{name: "both branch tips", a: 3, b: 4, want: []int64{5}},
		{name: "tips vs their common anticone block", a: 4, b: 5, want: []int64{1, 3}},
		{name: "ordered pair is empty by definition", a: 0, b: 3, want: []int64{}},
		{name: "parent and child are ordered", a: 2, b: 4, want: []int64{}},
	}

	for _, test := range tests {
		got := dag.Anticone(test.a, test.b)
		if len(got) == 0 && len(test.want) == 0 {
			continue
		}
		if !int64SlicesEqual(got, test.want) {
			t.Errorf("unexpected anticone in test \"%s\". Expected: %v, got: %v",
				test.name, test.want, got)
		}
	}
}

// TestReplayOrderIndependence feeds the same diamond in several
// delivery orders and expects identical colouring, scores and ordering
// every time.
func TestReplayOrderIndependence(t *testing.T) {
	blocks := map[int64]*Block{
		1: buildBlock(1, 0),
		2: buildBlock(2, 0),
		3: buildBlock(3, 1, 2),
		4: buildBlock(4, 3),
	}
	permutations := [][]int64{
		{1, 2, 3, 4},
		{4, 3, 2, 1},
		{3, 4, 1, 2},
		{2, 4, 3, 1},
	}

	var wantOrdering []int64
	wantScores := map[int64]uint64{}
	for i, perm := range permutations {
		dag := New(3)
		for _, id := range perm {
			dag.AddBlock(blocks[id])
		}
		if dag.OrphanCount() != 0 {
			t.Fatalf("permutation %v left %d orphans", perm, dag.OrphanCount())
		}

		ordering := dag.ComputeOrdering()
		scores := map[int64]uint64{}
		for id := range blocks {
			scores[id], _ = dag.BlueScore(id)
		}

		if i == 0 {
			wantOrdering = ordering
			wantScores = scores
			continue
		}
		if !int64SlicesEqual(ordering, wantOrdering) {
			t.Errorf("permutation %v ordering: got %v, want %v", perm, ordering, wantOrdering)
		}
		for id, want := range wantScores {
			if scores[id] != want {
				t.Errorf("permutation %v score of %d: got %d, want %d", perm, id, scores[id], want)
			}
		}
	}
}
