package blockdag

import (
	"testing"
)

// TestKClusterRejection builds a 3-wide star under k=0. A later block
// merging the whole star cannot keep all three parallel blocks in its
// blue set, which shows up in its blue score.
func TestKClusterRejection(t *testing.T) {
	dag := New(0)
	addBlock(t, dag, buildBlock(1, 0))
	addBlock(t, dag, buildBlock(2, 0))
	addBlock(t, dag, buildBlock(3, 0))
	addBlock(t, dag, buildBlock(4, 1))

	// 4's past is {0, 1}: the star siblings 2 and 3 are invisible to
	// it, so its blue set is {0, 1, 4}.
	checkBlueScore(t, dag, 4, 3)
	if sp, _ := dag.SelectedParent(4); sp != 1 {
		t.Errorf("selected parent of 4: got %d, want 1", sp)
	}

	// 5 merges the whole star. Candidate 2 still fits: no third member
	// of the set sits in a joint anticone with it. Candidate 3 does
	// not - admitting it would put 3 in the joint anticone of the
	// members 1 and 2 - so 3 is rejected and the blue set settles on
	// {0, 1, 2, 4, 5}.
	addBlock(t, dag, buildBlock(5, 2, 3, 4))
	checkBlueScore(t, dag, 5, 5)
	if sp, _ := dag.SelectedParent(5); sp != 4 {
		t.Errorf("selected parent of 5: got %d, want 4", sp)
	}
	blues, ok := dag.BlueSet(5)
	if !ok {
		t.Fatal("BlueSet(5) reported the block as unknown")
	}
	if !int64SlicesEqual(blues, []int64{0, 1, 2, 4, 5}) {
		t.Errorf("blue set of 5: got %v, want [0 1 2 4 5]", blues)
	}
}

// TestSelectedParentTieBreak adds a block with two equal-score parents
// and expects the lesser id to win.
func TestSelectedParentTieBreak(t *testing.T) {
	dag := New(3)
	addBlock(t, dag, buildBlock(1, 0))
	addBlock(t, dag, buildBlock(2, 0))
	addBlock(t, dag, buildBlock(3, 2, 1))

	if sp, _ := dag.SelectedParent(3); sp != 1 {
		t.Errorf("selected parent on a score tie: got %d, want 1", sp)
	}
}

func TestIsKCluster(t *testing.T) {
	// Shape: 1, 2, 3 and 5 branch off genesis, 4 merges 1 and 2.
	dag := New(1)
	addBlock(t, dag, buildBlock(1, 0))
	addBlock(t, dag, buildBlock(2, 0))
	addBlock(t, dag, buildBlock(3, 0))
	addBlock(t, dag, buildBlock(4, 1, 2))
	addBlock(t, dag, buildBlock(5, 0))

	tests := []struct {
		name string
		ids  []int64
		want bool
	}{
		{name: "empty set", ids: []int64{}, want: true},
		{name: "singleton", ids: []int64{2}, want: true},
		{name: "chain", ids: []int64{0, 1, 4}, want: true},
		{name: "two parallel members, no third member in their anticone", ids: []int64{1, 2}, want: true},
		{name: "three-wide parallel set still fits k=1", ids: []int64{1, 2, 3}, want: true},
		{name: "four-wide parallel set exceeds k=1", ids: []int64{1, 2, 3, 5}, want: false},
		{name: "unknown ids are ignored", ids: []int64{1, 2, 99}, want: true},
	}

	for _, test := range tests {
		if got := dag.IsKCluster(test.ids); got != test.want {
			t.Errorf("unexpected IsKCluster result in test \"%s\". Expected: %v, got: %v",
				test.name, test.want, got)
		}
	}
}

// TestBlueSetInvariants checks I3, I4 and I5 over a DAG wide enough to
// exercise candidate rejection: every block's recorded score matches
// the defining count over its past, scores never fall below the
// selected parent's, and each block's frozen blue view satisfies the
// k-cluster property.
func TestBlueSetInvariants(t *testing.T) {
	dag := New(1)
	addBlock(t, dag, buildBlock(1, 0))
	addBlock(t, dag, buildBlock(2, 0))
	addBlock(t, dag, buildBlock(3, 0))
	addBlock(t, dag, buildBlock(4, 1, 2))
	addBlock(t, dag, buildBlock(5, 3, 4))
	addBlock(t, dag, buildBlock(6, 5))

	for _, id := range dag.ComputeOrdering() {
		score, _ := dag.BlueScore(id)

		// I4: monotone along the selected parent edge.
		if sp, _ := dag.SelectedParent(id); sp != -1 {
			parentScore, _ := dag.BlueScore(sp)
			if score < parentScore {
				t.Errorf("blue score of %d (%d) below its selected parent %d (%d)",
					id, score, sp, parentScore)
			}
		}

		// I3: the recorded score is the defining count over the frozen
		// blue set.
		blues, _ := dag.BlueSet(id)
		pastBlues := 0
		selfBlue := 0
		past := dag.Past(id)
		for _, member := range blues {
			if member == id {
				selfBlue = 1
				continue
			}
			for _, ancestor := range past {
				if ancestor == member {
					pastBlues++
					break
				}
			}
		}
		if score != uint64(pastBlues+selfBlue) {
			t.Errorf("blue score of %d (%d) does not match its blue set %v", id, score, blues)
		}

		// I5: the frozen blue set of the block is a k-cluster.
		if !dag.IsKCluster(blues) {
			t.Errorf("frozen blue set of %d is not a k-cluster: %v", id, blues)
		}
	}
}

// TestColouringDeterminism colours the same DAG twice through fresh
// stores and expects identical results, block by block.
func TestColouringDeterminism(t *testing.T) {
	build := func() *BlockDAG {
		dag := New(2)
		addBlock(t, dag, buildBlock(1, 0))
		addBlock(t, dag, buildBlock(2, 0))
		addBlock(t, dag, buildBlock(3, 1, 2))
		addBlock(t, dag, buildBlock(4, 1))
		addBlock(t, dag, buildBlock(5, 3, 4))
		return dag
	}

	first, second := build(), build()
	for id := int64(0); id <= 5; id++ {
		firstScore, _ := first.BlueScore(id)
		secondScore, _ := second.BlueScore(id)
		if firstScore != secondScore {
			t.Errorf("score of %d differs between runs: %d vs %d", id, firstScore, secondScore)
		}
		if first.IsRed(id) != second.IsRed(id) {
			t.Errorf("colour of %d differs between runs", id)
		}
		firstParent, _ := first.SelectedParent(id)
		secondParent, _ := second.SelectedParent(id)
		if firstParent != secondParent {
			t.Errorf("selected parent of %d differs between runs: %d vs %d",
				id, firstParent, secondParent)
		}
	}
}
