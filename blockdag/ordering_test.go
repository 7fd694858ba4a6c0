package blockdag

import (
	"testing"
)

// TestOrderingTopological checks I6 on a branchy DAG: every block is
// emitted after all of its parents.
func TestOrderingTopological(t *testing.T) {
	dag := New(2)
	addBlock(t, dag, buildBlock(1, 0))
	addBlock(t, dag, buildBlock(2, 0))
	addBlock(t, dag, buildBlock(3, 1, 2))
	addBlock(t, dag, buildBlock(4, 1))
	addBlock(t, dag, buildBlock(5, 3, 4))

	ordering := dag.ComputeOrdering()
	if len(ordering) != dag.BlockCount() {
		t.Fatalf("ordering length: got %d, want %d", len(ordering), dag.BlockCount())
	}

	emitted := map[int64]int{}
	for position, id := range ordering {
		emitted[id] = position
	}
	for _, id := range ordering {
		for _, parent := range dag.GetParents(id) {
			parentPosition, ok := emitted[parent.ID]
			if !ok {
				t.Fatalf("parent %d of %d missing from the ordering", parent.ID, id)
			}
			if parentPosition >= emitted[id] {
				t.Errorf("parent %d emitted at %d, after its child %d at %d",
					parent.ID, parentPosition, id, emitted[id])
			}
		}
	}
}

// TestOrderingPriorities pins down the emission priority: among ready
// blocks the greater blue score wins, then the earlier creation time,
// then the lesser id.
func TestOrderingPriorities(t *testing.T) {
	// 1 and 2 are parallel with equal scores; 2 was created earlier,
	// so it must be emitted first.
	dag := New(3)
	addBlock(t, dag, buildBlockAt(1, 5, 0))
	addBlock(t, dag, buildBlockAt(2, 3, 0))
	addBlock(t, dag, buildBlockAt(3, 6, 1, 2))

	if ordering := dag.ComputeOrdering(); !int64SlicesEqual(ordering, []int64{0, 2, 1, 3}) {
		t.Errorf("time tie-break ordering: got %v, want [0 2 1 3]", ordering)
	}

	// Equal scores and equal times fall back to the lesser id.
	dag = New(3)
	addBlock(t, dag, buildBlockAt(1, 1, 0))
	addBlock(t, dag, buildBlockAt(2, 1, 0))

	if ordering := dag.ComputeOrdering(); !int64SlicesEqual(ordering, []int64{0, 1, 2}) {
		t.Errorf("id tie-break ordering: got %v, want [0 1 2]", ordering)
	}
}

// TestOrderingStability calls ComputeOrdering twice with no acceptance
// in between and expects identical sequences.
func TestOrderingStability(t *testing.T) {
	dag := New(2)
	addBlock(t, dag, buildBlock(1, 0))
	addBlock(t, dag, buildBlock(2, 0))
	addBlock(t, dag, buildBlock(3, 1, 2))
	addBlock(t, dag, buildBlock(4, 2))

	first := dag.ComputeOrdering()
	second := dag.ComputeOrdering()
	if !int64SlicesEqual(first, second) {
		t.Errorf("ordering is not stable: %v then %v", first, second)
	}
}
