package blockdag

import (
	"testing"
)

func TestBlockSet(t *testing.T) {
	nodeA := newBlockNode(buildBlock(3), newSet())
	nodeB := newBlockNode(buildBlock(1), newSet())
	nodeC := newBlockNode(buildBlock(2), newSet())

	set := setFromSlice(nodeA, nodeB)
	if !set.contains(nodeA) || !set.contains(nodeB) {
		t.Error("setFromSlice dropped a member")
	}
	if set.contains(nodeC) {
		t.Error("set contains a block that was never added")
	}

	set.add(nodeC)
	if got, want := set.String(), "1,2,3"; got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
	if ids := set.ids(); !int64SlicesEqual(ids, []int64{1, 2, 3}) {
		t.Errorf("ids: got %v, want [1 2 3]", ids)
	}

	ascending := set.byIDAscending()
	for i := 1; i < len(ascending); i++ {
		if ascending[i-1].id() >= ascending[i].id() {
			t.Fatalf("byIDAscending out of order: %v", ascending)
		}
	}

	clone := set.clone()
	set.remove(nodeB)
	if set.contains(nodeB) {
		t.Error("remove left the block in the set")
	}
	if !clone.contains(nodeB) {
		t.Error("remove from the original mutated the clone")
	}
	if !set.containsID(2) || set.containsID(1) {
		t.Error("containsID out of sync after removal")
	}
}
