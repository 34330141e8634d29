package segment

import "testing"

// TestUnionFind_Basic tests merge and find behavior
func TestUnionFind_Basic(t *testing.T) {
	uf := newUnionFind(5)

	for i := 0; i < 5; i++ {
		if uf.find(i) != i {
			t.Errorf("Expected singleton root %d, got %d", i, uf.find(i))
		}
	}

	if !uf.union(0, 1) {
		t.Error("Expected first union to merge")
	}
	if uf.union(1, 0) {
		t.Error("Expected repeated union to report already merged")
	}
	if uf.find(0) != uf.find(1) {
		t.Error("Expected 0 and 1 in the same set")
	}
	if uf.find(2) == uf.find(0) {
		t.Error("Expected 2 in its own set")
	}
}

// TestUnionFind_Transitive tests that chained unions collapse to one set
func TestUnionFind_Transitive(t *testing.T) {
	uf := newUnionFind(6)
	uf.union(0, 1)
	uf.union(2, 3)
	uf.union(1, 2)

	root := uf.find(0)
	for i := 1; i <= 3; i++ {
		if uf.find(i) != root {
			t.Errorf("Expected node %d in set %d, got %d", i, root, uf.find(i))
		}
	}
	if uf.find(4) == root || uf.find(5) == root {
		t.Error("Expected 4 and 5 untouched")
	}
}

// TestUnionFind_UnionBySize tests that the smaller tree attaches under the
// larger one
func TestUnionFind_UnionBySize(t *testing.T) {
	uf := newUnionFind(4)
	uf.union(0, 1)
	uf.union(1, 2)
	big := uf.find(0)

	uf.union(3, 0)
	if uf.find(3) != big {
		t.Errorf("Expected singleton to join the larger set root %d, got %d", big, uf.find(3))
	}
}
