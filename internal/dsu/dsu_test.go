package dsu

import "testing"

func TestNew_Singletons(t *testing.T) {
	s := New(8)
	if s.Len() != 8 {
		t.Fatalf("Len = %d, want 8", s.Len())
	}
	for i := int32(0); i < 8; i++ {
		if got := s.Find(i); got != i {
			t.Errorf("Find(%d) = %d, want %d", i, got, i)
		}
	}
}

func TestUnion_Basic(t *testing.T) {
	s := New(6)
	s.Union(0, 1)
	if s.Find(0) != s.Find(1) {
		t.Errorf("after Union(0,1): Find(0)=%d, Find(1)=%d", s.Find(0), s.Find(1))
	}
	if s.Find(2) == s.Find(0) {
		t.Errorf("Union(0,1) disturbed element 2")
	}
}

func TestUnion_ReturnsRoot(t *testing.T) {
	s := New(4)
	r := s.Union(0, 1)
	if r != s.Find(0) || r != s.Find(1) {
		t.Errorf("Union returned %d, Find(0)=%d Find(1)=%d", r, s.Find(0), s.Find(1))
	}
}

func TestUnion_EqualRankTieBreak(t *testing.T) {
	// Equal rank: the left argument's root must win.
	s := New(2)
	if r := s.Union(0, 1); r != 0 {
		t.Errorf("Union(0,1) on equal rank = %d, want 0", r)
	}
	s2 := New(2)
	if r := s2.Union(1, 0); r != 1 {
		t.Errorf("Union(1,0) on equal rank = %d, want 1", r)
	}
}

func TestUnion_ByRank(t *testing.T) {
	// {0,1} has rank 1; merging singleton 2 into it must keep root 0.
	s := New(3)
	s.Union(0, 1)
	if r := s.Union(2, 0); r != 0 {
		t.Errorf("Union(2,0): taller tree's root = %d, want 0", r)
	}
}

func TestUnion_Idempotent(t *testing.T) {
	s := New(4)
	r1 := s.Union(0, 1)
	r2 := s.Union(0, 1)
	r3 := s.Union(1, 0)
	if r1 != r2 || r2 != r3 {
		t.Errorf("repeated Union roots differ: %d %d %d", r1, r2, r3)
	}
}

func TestUnion_SelfIsNoOp(t *testing.T) {
	s := New(3)
	if r := s.Union(1, 1); r != 1 {
		t.Errorf("Union(1,1) = %d, want 1", r)
	}
	for i := int32(0); i < 3; i++ {
		if s.Find(i) != i {
			t.Errorf("Union(1,1) disturbed element %d", i)
		}
	}
}

func TestTransitivity(t *testing.T) {
	s := New(10)
	s.Union(0, 1)
	s.Union(1, 2)
	s.Union(2, 3)
	s.Union(7, 8)
	root := s.Find(0)
	for _, x := range []int32{1, 2, 3} {
		if s.Find(x) != root {
			t.Errorf("Find(%d) = %d, want %d", x, s.Find(x), root)
		}
	}
	if s.Find(7) == root || s.Find(9) == root {
		t.Errorf("unrelated elements joined the {0..3} set")
	}
}

func TestFlatten_Canonical(t *testing.T) {
	s := New(8)
	s.Union(0, 4)
	s.Union(4, 2)
	s.Union(5, 6)
	labels := s.Flatten()
	if len(labels) != 8 {
		t.Fatalf("Flatten len = %d, want 8", len(labels))
	}
	for i, l := range labels {
		if l < 0 || int(l) >= len(labels) {
			t.Fatalf("labels[%d] = %d out of range", i, l)
		}
		// Canonical form is idempotent: the label of a label is itself.
		if labels[l] != l {
			t.Errorf("labels[labels[%d]] = %d, want %d", i, labels[l], l)
		}
	}
	if labels[0] != labels[2] || labels[0] != labels[4] {
		t.Errorf("{0,2,4} not one set: %v", labels)
	}
	if labels[5] != labels[6] {
		t.Errorf("{5,6} not one set: %v", labels)
	}
	if labels[0] == labels[5] || labels[1] == labels[0] {
		t.Errorf("distinct sets share a label: %v", labels)
	}
}

func TestNewIn_ReusesDirtyBuffers(t *testing.T) {
	parent := []int32{9, 9, 9, 9}
	rank := []uint8{3, 3, 3, 3}
	s := NewIn(parent, rank)
	for i := int32(0); i < 4; i++ {
		if s.Find(i) != i {
			t.Errorf("Find(%d) = %d after NewIn, want %d", i, s.Find(i), i)
		}
	}
}

func TestPathCompression_Flattens(t *testing.T) {
	// Build a chain and verify Find leaves every node at most two hops
	// from the root afterwards (path halving property).
	const n = 1 << 10
	s := New(n)
	for i := int32(1); i < n; i++ {
		s.Union(i, i-1)
	}
	root := s.Find(n - 1)
	for i := int32(0); i < n; i++ {
		if s.Find(i) != root {
			t.Fatalf("Find(%d) = %d, want %d", i, s.Find(i), root)
		}
	}
	// After a full Find sweep, parents must be within two hops.
	for i := int32(0); i < n; i++ {
		p := s.parent[i]
		if s.parent[p] != root && p != root {
			t.Errorf("element %d still deep after compression", i)
		}
	}
}

func BenchmarkUnionFind(b *testing.B) {
	const n = 1 << 16
	for bi := 0; bi < b.N; bi++ {
		s := New(n)
		for i := int32(1); i < n; i++ {
			s.Union(i&0xff, i)
		}
		for i := int32(0); i < n; i++ {
			s.Find(i)
		}
	}
}
