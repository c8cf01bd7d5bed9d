package felzen

import "testing"

func TestIntersect_Empty(t *testing.T) {
	if got := Intersect(nil, nil, nil, 0, 0); len(got) != 0 {
		t.Fatalf("empty: %d labels", len(got))
	}
}

func TestIntersect_AllAgree(t *testing.T) {
	const w, h = 4, 3
	one := make([]int32, w*h)
	labels := Intersect(one, one, one, w, h)
	checkCanonical(t, labels)
	if got := len(regionSizes(labels)); got != 1 {
		t.Fatalf("all-agree grid: %d regions, want 1", got)
	}
}

func TestIntersect_RefinesEachChannel(t *testing.T) {
	const w, h = 6, 4
	// Three overlapping stripe partitions.
	lr := make([]int32, w*h)
	lg := make([]int32, w*h)
	lb := make([]int32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			lr[i] = int32(x / 2) // vertical stripes
			lg[i] = int32(y)    // horizontal stripes
			lb[i] = 0           // single region
		}
	}
	labels := Intersect(lr, lg, lb, w, h)
	checkCanonical(t, labels)
	// Refinement: pixels sharing a final label agree on every channel.
	for i := range labels {
		for j := range labels {
			if labels[i] == labels[j] {
				if lr[i] != lr[j] || lg[i] != lg[j] || lb[i] != lb[j] {
					t.Fatalf("pixels %d,%d share final label but differ per-channel", i, j)
				}
			}
		}
	}
	// 2x1 cells: each stripe intersection is a 2-wide, 1-tall block.
	if got := len(regionSizes(labels)); got != (w/2)*h {
		t.Fatalf("stripes: %d regions, want %d", len(regionSizes(labels)), (w/2)*h)
	}
}

func TestIntersect_DisjointSameTripleStaysSplit(t *testing.T) {
	// Two pixels with identical label triples separated by a barrier
	// must NOT fuse: 1x5 grid labelled A B A on all channels.
	lr := []int32{0, 1, 1, 1, 0}
	labels := Intersect(lr, lr, lr, 5, 1)
	checkCanonical(t, labels)
	if labels[0] == labels[4] {
		t.Fatalf("spatially disjoint same-triple regions fused: %v", labels)
	}
	if labels[1] != labels[2] || labels[2] != labels[3] {
		t.Fatalf("contiguous middle region split: %v", labels)
	}
}

func TestIntersect_DiagonalConnectivity(t *testing.T) {
	// A diagonal line of a foreground label is 8-connected and must stay
	// one region.
	const w, h = 4, 4
	lab := make([]int32, w*h)
	for i := 0; i < 4; i++ {
		lab[i*w+i] = 1
	}
	labels := Intersect(lab, lab, lab, w, h)
	d0 := labels[0]
	for i := 1; i < 4; i++ {
		if labels[i*w+i] != d0 {
			t.Fatalf("diagonal broke at %d: %v", i, labels)
		}
	}
}

func TestIntersect_ChannelDisagreementSplits(t *testing.T) {
	// R agrees everywhere; G splits the grid in half. Any single
	// disagreeing channel must split the result.
	const w, h = 4, 2
	lr := make([]int32, w*h)
	lg := make([]int32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x >= 2 {
				lg[y*w+x] = 1
			}
		}
	}
	labels := Intersect(lr, lg, lr, w, h)
	sizes := regionSizes(labels)
	if len(sizes) != 2 {
		t.Fatalf("half-split: %d regions, want 2", len(sizes))
	}
	if labels[0] == labels[3] {
		t.Fatalf("left and right halves fused: %v", labels)
	}
}

func TestIntersect_OrderIndependent(t *testing.T) {
	const w, h = 5, 5
	lr := make([]int32, w*h)
	lg := make([]int32, w*h)
	lb := make([]int32, w*h)
	for i := range lr {
		lr[i] = int32(i % 3)
		lg[i] = int32((i / 2) % 2)
		lb[i] = int32(i % 5)
	}
	a := Intersect(lr, lg, lb, w, h)
	b := Intersect(lb, lr, lg, w, h)
	// Permuting the channels must produce the identical partition.
	if !samePartition(a, b) {
		t.Fatalf("channel permutation changed the partition")
	}
}

// samePartition reports whether two label maps induce the same
// partition of their index set.
func samePartition(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	ab := make(map[int32]int32)
	ba := make(map[int32]int32)
	for i := range a {
		if m, ok := ab[a[i]]; ok && m != b[i] {
			return false
		}
		if m, ok := ba[b[i]]; ok && m != a[i] {
			return false
		}
		ab[a[i]] = b[i]
		ba[b[i]] = a[i]
	}
	return true
}
