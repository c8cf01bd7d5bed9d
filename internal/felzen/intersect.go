package felzen

import (
	"github.com/between-dimensions/imgseg/internal/dsu"
	"github.com/between-dimensions/imgseg/internal/pool"
)

// Intersect combines three per-channel label maps into one canonical
// label map in which two pixels share a label iff they share a label on
// every channel and are connected through an 8-neighbour path whose
// every step also agrees on all three channels.
//
// Keying regions by the (r, g, b) label triple alone would fuse
// spatially disjoint regions that happen to share a triple; the union
// pass below only ever joins adjacent pixels, so connectivity is
// preserved by construction.
func Intersect(lr, lg, lb []int32, width, height int) []int32 {
	n := width * height
	out := make([]int32, n)
	if n == 0 {
		return out
	}

	parent := pool.GetInt32(n)
	defer pool.PutInt32(parent)
	rank := pool.GetBytes(n)
	defer pool.PutBytes(rank)
	ds := dsu.NewIn(parent, rank)

	agree := func(p, q int32) bool {
		return lr[p] == lr[q] && lg[p] == lg[q] && lb[p] == lb[q]
	}

	// Forward neighbours only; union is symmetric so each unordered
	// pair needs a single visit.
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			i := int32(row + x)
			if x+1 < width && agree(i, i+1) {
				ds.Union(i, i+1)
			}
			if y+1 < height {
				down := i + int32(width)
				if x > 0 && agree(i, down-1) {
					ds.Union(i, down-1)
				}
				if agree(i, down) {
					ds.Union(i, down)
				}
				if x+1 < width && agree(i, down+1) {
					ds.Union(i, down+1)
				}
			}
		}
	}

	copy(out, ds.Flatten())
	return out
}
