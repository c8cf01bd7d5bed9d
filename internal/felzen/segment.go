// Package felzen implements the Felzenszwalb–Huttenlocher merge
// predicate over a single color channel, and the intersection of
// per-channel labellings into a combined one.
//
// Reference: Felzenszwalb & Huttenlocher, "Efficient Graph-Based Image
// Segmentation", IJCV 59(2), 2004.
package felzen

import (
	"github.com/between-dimensions/imgseg/internal/dsu"
	"github.com/between-dimensions/imgseg/internal/graph"
	"github.com/between-dimensions/imgseg/internal/pool"
)

// SegmentChannel partitions one channel plane into regions and returns
// the canonical label map: labels[i] is the pixel index of pixel i's
// region representative. plane holds width*height samples; k is the region
// scale parameter (larger k merges more aggressively, k = 0 merges only
// across zero-weight edges).
//
// Two components A, B joined by an edge of weight w merge iff
//
//	w <= min(Int(A) + k/|A|, Int(B) + k/|B|)
//
// where Int(C) is the heaviest edge previously accepted into C. Edges
// are considered in ascending weight order with a deterministic
// tie-break, so the result is a pure function of (plane, k).
func SegmentChannel(plane []uint8, width, height int, k float64) []int32 {
	n := width * height
	labels := make([]int32, n)
	if n == 0 {
		return labels
	}

	edges := graph.SortedEdges(plane, width, height)
	defer graph.Release(edges)

	parent := pool.GetInt32(n)
	defer pool.PutInt32(parent)
	rank := pool.GetBytes(n)
	defer pool.PutBytes(rank)
	ds := dsu.NewIn(parent, rank)

	// Per-root statistics, indexed by root pixel. Stale entries under
	// non-root indices are never read again.
	size := pool.GetInt32(n)
	defer pool.PutInt32(size)
	intDiff := pool.GetBytes(n)
	defer pool.PutBytes(intDiff)
	for i := 0; i < n; i++ {
		size[i] = 1
		intDiff[i] = 0
	}

	kf := float32(k)
	for _, e := range edges {
		u, v := e.Endpoints(width)
		ru := ds.Find(u)
		rv := ds.Find(v)
		if ru == rv {
			continue
		}
		w := e.Weight()
		// Merge threshold in float32; k/size is a real division.
		tau := float32(intDiff[ru]) + kf/float32(size[ru])
		if t := float32(intDiff[rv]) + kf/float32(size[rv]); t < tau {
			tau = t
		}
		if float32(w) <= tau {
			sz := size[ru] + size[rv]
			r := ds.Union(ru, rv)
			size[r] = sz
			// Edges arrive in ascending weight order, so w is the
			// heaviest edge in the merged component's tree.
			intDiff[r] = w
		}
	}

	copy(labels, ds.Flatten())
	return labels
}
