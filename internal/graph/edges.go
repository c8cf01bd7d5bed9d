// Package graph enumerates the 8-connected pixel graph of a single
// image channel and sorts its edges by weight.
//
// Pixels are indexed row-major (i = y*width + x). Scanning in index
// order and emitting only edges whose far endpoint has a larger index
// yields each unordered neighbour pair exactly once without a visited
// set; only four of the eight directions can point forward.
package graph

import "sync"

// Dir encodes which forward neighbour an edge points to, in increasing
// order of the far endpoint's index offset.
type Dir uint8

const (
	DirRight     Dir = iota // (+1, 0)
	DirDownLeft             // (-1, +1)
	DirDown                 // (0, +1)
	DirDownRight            // (+1, +1)
)

// offset returns the index distance from the near endpoint to the far
// endpoint for a grid of the given width.
func (d Dir) offset(width int) int32 {
	switch d {
	case DirRight:
		return 1
	case DirDownLeft:
		return int32(width) - 1
	case DirDown:
		return int32(width)
	default:
		return int32(width) + 1
	}
}

// Edge packs a grid edge into a uint64:
//
//	bits 35..42  weight (absolute channel difference, 0..255)
//	bits  3..34  pixel index of the lower endpoint
//	bits  0..2   direction code
//
// With the weight in the high bits, ordering raw Edge values ascending
// orders by weight with a deterministic (pixel, direction) tie-break.
type Edge uint64

func pack(u int32, d Dir, w uint8) Edge {
	return Edge(uint64(w)<<35 | uint64(uint32(u))<<3 | uint64(d))
}

// Weight returns the edge's weight byte.
func (e Edge) Weight() uint8 { return uint8(e >> 35) }

// Pixel returns the index of the edge's lower endpoint.
func (e Edge) Pixel() int32 { return int32(uint32(e >> 3)) }

// Dir returns the edge's direction code.
func (e Edge) Dir() Dir { return Dir(e & 7) }

// Endpoints returns both pixel indices of the edge, lower first, for a
// grid of the given width.
func (e Edge) Endpoints(width int) (u, v int32) {
	u = e.Pixel()
	return u, u + e.Dir().offset(width)
}

// EdgeCount returns the exact number of 8-connected grid edges for a
// width×height image: (w-1)h horizontal + w(h-1) vertical + 2(w-1)(h-1)
// diagonal.
func EdgeCount(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return (width-1)*height + width*(height-1) + 2*(width-1)*(height-1)
}

// Build returns the 8-connected edge set of one channel plane, in
// row-major emission order. plane must hold width*height samples.
func Build(plane []uint8, width, height int) []Edge {
	return appendEdges(make([]Edge, 0, EdgeCount(width, height)), plane, width, height)
}

func appendEdges(dst []Edge, plane []uint8, width, height int) []Edge {
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			i := int32(row + x)
			c := plane[i]
			if x+1 < width {
				dst = append(dst, pack(i, DirRight, absDiff(c, plane[i+1])))
			}
			if y+1 < height {
				down := i + int32(width)
				if x > 0 {
					dst = append(dst, pack(i, DirDownLeft, absDiff(c, plane[down-1])))
				}
				dst = append(dst, pack(i, DirDown, absDiff(c, plane[down])))
				if x+1 < width {
					dst = append(dst, pack(i, DirDownRight, absDiff(c, plane[down+1])))
				}
			}
		}
	}
	return dst
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// edgePool recycles edge buffers between channel runs. Same-size frames
// segment repeatedly in interactive use, so the slabs stabilize quickly.
var edgePool sync.Pool

func getEdgeBuf(n int) []Edge {
	if v := edgePool.Get(); v != nil {
		buf := *(v.(*[]Edge))
		if cap(buf) >= n {
			return buf[:0]
		}
	}
	return make([]Edge, 0, n)
}

// Release hands an edge slice obtained from SortedEdges back to the
// internal pool.
func Release(edges []Edge) {
	if cap(edges) == 0 {
		return
	}
	edges = edges[:0]
	edgePool.Put(&edges)
}

// SortedEdges builds the edge set of plane and returns it sorted by
// ascending weight; ties keep emission order. The returned slice comes
// from an internal pool and must be handed back with Release.
func SortedEdges(plane []uint8, width, height int) []Edge {
	n := EdgeCount(width, height)
	raw := appendEdges(getEdgeBuf(n), plane, width, height)
	sorted := sortByWeight(raw, getEdgeBuf(n)[:len(raw)])
	Release(raw)
	return sorted
}

// sortByWeight stable-sorts edges into dst by their byte weight using a
// single counting pass. Weights span only 256 values, so this is O(E)
// and never falls back to a comparison sort. dst must have len(edges)
// elements; the sorted slice is returned.
func sortByWeight(edges, dst []Edge) []Edge {
	var count [256]int
	for _, e := range edges {
		count[e.Weight()]++
	}
	var start [256]int
	sum := 0
	for w := 0; w < 256; w++ {
		start[w] = sum
		sum += count[w]
	}
	for _, e := range edges {
		w := e.Weight()
		dst[start[w]] = e
		start[w]++
	}
	return dst
}
