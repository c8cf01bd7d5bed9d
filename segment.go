package imgseg

import (
	"sync"

	"github.com/between-dimensions/imgseg/internal/felzen"
)

// Segment partitions img into regions and returns the canonical label
// map: a slice of length W*H in which labels[i] is the pixel index of
// pixel i's region representative (so labels[labels[i]] == labels[i]).
//
// Each color channel is segmented independently with the
// Felzenszwalb–Huttenlocher predicate and the three labellings are
// intersected: pixels share a final region only when all three channels
// agree and the pixels are 8-connected through agreeing neighbours.
//
// k is the region scale parameter and must be non-negative; larger k
// yields larger regions. Segment is a pure function of (img, k) and
// never modifies img. The three channel jobs run concurrently.
func Segment(img *Image, k float64) ([]int32, error) {
	if img == nil || img.W <= 0 || img.H <= 0 {
		return nil, ErrEmptyImage
	}
	if k < 0 {
		return nil, ErrNegativeK
	}

	planes := [3][]uint8{img.R, img.G, img.B}
	var maps [3][]int32

	// Fan out one job per channel. Each job owns its entire working set
	// (edge buffer, union-find, statistics); the image planes are read
	// shared. The join below freezes the three label maps before the
	// intersector reads them.
	var wg sync.WaitGroup
	for c := 0; c < 3; c++ {
		wg.Add(1)
		go func(c int) {
			defer wg.Done()
			maps[c] = felzen.SegmentChannel(planes[c], img.W, img.H, k)
		}(c)
	}
	wg.Wait()

	return felzen.Intersect(maps[0], maps[1], maps[2], img.W, img.H), nil
}
