package main

import (
	"image"
	"math/rand"
	"time"
)

// densify remaps sparse root-pixel labels onto [0, count), in first-use
// order. Rendering wants small contiguous ids so the palette can be a
// plain slice.
func densify(labels []int32) (ids []int32, count int) {
	ids = make([]int32, len(labels))
	remap := make(map[int32]int32)
	for i, l := range labels {
		id, ok := remap[l]
		if !ok {
			id = int32(len(remap))
			remap[l] = id
		}
		ids[i] = id
	}
	return ids, len(remap)
}

// renderLabels paints each region with a random color. A non-zero seed
// makes the palette reproducible across runs; the label map itself is
// deterministic either way.
func renderLabels(labels []int32, w, h int, seed int64) *image.NRGBA {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ids, count := densify(labels)
	palette := make([][3]uint8, count)
	for i := range palette {
		palette[i] = [3]uint8{
			uint8(rng.Intn(256)),
			uint8(rng.Intn(256)),
			uint8(rng.Intn(256)),
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, id := range ids {
		c := palette[id]
		p := i * 4
		img.Pix[p] = c[0]
		img.Pix[p+1] = c[1]
		img.Pix[p+2] = c[2]
		img.Pix[p+3] = 255
	}
	return img
}
