// Package gaussian implements the separable Gaussian pre-filter used to
// smooth an image before segmentation. Smoothing suppresses sensor
// noise that would otherwise shatter flat areas into tiny regions.
//
// The segmentation core does not interpret the mask size or sigma;
// callers smooth first and segment the result.
package gaussian

import (
	"errors"
	"math"

	"github.com/between-dimensions/imgseg"
)

// Parameter errors.
var (
	ErrMaskSize = errors.New("gaussian: mask size must be an odd integer >= 3")
	ErrSigma    = errors.New("gaussian: sigma must be positive")
)

// Kernel returns the normalized 1-D Gaussian mask of the given size
// (odd, >= 3) and standard deviation sigma (> 0). The weights sum to 1.
func Kernel(size int, sigma float64) ([]float32, error) {
	if size < 3 || size%2 == 0 {
		return nil, ErrMaskSize
	}
	if sigma <= 0 || math.IsNaN(sigma) {
		return nil, ErrSigma
	}
	k := make([]float32, size)
	r := size / 2
	sum := 0.0
	for i := range k {
		d := float64(i - r)
		w := math.Exp(-d * d / (2 * sigma * sigma))
		k[i] = float32(w)
		sum += w
	}
	inv := float32(1 / sum)
	for i := range k {
		k[i] *= inv
	}
	return k, nil
}

// Smooth returns a new image produced by convolving each channel of img
// with the size×size Gaussian, applied as two 1-D passes (horizontal
// then vertical). Samples beyond the border clamp to the nearest edge
// pixel. img is not modified.
func Smooth(img *imgseg.Image, size int, sigma float64) (*imgseg.Image, error) {
	kern, err := Kernel(size, sigma)
	if err != nil {
		return nil, err
	}
	if img == nil || img.W <= 0 || img.H <= 0 {
		return nil, imgseg.ErrEmptyImage
	}

	out := imgseg.NewImage(img.W, img.H)
	tmp := make([]float32, img.W*img.H)
	smoothPlane(img.R, out.R, tmp, img.W, img.H, kern)
	smoothPlane(img.G, out.G, tmp, img.W, img.H, kern)
	smoothPlane(img.B, out.B, tmp, img.W, img.H, kern)
	return out, nil
}

// smoothPlane runs the separable convolution for one channel. tmp holds
// the horizontally filtered intermediate and is overwritten.
func smoothPlane(src, dst []uint8, tmp []float32, w, h int, kern []float32) {
	r := len(kern) / 2

	// Horizontal pass with edge clamping.
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var sum float32
			for j, kw := range kern {
				sx := x + j - r
				if sx < 0 {
					sx = 0
				} else if sx >= w {
					sx = w - 1
				}
				sum += kw * float32(src[row+sx])
			}
			tmp[row+x] = sum
		}
	}

	// Vertical pass, rounding to the nearest byte.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float32
			for j, kw := range kern {
				sy := y + j - r
				if sy < 0 {
					sy = 0
				} else if sy >= h {
					sy = h - 1
				}
				sum += kw * tmp[sy*w+x]
			}
			v := int(sum + 0.5)
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			dst[y*w+x] = uint8(v)
		}
	}
}
