package imgseg

import (
	"errors"
	"image"
)

// Validation errors returned by Segment and FromImage consumers.
var (
	ErrEmptyImage = errors.New("imgseg: image has zero dimension")
	ErrNegativeK  = errors.New("imgseg: k must be non-negative")
)

// Image is a dense W×H grid of 8-bit RGB pixels stored as three planar
// channel slices. Pixel (x, y) lives at index y*W + x in each plane.
// The segmenter treats an Image as immutable.
type Image struct {
	W, H    int
	R, G, B []uint8
}

// NewImage allocates a zeroed w×h image.
func NewImage(w, h int) *Image {
	n := w * h
	return &Image{
		W: w, H: h,
		R: make([]uint8, n),
		G: make([]uint8, n),
		B: make([]uint8, n),
	}
}

// Index returns the plane index of pixel (x, y).
func (m *Image) Index(x, y int) int { return y*m.W + x }

// At returns the RGB triple of pixel (x, y). No bounds checking beyond
// the slices' own.
func (m *Image) At(x, y int) (r, g, b uint8) {
	i := y*m.W + x
	return m.R[i], m.G[i], m.B[i]
}

// SetRGB stores the RGB triple of pixel (x, y).
func (m *Image) SetRGB(x, y int, r, g, b uint8) {
	i := y*m.W + x
	m.R[i], m.G[i], m.B[i] = r, g, b
}

// FromImage converts any image.Image into a planar RGB Image, dropping
// alpha. *image.RGBA and *image.NRGBA take a direct row-copy fast path;
// everything else goes through the color model.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	m := NewImage(b.Dx(), b.Dy())

	switch s := src.(type) {
	case *image.RGBA:
		// RGBA stores alpha-premultiplied bytes; un-premultiply so a
		// translucent pixel yields its true color, not a darkened one.
		fromPremultiplied(m, s.Pix, s.Stride, b)
	case *image.NRGBA:
		// Non-premultiplied already; alpha is dropped, raw rows copy over.
		fromNonPremultiplied(m, s.Pix, s.Stride, b)
	default:
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bb, _ := src.At(x, y).RGBA()
				m.R[i] = uint8(r >> 8)
				m.G[i] = uint8(g >> 8)
				m.B[i] = uint8(bb >> 8)
				i++
			}
		}
	}
	return m
}

func fromNonPremultiplied(m *Image, pix []uint8, stride int, b image.Rectangle) {
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := pix[(y-b.Min.Y)*stride:]
		for x := 0; x < m.W; x++ {
			p := x * 4
			m.R[i] = row[p]
			m.G[i] = row[p+1]
			m.B[i] = row[p+2]
			i++
		}
	}
}

func fromPremultiplied(m *Image, pix []uint8, stride int, b image.Rectangle) {
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := pix[(y-b.Min.Y)*stride:]
		for x := 0; x < m.W; x++ {
			p := x * 4
			r, g, bl := row[p], row[p+1], row[p+2]
			if a := row[p+3]; a > 0 && a < 255 {
				a16 := uint16(a)
				r = uint8(uint16(r) * 255 / a16)
				g = uint8(uint16(g) * 255 / a16)
				bl = uint8(uint16(bl) * 255 / a16)
			}
			m.R[i] = r
			m.G[i] = g
			m.B[i] = bl
			i++
		}
	}
}
