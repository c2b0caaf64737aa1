// Package vision turns successive camera frames into a normalized 2D
// motion vector by frame differencing. It owns no camera: callers hand it
// pixel buffers and it keeps a one-deep history per extractor instance.
package vision

import (
	"image"
	"image/color"
)

// Frame is a rectangular RGBA pixel buffer. Width and height are fixed
// for the lifetime of a capture session; Pix holds 4 bytes per pixel in
// R, G, B, A order, rows top to bottom.
type Frame struct {
	W, H int
	Pix  []byte
}

// NewFrame allocates a zeroed frame of the given dimensions.
func NewFrame(w, h int) *Frame {
	return &Frame{
		W:   w,
		H:   h,
		Pix: make([]byte, w*h*4),
	}
}

// FrameFromImage copies an image into a new Frame. The fast path handles
// *image.RGBA with a tight buffer; anything else goes through the generic
// color model conversion.
func FrameFromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := NewFrame(b.Dx(), b.Dy())

	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == f.W*4 && b.Min == (image.Point{}) {
		copy(f.Pix, rgba.Pix)
		return f
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, a := img.At(x, y).RGBA()
			f.Pix[i] = byte(r >> 8)
			f.Pix[i+1] = byte(g >> 8)
			f.Pix[i+2] = byte(bb >> 8)
			f.Pix[i+3] = byte(a >> 8)
			i += 4
		}
	}
	return f
}

// At returns the color at (x, y). Used by tests and the JPEG snapshot
// path; the extractor itself indexes Pix directly.
func (f *Frame) At(x, y int) color.RGBA {
	i := (y*f.W + x) * 4
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: f.Pix[i+3]}
}

// SetRGB sets the color at (x, y) with full opacity.
func (f *Frame) SetRGB(x, y int, r, g, b byte) {
	i := (y*f.W + x) * 4
	f.Pix[i] = r
	f.Pix[i+1] = g
	f.Pix[i+2] = b
	f.Pix[i+3] = 0xff
}

// Image wraps the frame as an image.Image without copying.
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: f.W * 4,
		Rect:   image.Rect(0, 0, f.W, f.H),
	}
}
