// Package preview renders a posed skeleton (joints and bone segments) to
// images. It exists as debug tooling around the pose evaluator: frames are
// drawn on a supersampled CPU canvas, downsampled, and encoded as WebP or
// TGA through a worker pool.
package preview

import (
	"image"
	"math"
)

// FrameBuffer is the render target: flat RGBA and depth slices for cache
// locality. Depth starts at -inf; larger values win.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // depth per pixel, len = W*H
}

// NewFrameBuffer allocates a transparent color buffer and -inf z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	zbuf := make([]float64, n)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   zbuf,
	}
}

// Plot writes one depth-tested pixel.
func (fb *FrameBuffer) Plot(x, y int, z float64, r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := y*fb.Width + x
	if z < fb.ZBuf[i] {
		return
	}
	fb.ZBuf[i] = z
	c := i * 4
	fb.Color[c] = r
	fb.Color[c+1] = g
	fb.Color[c+2] = b
	fb.Color[c+3] = a
}

// ToNRGBA copies the color buffer into an image.
func (fb *FrameBuffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
