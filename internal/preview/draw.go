package preview

import (
	"image"
	"math"

	"skelpose/internal/mathutil"
	"skelpose/internal/skeleton"
)

// Renderer projects bone world positions through a fixed orthographic view
// and draws the skeleton. Scale and center are fitted once (normally to the
// bind pose) so a motion does not re-frame itself every frame.
type Renderer struct {
	View   mathutil.Mat3
	Size   int // canvas size in pixels (square)
	scale  float64
	center mathutil.Vec3
}

// NewRenderer fits the view to the given reference positions (bind-pose
// joints) with a margin so animated poses stay in frame.
func NewRenderer(view mathutil.Mat3, size int, ref []mathutil.Vec3) *Renderer {
	r := &Renderer{View: view, Size: size, scale: 1}
	if len(ref) == 0 {
		return r
	}

	min := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	var sum mathutil.Vec3
	for _, p := range ref {
		v := view.MulVec3(p)
		sum = sum.Add(v)
		for k := 0; k < 3; k++ {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}
	r.center = sum.Scale(1 / float64(len(ref)))

	extent := math.Max(max[0]-min[0], max[1]-min[1])
	if extent < 1e-9 {
		extent = 1
	}
	// Fill ~55% of the canvas; limbs swing outside the bind-pose bounds.
	r.scale = float64(size) * 0.55 / extent
	return r
}

// project maps a world position to canvas coordinates plus view depth.
func (r *Renderer) project(p mathutil.Vec3) (float64, float64, float64) {
	v := r.View.MulVec3(p).Sub(r.center)
	half := float64(r.Size) / 2
	return half + v[0]*r.scale, half - v[1]*r.scale, v[2]
}

// RenderFrame draws one posed skeleton: a segment from each bone's parent
// joint to the bone joint, a dot per joint, and a brighter dot for roots.
// Joint positions come straight from the evaluated world matrices.
func (r *Renderer) RenderFrame(skel *skeleton.Skeleton, worlds []mathutil.Mat4) *image.NRGBA {
	fb := NewFrameBuffer(r.Size, r.Size)

	for i := 0; i < skel.Len(); i++ {
		b := skel.Bone(i)
		if b.Parent == skeleton.NoBone {
			continue
		}
		x0, y0, z0 := r.project(worlds[b.Parent].Translation())
		x1, y1, z1 := r.project(worlds[i].Translation())
		drawLine(fb, x0, y0, z0, x1, y1, z1, 190, 190, 200)
	}

	for i := 0; i < skel.Len(); i++ {
		x, y, z := r.project(worlds[i].Translation())
		if skel.Bone(i).Parent == skeleton.NoBone {
			drawDot(fb, x, y, z+0.5, 3, 235, 90, 60)
		} else {
			drawDot(fb, x, y, z+0.5, 2, 240, 170, 50)
		}
	}

	return fb.ToNRGBA()
}

// drawLine steps a DDA with interpolated depth.
func drawLine(fb *FrameBuffer, x0, y0, z0, x1, y1, z1 float64, r, g, b uint8) {
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		x := x0 + (x1-x0)*t
		y := y0 + (y1-y0)*t
		z := z0 + (z1-z0)*t
		fb.Plot(int(x+0.5), int(y+0.5), z, r, g, b, 255)
	}
}

// drawDot fills a small disc.
func drawDot(fb *FrameBuffer, cx, cy, z float64, radius int, r, g, b uint8) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			fb.Plot(int(cx+0.5)+dx, int(cy+0.5)+dy, z, r, g, b, 255)
		}
	}
}
