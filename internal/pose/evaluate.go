package pose

import (
	"math"

	"skelpose/internal/mathutil"
	"skelpose/internal/skeleton"
)

// Evaluate advances active tweens to nowMs and recomputes every bone's
// world matrix. nowMs comes from the caller's monotonic clock; the engine
// never reads time itself.
//
// Resolution is a memoized recursion over the combined parent/append graph:
// each bone is computed at most once per call regardless of index order, so
// the whole pass is O(N) even when parents follow their children numerically.
func (p *Pose) Evaluate(nowMs float64) {
	p.clockMs = nowMs
	p.advanceTweens(nowMs)

	for i := range p.computed {
		p.computed[i] = false
	}
	for i := range p.computed {
		p.resolve(i)
	}
}

// resolve computes bone i's append-blended local state and world matrix.
// Append parents and structural parents are resolved on demand; the
// construction-time cycle check guarantees termination.
func (p *Pose) resolve(i int) {
	if p.computed[i] {
		return
	}
	b := p.skel.Bone(i)

	rot := p.rotation[i]
	trans := p.translation[i]

	if b.HasAppend() {
		ap := b.AppendParent
		p.resolve(ap)
		if b.AppendRotate {
			src := p.effRot[ap]
			if b.AppendRatio < 0 {
				src = src.Conjugate()
			}
			blend := mathutil.QuatSlerp(mathutil.QuatIdentity(), src, math.Abs(b.AppendRatio))
			rot = mathutil.QuatMul(blend, rot)
		}
		if b.AppendMove {
			trans = trans.Add(p.effTrans[ap].Scale(b.AppendRatio))
		}
	}
	// What this bone passes on if it is someone else's append parent.
	p.effRot[i] = rot
	p.effTrans[i] = trans

	// local = T(bind) × R × T(offset)
	local := mathutil.FromMat3Translation(mathutil.QuatToMat3(rot), b.BindTranslation)
	local.TranslateBy(trans)

	if b.Parent != skeleton.NoBone {
		p.resolve(b.Parent)
		p.world[i] = mathutil.Mat4Mul(p.world[b.Parent], local)
	} else {
		p.world[i] = local
	}
	p.computed[i] = true
}
