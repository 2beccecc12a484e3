// Package pose evaluates a skeleton's per-bone local state into world-space
// transforms, once per animation frame. It owns the mutable runtime buffers
// (local rotations/translations, world matrices) and the per-bone rotation
// tween scheduler; the static hierarchy stays in package skeleton.
//
// A Pose is single-threaded by contract: at most one Evaluate in flight per
// instance, and setters serialized against it by the caller. Time never
// comes from the wall clock — every entry point takes or reuses a
// caller-supplied timestamp, so identical call sequences replay identically.
package pose

import (
	"skelpose/internal/mathutil"
	"skelpose/internal/skeleton"
)

// Pose is the mutable per-instance runtime state for one animated model.
// All buffers are parallel arrays keyed by the skeleton's bone indices.
type Pose struct {
	skel *skeleton.Skeleton

	rotation    []mathutil.Quat
	translation []mathutil.Vec3
	world       []mathutil.Mat4
	computed    []bool
	tweens      []tween
	byName      map[string]int

	// Last timestamp seen by Evaluate or a *At setter; used as the start
	// time for setters called without an explicit clock.
	clockMs float64

	// Per-frame append scratch, reused across bones within one Evaluate.
	effRot   []mathutil.Quat
	effTrans []mathutil.Vec3
}

// New builds the runtime state for a skeleton. The skeleton is shared and
// read-only; it must outlive the Pose. Rotations start at identity,
// translations at zero, and every tween idle. World matrices are undefined
// until the first Evaluate.
func New(skel *skeleton.Skeleton) *Pose {
	n := skel.Len()
	p := &Pose{
		skel:        skel,
		rotation:    make([]mathutil.Quat, n),
		translation: make([]mathutil.Vec3, n),
		world:       make([]mathutil.Mat4, n),
		computed:    make([]bool, n),
		tweens:      make([]tween, n),
		byName:      make(map[string]int, n),
		effRot:      make([]mathutil.Quat, n),
		effTrans:    make([]mathutil.Vec3, n),
	}
	for i := range p.rotation {
		p.rotation[i] = mathutil.QuatIdentity()
	}
	// Duplicate names: the last index wins in the lookup. Storage still
	// holds every bone; only name-based addressing is ambiguous.
	for i := 0; i < n; i++ {
		p.byName[skel.Bone(i).Name] = i
	}
	return p
}

// Skeleton returns the shared static hierarchy this pose was built from.
func (p *Pose) Skeleton() *skeleton.Skeleton { return p.skel }

// Len returns the bone count.
func (p *Pose) Len() int { return len(p.rotation) }

// IndexByName resolves a bone name to its index.
func (p *Pose) IndexByName(name string) (int, bool) {
	i, ok := p.byName[name]
	return i, ok
}

// BoneNames returns the bone names in index order.
func (p *Pose) BoneNames() []string { return p.skel.Names() }

// WorldMatrices returns the per-bone world transforms produced by the most
// recent Evaluate. The slice is owned by the Pose and valid until the next
// Evaluate call; callers must not modify it.
func (p *Pose) WorldMatrices() []mathutil.Mat4 { return p.world }

// WorldMatrix returns the world transform of bone i from the most recent
// Evaluate.
func (p *Pose) WorldMatrix(i int) mathutil.Mat4 { return p.world[i] }

// InverseBindMatrices exposes the skeleton's per-bone inverse-bind matrices
// for the skinning consumer, which combines world[i] × invBind[i] itself.
func (p *Pose) InverseBindMatrices() []mathutil.Mat4 { return p.skel.InverseBindMatrices() }

// LocalRotation returns bone i's current local rotation.
func (p *Pose) LocalRotation(i int) mathutil.Quat { return p.rotation[i] }

// LocalTranslation returns bone i's current local translation offset.
func (p *Pose) LocalTranslation(i int) mathutil.Vec3 { return p.translation[i] }

// SetBoneTranslations writes local translation offsets immediately.
// Unknown names are skipped; translations are never tweened.
func (p *Pose) SetBoneTranslations(names []string, offsets []mathutil.Vec3) {
	n := len(names)
	if len(offsets) < n {
		n = len(offsets)
	}
	for k := 0; k < n; k++ {
		if i, ok := p.byName[names[k]]; ok {
			p.translation[i] = offsets[k]
		}
	}
}
