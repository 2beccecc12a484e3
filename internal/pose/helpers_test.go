package pose_test

import (
	"math"

	"skelpose/internal/mathutil"
	"skelpose/internal/skeleton"
)

// quatClose treats q and -q as the same rotation.
func quatClose(a, b mathutil.Quat, tol float64) bool {
	d := a.Dot(b)
	if d < 0 {
		d = -d
	}
	return d >= 1-tol
}

func matClose(a, b mathutil.Mat4, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

// naive is an unmemoized reference evaluator: every call recomputes the
// whole dependency chain recursively. Kept deliberately independent of the
// production resolver so the two can disagree.
type naive struct {
	skel  *skeleton.Skeleton
	rot   []mathutil.Quat
	trans []mathutil.Vec3
}

func (n naive) effRot(i int) mathutil.Quat {
	b := n.skel.Bone(i)
	rot := n.rot[i]
	if b.HasAppend() && b.AppendRotate {
		src := n.effRot(b.AppendParent)
		if b.AppendRatio < 0 {
			src = src.Conjugate()
		}
		blend := mathutil.QuatSlerp(mathutil.QuatIdentity(), src, math.Abs(b.AppendRatio))
		rot = mathutil.QuatMul(blend, rot)
	}
	return rot
}

func (n naive) effTrans(i int) mathutil.Vec3 {
	b := n.skel.Bone(i)
	trans := n.trans[i]
	if b.HasAppend() && b.AppendMove {
		trans = trans.Add(n.effTrans(b.AppendParent).Scale(b.AppendRatio))
	}
	return trans
}

func (n naive) world(i int) mathutil.Mat4 {
	b := n.skel.Bone(i)
	local := mathutil.FromMat3Translation(mathutil.QuatToMat3(n.effRot(i)), b.BindTranslation)
	local.TranslateBy(n.effTrans(i))
	if b.Parent != skeleton.NoBone {
		return mathutil.Mat4Mul(n.world(b.Parent), local)
	}
	return local
}

func mustSkeleton(bones []skeleton.Bone) *skeleton.Skeleton {
	s, err := skeleton.New(bones, nil)
	if err != nil {
		panic(err)
	}
	return s
}

func noAppend(name string, parent int, bind mathutil.Vec3) skeleton.Bone {
	return skeleton.Bone{
		Name:            name,
		Parent:          parent,
		BindTranslation: bind,
		AppendParent:    skeleton.NoBone,
	}
}
