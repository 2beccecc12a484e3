package rig

import "skelpose/internal/mathutil"

// File matches the JSON schema of a *.rig.json file: the bind-pose bone
// hierarchy plus an optional motion timeline for the preview tools.
type File struct {
	Bones  []BoneDef   `json:"bones"`
	Motion []MotionKey `json:"motion"`
}

// BoneDef declares one bone. Parent and append parent are referenced by
// name; an empty parent marks a root bone.
type BoneDef struct {
	Name        string     `json:"name"`
	Parent      string     `json:"parent"`
	Translation [3]float64 `json:"translation"`
	Append      *AppendDef `json:"append"`
}

// AppendDef declares a partial-inheritance relationship: Ratio is signed
// in [-1, 1]; Rotate/Move gate the inherited channels.
type AppendDef struct {
	Parent string  `json:"parent"`
	Ratio  float64 `json:"ratio"`
	Rotate bool    `json:"rotate"`
	Move   bool    `json:"move"`
}

// MotionKey is one timeline entry: at AtMs, retarget the listed bones over
// DurationMs (0 snaps immediately).
type MotionKey struct {
	AtMs       float64   `json:"at_ms"`
	DurationMs float64   `json:"duration_ms"`
	Keys       []BoneKey `json:"keys"`
}

// BoneKey targets one bone with either Euler angles in degrees or an
// explicit quaternion. When both are present the quaternion wins; when
// neither is, the target is identity.
type BoneKey struct {
	Bone     string      `json:"bone"`
	EulerDeg *[3]float64 `json:"euler_deg"`
	Quat     *[4]float64 `json:"quat"`
}

// Rotation resolves the key's target quaternion.
func (k BoneKey) Rotation() mathutil.Quat {
	if k.Quat != nil {
		return mathutil.Quat(*k.Quat).Normalize()
	}
	if k.EulerDeg != nil {
		e := *k.EulerDeg
		return mathutil.EulerToQuat(
			mathutil.Deg2Rad(e[0]),
			mathutil.Deg2Rad(e[1]),
			mathutil.Deg2Rad(e[2]),
		)
	}
	return mathutil.QuatIdentity()
}

// Split flattens a key into the parallel name/rotation lists the pose
// setter consumes.
func (m MotionKey) Split() ([]string, []mathutil.Quat) {
	names := make([]string, len(m.Keys))
	rots := make([]mathutil.Quat, len(m.Keys))
	for i, k := range m.Keys {
		names[i] = k.Bone
		rots[i] = k.Rotation()
	}
	return names, rots
}
