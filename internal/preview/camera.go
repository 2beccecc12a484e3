package preview

import "skelpose/internal/mathutil"

// Preset orthographic view matrices. Rigs are Y-up; the canvas y axis is
// flipped at projection time, not here.
var (
	// FrontCam looks straight down -Z.
	FrontCam = mathutil.Mat3Identity()

	// SideCam looks down -X.
	SideCam = mathutil.RotY(mathutil.Deg2Rad(90))

	// IsoCam is a three-quarter view: Rx(-20°) @ Ry(35°).
	IsoCam = mathutil.Mat3Mul(mathutil.RotX(mathutil.Deg2Rad(-20)), mathutil.RotY(mathutil.Deg2Rad(35)))
)

// CameraByName maps a config camera name to its view matrix.
// Unknown names fall back to the iso view.
func CameraByName(name string) mathutil.Mat3 {
	switch name {
	case "front":
		return FrontCam
	case "side":
		return SideCam
	default:
		return IsoCam
	}
}
