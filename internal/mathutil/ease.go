package mathutil

// EaseInOut maps t in [0,1] through a smoothstep curve (3t² − 2t³):
// monotonic, zero slope at both ends, so eased transitions start and
// settle without a velocity jump.
func EaseInOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// Clamp01 limits t to the unit interval.
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
