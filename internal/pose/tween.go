package pose

import "skelpose/internal/mathutil"

// tween is one bone's rotation transition slot. Idle slots are inert;
// an active slot drives the bone's rotation buffer every Evaluate until
// elapsed time reaches the duration.
type tween struct {
	active     bool
	start      mathutil.Quat
	target     mathutil.Quat
	startMs    float64
	durationMs float64
}

// sample returns the eased rotation an active tween shows at nowMs.
func (tw *tween) sample(nowMs float64) mathutil.Quat {
	t := mathutil.Clamp01((nowMs - tw.startMs) / tw.durationMs)
	return mathutil.QuatSlerp(tw.start, tw.target, mathutil.EaseInOut(t))
}

// SetBoneRotationsAt retargets bones by name. Entries naming unknown bones
// are skipped individually; the rest of the call still applies. Rotations
// are normalized defensively (an exact-zero quaternion becomes identity).
//
// durationMs ≤ 0 writes the target directly and forces the bone's tween
// idle, cancelling any in-flight transition. durationMs > 0 starts a tween
// whose start value is the rotation currently visible for that bone — for a
// bone retargeted mid-transition that is the eased mid-tween sample, not the
// old target, so the displayed rotation stays continuous at the retarget
// instant.
//
// nowMs must come from the same monotonic clock later passed to Evaluate.
func (p *Pose) SetBoneRotationsAt(names []string, rots []mathutil.Quat, durationMs, nowMs float64) {
	if nowMs > p.clockMs {
		p.clockMs = nowMs
	}
	n := len(names)
	if len(rots) < n {
		n = len(rots)
	}
	for k := 0; k < n; k++ {
		i, ok := p.byName[names[k]]
		if !ok {
			continue
		}
		target := rots[k].Normalize()

		if durationMs <= 0 {
			p.rotation[i] = target
			p.tweens[i].active = false
			continue
		}

		start := p.visibleRotation(i, nowMs)
		p.tweens[i] = tween{
			active:     true,
			start:      start,
			target:     target,
			startMs:    nowMs,
			durationMs: durationMs,
		}
	}
}

// SetBoneRotations is SetBoneRotationsAt stamped with the clock value of
// the most recent Evaluate (or *At call). Suited to callers that retarget
// between frames without tracking time themselves.
func (p *Pose) SetBoneRotations(names []string, rots []mathutil.Quat, durationMs float64) {
	p.SetBoneRotationsAt(names, rots, durationMs, p.clockMs)
}

// visibleRotation returns what bone i currently displays: the eased sample
// of its active tween, or the rotation buffer when idle.
func (p *Pose) visibleRotation(i int, nowMs float64) mathutil.Quat {
	if tw := &p.tweens[i]; tw.active {
		return tw.sample(nowMs)
	}
	return p.rotation[i]
}

// TweenActive reports whether bone i has a transition in flight.
func (p *Pose) TweenActive(i int) bool { return p.tweens[i].active }

// advanceTweens writes every active tween's eased rotation into the
// rotation buffer and retires tweens whose duration has elapsed, leaving
// the exact target in place.
func (p *Pose) advanceTweens(nowMs float64) {
	for i := range p.tweens {
		tw := &p.tweens[i]
		if !tw.active {
			continue
		}
		t := (nowMs - tw.startMs) / tw.durationMs
		if t >= 1 {
			p.rotation[i] = tw.target
			tw.active = false
			continue
		}
		if t < 0 {
			t = 0
		}
		p.rotation[i] = mathutil.QuatSlerp(tw.start, tw.target, mathutil.EaseInOut(t))
	}
}
