package mathutil

import (
	"math"
	"testing"
)

func TestMat4TranslationCompose(t *testing.T) {
	a := Mat4Translation(Vec3{0, 1, 0})
	b := Mat4Translation(Vec3{0, 1, 0})
	got := Mat4Mul(a, b).Translation()
	if got != (Vec3{0, 2, 0}) {
		t.Fatalf("translations should add: got %v", got)
	}
}

func TestTranslateByRotatesOffset(t *testing.T) {
	// With a 90° rotation about Z in place, a local +X offset lands on +Y.
	m := Mat4FromQuat(QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi/2))
	m.TranslateBy(Vec3{1, 0, 0})
	got := m.Translation()
	want := Vec3{0, 1, 0}
	for k := 0; k < 3; k++ {
		if math.Abs(got[k]-want[k]) > 1e-12 {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestMulPointAffine(t *testing.T) {
	m := Mat4Translation(Vec3{1, 2, 3})
	if got := m.MulPoint(Vec3{1, 1, 1}); got != (Vec3{2, 3, 4}) {
		t.Fatalf("got %v", got)
	}
}

func TestEaseInOut(t *testing.T) {
	if EaseInOut(0) != 0 || EaseInOut(1) != 1 {
		t.Fatal("ease must pin its endpoints")
	}
	if EaseInOut(-0.5) != 0 || EaseInOut(1.5) != 1 {
		t.Fatal("ease must clamp outside [0,1]")
	}
	if EaseInOut(0.5) != 0.5 {
		t.Fatal("smoothstep is symmetric about 0.5")
	}

	// Monotonic, with near-zero slope at both ends.
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := EaseInOut(float64(i) / 100)
		if v < prev {
			t.Fatalf("ease not monotonic at t=%g", float64(i)/100)
		}
		prev = v
	}
	const h = 1e-4
	if EaseInOut(h)/h > 0.01 || (1-EaseInOut(1-h))/h > 0.01 {
		t.Fatal("ease slope at the endpoints should be near zero")
	}
}
