package rig_test

import (
	"math"
	"testing"

	"skelpose/internal/mathutil"
	"skelpose/internal/rig"
	"skelpose/internal/skeleton"

	. "github.com/smartystreets/goconvey/convey"
)

const sampleRig = `{
  "bones": [
    {"name": "root", "translation": [0, 0, 0]},
    {"name": "spine", "parent": "root", "translation": [0, 1, 0]},
    {"name": "head", "parent": "spine", "translation": [0, 1, 0]},
    {"name": "fringe", "parent": "head", "translation": [0, 0.2, -0.1],
     "append": {"parent": "head", "ratio": 0.5, "rotate": true}}
  ],
  "motion": [
    {"at_ms": 400, "duration_ms": 300, "keys": [{"bone": "head", "euler_deg": [0, 45, 0]}]},
    {"at_ms": 0, "duration_ms": 0, "keys": [{"bone": "spine", "quat": [0, 0, 0, 1]}]}
  ]
}`

func TestParse(t *testing.T) {
	Convey("Given a valid rig document", t, func() {
		skel, motion, err := rig.Parse([]byte(sampleRig))
		So(err, ShouldBeNil)

		Convey("Then parents resolve by name to indices", func() {
			So(skel.Len(), ShouldEqual, 4)
			So(skel.Bone(0).Parent, ShouldEqual, skeleton.NoBone)
			So(skel.Bone(2).Parent, ShouldEqual, 1)
		})

		Convey("Then the append block carries over", func() {
			fringe := skel.Bone(3)
			So(fringe.AppendParent, ShouldEqual, 2)
			So(fringe.AppendRatio, ShouldEqual, 0.5)
			So(fringe.AppendRotate, ShouldBeTrue)
			So(fringe.AppendMove, ShouldBeFalse)
		})

		Convey("Then the motion timeline is sorted by time", func() {
			So(len(motion), ShouldEqual, 2)
			So(motion[0].AtMs, ShouldEqual, 0)
			So(motion[1].AtMs, ShouldEqual, 400)
		})
	})

	Convey("Given rig documents with reference errors", t, func() {
		Convey("An unknown parent is rejected", func() {
			_, _, err := rig.Parse([]byte(`{"bones": [{"name": "a", "parent": "nope"}]}`))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown parent")
		})

		Convey("An unknown append parent is rejected", func() {
			_, _, err := rig.Parse([]byte(
				`{"bones": [{"name": "a", "append": {"parent": "nope", "ratio": 1}}]}`))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown append parent")
		})

		Convey("An append ratio outside [-1, 1] is rejected", func() {
			_, _, err := rig.Parse([]byte(
				`{"bones": [{"name": "a"}, {"name": "b", "append": {"parent": "a", "ratio": 2}}]}`))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "ratio")
		})

		Convey("An empty bone name is rejected", func() {
			_, _, err := rig.Parse([]byte(`{"bones": [{"name": ""}]}`))
			So(err, ShouldNotBeNil)
		})

		Convey("Malformed JSON is rejected", func() {
			_, _, err := rig.Parse([]byte(`{`))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestBoneKeyRotation(t *testing.T) {
	Convey("Given the rotation encodings a key supports", t, func() {
		Convey("Euler degrees convert to the matching quaternion", func() {
			k := rig.BoneKey{Bone: "head", EulerDeg: &[3]float64{0, 90, 0}}
			want := mathutil.QuatFromAxisAngle(mathutil.Vec3{0, 1, 0}, math.Pi/2)
			So(k.Rotation().Dot(want), ShouldAlmostEqual, 1, 1e-12)
		})

		Convey("An explicit quaternion is normalized", func() {
			k := rig.BoneKey{Bone: "head", Quat: &[4]float64{0, 2, 0, 0}}
			So(k.Rotation(), ShouldResemble, mathutil.Quat{0, 1, 0, 0})
		})

		Convey("Neither encoding yields identity", func() {
			So(rig.BoneKey{Bone: "head"}.Rotation(), ShouldResemble, mathutil.QuatIdentity())
		})
	})
}
