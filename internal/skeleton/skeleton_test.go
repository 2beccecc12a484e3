package skeleton_test

import (
	"testing"

	"skelpose/internal/mathutil"
	"skelpose/internal/skeleton"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given bone hierarchies of varying validity", t, func() {
		Convey("An empty skeleton is rejected", func() {
			_, err := skeleton.New(nil, nil)
			So(err, ShouldWrap, skeleton.ErrEmpty)
		})

		Convey("A parent index out of range is rejected", func() {
			_, err := skeleton.New([]skeleton.Bone{
				{Name: "root", Parent: skeleton.NoBone, AppendParent: skeleton.NoBone},
				{Name: "arm", Parent: 7, AppendParent: skeleton.NoBone},
			}, nil)
			So(err, ShouldWrap, skeleton.ErrBadIndex)
		})

		Convey("An append parent out of range is rejected", func() {
			_, err := skeleton.New([]skeleton.Bone{
				{Name: "root", Parent: skeleton.NoBone, AppendParent: -3},
			}, nil)
			So(err, ShouldWrap, skeleton.ErrBadIndex)
		})

		Convey("A zero-valued bone references index 0, not 'none'", func() {
			// Bone{} leaves AppendParent at 0; on bone 0 that is a
			// self-reference and must fail construction, not slip through.
			_, err := skeleton.New([]skeleton.Bone{{Name: "root", Parent: skeleton.NoBone}}, nil)
			So(err, ShouldWrap, skeleton.ErrCycle)
		})

		Convey("A self-referential parent is rejected", func() {
			_, err := skeleton.New([]skeleton.Bone{
				{Name: "root", Parent: 0, AppendParent: skeleton.NoBone},
			}, nil)
			So(err, ShouldWrap, skeleton.ErrCycle)
		})

		Convey("A cycle through mixed parent and append edges is rejected", func() {
			// 0 → parent 1, 1 → append parent 0
			_, err := skeleton.New([]skeleton.Bone{
				{Name: "a", Parent: 1, AppendParent: skeleton.NoBone},
				{Name: "b", Parent: skeleton.NoBone, AppendParent: 0},
			}, nil)
			So(err, ShouldWrap, skeleton.ErrCycle)
		})

		Convey("An inverse-bind count mismatch is rejected", func() {
			_, err := skeleton.New([]skeleton.Bone{
				{Name: "root", Parent: skeleton.NoBone, AppendParent: skeleton.NoBone},
			}, []mathutil.Mat4{mathutil.Mat4Identity(), mathutil.Mat4Identity()})
			So(err, ShouldWrap, skeleton.ErrInvBindCount)
		})

		Convey("A valid chain builds with child lists and derived inverse binds", func() {
			s, err := skeleton.New([]skeleton.Bone{
				{Name: "root", Parent: skeleton.NoBone, AppendParent: skeleton.NoBone},
				{Name: "spine", Parent: 0, AppendParent: skeleton.NoBone, BindTranslation: mathutil.Vec3{0, 1, 0}},
				{Name: "head", Parent: 1, AppendParent: skeleton.NoBone, BindTranslation: mathutil.Vec3{0, 1, 0}},
			}, nil)
			So(err, ShouldBeNil)
			So(s.Len(), ShouldEqual, 3)
			So(s.Children(0), ShouldResemble, []int{1})
			So(s.Children(1), ShouldResemble, []int{2})
			So(s.Names(), ShouldResemble, []string{"root", "spine", "head"})

			Convey("And the head's inverse bind undoes the bind chain", func() {
				inv := s.InverseBind(2)
				back := inv.MulPoint(mathutil.Vec3{0, 2, 0})
				So(back[0], ShouldAlmostEqual, 0)
				So(back[1], ShouldAlmostEqual, 0)
				So(back[2], ShouldAlmostEqual, 0)
			})
		})

		Convey("Bones ordered child-before-parent still validate", func() {
			s, err := skeleton.New([]skeleton.Bone{
				{Name: "tip", Parent: 1, AppendParent: skeleton.NoBone, BindTranslation: mathutil.Vec3{0, 1, 0}},
				{Name: "root", Parent: skeleton.NoBone, AppendParent: skeleton.NoBone},
			}, nil)
			So(err, ShouldBeNil)
			inv := s.InverseBind(0)
			So(inv.Translation()[1], ShouldAlmostEqual, -1)
		})
	})
}

func TestHasAppend(t *testing.T) {
	Convey("Given append configurations", t, func() {
		Convey("A zero ratio contributes nothing", func() {
			b := skeleton.Bone{AppendParent: 1, AppendRotate: true, AppendRatio: 0}
			So(b.HasAppend(), ShouldBeFalse)
		})
		Convey("No channels means no append", func() {
			b := skeleton.Bone{AppendParent: 1, AppendRatio: 0.5}
			So(b.HasAppend(), ShouldBeFalse)
		})
		Convey("A negative ratio with a channel is effective", func() {
			b := skeleton.Bone{AppendParent: 1, AppendMove: true, AppendRatio: -0.5}
			So(b.HasAppend(), ShouldBeTrue)
		})
	})
}
