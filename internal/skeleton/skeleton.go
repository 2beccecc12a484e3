// Package skeleton defines the immutable bone hierarchy a model is rigged
// against: per-bone bind-pose data, parent and append-parent relationships,
// and one inverse-bind matrix per bone. A Skeleton is built once by a loader
// and shared read-only by any number of runtime poses.
package skeleton

import (
	"errors"
	"fmt"

	"skelpose/internal/mathutil"
)

// NoBone marks an absent parent or append-parent index.
const NoBone = -1

// Bone holds the static rig data for one bone. AppendParent, when set,
// names a bone whose local rotation and/or translation partially propagates
// into this one, scaled by AppendRatio in [-1, 1]. The append parent need
// not be the structural parent.
//
// Absent relationships must be set to NoBone explicitly: 0 is a valid bone
// index, so a zero-valued Parent or AppendParent references bone 0 and is
// validated as such by New.
type Bone struct {
	Name            string
	Parent          int
	BindTranslation mathutil.Vec3

	AppendParent int
	AppendRatio  float64
	AppendRotate bool
	AppendMove   bool
}

// HasAppend reports whether the bone carries an effective append
// relationship: a valid source, at least one channel, and a ratio that
// actually contributes.
func (b Bone) HasAppend() bool {
	return b.AppendParent != NoBone &&
		(b.AppendRotate || b.AppendMove) &&
		(b.AppendRatio > 1e-9 || b.AppendRatio < -1e-9)
}

// Skeleton is an immutable, ordered bone hierarchy. Bone order defines the
// stable indices every runtime buffer is keyed by.
type Skeleton struct {
	bones    []Bone
	invBind  []mathutil.Mat4
	children [][]int
}

var (
	ErrEmpty        = errors.New("skeleton: no bones")
	ErrBadIndex     = errors.New("skeleton: index out of range")
	ErrCycle        = errors.New("skeleton: dependency cycle")
	ErrInvBindCount = errors.New("skeleton: inverse-bind matrix count mismatch")
)

// New validates the bone hierarchy and returns an immutable Skeleton.
// Bones and invBind are copied; the caller keeps ownership of its slices.
// A nil invBind computes rest-pose inverse-bind matrices from the bind
// translation chain instead.
func New(bones []Bone, invBind []mathutil.Mat4) (*Skeleton, error) {
	if len(bones) == 0 {
		return nil, ErrEmpty
	}
	if invBind != nil && len(invBind) != len(bones) {
		return nil, fmt.Errorf("%w: %d matrices for %d bones", ErrInvBindCount, len(invBind), len(bones))
	}

	n := len(bones)
	s := &Skeleton{
		bones:    make([]Bone, n),
		children: make([][]int, n),
	}
	copy(s.bones, bones)

	for i, b := range s.bones {
		if err := checkRef(i, b.Parent, n, "parent"); err != nil {
			return nil, err
		}
		if err := checkRef(i, b.AppendParent, n, "append parent"); err != nil {
			return nil, err
		}
		if b.Parent != NoBone {
			s.children[b.Parent] = append(s.children[b.Parent], i)
		}
	}

	if err := s.checkCycles(); err != nil {
		return nil, err
	}

	if invBind != nil {
		s.invBind = make([]mathutil.Mat4, n)
		copy(s.invBind, invBind)
	} else {
		s.invBind = restInverseBind(s)
	}

	return s, nil
}

func checkRef(i, ref, n int, kind string) error {
	if ref == NoBone {
		return nil
	}
	if ref < 0 || ref >= n {
		return fmt.Errorf("%w: bone %d %s %d (size %d)", ErrBadIndex, i, kind, ref, n)
	}
	if ref == i {
		return fmt.Errorf("%w: bone %d is its own %s", ErrCycle, i, kind)
	}
	return nil
}

// checkCycles walks the combined parent + append-parent dependency graph.
// Evaluation recurses along both edge kinds, so a cycle through either
// (or a mix) would never terminate; reject it at construction.
func (s *Skeleton) checkCycles() error {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make([]byte, len(s.bones))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case inStack:
			return fmt.Errorf("%w: through bone %d (%s)", ErrCycle, i, s.bones[i].Name)
		}
		state[i] = inStack
		if p := s.bones[i].Parent; p != NoBone {
			if err := visit(p); err != nil {
				return err
			}
		}
		if a := s.bones[i].AppendParent; a != NoBone {
			if err := visit(a); err != nil {
				return err
			}
		}
		state[i] = done
		return nil
	}

	for i := range s.bones {
		if err := visit(i); err != nil {
			return err
		}
	}
	return nil
}

// restInverseBind derives inverse-bind matrices assuming the bind pose has
// identity rotations: each bone's bind world transform is the translation
// chain up its ancestry, so the inverse is a translation by the negated sum.
func restInverseBind(s *Skeleton) []mathutil.Mat4 {
	n := len(s.bones)
	world := make([]mathutil.Vec3, n)
	inv := make([]mathutil.Mat4, n)

	var resolve func(i int) mathutil.Vec3
	resolved := make([]bool, n)
	resolve = func(i int) mathutil.Vec3 {
		if resolved[i] {
			return world[i]
		}
		w := s.bones[i].BindTranslation
		if p := s.bones[i].Parent; p != NoBone {
			w = w.Add(resolve(p))
		}
		world[i] = w
		resolved[i] = true
		return w
	}

	for i := 0; i < n; i++ {
		inv[i] = mathutil.Mat4Translation(resolve(i).Scale(-1))
	}
	return inv
}

// Len returns the bone count.
func (s *Skeleton) Len() int { return len(s.bones) }

// Bone returns the bone at index i.
func (s *Skeleton) Bone(i int) Bone { return s.bones[i] }

// Children returns the structural child indices of bone i.
// The returned slice must not be modified.
func (s *Skeleton) Children(i int) []int { return s.children[i] }

// Names returns the bone names in index order.
func (s *Skeleton) Names() []string {
	names := make([]string, len(s.bones))
	for i, b := range s.bones {
		names[i] = b.Name
	}
	return names
}

// InverseBind returns the inverse-bind matrix of bone i.
func (s *Skeleton) InverseBind(i int) mathutil.Mat4 { return s.invBind[i] }

// InverseBindMatrices returns all inverse-bind matrices in index order.
// The returned slice must not be modified.
func (s *Skeleton) InverseBindMatrices() []mathutil.Mat4 { return s.invBind }
