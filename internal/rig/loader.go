// Package rig loads skeleton definitions and motion timelines from the
// JSON rig format used by the preview tools. The evaluator itself never
// touches files; this package is the glue between authored rig data and
// skeleton.New.
package rig

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"skelpose/internal/mathutil"
	"skelpose/internal/skeleton"
)

// Load reads a rig JSON file and builds the validated skeleton plus its
// motion timeline sorted by time.
func Load(path string) (*skeleton.Skeleton, []MotionKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("rig: read %s: %w", path, err)
	}
	skel, motion, err := Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("rig: %s: %w", path, err)
	}
	return skel, motion, nil
}

// Parse decodes rig JSON and builds the skeleton. Parent references are
// resolved by name before index validation; inverse-bind matrices are
// derived from the bind translation chain.
func Parse(data []byte) (*skeleton.Skeleton, []MotionKey, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parse: %w", err)
	}

	byName := make(map[string]int, len(f.Bones))
	for i, b := range f.Bones {
		if b.Name == "" {
			return nil, nil, fmt.Errorf("bone %d: empty name", i)
		}
		if _, dup := byName[b.Name]; dup {
			// Tolerated for compatibility with existing data; name lookup
			// resolves to the last index.
			fmt.Fprintf(os.Stderr, "rig: warning: duplicate bone name %q\n", b.Name)
		}
		byName[b.Name] = i
	}

	bones := make([]skeleton.Bone, len(f.Bones))
	for i, def := range f.Bones {
		b := skeleton.Bone{
			Name:            def.Name,
			Parent:          skeleton.NoBone,
			BindTranslation: mathutil.Vec3(def.Translation),
			AppendParent:    skeleton.NoBone,
		}
		if def.Parent != "" {
			pi, ok := byName[def.Parent]
			if !ok {
				return nil, nil, fmt.Errorf("bone %q: unknown parent %q", def.Name, def.Parent)
			}
			b.Parent = pi
		}
		if ap := def.Append; ap != nil {
			ai, ok := byName[ap.Parent]
			if !ok {
				return nil, nil, fmt.Errorf("bone %q: unknown append parent %q", def.Name, ap.Parent)
			}
			if ap.Ratio < -1 || ap.Ratio > 1 {
				return nil, nil, fmt.Errorf("bone %q: append ratio %g outside [-1, 1]", def.Name, ap.Ratio)
			}
			b.AppendParent = ai
			b.AppendRatio = ap.Ratio
			b.AppendRotate = ap.Rotate
			b.AppendMove = ap.Move
		}
		bones[i] = b
	}

	skel, err := skeleton.New(bones, nil)
	if err != nil {
		return nil, nil, err
	}

	motion := make([]MotionKey, len(f.Motion))
	copy(motion, f.Motion)
	sort.SliceStable(motion, func(i, j int) bool { return motion[i].AtMs < motion[j].AtMs })

	return skel, motion, nil
}
