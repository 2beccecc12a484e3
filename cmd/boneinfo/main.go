package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"skelpose/internal/mathutil"
	"skelpose/internal/pose"
	"skelpose/internal/rig"
	"skelpose/internal/skeleton"
)

func main() {
	rigPath := flag.String("rig", "", "Path to rig JSON file (required)")
	flag.Parse()

	if *rigPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -rig is required.")
		flag.Usage()
		os.Exit(1)
	}

	skel, motion, err := rig.Load(*rigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rig: %v\n", err)
		os.Exit(1)
	}

	// Bind-pose world positions for the chain summary.
	p := pose.New(skel)
	p.Evaluate(0)
	worlds := p.WorldMatrices()

	fmt.Printf("Rig: %s\n", *rigPath)
	fmt.Printf("Bones: %d, Motion keys: %d\n\n", skel.Len(), len(motion))

	for i := 0; i < skel.Len(); i++ {
		if skel.Bone(i).Parent == skeleton.NoBone {
			printTree(skel, worlds, i, 0)
		}
	}
}

func printTree(skel *skeleton.Skeleton, worlds []mathutil.Mat4, i, depth int) {
	b := skel.Bone(i)
	pos := worlds[i].Translation()

	line := fmt.Sprintf("%s%s [%d] bind(%.2f, %.2f, %.2f)",
		strings.Repeat("  ", depth), b.Name, i, pos[0], pos[1], pos[2])
	if b.HasAppend() {
		channels := ""
		if b.AppendRotate {
			channels += "R"
		}
		if b.AppendMove {
			channels += "T"
		}
		line += fmt.Sprintf("  append<- %s [%d] ratio %.2f (%s)",
			skel.Bone(b.AppendParent).Name, b.AppendParent, b.AppendRatio, channels)
	}
	fmt.Println(line)

	for _, c := range skel.Children(i) {
		printTree(skel, worlds, c, depth+1)
	}
}
