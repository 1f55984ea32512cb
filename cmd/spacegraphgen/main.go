// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// spacegraphgen builds a small sample composition, addresses it with a
// spacegraph.TopologicalMap, resolves a ProjectionOperator across it, and
// optionally emits the map as a GraphViz dot graph.
//
// Usage:
//
//	go run ./cmd/spacegraphgen -dot out.dot
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/brightlinemedia/spacegraph/composition"
	"github.com/brightlinemedia/spacegraph/dot"
	"github.com/brightlinemedia/spacegraph/projection"
	"github.com/brightlinemedia/spacegraph/spacegraph"
	"github.com/brightlinemedia/spacegraph/topology"
)

func main() {
	dotPath := flag.String("dot", "", "write the map's dot graph to this path instead of stdout-only summary")
	flag.Parse()

	if err := run(*dotPath); err != nil {
		fmt.Fprintf(os.Stderr, "spacegraphgen: %v\n", err)
		os.Exit(1)
	}
}

func run(dotPath string) error {
	track, err := sampleTrack()
	if err != nil {
		return fmt.Errorf("build sample track: %w", err)
	}

	m, err := spacegraph.Build(track)
	if err != nil {
		return fmt.Errorf("build topological map: %w", err)
	}

	source := spacegraph.SpaceRef{Entity: track, Label: composition.SpacePresentation}
	clip := track.ChildEntity(0).(*composition.Clip)
	destination := spacegraph.SpaceRef{Entity: clip, Label: composition.SpaceMedia}

	op, err := projection.Build(m, source, destination)
	if err != nil {
		return fmt.Errorf("build projection: %w", err)
	}

	result, err := op.ProjectInstantaneousCC(2)
	if err != nil {
		return fmt.Errorf("project: %w", err)
	}
	if result.SuccessInterval != nil {
		fmt.Printf("track.presentation(2) -> clip.media held over %v\n", *result.SuccessInterval)
	} else {
		fmt.Printf("track.presentation(2) -> clip.media(%v)\n", result.Ordinate)
	}

	opMap, err := projection.MapToMediaFrom(m, source)
	if err != nil {
		return fmt.Errorf("build media map: %w", err)
	}
	fmt.Printf("end_points=%v operator_counts=%v\n", opMap.EndPoints, operatorCounts(opMap))

	if dotPath == "" {
		return nil
	}
	f, err := os.Create(dotPath)
	if err != nil {
		return fmt.Errorf("create dot file: %w", err)
	}
	defer f.Close()
	return dot.Write(f, m)
}

// sampleTrack builds a Track with two clips separated by a gap, mirroring
// SPEC_FULL.md scenario 3.
func sampleTrack() (*composition.Track, error) {
	track := composition.NewTrack("v1", composition.TrackKindVideo, nil, nil, nil, nil)

	ref1 := composition.NewExternalReference("a.mov", "file:///a.mov", boundsPtr(0, 8), nil)
	clip1 := composition.NewClip("clip1", ref1, nil, nil, nil, nil, nil)

	gap := composition.NewGapWithDuration(5)

	ref2 := composition.NewExternalReference("b.mov", "file:///b.mov", boundsPtr(0, 8), nil)
	clip2 := composition.NewClip("clip2", ref2, nil, nil, nil, nil, nil)

	for _, child := range []composition.Composable{clip1, gap, clip2} {
		if err := track.AppendChild(child); err != nil {
			return nil, err
		}
	}
	return track, nil
}

func boundsPtr(start, end topology.Ordinate) *topology.ContinuousInterval {
	b := topology.NewContinuousInterval(start, end)
	return &b
}

func operatorCounts(m *projection.OperatorMap) []int {
	counts := make([]int, len(m.Operators))
	for i, ops := range m.Operators {
		counts[i] = len(ops)
	}
	return counts
}
