// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package projection_test

import (
	"testing"

	"github.com/brightlinemedia/spacegraph/composition"
	"github.com/brightlinemedia/spacegraph/projection"
	"github.com/brightlinemedia/spacegraph/spacegraph"
	"github.com/brightlinemedia/spacegraph/topology"
)

func newOperatorOver(bounds topology.ContinuousInterval) *projection.Operator {
	return &projection.Operator{
		Topology: topology.FromSingleMapping(topology.Affine{Bounds: bounds, Scale: topology.One, Offset: 0}),
	}
}

func TestOperatorMap_ExtendTo(t *testing.T) {
	op := newOperatorOver(topology.NewContinuousInterval(2, 5))
	m := projection.InitOperator(op)

	extended := m.ExtendTo(topology.NewContinuousInterval(0, 10))
	wantPoints := []topology.Ordinate{0, 2, 5, 10}
	if len(extended.EndPoints) != len(wantPoints) {
		t.Fatalf("EndPoints = %v, want %v", extended.EndPoints, wantPoints)
	}
	for i, p := range wantPoints {
		if extended.EndPoints[i] != p {
			t.Fatalf("EndPoints = %v, want %v", extended.EndPoints, wantPoints)
		}
	}
	if len(extended.Operators[0]) != 0 || len(extended.Operators[2]) != 0 {
		t.Fatalf("padded segments should carry no operators, got %v", extended.Operators)
	}
	if len(extended.Operators[1]) != 1 || extended.Operators[1][0] != op {
		t.Fatalf("middle segment should carry the original operator, got %v", extended.Operators[1])
	}
}

func TestOperatorMap_SplitAtEach(t *testing.T) {
	op := newOperatorOver(topology.NewContinuousInterval(0, 10))
	m := projection.InitOperator(op)

	split := m.SplitAtEach([]topology.Ordinate{3, 7})
	want := []topology.Ordinate{0, 3, 7, 10}
	if len(split.EndPoints) != len(want) {
		t.Fatalf("EndPoints = %v, want %v", split.EndPoints, want)
	}
	for i, p := range want {
		if split.EndPoints[i] != p {
			t.Fatalf("EndPoints = %v, want %v", split.EndPoints, want)
		}
	}
	for i, ops := range split.Operators {
		if len(ops) != 1 || ops[0] != op {
			t.Fatalf("segment %d operators = %v, want [op]", i, ops)
		}
	}
}

func TestOperatorMap_MergeComposite(t *testing.T) {
	op1 := newOperatorOver(topology.NewContinuousInterval(0, 5))
	op2 := newOperatorOver(topology.NewContinuousInterval(3, 8))
	merged := projection.MergeComposite(projection.InitOperator(op1), projection.InitOperator(op2))

	want := []topology.Ordinate{0, 3, 5, 8}
	if len(merged.EndPoints) != len(want) {
		t.Fatalf("EndPoints = %v, want %v", merged.EndPoints, want)
	}
	for i, p := range want {
		if merged.EndPoints[i] != p {
			t.Fatalf("EndPoints = %v, want %v", merged.EndPoints, want)
		}
	}
	counts := []int{1, 2, 1}
	for i, c := range counts {
		if len(merged.Operators[i]) != c {
			t.Fatalf("segment %d has %d operators, want %d (%v)", i, len(merged.Operators[i]), c, merged.Operators[i])
		}
	}
	// over's operators are listed first in the overlap segment.
	if merged.Operators[1][0] != op1 || merged.Operators[1][1] != op2 {
		t.Fatalf("overlap segment operators = %v, want [op1, op2]", merged.Operators[1])
	}
}

func TestMapToMediaFrom_Scenario(t *testing.T) {
	track := composition.NewTrack("v1", composition.TrackKindVideo, nil, nil, nil, nil)

	bounds1 := topology.NewContinuousInterval(0, 8)
	ref1 := composition.NewExternalReference("a.mov", "file:///a.mov", &bounds1, nil)
	clip1 := composition.NewClip("clip1", ref1, nil, nil, nil, nil, nil)

	gap := composition.NewGapWithDuration(5)

	bounds2 := topology.NewContinuousInterval(0, 8)
	ref2 := composition.NewExternalReference("b.mov", "file:///b.mov", &bounds2, nil)
	clip2 := composition.NewClip("clip2", ref2, nil, nil, nil, nil, nil)

	if err := track.AppendChild(clip1); err != nil {
		t.Fatalf("append clip1: %v", err)
	}
	if err := track.AppendChild(gap); err != nil {
		t.Fatalf("append gap: %v", err)
	}
	if err := track.AppendChild(clip2); err != nil {
		t.Fatalf("append clip2: %v", err)
	}

	m, err := spacegraph.Build(track)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	source := spacegraph.SpaceRef{Entity: track, Label: composition.SpacePresentation}
	opMap, err := projection.MapToMediaFrom(m, source)
	if err != nil {
		t.Fatalf("MapToMediaFrom: %v", err)
	}

	want := []topology.Ordinate{0, 8, 13, 21}
	if len(opMap.EndPoints) != len(want) {
		t.Fatalf("EndPoints = %v, want %v", opMap.EndPoints, want)
	}
	for i, p := range want {
		if !opMap.EndPoints[i].ApproxEqAbs(p, topology.EPSILON) {
			t.Fatalf("EndPoints = %v, want %v", opMap.EndPoints, want)
		}
	}
	counts := []int{1, 0, 1}
	for i, c := range counts {
		if len(opMap.Operators[i]) != c {
			t.Fatalf("segment %d has %d operators, want %d", i, len(opMap.Operators[i]), c)
		}
	}
}
