// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package projection_test

import (
	"errors"
	"testing"

	"github.com/brightlinemedia/spacegraph/composition"
	"github.com/brightlinemedia/spacegraph/projection"
	"github.com/brightlinemedia/spacegraph/spacegraph"
	"github.com/brightlinemedia/spacegraph/topology"
)

// newSampleTrack builds a Track [clip1(0,8)][gap(5)][clip2(0,8)], per
// SPEC_FULL.md's scenario of a track with two clips separated by a gap.
func newSampleTrack(t *testing.T) (*composition.Track, *composition.Clip, *composition.Clip, *composition.ExternalReference) {
	t.Helper()
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
	return track, clip1, clip2, ref1
}

func TestBuild_DegenerateIdentity(t *testing.T) {
	track, _, _, _ := newSampleTrack(t)
	m, err := spacegraph.Build(track)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ref := spacegraph.SpaceRef{Entity: track, Label: composition.SpacePresentation}
	op, err := projection.Build(m, ref, ref)
	if err != nil {
		t.Fatalf("projection.Build: %v", err)
	}
	bounds := op.Topology.InputBounds()
	want := topology.NewContinuousInterval(0, 21)
	if !bounds.Equal(want) {
		t.Fatalf("InputBounds = %v, want %v", bounds, want)
	}
}

func TestBuild_NoPathBetweenSiblings(t *testing.T) {
	track, clip1, clip2, _ := newSampleTrack(t)
	m, err := spacegraph.Build(track)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a := spacegraph.SpaceRef{Entity: clip1, Label: composition.SpacePresentation}
	b := spacegraph.SpaceRef{Entity: clip2, Label: composition.SpacePresentation}
	_, err = projection.Build(m, a, b)
	if !errors.Is(err, spacegraph.ErrNoPathBetweenSpaces) {
		t.Fatalf("Build(sibling, sibling) = %v, want ErrNoPathBetweenSpaces", err)
	}
}

func TestOperator_ProjectInstantaneousCC_Forward(t *testing.T) {
	track, clip1, _, _ := newSampleTrack(t)
	m, err := spacegraph.Build(track)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	source := spacegraph.SpaceRef{Entity: track, Label: composition.SpacePresentation}
	dest := spacegraph.SpaceRef{Entity: clip1, Label: composition.SpaceMedia}
	op, err := projection.Build(m, source, dest)
	if err != nil {
		t.Fatalf("projection.Build: %v", err)
	}

	inst, err := op.ProjectInstantaneousCC(2)
	if err != nil {
		t.Fatalf("ProjectInstantaneousCC(2): %v", err)
	}
	if inst.SuccessInterval != nil {
		t.Fatalf("unexpected held span %v", *inst.SuccessInterval)
	}
	if inst.Ordinate != 2 {
		t.Fatalf("Ordinate = %v, want 2", inst.Ordinate)
	}

	if _, err := op.ProjectInstantaneousCC(9); err == nil {
		t.Fatal("expected an OutOfBounds error projecting t=9 through clip1's [0,8) span")
	}
}

func TestOperator_ProjectInstantaneousCC_SecondClipOffset(t *testing.T) {
	track, _, clip2, _ := newSampleTrack(t)
	m, err := spacegraph.Build(track)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	source := spacegraph.SpaceRef{Entity: track, Label: composition.SpacePresentation}
	dest := spacegraph.SpaceRef{Entity: clip2, Label: composition.SpaceMedia}
	op, err := projection.Build(m, source, dest)
	if err != nil {
		t.Fatalf("projection.Build: %v", err)
	}

	inst, err := op.ProjectInstantaneousCC(15)
	if err != nil {
		t.Fatalf("ProjectInstantaneousCC(15): %v", err)
	}
	if inst.Ordinate != 2 {
		t.Fatalf("Ordinate = %v, want 2 (15 - 13)", inst.Ordinate)
	}
}

func TestOperator_Swapped(t *testing.T) {
	track, _, clip2, _ := newSampleTrack(t)
	m, err := spacegraph.Build(track)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	source := spacegraph.SpaceRef{Entity: clip2, Label: composition.SpaceMedia}
	dest := spacegraph.SpaceRef{Entity: track, Label: composition.SpacePresentation}
	op, err := projection.Build(m, source, dest)
	if err != nil {
		t.Fatalf("projection.Build: %v", err)
	}

	inst, err := op.ProjectInstantaneousCC(2)
	if err != nil {
		t.Fatalf("ProjectInstantaneousCC(2): %v", err)
	}
	if inst.Ordinate != 15 {
		t.Fatalf("Ordinate = %v, want 15 (13 + 2)", inst.Ordinate)
	}
}

func TestOperator_DiscreteProjection(t *testing.T) {
	track, clip1, _, ref1 := newSampleTrack(t)
	gen := topology.NewSampleIndexGenerator(24, 0)
	ref1.SetDiscreteInfo(&gen)

	m, err := spacegraph.Build(track)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	source := spacegraph.SpaceRef{Entity: track, Label: composition.SpacePresentation}
	dest := spacegraph.SpaceRef{Entity: clip1, Label: composition.SpaceMedia}
	op, err := projection.Build(m, source, dest)
	if err != nil {
		t.Fatalf("projection.Build: %v", err)
	}

	idx, err := op.ProjectInstantaneousCD(2)
	if err != nil {
		t.Fatalf("ProjectInstantaneousCD(2): %v", err)
	}
	if idx != 48 {
		t.Fatalf("index = %d, want 48 (2 * 24)", idx)
	}
}

func TestOperator_NoDiscreteInfoForSpace(t *testing.T) {
	track, clip1, _, _ := newSampleTrack(t)
	m, err := spacegraph.Build(track)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	source := spacegraph.SpaceRef{Entity: track, Label: composition.SpacePresentation}
	dest := spacegraph.SpaceRef{Entity: clip1, Label: composition.SpaceMedia}
	op, err := projection.Build(m, source, dest)
	if err != nil {
		t.Fatalf("projection.Build: %v", err)
	}
	if _, err := op.ProjectInstantaneousCD(2); !errors.Is(err, projection.ErrNoDiscreteInfoForSpace) {
		t.Fatalf("ProjectInstantaneousCD with no discrete info = %v, want ErrNoDiscreteInfoForSpace", err)
	}
}

func TestOperator_ProjectRangeCC(t *testing.T) {
	track, clip1, _, _ := newSampleTrack(t)
	m, err := spacegraph.Build(track)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	source := spacegraph.SpaceRef{Entity: track, Label: composition.SpacePresentation}
	dest := spacegraph.SpaceRef{Entity: clip1, Label: composition.SpaceMedia}
	op, err := projection.Build(m, source, dest)
	if err != nil {
		t.Fatalf("projection.Build: %v", err)
	}

	result, err := op.ProjectRangeCC(topology.NewContinuousInterval(2, 6))
	if err != nil {
		t.Fatalf("ProjectRangeCC: %v", err)
	}
	wantBounds := topology.NewContinuousInterval(0, 4)
	if !result.InputBounds().Equal(wantBounds) {
		t.Fatalf("InputBounds = %v, want %v", result.InputBounds(), wantBounds)
	}
	v, err := result.ProjectInstantaneousCC(0)
	if err != nil {
		t.Fatalf("ProjectInstantaneousCC(0): %v", err)
	}
	if v != 2 {
		t.Fatalf("projected value at 0 = %v, want 2", v)
	}
}

func TestOperator_ProjectIndexDC(t *testing.T) {
	track, clip1, _, ref1 := newSampleTrack(t)
	gen := topology.NewSampleIndexGenerator(1, 0)
	ref1.SetDiscreteInfo(&gen)

	m, err := spacegraph.Build(track)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	source := spacegraph.SpaceRef{Entity: clip1, Label: composition.SpaceMedia}
	dest := spacegraph.SpaceRef{Entity: track, Label: composition.SpacePresentation}
	op, err := projection.Build(m, source, dest)
	if err != nil {
		t.Fatalf("projection.Build: %v", err)
	}

	result, err := op.ProjectIndexDC(2)
	if err != nil {
		t.Fatalf("ProjectIndexDC(2): %v", err)
	}
	v, err := result.ProjectInstantaneousCC(result.InputBounds().Start)
	if err != nil {
		t.Fatalf("ProjectInstantaneousCC: %v", err)
	}
	if v != 2 {
		t.Fatalf("projected value = %v, want 2", v)
	}
}

func TestOperator_ProjectIndexDD_Identity(t *testing.T) {
	track, clip1, _, ref1 := newSampleTrack(t)
	gen := topology.NewSampleIndexGenerator(1, 0)
	ref1.SetDiscreteInfo(&gen)

	m, err := spacegraph.Build(track)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ref := spacegraph.SpaceRef{Entity: clip1, Label: composition.SpaceMedia}
	op, err := projection.Build(m, ref, ref)
	if err != nil {
		t.Fatalf("projection.Build: %v", err)
	}

	got, err := op.ProjectIndexDD(3)
	if err != nil {
		t.Fatalf("ProjectIndexDD(3): %v", err)
	}
	// The source index's own interval [3,4) is stepped inclusive of its
	// trailing edge, so an identity operator at matching rates reports both
	// the index it starts in and the one it touches at the boundary.
	want := []int64{3, 4}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("ProjectIndexDD(3) = %v, want %v", got, want)
	}
}

func TestOperator_HeldFrame(t *testing.T) {
	gap := composition.NewGapWithDuration(3)
	transform := topology.FromSingleMapping(topology.Affine{
		Bounds: topology.NewContinuousInterval(0, 5),
		Scale:  0,
		Offset: 2,
	})
	warp := composition.NewWarp("freeze", gap, transform, nil, nil, nil, nil)

	m, err := spacegraph.Build(warp)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	childRef := spacegraph.SpaceRef{Entity: gap, Label: composition.SpacePresentation}
	presentationRef := spacegraph.SpaceRef{Entity: warp, Label: composition.SpacePresentation}

	op, err := projection.Build(m, childRef, presentationRef)
	if err != nil {
		t.Fatalf("projection.Build: %v", err)
	}

	inst, err := op.ProjectInstantaneousCC(2)
	if err != nil {
		t.Fatalf("ProjectInstantaneousCC(2): %v", err)
	}
	if inst.SuccessInterval == nil {
		t.Fatal("expected a held SuccessInterval, got a plain Ordinate")
	}
	want := topology.NewContinuousInterval(0, 5)
	if !inst.SuccessInterval.Equal(want) {
		t.Fatalf("SuccessInterval = %v, want %v", *inst.SuccessInterval, want)
	}
}
