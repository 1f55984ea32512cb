// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition_test

import (
	"testing"

	"github.com/brightlinemedia/spacegraph/composition"
	"github.com/brightlinemedia/spacegraph/topology"
)

func buildSampleTrack(t *testing.T) (*composition.Track, *composition.Clip, *composition.Clip) {
	t.Helper()
	track := composition.NewTrack("v1", composition.TrackKindVideo, nil, nil, nil, nil)

	bounds1 := topology.NewContinuousInterval(0, 8)
	ref1 := composition.NewExternalReference("a.mov", "file:///a.mov", &bounds1, nil)
	clip1 := composition.NewClip("clip1", ref1, nil, nil, nil, nil, nil)

	gap := composition.NewGapWithDuration(5)

	bounds2 := topology.NewContinuousInterval(0, 8)
	ref2 := composition.NewExternalReference("b.mov", "file:///b.mov", &bounds2, nil)
	clip2 := composition.NewClip("clip2", ref2, nil, nil, nil, nil, nil)

	for _, child := range []composition.Composable{clip1, gap, clip2} {
		if err := track.AppendChild(child); err != nil {
			t.Fatalf("AppendChild: %v", err)
		}
	}
	return track, clip1, clip2
}

func TestTrack_DurationIsSumOfChildren(t *testing.T) {
	track, _, _ := buildSampleTrack(t)
	if got := track.Duration(); got != 21 {
		t.Errorf("Duration() = %v, want 21", got)
	}
}

func TestTrack_ChildSpanConcatenates(t *testing.T) {
	track, _, _ := buildSampleTrack(t)
	want := []topology.ContinuousInterval{
		topology.NewContinuousInterval(0, 8),
		topology.NewContinuousInterval(8, 13),
		topology.NewContinuousInterval(13, 21),
	}
	for i, w := range want {
		got, err := track.ChildSpan(i)
		if err != nil {
			t.Fatalf("ChildSpan(%d): %v", i, err)
		}
		if got != w {
			t.Errorf("ChildSpan(%d) = %v, want %v", i, got, w)
		}
	}
	if _, err := track.ChildSpan(3); err == nil {
		t.Error("expected an IndexError for an out-of-range child")
	}
}

func TestTrack_BuildTransformIntrinsicToChild(t *testing.T) {
	track, _, _ := buildSampleTrack(t)
	top, err := track.BuildTransform(composition.SpaceIntrinsic, composition.SpaceChild, 2)
	if err != nil {
		t.Fatalf("BuildTransform: %v", err)
	}
	got, err := top.ProjectInstantaneousCC(15)
	if err != nil {
		t.Fatalf("ProjectInstantaneousCC: %v", err)
	}
	if !got.ApproxEqAbs(2, topology.EPSILON) {
		t.Errorf("intrinsic(15) -> clip2 local = %v, want 2", got)
	}
}

func TestTrack_JSONRoundTrip(t *testing.T) {
	track, _, _ := buildSampleTrack(t)
	data, err := composition.ToJSONBytes(track)
	if err != nil {
		t.Fatalf("ToJSONBytes: %v", err)
	}
	obj, err := composition.FromJSONBytes(data)
	if err != nil {
		t.Fatalf("FromJSONBytes: %v", err)
	}
	got, ok := obj.(*composition.Track)
	if !ok {
		t.Fatalf("expected *Track, got %T", obj)
	}
	if got.NumChildren() != 3 {
		t.Fatalf("NumChildren() = %d, want 3", got.NumChildren())
	}
	if got.Duration() != 21 {
		t.Errorf("Duration() = %v, want 21", got.Duration())
	}
	if _, ok := got.ChildEntity(0).(*composition.Clip); !ok {
		t.Errorf("child 0 = %T, want *Clip", got.ChildEntity(0))
	}
	if _, ok := got.ChildEntity(1).(*composition.Gap); !ok {
		t.Errorf("child 1 = %T, want *Gap", got.ChildEntity(1))
	}
}

func TestTrack_SequenceAliasResolves(t *testing.T) {
	if !composition.IsSchemaRegistered("Sequence") {
		t.Fatal("expected the legacy Sequence alias to resolve to Track")
	}
	obj, err := composition.CreateSchema("Sequence")
	if err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	if _, ok := obj.(*composition.Track); !ok {
		t.Fatalf("expected *Track, got %T", obj)
	}
}

func TestTrack_AppendChildRejectsAlreadyParented(t *testing.T) {
	track, clip1, _ := buildSampleTrack(t)
	other := composition.NewTrack("v2", composition.TrackKindVideo, nil, nil, nil, nil)
	if err := other.AppendChild(clip1); err == nil {
		t.Fatal("expected an error appending an already-parented child")
	}
	_ = track
}

func TestTrack_Clone(t *testing.T) {
	track, _, _ := buildSampleTrack(t)
	clone := track.Clone().(*composition.Track)
	if clone.NumChildren() != track.NumChildren() {
		t.Fatalf("clone has %d children, want %d", clone.NumChildren(), track.NumChildren())
	}
	if clone.ChildEntity(0) == track.ChildEntity(0) {
		t.Error("Clone should deep-copy children, not share pointers")
	}
	if clone.ChildEntity(0).Parent() != composition.SpaceObject(clone) {
		t.Error("cloned child should be reparented to the clone")
	}
}
