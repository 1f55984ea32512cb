// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition_test

import (
	"testing"

	"github.com/brightlinemedia/spacegraph/composition"
	"github.com/brightlinemedia/spacegraph/topology"
)

func TestWarp_HeldFrameDuration(t *testing.T) {
	held := topology.Affine{Bounds: topology.NewContinuousInterval(0, 5), Scale: 0, Offset: 2}
	transform := topology.FromSingleMapping(held)
	gap := composition.NewGapWithDuration(5)
	warp := composition.NewWarp("freeze", gap, transform, nil, nil, nil, nil)

	if got := warp.Duration(); got != 5 {
		t.Errorf("Duration() = %v, want 5", got)
	}
	top, err := warp.BuildTransform(composition.SpacePresentation, composition.SpaceChild, 0)
	if err != nil {
		t.Fatalf("BuildTransform: %v", err)
	}
	got, err := top.ProjectInstantaneousCC(2)
	if err != nil {
		t.Fatalf("ProjectInstantaneousCC: %v", err)
	}
	if !got.ApproxEqAbs(2, topology.EPSILON) {
		t.Errorf("held(2) = %v, want 2 (every input holds on the same output)", got)
	}
}

func TestWarp_ChildSpanIsTransformOutputBounds(t *testing.T) {
	mapping := topology.Affine{Bounds: topology.NewContinuousInterval(0, 10), Scale: 2, Offset: 0}
	transform := topology.FromSingleMapping(mapping)
	gap := composition.NewGapWithDuration(20)
	warp := composition.NewWarp("speed-up", gap, transform, nil, nil, nil, nil)

	span, err := warp.ChildSpan(0)
	if err != nil {
		t.Fatalf("ChildSpan: %v", err)
	}
	want := transform.OutputBounds()
	if span != want {
		t.Errorf("ChildSpan(0) = %v, want %v", span, want)
	}
	if _, err := warp.ChildSpan(1); err == nil {
		t.Error("expected an IndexError for an out-of-range child")
	}
}

func TestWarp_JSONRoundTrip(t *testing.T) {
	mapping := topology.Affine{Bounds: topology.NewContinuousInterval(0, 10), Scale: 2, Offset: 0}
	transform := topology.FromSingleMapping(mapping)
	gap := composition.NewGapWithDuration(20)
	warp := composition.NewWarp("speed-up", gap, transform, nil, nil, nil, nil)

	data, err := composition.ToJSONBytes(warp)
	if err != nil {
		t.Fatalf("ToJSONBytes: %v", err)
	}
	obj, err := composition.FromJSONBytes(data)
	if err != nil {
		t.Fatalf("FromJSONBytes: %v", err)
	}
	got, ok := obj.(*composition.Warp)
	if !ok {
		t.Fatalf("expected *Warp, got %T", obj)
	}
	if _, ok := got.Child().(*composition.Gap); !ok {
		t.Fatalf("expected child *Gap, got %T", got.Child())
	}
	gotOut, err := got.Transform().ProjectInstantaneousCC(3)
	if err != nil {
		t.Fatalf("ProjectInstantaneousCC: %v", err)
	}
	if !gotOut.ApproxEqAbs(6, topology.EPSILON) {
		t.Errorf("decoded transform(3) = %v, want 6", gotOut)
	}
}

func TestWarp_SetChildReparents(t *testing.T) {
	warp := composition.NewWarp("w", composition.NewGapWithDuration(1), topology.InfiniteIdentity(), nil, nil, nil, nil)
	old := warp.Child()
	next := composition.NewGapWithDuration(2)
	warp.SetChild(next)

	if old.Parent() != nil {
		t.Error("the replaced child should be detached from its old parent")
	}
	if next.Parent() != composition.SpaceObject(warp) {
		t.Error("the new child should be reparented to the warp")
	}
}
