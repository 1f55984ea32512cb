// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition_test

import (
	"testing"

	"github.com/brightlinemedia/spacegraph/composition"
	"github.com/brightlinemedia/spacegraph/topology"
)

func TestStack_DurationIsLongestChild(t *testing.T) {
	stack := composition.NewStack("overlay", nil, nil, nil, nil)
	if err := stack.AppendChild(composition.NewGapWithDuration(3)); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if err := stack.AppendChild(composition.NewGapWithDuration(9)); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if err := stack.AppendChild(composition.NewGapWithDuration(5)); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}

	if got := stack.Duration(); got != 9 {
		t.Errorf("Duration() = %v, want 9", got)
	}
}

func TestStack_ChildSpanIsSharedOrigin(t *testing.T) {
	stack := composition.NewStack("overlay", nil, nil, nil, nil)
	if err := stack.AppendChild(composition.NewGapWithDuration(3)); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if err := stack.AppendChild(composition.NewGapWithDuration(9)); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}

	for i := 0; i < 2; i++ {
		span, err := stack.ChildSpan(i)
		if err != nil {
			t.Fatalf("ChildSpan(%d): %v", i, err)
		}
		want := topology.NewContinuousInterval(0, 9)
		if span != want {
			t.Errorf("ChildSpan(%d) = %v, want %v", i, span, want)
		}
	}
}

func TestStack_BuildTransformIsIdentityThroughout(t *testing.T) {
	stack := composition.NewStack("overlay", nil, nil, nil, nil)
	edges := []struct{ from, to composition.SpaceLabel }{
		{composition.SpacePresentation, composition.SpaceIntrinsic},
		{composition.SpaceIntrinsic, composition.SpaceChild},
	}
	for _, e := range edges {
		top, err := stack.BuildTransform(e.from, e.to, 0)
		if err != nil {
			t.Fatalf("BuildTransform(%s, %s): %v", e.from, e.to, err)
		}
		got, err := top.ProjectInstantaneousCC(4)
		if err != nil {
			t.Fatalf("ProjectInstantaneousCC: %v", err)
		}
		if !got.ApproxEqAbs(4, topology.EPSILON) {
			t.Errorf("%s->%s(4) = %v, want 4", e.from, e.to, got)
		}
	}
}

func TestStack_TransitionReattachedOnDecode(t *testing.T) {
	stack := composition.NewStack("overlay", nil, nil, nil, nil)
	tr := composition.NewTransition("x", composition.TransitionSMPTEDissolve, 1, 1, nil)
	if err := stack.AppendChild(tr); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	tr.SetContainer(stack)

	data, err := composition.ToJSONBytes(stack)
	if err != nil {
		t.Fatalf("ToJSONBytes: %v", err)
	}
	obj, err := composition.FromJSONBytes(data)
	if err != nil {
		t.Fatalf("FromJSONBytes: %v", err)
	}
	got, ok := obj.(*composition.Stack)
	if !ok {
		t.Fatalf("expected *Stack, got %T", obj)
	}
	child, ok := got.ChildEntity(0).(*composition.Transition)
	if !ok {
		t.Fatalf("expected *Transition child, got %T", got.ChildEntity(0))
	}
	if child.Container() != got {
		t.Error("decoded Transition's Container should be re-attached to the decoded Stack")
	}
}
