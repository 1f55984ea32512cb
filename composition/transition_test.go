// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition_test

import (
	"testing"

	"github.com/brightlinemedia/spacegraph/composition"
	"github.com/brightlinemedia/spacegraph/topology"
)

func TestTransition_DurationIsOffsetSum(t *testing.T) {
	tr := composition.NewTransition("x", composition.TransitionSMPTEDissolve, 2, 3, nil)
	if got := tr.Duration(); got != 5 {
		t.Errorf("Duration() = %v, want 5", got)
	}
}

func TestTransition_BoundsOfPresentation(t *testing.T) {
	tr := composition.NewTransition("x", composition.TransitionCustom, 1, 2, nil)
	bounds, err := tr.BoundsOf(composition.SpacePresentation, 0)
	if err != nil {
		t.Fatalf("BoundsOf: %v", err)
	}
	want := topology.NewContinuousInterval(0, 3)
	if bounds != want {
		t.Errorf("BoundsOf(presentation) = %v, want %v", bounds, want)
	}
	if _, err := tr.BoundsOf(composition.SpaceMedia, 0); err == nil {
		t.Error("expected an error for an undefined space")
	}
}

func TestTransition_JSONRoundTrip(t *testing.T) {
	tr := composition.NewTransition("dissolve", composition.TransitionSMPTEDissolve, 1, 2, nil)
	data, err := composition.ToJSONBytes(tr)
	if err != nil {
		t.Fatalf("ToJSONBytes: %v", err)
	}
	obj, err := composition.FromJSONBytes(data)
	if err != nil {
		t.Fatalf("FromJSONBytes: %v", err)
	}
	got, ok := obj.(*composition.Transition)
	if !ok {
		t.Fatalf("expected *Transition, got %T", obj)
	}
	if got.Kind() != composition.TransitionSMPTEDissolve {
		t.Errorf("Kind() = %v, want %v", got.Kind(), composition.TransitionSMPTEDissolve)
	}
	if got.InOffset() != 1 || got.OutOffset() != 2 {
		t.Errorf("offsets = (%v, %v), want (1, 2)", got.InOffset(), got.OutOffset())
	}
}
