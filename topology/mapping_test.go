// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

import (
	"errors"
	"testing"
)

func TestAffineProjectInstantaneousCC(t *testing.T) {
	a := Affine{Bounds: ContinuousInterval{Start: 0, End: 10}, Scale: 1, Offset: 1}
	got, err := a.ProjectInstantaneousCC(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Errorf("expected 4, got %v", got)
	}

	if _, err := a.ProjectInstantaneousCC(-1); err == nil {
		t.Error("expected OutOfBoundsError for -1")
	}
}

func TestAffineInverted(t *testing.T) {
	a := Affine{Bounds: ContinuousInterval{Start: 0, End: 10}, Scale: 2, Offset: 1}
	inv, err := a.Inverted()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := inv.ProjectInstantaneousCC(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.ApproxEqAbs(2, EPSILON) {
		t.Errorf("expected 2, got %v", got)
	}
}

func TestAffineHeldInversion(t *testing.T) {
	held := Affine{Bounds: ContinuousInterval{Start: 0, End: 5}, Scale: 0, Offset: 7}
	inv, err := held.Inverted()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	interval, ok := HeldInterval(inv)
	if !ok {
		t.Fatal("expected HeldInterval to recognize the held inverse")
	}
	if interval.Start != 0 || interval.End != 5 {
		t.Errorf("expected [0,5), got %v", interval)
	}
	got, err := inv.ProjectInstantaneousCC(7)
	if err != nil {
		t.Fatalf("unexpected error projecting held output: %v", err)
	}
	if got != 0 {
		t.Errorf("expected held inverse to project back to input start, got %v", got)
	}
}

func TestLinearMonotonicProjectAndInvert(t *testing.T) {
	l := LinearMonotonic{Knots: []Knot{{In: 0, Out: 0}, {In: 10, Out: 20}}}
	got, err := l.ProjectInstantaneousCC(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.ApproxEqAbs(10, EPSILON) {
		t.Errorf("expected 10, got %v", got)
	}

	inv, err := l.Inverted()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := inv.ProjectInstantaneousCC(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.ApproxEqAbs(5, EPSILON) {
		t.Errorf("expected round trip to 5, got %v", back)
	}
}

func TestBezierRoundTrip(t *testing.T) {
	// A scaled s-curve mapping [0,10]->[0,10], per scenario 5.
	b := Bezier{Segments: []BezierSegment{
		{
			P0: Knot{In: 0, Out: 0},
			P1: Knot{In: 3, Out: 1},
			P2: Knot{In: 7, Out: 9},
			P3: Knot{In: 10, Out: 10},
		},
	}}

	for step := 0; step < 1000; step++ {
		tIn := Ordinate(step) * 0.01
		out, err := b.ProjectInstantaneousCC(tIn)
		if err != nil {
			t.Fatalf("forward projection failed at %v: %v", tIn, err)
		}
		inv, err := b.Inverted()
		if err != nil {
			t.Fatalf("inversion failed: %v", err)
		}
		recovered, err := inv.ProjectInstantaneousCC(out)
		if err != nil {
			t.Fatalf("inverse projection failed at %v: %v", out, err)
		}
		if !recovered.ApproxEqAbs(tIn, 1e-4) {
			t.Errorf("round trip mismatch at t=%v: got %v", tIn, recovered)
		}
	}
}

func TestBezierNonMonotonicInversionFails(t *testing.T) {
	b := Bezier{Segments: []BezierSegment{
		{
			P0: Knot{In: 0, Out: 0},
			P1: Knot{In: 3, Out: 10},
			P2: Knot{In: 7, Out: -10},
			P3: Knot{In: 10, Out: 5},
		},
	}}
	if _, err := b.Inverted(); !errors.Is(err, ErrNoSplitForLinearization) {
		t.Errorf("expected ErrNoSplitForLinearization, got %v", err)
	}
}

func TestEmptyMappingProjectsNothing(t *testing.T) {
	e := Empty{Bounds: ContinuousInterval{Start: 0, End: 5}}
	if _, err := e.ProjectInstantaneousCC(2); err == nil {
		t.Error("expected error from Empty mapping")
	}
}

func TestAffineTrimToEmpty(t *testing.T) {
	a := Affine{Bounds: ContinuousInterval{Start: 0, End: 10}, Scale: 1, Offset: 0}
	trimmed := a.Trim(ContinuousInterval{Start: 20, End: 30})
	if _, ok := trimmed.(Empty); !ok {
		t.Errorf("expected Empty after trimming to disjoint range, got %T", trimmed)
	}
}
