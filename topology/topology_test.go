// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

import "testing"

func TestJoinWithInfiniteIdentity(t *testing.T) {
	base := FromSingleMapping(Affine{Bounds: ContinuousInterval{Start: 0, End: 10}, Scale: 2, Offset: 1})

	left := Join(base, InfiniteIdentity())
	got, err := left.ProjectInstantaneousCC(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.ApproxEqAbs(7, EPSILON) {
		t.Errorf("join(T, identity) should behave as T, got %v", got)
	}

	right := Join(InfiniteIdentity(), base)
	got2, err := right.ProjectInstantaneousCC(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got2.ApproxEqAbs(7, EPSILON) {
		t.Errorf("join(identity, T) should behave as T, got %v", got2)
	}
}

func TestJoinAffineAffine(t *testing.T) {
	a2b := FromSingleMapping(Affine{Bounds: ContinuousInterval{Start: 0, End: 10}, Scale: 1, Offset: 1})
	b2c := FromSingleMapping(Affine{Bounds: ContinuousInterval{Start: 1, End: 11}, Scale: 1, Offset: 0})

	a2c := Join(a2b, b2c)
	got, err := a2c.ProjectInstantaneousCC(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 3 -> 4 (a2b) -> 4 (b2c identity offset)
	if !got.ApproxEqAbs(4, EPSILON) {
		t.Errorf("expected 4, got %v", got)
	}
}

func TestTopologyTrim(t *testing.T) {
	top := FromSingleMapping(Affine{Bounds: ContinuousInterval{Start: 0, End: 10}, Scale: 1, Offset: 0})
	trimmed := top.Trim(ContinuousInterval{Start: 2, End: 5})
	ib := trimmed.InputBounds()
	if ib.Start != 2 || ib.End != 5 {
		t.Errorf("expected trimmed bounds [2,5), got %v", ib)
	}
}

func TestSampleIndexGenerator(t *testing.T) {
	g := NewSampleIndexGenerator(24, 0)
	interval := g.IntervalOf(5)
	if !interval.Start.ApproxEqAbs(5.0/24.0, EPSILON) {
		t.Errorf("unexpected interval start: %v", interval.Start)
	}
	if idx := g.IndexOf(interval.Start); idx != 5 {
		t.Errorf("expected index 5, got %d", idx)
	}
}

func TestProjectionOperatorMapInvariantShape(t *testing.T) {
	// Sanity check for the ContinuousInterval helpers the projection package
	// will lean on for ProjectionOperatorMap's end_points invariant.
	a := ContinuousInterval{Start: 0, End: 8}
	b := ContinuousInterval{Start: 8, End: 13}
	if a.Intersect(b).Duration() > EPSILON {
		t.Error("adjacent half-open intervals should not meaningfully overlap")
	}
}
