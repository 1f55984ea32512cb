// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

import (
	"sort"
)

// Mapping is a bounded function from an input interval to an output
// interval. It is a sealed tagged union with exactly four variants: Affine,
// LinearMonotonic, Bezier, and Empty. The unexported isMapping method seals
// the interface to this package's own implementations, mirroring the
// Composable/Item sealed-interface pattern used throughout the composition
// layer.
type Mapping interface {
	isMapping()

	// InputBounds returns the interval over which this mapping is defined.
	InputBounds() ContinuousInterval

	// ProjectInstantaneousCC projects a single ordinate from input to output
	// space, or returns an *OutOfBoundsError if t lies outside InputBounds.
	ProjectInstantaneousCC(t Ordinate) (Ordinate, error)

	// Inverted returns the inverse mapping. Affine and monotonic
	// LinearMonotonic mappings always succeed; a non-monotonic Bezier fails
	// with ErrNoSplitForLinearization (the caller must split it first).
	Inverted() (Mapping, error)

	// Trim restricts the mapping's input to the intersection with bounds.
	// Trimming to an empty interval yields the Empty variant.
	Trim(bounds ContinuousInterval) Mapping

	// OutputBounds returns the bounding interval of this mapping's output.
	OutputBounds() ContinuousInterval
}

// Affine is out = Scale*in + Offset over InputBounds. It is bijective when
// Scale != 0.
type Affine struct {
	Bounds ContinuousInterval
	Scale  Ordinate
	Offset Ordinate
}

func (Affine) isMapping() {}

// InputBounds implements Mapping.
func (a Affine) InputBounds() ContinuousInterval { return a.Bounds }

// eval applies the affine function to t without bounds checking.
func (a Affine) eval(t Ordinate) Ordinate {
	return a.Scale*t + a.Offset
}

// ProjectInstantaneousCC implements Mapping.
func (a Affine) ProjectInstantaneousCC(t Ordinate) (Ordinate, error) {
	if !a.Bounds.Contains(t) {
		return 0, newOutOfBounds(t, a.Bounds)
	}
	return a.eval(t), nil
}

// OutputBounds implements Mapping.
func (a Affine) OutputBounds() ContinuousInterval {
	s, e := a.eval(a.Bounds.Start), a.eval(a.Bounds.End)
	if a.Scale < 0 {
		s, e = e, s
	}
	return ContinuousInterval{Start: s, End: e}
}

// Inverted implements Mapping. A held (Scale == 0) Affine inverts to itself
// with its input and output bounds swapped conceptually: rather than fail,
// it signals "any output maps back to the whole held input span" by
// returning a heldInverse wrapping the original input bounds, which
// HeldInterval exposes and projection.Instant reports as its SuccessInterval
// (see scenario 6).
func (a Affine) Inverted() (Mapping, error) {
	if a.Scale == 0 {
		return heldInverse{held: a.Bounds, output: a.Offset}, nil
	}
	inStart, inEnd := a.Bounds.Start, a.Bounds.End
	outStart, outEnd := a.eval(inStart), a.eval(inEnd)
	return Affine{
		Bounds: ContinuousInterval{Start: outStart, End: outEnd}.normalized(),
		Scale:  1 / a.Scale,
		Offset: -a.Offset / a.Scale,
	}, nil
}

// normalized returns c with Start <= End, swapping if necessary.
func (c ContinuousInterval) normalized() ContinuousInterval {
	if c.Start.LessEq(c.End) {
		return c
	}
	return ContinuousInterval{Start: c.End, End: c.Start}
}

// Trim implements Mapping.
func (a Affine) Trim(bounds ContinuousInterval) Mapping {
	trimmed := a.Bounds.Intersect(bounds)
	if trimmed.IsEmpty() {
		return Empty{Bounds: trimmed}
	}
	return Affine{Bounds: trimmed, Scale: a.Scale, Offset: a.Offset}
}

// heldInverse is the inverse of a degenerate (Scale==0) Affine mapping. It is
// not one of the four public tagged variants; it exists only as the return
// value of Affine.Inverted for a held frame. Its ProjectInstantaneousCC
// returns only the start of the held span; the whole span is read through
// HeldInterval, which is how projection reports a SuccessInterval for
// original spec scenario 6.
type heldInverse struct {
	held   ContinuousInterval
	output Ordinate
}

func (heldInverse) isMapping() {}

func (h heldInverse) InputBounds() ContinuousInterval {
	return ContinuousInterval{Start: h.output, End: h.output}
}

func (h heldInverse) ProjectInstantaneousCC(t Ordinate) (Ordinate, error) {
	if !t.ApproxEqAbs(h.output, EPSILON) {
		return 0, newOutOfBounds(t, h.InputBounds())
	}
	return h.held.Start, nil
}

func (h heldInverse) Inverted() (Mapping, error) {
	return Affine{Bounds: h.held, Scale: 0, Offset: h.output}, nil
}

func (h heldInverse) Trim(bounds ContinuousInterval) Mapping {
	if !bounds.Contains(h.output) {
		return Empty{}
	}
	return h
}

func (h heldInverse) OutputBounds() ContinuousInterval { return h.held }

// HeldInterval reports whether m is the inverse of a held (frozen-frame)
// Affine mapping, returning the interval it was frozen over. This is the
// mechanism behind scenario 6: projecting an instant through such a mapping
// yields a SuccessInterval rather than a unique Ordinate.
func HeldInterval(m Mapping) (ContinuousInterval, bool) {
	h, ok := m.(heldInverse)
	if !ok {
		return ContinuousInterval{}, false
	}
	return h.held, true
}

// LinearMonotonic is a piecewise-linear mapping over knots strictly
// monotonic in In and monotonic (ascending or descending) in Out.
type LinearMonotonic struct {
	Knots []Knot
}

// Knot is one (In, Out) control point of a LinearMonotonic mapping.
type Knot struct {
	In  Ordinate
	Out Ordinate
}

func (LinearMonotonic) isMapping() {}

// InputBounds implements Mapping.
func (l LinearMonotonic) InputBounds() ContinuousInterval {
	return ContinuousInterval{Start: l.Knots[0].In, End: l.Knots[len(l.Knots)-1].In}
}

// OutputBounds implements Mapping.
func (l LinearMonotonic) OutputBounds() ContinuousInterval {
	first, last := l.Knots[0].Out, l.Knots[len(l.Knots)-1].Out
	if first.LessEq(last) {
		return ContinuousInterval{Start: first, End: last}
	}
	return ContinuousInterval{Start: last, End: first}
}

// segmentFor returns the index i such that t falls in [Knots[i].In, Knots[i+1].In].
func (l LinearMonotonic) segmentFor(t Ordinate) (int, bool) {
	for i := 0; i < len(l.Knots)-1; i++ {
		a, b := l.Knots[i].In, l.Knots[i+1].In
		if a.LessEq(t) && t.LessEq(b) {
			return i, true
		}
	}
	return 0, false
}

// ProjectInstantaneousCC implements Mapping.
func (l LinearMonotonic) ProjectInstantaneousCC(t Ordinate) (Ordinate, error) {
	i, ok := l.segmentFor(t)
	if !ok {
		return 0, newOutOfBounds(t, l.InputBounds())
	}
	a, b := l.Knots[i], l.Knots[i+1]
	if a.In == b.In {
		return a.Out, nil
	}
	frac := (t - a.In) / (b.In - a.In)
	return a.Out + frac*(b.Out-a.Out), nil
}

// Inverted implements Mapping: swaps the In/Out axes of every knot and
// re-sorts by the new (formerly Out) In axis.
func (l LinearMonotonic) Inverted() (Mapping, error) {
	knots := make([]Knot, len(l.Knots))
	for i, k := range l.Knots {
		knots[i] = Knot{In: k.Out, Out: k.In}
	}
	sort.Slice(knots, func(i, j int) bool { return knots[i].In < knots[j].In })
	return LinearMonotonic{Knots: knots}, nil
}

// Trim implements Mapping.
func (l LinearMonotonic) Trim(bounds ContinuousInterval) Mapping {
	target := l.InputBounds().Intersect(bounds)
	if target.IsEmpty() {
		return Empty{Bounds: target}
	}
	knots := make([]Knot, 0, len(l.Knots)+2)
	startOut, _ := l.ProjectInstantaneousCC(target.Start)
	knots = append(knots, Knot{In: target.Start, Out: startOut})
	for _, k := range l.Knots {
		if k.In.Less(target.Start) || target.End.Less(k.In) {
			continue
		}
		knots = append(knots, k)
	}
	endOut, _ := l.ProjectInstantaneousCC(target.End)
	if last := knots[len(knots)-1]; !last.In.ApproxEqAbs(target.End, EPSILON) {
		knots = append(knots, Knot{In: target.End, Out: endOut})
	}
	return LinearMonotonic{Knots: dedupeKnots(knots)}
}

func dedupeKnots(knots []Knot) []Knot {
	out := knots[:0:0]
	for i, k := range knots {
		if i > 0 && k.In.ApproxEqAbs(knots[i-1].In, EPSILON) {
			continue
		}
		out = append(out, k)
	}
	return out
}

// BezierSegment is one cubic Bezier segment of a Bezier mapping, specified by
// its four control points' In/Out coordinates (P0..P3 in the usual cubic
// Bezier parameterization).
type BezierSegment struct {
	P0, P1, P2, P3 Knot
}

// Bezier is an ordered sequence of cubic segments whose In endpoints are
// strictly monotonic. Evaluation performs a numerical root-find on In.
type Bezier struct {
	Segments []BezierSegment
}

func (Bezier) isMapping() {}

// InputBounds implements Mapping.
func (b Bezier) InputBounds() ContinuousInterval {
	return ContinuousInterval{Start: b.Segments[0].P0.In, End: b.Segments[len(b.Segments)-1].P3.In}
}

// OutputBounds implements Mapping.
func (b Bezier) OutputBounds() ContinuousInterval {
	lo, hi := b.Segments[0].P0.Out, b.Segments[0].P0.Out
	for _, seg := range b.Segments {
		for _, p := range []Knot{seg.P0, seg.P1, seg.P2, seg.P3} {
			lo = lo.Min(p.Out)
			hi = hi.Max(p.Out)
		}
	}
	return ContinuousInterval{Start: lo, End: hi}
}

// segmentFor finds the segment whose In range contains t.
func (b Bezier) segmentFor(t Ordinate) (BezierSegment, bool) {
	for _, seg := range b.Segments {
		lo, hi := seg.P0.In, seg.P3.In
		if lo.LessEq(t) && t.LessEq(hi) {
			return seg, true
		}
	}
	return BezierSegment{}, false
}

// cubicBezier1D evaluates a 1-D cubic bezier at parameter u in [0,1].
func cubicBezier1D(p0, p1, p2, p3, u float64) float64 {
	mu := 1 - u
	return mu*mu*mu*p0 + 3*mu*mu*u*p1 + 3*mu*u*u*p2 + u*u*u*p3
}

// solveBezierParam finds u in [0,1] such that the In-axis cubic bezier of seg
// evaluates to target, via bisection (the In axis is strictly monotonic by
// construction so this always converges).
func solveBezierParam(seg BezierSegment, target Ordinate) float64 {
	p0, p1, p2, p3 := float64(seg.P0.In), float64(seg.P1.In), float64(seg.P2.In), float64(seg.P3.In)
	lo, hi := 0.0, 1.0
	ascending := p3 >= p0
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		v := cubicBezier1D(p0, p1, p2, p3, mid)
		if (v < float64(target)) == ascending {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// ProjectInstantaneousCC implements Mapping.
func (b Bezier) ProjectInstantaneousCC(t Ordinate) (Ordinate, error) {
	seg, ok := b.segmentFor(t)
	if !ok {
		return 0, newOutOfBounds(t, b.InputBounds())
	}
	u := solveBezierParam(seg, t)
	out := cubicBezier1D(float64(seg.P0.Out), float64(seg.P1.Out), float64(seg.P2.Out), float64(seg.P3.Out), u)
	return Ordinate(out), nil
}

// isMonotonicOut reports whether every segment's Out axis moves in one
// consistent direction, making the mapping globally invertible without a
// split.
func (b Bezier) isMonotonicOut() bool {
	if len(b.Segments) == 0 {
		return true
	}
	ascending := b.Segments[0].P3.Out >= b.Segments[0].P0.Out
	for _, seg := range b.Segments {
		if (seg.P3.Out >= seg.P0.Out) != ascending {
			return false
		}
		// within-segment control points must not reverse direction either
		pts := []Ordinate{seg.P0.Out, seg.P1.Out, seg.P2.Out, seg.P3.Out}
		for i := 1; i < len(pts); i++ {
			if ascending && pts[i] < pts[i-1] {
				return false
			}
			if !ascending && pts[i] > pts[i-1] {
				return false
			}
		}
	}
	return true
}

// Inverted implements Mapping. A non-monotonic Bezier fails with
// ErrNoSplitForLinearization; the caller is expected to split the mapping at
// its extrema first.
func (b Bezier) Inverted() (Mapping, error) {
	if !b.isMonotonicOut() {
		return nil, ErrNoSplitForLinearization
	}
	segs := make([]BezierSegment, len(b.Segments))
	for i, seg := range b.Segments {
		segs[i] = BezierSegment{
			P0: Knot{In: seg.P0.Out, Out: seg.P0.In},
			P1: Knot{In: seg.P1.Out, Out: seg.P1.In},
			P2: Knot{In: seg.P2.Out, Out: seg.P2.In},
			P3: Knot{In: seg.P3.Out, Out: seg.P3.In},
		}
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].P0.In < segs[j].P0.In })
	return Bezier{Segments: segs}, nil
}

// Trim implements Mapping.
func (b Bezier) Trim(bounds ContinuousInterval) Mapping {
	target := b.InputBounds().Intersect(bounds)
	if target.IsEmpty() {
		return Empty{Bounds: target}
	}
	kept := make([]BezierSegment, 0, len(b.Segments))
	for _, seg := range b.Segments {
		segBounds := ContinuousInterval{Start: seg.P0.In, End: seg.P3.In}
		if segBounds.Intersect(target).IsEmpty() {
			continue
		}
		kept = append(kept, seg)
	}
	if len(kept) == 0 {
		return Empty{Bounds: target}
	}
	return Bezier{Segments: kept}
}

// Empty is the degenerate mapping that projects nothing.
type Empty struct {
	Bounds ContinuousInterval
}

func (Empty) isMapping() {}

// InputBounds implements Mapping.
func (e Empty) InputBounds() ContinuousInterval { return e.Bounds }

// OutputBounds implements Mapping.
func (e Empty) OutputBounds() ContinuousInterval { return ContinuousInterval{} }

// ProjectInstantaneousCC implements Mapping: always out of bounds.
func (e Empty) ProjectInstantaneousCC(t Ordinate) (Ordinate, error) {
	return 0, newOutOfBounds(t, e.Bounds)
}

// Inverted implements Mapping.
func (e Empty) Inverted() (Mapping, error) {
	return Empty{Bounds: ContinuousInterval{}}, nil
}

// Trim implements Mapping.
func (e Empty) Trim(bounds ContinuousInterval) Mapping {
	return Empty{Bounds: e.Bounds.Intersect(bounds)}
}

// compose composes two mappings a (X->Y) and b (Y->Z) over the intersection
// of a's output bounds and b's input bounds (already expressed in the shared
// Y space by the caller), returning the resulting X->Z mapping. Affine∘Affine
// stays Affine; LinearMonotonic composed with anything stays LinearMonotonic
// by sampling; any case touching Bezier becomes Bezier.
func compose(a, b Mapping) Mapping {
	switch av := a.(type) {
	case Empty:
		return Empty{Bounds: av.Bounds}
	}
	switch b.(type) {
	case Empty:
		return Empty{Bounds: a.InputBounds()}
	}

	if av, ok := a.(Affine); ok {
		if bv, ok := b.(Affine); ok {
			return Affine{
				Bounds: av.Bounds,
				Scale:  av.Scale * bv.Scale,
				Offset: bv.Scale*av.Offset + bv.Offset,
			}
		}
	}

	// Any other combination: sample through both mappings and rebuild as
	// the richer of the two variants (Bezier wins over LinearMonotonic wins
	// over Affine), matching the "any case involving Bezier returns Bezier"
	// composition rule.
	if isBezier(a) || isBezier(b) {
		return composeSampled(a, b, true)
	}
	return composeSampled(a, b, false)
}

func isBezier(m Mapping) bool {
	_, ok := m.(Bezier)
	return ok
}

// composeSampled builds a LinearMonotonic (or, if asBezier, a Bezier with one
// straight-line segment between each pair of the same sampled knots)
// approximation of a∘b by evaluating at the start, midpoint and end of a's
// input bounds. This keeps join() total
// over mixed variant pairs without requiring full symbolic Bezier-on-Bezier
// composition.
func composeSampled(a, b Mapping, asBezier bool) Mapping {
	bounds := a.InputBounds()
	const steps = 2
	knots := make([]Knot, 0, steps+1)
	for i := 0; i <= steps; i++ {
		frac := Ordinate(i) / Ordinate(steps)
		t := bounds.Start + frac*(bounds.End-bounds.Start)
		mid, err := a.ProjectInstantaneousCC(clampTo(t, bounds))
		if err != nil {
			continue
		}
		out, err := b.ProjectInstantaneousCC(clampTo(mid, b.InputBounds()))
		if err != nil {
			continue
		}
		knots = append(knots, Knot{In: t, Out: out})
	}
	if len(knots) < 2 {
		return Empty{Bounds: bounds}
	}
	if !asBezier {
		return LinearMonotonic{Knots: knots}
	}
	segs := make([]BezierSegment, 0, len(knots)-1)
	for i := 0; i < len(knots)-1; i++ {
		k0, k1 := knots[i], knots[i+1]
		segs = append(segs, BezierSegment{
			P0: k0,
			P1: Knot{In: k0.In + (k1.In-k0.In)/3, Out: k0.Out + (k1.Out-k0.Out)/3},
			P2: Knot{In: k0.In + 2*(k1.In-k0.In)/3, Out: k0.Out + 2*(k1.Out-k0.Out)/3},
			P3: k1,
		})
	}
	return Bezier{Segments: segs}
}

func clampTo(t Ordinate, bounds ContinuousInterval) Ordinate {
	if t < bounds.Start {
		return bounds.Start
	}
	if t > bounds.End {
		if bounds.End < bounds.Start {
			return bounds.Start
		}
		return bounds.End
	}
	return t
}
