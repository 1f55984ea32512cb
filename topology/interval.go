// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

// ContinuousInterval is a half-open range [Start, End) of Ordinates.
//
// An interval with Start == End is a degenerate, held instant (used by warps
// that freeze a single frame). Start > End is not normalized automatically;
// callers that need a reversed interval must flip it explicitly (Topology
// inversion always produces a forward interval).
type ContinuousInterval struct {
	Start Ordinate `json:"start"`
	End   Ordinate `json:"end"`
}

// NewContinuousInterval builds an interval [start, end).
func NewContinuousInterval(start, end Ordinate) ContinuousInterval {
	return ContinuousInterval{Start: start, End: end}
}

// Duration returns End - Start.
func (c ContinuousInterval) Duration() Ordinate {
	return c.End - c.Start
}

// IsDegenerate reports whether the interval is a held instant (Start == End,
// within epsilon).
func (c ContinuousInterval) IsDegenerate() bool {
	return c.Start.ApproxEqAbs(c.End, EPSILON)
}

// Contains reports whether t lies within [Start, End). For a degenerate
// interval, Contains reports whether t equals Start.
func (c ContinuousInterval) Contains(t Ordinate) bool {
	if c.IsDegenerate() {
		return t.ApproxEqAbs(c.Start, EPSILON)
	}
	return c.Start.LessEq(t) && t.Less(c.End)
}

// Intersect returns the overlap of c and other. The result may be degenerate
// or, if the two do not overlap, will have End <= Start (callers should check
// IsEmpty).
func (c ContinuousInterval) Intersect(other ContinuousInterval) ContinuousInterval {
	start := c.Start.Max(other.Start)
	end := c.End.Min(other.End)
	return ContinuousInterval{Start: start, End: end}
}

// IsEmpty reports whether the interval has no extent and is not a valid
// degenerate instant produced by Intersect (End < Start strictly, beyond
// epsilon).
func (c ContinuousInterval) IsEmpty() bool {
	return c.End < c.Start && !c.End.ApproxEqAbs(c.Start, EPSILON)
}

// Union returns the smallest interval that bounds both c and other.
func (c ContinuousInterval) Union(other ContinuousInterval) ContinuousInterval {
	return ContinuousInterval{
		Start: c.Start.Min(other.Start),
		End:   c.End.Max(other.End),
	}
}

// Offset returns c shifted by delta.
func (c ContinuousInterval) Offset(delta Ordinate) ContinuousInterval {
	return ContinuousInterval{Start: c.Start + delta, End: c.End + delta}
}

// Equal reports approximate equality of both endpoints.
func (c ContinuousInterval) Equal(other ContinuousInterval) bool {
	return c.Start.ApproxEqAbs(other.Start, EPSILON) && c.End.ApproxEqAbs(other.End, EPSILON)
}
