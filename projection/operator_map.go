// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package projection

import (
	"github.com/brightlinemedia/spacegraph/composition"
	"github.com/brightlinemedia/spacegraph/spacegraph"
	"github.com/brightlinemedia/spacegraph/topology"
)

// OperatorMap is a ProjectionOperatorMap: a partition of one source space's
// input range into contiguous segments, each carrying zero or more Operators
// layered over that segment (outermost first), per SPEC_FULL.md §4.9.
// len(EndPoints) == len(Operators)+1 always, and EndPoints is strictly
// increasing.
type OperatorMap struct {
	EndPoints []topology.Ordinate
	Operators [][]*Operator
}

// InitOperator builds a single-segment OperatorMap spanning op's own input
// bounds.
func InitOperator(op *Operator) *OperatorMap {
	bounds := op.Topology.InputBounds()
	return &OperatorMap{
		EndPoints: []topology.Ordinate{bounds.Start, bounds.End},
		Operators: [][]*Operator{{op}},
	}
}

// Clone returns an independent copy of m.
func (m *OperatorMap) Clone() *OperatorMap {
	out := &OperatorMap{
		EndPoints: append([]topology.Ordinate{}, m.EndPoints...),
		Operators: make([][]*Operator, len(m.Operators)),
	}
	for i, ops := range m.Operators {
		out.Operators[i] = append([]*Operator{}, ops...)
	}
	return out
}

// ExtendTo pads m so its range covers r, adding empty (operator-less)
// segments at either end as needed. It never removes or shrinks existing
// segments.
func (m *OperatorMap) ExtendTo(r topology.ContinuousInterval) *OperatorMap {
	out := m.Clone()
	if len(out.EndPoints) == 0 {
		out.EndPoints = []topology.Ordinate{r.Start, r.End}
		out.Operators = [][]*Operator{nil}
		return out
	}
	if r.Start.Less(out.EndPoints[0]) {
		out.EndPoints = append([]topology.Ordinate{r.Start}, out.EndPoints...)
		out.Operators = append([][]*Operator{nil}, out.Operators...)
	}
	last := len(out.EndPoints) - 1
	if !r.End.LessEq(out.EndPoints[last]) {
		out.EndPoints = append(out.EndPoints, r.End)
		out.Operators = append(out.Operators, nil)
	}
	return out
}

// SplitAtEach inserts new segment boundaries at the union of m's own
// end_points and points, per SPEC_FULL.md §4.9. Every resulting slice keeps
// the operator list of the original segment it was carved from. Points
// within topology.EPSILON of an existing boundary are merged rather than
// inserted again.
func (m *OperatorMap) SplitAtEach(points []topology.Ordinate) *OperatorMap {
	all := append([]topology.Ordinate{}, m.EndPoints...)
	all = append(all, points...)
	sortOrdinatesAsc(all)
	merged := dedupeOrdinatesEps(all)

	out := &OperatorMap{EndPoints: merged}
	if len(merged) <= 1 {
		out.Operators = nil
		return out
	}
	out.Operators = make([][]*Operator, len(merged)-1)
	for i := 0; i < len(merged)-1; i++ {
		mid := merged[i] + (merged[i+1]-merged[i])/2
		out.Operators[i] = append([]*Operator{}, m.operatorsAt(mid)...)
	}
	return out
}

// operatorsAt returns the operator list of the segment in m containing t, or
// nil if t falls outside every segment.
func (m *OperatorMap) operatorsAt(t topology.Ordinate) []*Operator {
	for i := 0; i < len(m.EndPoints)-1; i++ {
		start, end := m.EndPoints[i], m.EndPoints[i+1]
		if start.LessEq(t) && t.Less(end) {
			return m.Operators[i]
		}
	}
	return nil
}

// MergeComposite aligns over and under onto the union of their end_points
// and concatenates their operator lists per segment, over's operators first,
// per SPEC_FULL.md §4.9's "init_operator/extend_to/split_at_each/
// merge_composite" construction.
func MergeComposite(over, under *OperatorMap) *OperatorMap {
	lo, hi := unionBounds(over, under)
	if lo == nil {
		return &OperatorMap{}
	}
	span := topology.NewContinuousInterval(*lo, *hi)

	allPoints := append([]topology.Ordinate{}, over.EndPoints...)
	allPoints = append(allPoints, under.EndPoints...)

	a := over.ExtendTo(span).SplitAtEach(allPoints)
	b := under.ExtendTo(span).SplitAtEach(allPoints)

	out := &OperatorMap{EndPoints: a.EndPoints, Operators: make([][]*Operator, len(a.Operators))}
	for i := range out.Operators {
		merged := append([]*Operator{}, a.Operators[i]...)
		merged = append(merged, b.Operators[i]...)
		out.Operators[i] = merged
	}
	return out
}

func unionBounds(maps ...*OperatorMap) (*topology.Ordinate, *topology.Ordinate) {
	var lo, hi *topology.Ordinate
	for _, m := range maps {
		if len(m.EndPoints) == 0 {
			continue
		}
		start, end := m.EndPoints[0], m.EndPoints[len(m.EndPoints)-1]
		if lo == nil || start.Less(*lo) {
			lo = &start
		}
		if hi == nil || hi.Less(end) {
			hi = &end
		}
	}
	return lo, hi
}

// MapToMediaFrom walks every space reachable from source and builds a
// ProjectionOperator for every media-labeled space it finds, merging each
// one into an accumulating OperatorMap via MergeComposite (each new operator
// is "under" everything already merged, in the walk's order: shorter codes
// first, then by bit pattern), per SPEC_FULL.md §4.9's
// projection_map_to_media_from.
func MapToMediaFrom(m *spacegraph.TopologicalMap, source spacegraph.SpaceRef) (*OperatorMap, error) {
	it, err := spacegraph.NewWalkingIterator(m, source, nil)
	if err != nil {
		return nil, err
	}

	var acc *OperatorMap
	for {
		ref, ok := it.Next()
		if !ok {
			break
		}
		if ref.Label != composition.SpaceMedia {
			continue
		}
		op, err := Build(m, source, ref)
		if err != nil {
			return nil, err
		}
		opMap := InitOperator(op)
		if acc == nil {
			acc = opMap
			continue
		}
		acc = MergeComposite(acc, opMap)
	}
	if acc == nil {
		return &OperatorMap{}, nil
	}
	return acc, nil
}

func sortOrdinatesAsc(xs []topology.Ordinate) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j].Less(xs[j-1]); j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

func dedupeOrdinatesEps(xs []topology.Ordinate) []topology.Ordinate {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if !x.ApproxEqAbs(out[len(out)-1], topology.EPSILON) {
			out = append(out, x)
		}
	}
	return out
}
