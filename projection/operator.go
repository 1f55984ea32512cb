// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package projection builds and evaluates ProjectionOperators: a composable
// Topology between any two spaces named in a spacegraph.TopologicalMap, and
// the continuous/discrete query surface (SPEC_FULL.md §4.7-§4.9) layered on
// top of it.
package projection

import (
	"github.com/brightlinemedia/spacegraph/composition"
	"github.com/brightlinemedia/spacegraph/spacegraph"
	"github.com/brightlinemedia/spacegraph/topology"
	"github.com/brightlinemedia/spacegraph/treecode"
)

// Operator is a built projection between Source and Destination: a single
// Topology whose input is Source's own space and whose output is
// Destination's.
type Operator struct {
	Source      spacegraph.SpaceRef
	Destination spacegraph.SpaceRef
	Topology    topology.Topology
}

// Instant is the result of an instantaneous continuous projection. Ordinate
// is meaningful unless SuccessInterval is set, in which case the query
// landed on a held (frozen) frame and SuccessInterval is the span it was
// held over, per original spec scenario 6.
type Instant struct {
	Ordinate        topology.Ordinate
	SuccessInterval *topology.ContinuousInterval
}

// Build constructs the ProjectionOperator from source to destination within
// m, per SPEC_FULL.md §4.7: look up both codes, fail if either is absent or
// no path connects them, walk the unique path between them joining a
// per-step Topology at each edge, and invert the result if source's code is
// longer than destination's (the walk always proceeds from the
// shorter/ancestor code to the longer/descendant one).
func Build(m *spacegraph.TopologicalMap, source, destination spacegraph.SpaceRef) (*Operator, error) {
	srcCode, err := m.CodeFor(source)
	if err != nil {
		return nil, spacegraph.ErrSourceNotInMap
	}
	destCode, err := m.CodeFor(destination)
	if err != nil {
		return nil, spacegraph.ErrDestinationNotInMap
	}

	if srcCode.Equal(destCode) {
		bounds, err := source.Entity.BoundsOf(source.Label, source.ChildIndex)
		if err != nil {
			return nil, err
		}
		identity := topology.FromSingleMapping(topology.Affine{Bounds: bounds, Scale: topology.One, Offset: 0})
		return &Operator{Source: source, Destination: destination, Topology: identity}, nil
	}
	if !treecode.PathExists(srcCode, destCode) {
		return nil, spacegraph.ErrNoPathBetweenSpaces
	}

	walkSrc, walkDest, swapped := source, destination, false
	if destCode.Length() < srcCode.Length() {
		walkSrc, walkDest, swapped = destination, source, true
	}

	t, err := walkAndJoin(m, walkSrc, walkDest)
	if err != nil {
		return nil, err
	}

	if swapped {
		inv, err := t.Inverted()
		if err != nil {
			return nil, err
		}
		if len(inv) != 1 {
			return nil, topology.ErrMoreThanOneCurveIsNotImplemented
		}
		t = inv[0]
	}

	return &Operator{Source: source, Destination: destination, Topology: t}, nil
}

// walkAndJoin walks src -> dest (src must be an ancestor-or-equal of dest in
// the map's tree, guaranteed by Build's swap above) and joins one Topology
// per edge: same-entity edges use the entity's own BuildTransform; edges
// that cross from one entity into another (always a child-slot space into
// the child's own first internal space) are the structural identity, per
// SPEC_FULL.md §4.6's note that "enter child" is not any entity's own
// build_transform.
func walkAndJoin(m *spacegraph.TopologicalMap, src, dest spacegraph.SpaceRef) (topology.Topology, error) {
	it, err := spacegraph.NewWalkingIterator(m, src, &dest)
	if err != nil {
		return topology.Topology{}, err
	}

	cur, ok := it.Next()
	if !ok {
		return topology.Topology{}, spacegraph.ErrNoPathBetweenSpaces
	}

	acc := topology.InfiniteIdentity()
	// A walk to child slot k passes through slots 0..k-1 first. A step from
	// one slot to the next is rebuilt from the space the slot run started at
	// (runFrom, with runAcc the accumulation before it), so the joined step is
	// the entity's own internal-space -> child[k] transform.
	runAcc, runFrom := acc, cur.Label
	for {
		next, ok := it.Next()
		if !ok {
			break
		}
		var step topology.Topology
		if cur.Entity == next.Entity {
			from := cur.Label
			if from == composition.SpaceChild && next.Label == composition.SpaceChild {
				acc, from = runAcc, runFrom
			} else {
				runAcc, runFrom = acc, from
			}
			step, err = cur.Entity.BuildTransform(from, next.Label, next.ChildIndex)
			if err != nil {
				return topology.Topology{}, err
			}
		} else {
			step = topology.InfiniteIdentity()
		}
		acc = topology.Join(acc, step)
		cur = next
	}
	return acc, nil
}

func (op *Operator) sourceGenerator() (topology.SampleIndexGenerator, error) {
	gen := op.Source.Entity.DiscreteInfo(op.Source.Label, op.Source.ChildIndex)
	if gen == nil {
		return topology.SampleIndexGenerator{}, ErrNoDiscreteInfoForSpace
	}
	return *gen, nil
}

func (op *Operator) destinationGenerator() (topology.SampleIndexGenerator, error) {
	gen := op.Destination.Entity.DiscreteInfo(op.Destination.Label, op.Destination.ChildIndex)
	if gen == nil {
		return topology.SampleIndexGenerator{}, ErrNoDiscreteInfoForSpace
	}
	return *gen, nil
}

// ProjectInstantaneousCC projects a single source ordinate to a destination
// ordinate, per SPEC_FULL.md §4.8. A query landing on a held (frozen) span
// returns an Instant with SuccessInterval set rather than a single Ordinate.
func (op *Operator) ProjectInstantaneousCC(t topology.Ordinate) (Instant, error) {
	bounds := op.Topology.InputBounds()
	if !bounds.Contains(t) {
		return Instant{}, &topology.OutOfBoundsError{Ordinate: t, Bounds: bounds}
	}
	for _, mp := range op.Topology.Mappings() {
		if !mp.InputBounds().Contains(t) {
			continue
		}
		if held, ok := topology.HeldInterval(mp); ok {
			h := held
			return Instant{SuccessInterval: &h}, nil
		}
		v, err := mp.ProjectInstantaneousCC(t)
		if err != nil {
			return Instant{}, err
		}
		return Instant{Ordinate: v}, nil
	}
	return Instant{}, &topology.OutOfBoundsError{Ordinate: t, Bounds: bounds}
}

// ProjectInstantaneousCD projects a single source ordinate to a destination
// sample index, requiring the destination space to carry a
// SampleIndexGenerator.
func (op *Operator) ProjectInstantaneousCD(t topology.Ordinate) (int64, error) {
	gen, err := op.destinationGenerator()
	if err != nil {
		return 0, err
	}
	inst, err := op.ProjectInstantaneousCC(t)
	if err != nil {
		return 0, err
	}
	if inst.SuccessInterval != nil {
		return gen.IndexOf(inst.SuccessInterval.Start), nil
	}
	return gen.IndexOf(inst.Ordinate), nil
}

// ProjectTopologyCC composes an arbitrary a2src Topology with this operator
// to produce a2dst, per SPEC_FULL.md §4.8. topology.Join is total, so this
// never fails on its own account.
func (op *Operator) ProjectTopologyCC(a2src topology.Topology) topology.Topology {
	return topology.Join(a2src, op.Topology)
}

// ProjectTopologyCD composes a2src with this operator and samples the
// result at the destination's own discrete rate, stepping across a2src's
// input domain.
func (op *Operator) ProjectTopologyCD(a2src topology.Topology) ([]int64, error) {
	gen, err := op.destinationGenerator()
	if err != nil {
		return nil, err
	}
	a2dst := op.ProjectTopologyCC(a2src)
	return discreteWalk(a2dst, gen, a2src.InputBounds()), nil
}

// ProjectRangeCC projects a continuous source range to a Topology whose own
// input starts at zero and spans the range's duration, per SPEC_FULL.md
// §4.8. A range with no overlap with the operator's domain reports
// OutOfBounds.
func (op *Operator) ProjectRangeCC(r topology.ContinuousInterval) (topology.Topology, error) {
	bounds := op.Topology.InputBounds()
	clipped := r.Intersect(bounds)
	if clipped.IsEmpty() {
		return topology.Topology{}, &topology.OutOfBoundsError{Ordinate: r.Start, Bounds: bounds}
	}
	trimmed := op.Topology.Trim(clipped)
	shift := topology.FromSingleMapping(topology.Affine{
		Bounds: topology.NewContinuousInterval(0, clipped.Duration()),
		Scale:  topology.One,
		Offset: clipped.Start,
	})
	return topology.Join(shift, trimmed), nil
}

// ProjectRangeCD projects a continuous source range to the sorted,
// deduplicated array of destination sample indices it covers, stepping
// across the range at 1/destination.rate, per SPEC_FULL.md §4.8.
func (op *Operator) ProjectRangeCD(r topology.ContinuousInterval) ([]int64, error) {
	gen, err := op.destinationGenerator()
	if err != nil {
		return nil, err
	}
	bounds := op.Topology.InputBounds()
	clipped := r.Intersect(bounds)
	if clipped.IsEmpty() {
		return nil, &topology.OutOfBoundsError{Ordinate: r.Start, Bounds: bounds}
	}
	return discreteWalk(op.Topology, gen, clipped), nil
}

// ProjectIndexDC projects a source sample index to the destination Topology
// covering that index's continuous interval, requiring the source space to
// carry a SampleIndexGenerator.
func (op *Operator) ProjectIndexDC(k int64) (topology.Topology, error) {
	gen, err := op.sourceGenerator()
	if err != nil {
		return topology.Topology{}, err
	}
	return op.ProjectRangeCC(gen.IntervalOf(k))
}

// ProjectIndexDD projects a source sample index to the array of destination
// sample indices it covers, requiring both spaces to carry a
// SampleIndexGenerator.
func (op *Operator) ProjectIndexDD(k int64) ([]int64, error) {
	gen, err := op.sourceGenerator()
	if err != nil {
		return nil, err
	}
	return op.ProjectRangeCD(gen.IntervalOf(k))
}

// discreteWalk steps across bounds at 1/gen.SampleRateHz, projects each step
// through t, and converts the result to a destination sample index via gen.
// Held spans project to the index covering the held output. Steps that miss
// t's domain (can occur at a trimmed topology's trailing edge) are skipped.
func discreteWalk(t topology.Topology, gen topology.SampleIndexGenerator, bounds topology.ContinuousInterval) []int64 {
	step := topology.One.Div(gen.SampleRateHz)
	if step <= 0 {
		return nil
	}
	var out []int64
	for x := bounds.Start; x.Less(bounds.End) || x.ApproxEqAbs(bounds.End, topology.EPSILON); x = x.Add(step) {
		m, ok := mappingAt(t, x)
		if !ok {
			continue
		}
		if held, ok := topology.HeldInterval(m); ok {
			out = append(out, gen.IndexOf(held.Start))
			continue
		}
		v, err := m.ProjectInstantaneousCC(x)
		if err != nil {
			continue
		}
		out = append(out, gen.IndexOf(v))
	}
	return dedupeIndices(out)
}

func mappingAt(t topology.Topology, x topology.Ordinate) (topology.Mapping, bool) {
	for _, m := range t.Mappings() {
		if m.InputBounds().Contains(x) {
			return m, true
		}
	}
	return nil, false
}

func dedupeIndices(xs []int64) []int64 {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}
