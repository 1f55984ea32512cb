// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

// Topology is an ordered, input-adjacent sequence of Mappings covering one
// input interval. Topologies are values: Join, Inverted, Trim, and Clone all
// produce new Topology values rather than mutating in place.
type Topology struct {
	mappings []Mapping
}

// NewTopology builds a Topology from an ordered, input-adjacent slice of
// Mappings. The caller is responsible for input-adjacency; use Join(a, b) or
// FromSingleMapping for the common cases instead of calling this directly
// with hand-built slices where avoidable.
func NewTopology(mappings []Mapping) Topology {
	cp := make([]Mapping, len(mappings))
	copy(cp, mappings)
	return Topology{mappings: cp}
}

// FromSingleMapping wraps a single Mapping as a one-segment Topology.
func FromSingleMapping(m Mapping) Topology {
	return Topology{mappings: []Mapping{m}}
}

// infiniteIdentityBound is used as the nominal bounds of INFINITE_IDENTITY;
// it is large enough to dominate any realistic composition while still being
// finite so trimming/join arithmetic stays well-defined.
const infiniteIdentityBound Ordinate = 1e15

// InfiniteIdentity returns the singleton infinite-identity Topology: an
// identity Affine mapping valid (for practical purposes) over all ordinates.
func InfiniteIdentity() Topology {
	return FromSingleMapping(Affine{
		Bounds: ContinuousInterval{Start: -infiniteIdentityBound, End: infiniteIdentityBound},
		Scale:  1,
		Offset: 0,
	})
}

// isInfiniteIdentity reports whether t is (observably) the infinite identity,
// used by Join to short-circuit identity composition per the join invariant
// join(T, INFINITE_IDENTITY) == T == join(INFINITE_IDENTITY, T).
func (t Topology) isInfiniteIdentity() bool {
	if len(t.mappings) != 1 {
		return false
	}
	a, ok := t.mappings[0].(Affine)
	if !ok {
		return false
	}
	return a.Scale == 1 && a.Offset == 0 &&
		a.Bounds.Start.ApproxEqAbs(-infiniteIdentityBound, EPSILON) &&
		a.Bounds.End.ApproxEqAbs(infiniteIdentityBound, EPSILON)
}

// Mappings returns the ordered slice of mappings backing this Topology. The
// returned slice must not be mutated by the caller.
func (t Topology) Mappings() []Mapping {
	return t.mappings
}

// InputBounds returns the union of all mapping input bounds.
func (t Topology) InputBounds() ContinuousInterval {
	if len(t.mappings) == 0 {
		return ContinuousInterval{}
	}
	return ContinuousInterval{Start: t.mappings[0].InputBounds().Start, End: t.mappings[len(t.mappings)-1].InputBounds().End}
}

// OutputBounds returns the bounding interval of all mapping outputs.
func (t Topology) OutputBounds() ContinuousInterval {
	if len(t.mappings) == 0 {
		return ContinuousInterval{}
	}
	out := t.mappings[0].OutputBounds()
	for _, m := range t.mappings[1:] {
		out = out.Union(m.OutputBounds())
	}
	return out
}

// Clone returns an independent copy of t. Because Topology values never
// share mutable state with their mappings (all Mapping variants are
// immutable values), Clone is a shallow copy of the backing slice.
func (t Topology) Clone() Topology {
	return NewTopology(t.mappings)
}

// mappingFor returns the mapping covering ordinate t in the topology's own
// input space, or false if t falls in a gap (which should not happen for a
// well-formed input-adjacent topology, but Empty segments make gaps
// explicit rather than implicit).
func (t Topology) mappingFor(x Ordinate) (Mapping, bool) {
	for _, m := range t.mappings {
		if m.InputBounds().Contains(x) {
			return m, true
		}
	}
	// half-open tie-break: x exactly at the topology's own end belongs to
	// the last segment.
	if len(t.mappings) > 0 {
		last := t.mappings[len(t.mappings)-1]
		if x.ApproxEqAbs(last.InputBounds().End, EPSILON) {
			return last, true
		}
	}
	return nil, false
}

// ProjectInstantaneousCC projects ordinate t through the topology.
func (t Topology) ProjectInstantaneousCC(x Ordinate) (Ordinate, error) {
	m, ok := t.mappingFor(x)
	if !ok {
		return 0, newOutOfBounds(x, t.InputBounds())
	}
	return m.ProjectInstantaneousCC(x)
}

// Trim restricts t's input to the intersection with bounds, trimming each
// constituent mapping and dropping any that become fully empty outside
// bounds.
func (t Topology) Trim(bounds ContinuousInterval) Topology {
	out := make([]Mapping, 0, len(t.mappings))
	for _, m := range t.mappings {
		if m.InputBounds().Intersect(bounds).IsEmpty() {
			continue
		}
		out = append(out, m.Trim(bounds))
	}
	if len(out) == 0 {
		out = []Mapping{Empty{Bounds: bounds}}
	}
	return NewTopology(out)
}

// Join composes two topologies a2b and b2c into a2c, per SPEC_FULL.md §4.2:
// walk a2b's output bounds against b2c's input bounds; for each pair of
// covering mappings, intersect their domains in the shared intermediate
// space and compose them. Sub-ranges of the intermediate space that are not
// covered by both sides are left out: no Empty mapping is inserted for them,
// so the result can have gaps. Only when nothing is covered by both is the
// result a single Empty mapping over a2b's input bounds.
func Join(a2b, b2c Topology) Topology {
	if a2b.isInfiniteIdentity() {
		return b2c.Clone()
	}
	if b2c.isInfiniteIdentity() {
		return a2b.Clone()
	}

	// Collect the breakpoints of both topologies expressed in the shared
	// intermediate (B) space: a2b's own output-bound edges, and b2c's
	// input-bound edges, which are already B-space values.
	var breakpoints []Ordinate
	for _, m := range a2b.mappings {
		ob := m.OutputBounds()
		breakpoints = append(breakpoints, ob.Start, ob.End)
	}
	for _, m := range b2c.mappings {
		ib := m.InputBounds()
		breakpoints = append(breakpoints, ib.Start, ib.End)
	}
	sortOrdinates(breakpoints)
	breakpoints = dedupeOrdinates(breakpoints)

	result := make([]Mapping, 0, len(a2b.mappings)+len(b2c.mappings))
	for i := 0; i < len(breakpoints)-1; i++ {
		bStart, bEnd := breakpoints[i], breakpoints[i+1]
		if bStart.ApproxEqAbs(bEnd, EPSILON) {
			continue
		}
		bMapping, ok := mappingCoveringOutput(a2b, bStart, bEnd)
		if !ok {
			continue
		}
		cMapping, ok := b2c.mappingFor(bStart)
		if !ok {
			continue
		}

		aSeg, err := restrictToOutputRange(bMapping, bStart, bEnd)
		if err != nil {
			continue
		}
		result = append(result, compose(aSeg, cMapping))
	}

	if len(result) == 0 {
		return FromSingleMapping(Empty{Bounds: a2b.InputBounds()})
	}
	return coalesceAdjacent(result)
}

// mappingCoveringOutput finds the a2b mapping whose output bounds contain
// [bStart, bEnd).
func mappingCoveringOutput(a2b Topology, bStart, bEnd Ordinate) (Mapping, bool) {
	mid := bStart + (bEnd-bStart)/2
	for _, m := range a2b.mappings {
		ob := m.OutputBounds()
		if ob.Contains(mid) || ob.Start.ApproxEqAbs(mid, EPSILON) {
			return m, true
		}
	}
	return nil, false
}

// restrictToOutputRange returns the sub-mapping of m whose output lies in
// [bStart,bEnd), expressed by inverting m, trimming the inverse to that
// output range, and inverting back to get an A->B mapping with the narrowed
// input range that produces exactly that output slice.
func restrictToOutputRange(m Mapping, bStart, bEnd Ordinate) (Mapping, error) {
	inv, err := m.Inverted()
	if err != nil {
		return nil, err
	}
	trimmedInv := inv.Trim(ContinuousInterval{Start: bStart, End: bEnd})
	back, err := trimmedInv.Inverted()
	if err != nil {
		return nil, err
	}
	return back, nil
}

// coalesceAdjacent is the final step of Join: it wraps the breakpoint walk's
// composed mappings, in breakpoint order, as a Topology value without
// merging or filling anything.
func coalesceAdjacent(mappings []Mapping) Topology {
	return NewTopology(mappings)
}

func sortOrdinates(xs []Ordinate) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

func dedupeOrdinates(xs []Ordinate) []Ordinate {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if !x.ApproxEqAbs(out[len(out)-1], EPSILON) {
			out = append(out, x)
		}
	}
	return out
}

// Inverted returns the set of inverse topologies of t. Because a
// non-monotonic input can produce more than one inverse branch, this returns
// a slice; the core projection path (projection.Build) accepts exactly one
// result and fails with ErrMoreThanOneCurveIsNotImplemented otherwise.
func (t Topology) Inverted() ([]Topology, error) {
	if len(t.mappings) == 0 {
		return nil, ErrNoInvertedTopologies
	}
	inv := make([]Mapping, 0, len(t.mappings))
	for _, m := range t.mappings {
		im, err := m.Inverted()
		if err != nil {
			return nil, err
		}
		inv = append(inv, im)
	}
	// Sort by the inverted mappings' own input bounds (their former output)
	// to restore input-adjacency.
	sortMappingsByInput(inv)
	return []Topology{NewTopology(inv)}, nil
}

func sortMappingsByInput(ms []Mapping) {
	for i := 1; i < len(ms); i++ {
		for j := i; j > 0 && ms[j].InputBounds().Start < ms[j-1].InputBounds().Start; j-- {
			ms[j], ms[j-1] = ms[j-1], ms[j]
		}
	}
}
