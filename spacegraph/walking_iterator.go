// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package spacegraph

import "github.com/brightlinemedia/spacegraph/treecode"

// WalkingIterator enumerates SpaceRefs one at a time, per SPEC_FULL.md §4.5.
// Given a destination, it walks the unique descending path from source to
// destination (source must be an ancestor-or-equal of destination — callers
// wanting the reverse direction, such as projection.Build, swap the pair and
// invert the result afterward). Given no destination, it enumerates every
// space in source's subtree in a stable, map-order-independent sequence.
type WalkingIterator struct {
	m *TopologicalMap

	directed bool
	cur      SpaceRef
	curCode  treecode.Code
	destCode treecode.Code
	finished bool

	queue []SpaceRef
}

// NewWalkingIterator builds a WalkingIterator starting at source. If
// destination is non-nil, the iterator walks source -> destination and
// destination must lie in source's subtree (source's code must be a prefix
// of destination's); otherwise it enumerates all of source's subtree.
func NewWalkingIterator(m *TopologicalMap, source SpaceRef, destination *SpaceRef) (*WalkingIterator, error) {
	srcCode, err := m.CodeFor(source)
	if err != nil {
		return nil, ErrSourceNotInMap
	}

	if destination == nil {
		return &WalkingIterator{m: m, queue: m.subtreeSpaces(srcCode)}, nil
	}

	destCode, err := m.CodeFor(*destination)
	if err != nil {
		return nil, ErrDestinationNotInMap
	}
	if !descendantOrEqual(srcCode, destCode) {
		return nil, ErrNoPathBetweenSpaces
	}
	return &WalkingIterator{
		m:        m,
		directed: true,
		cur:      source,
		curCode:  srcCode,
		destCode: destCode,
	}, nil
}

// Next returns the next SpaceRef in the walk, or (SpaceRef{}, false) once
// the walk is exhausted.
func (it *WalkingIterator) Next() (SpaceRef, bool) {
	if !it.directed {
		if len(it.queue) == 0 {
			return SpaceRef{}, false
		}
		ref := it.queue[0]
		it.queue = it.queue[1:]
		return ref, true
	}

	if it.finished {
		return SpaceRef{}, false
	}
	ref := it.cur
	if it.curCode.Equal(it.destCode) {
		it.finished = true
		return ref, true
	}
	step, err := it.curCode.NextStepTowards(it.destCode)
	if err != nil || step.IsUp() {
		// Construction guarantees curCode is always a prefix of destCode, so
		// this only fires if the map itself is inconsistent.
		it.finished = true
		return ref, true
	}
	nextCode := step.Apply(it.curCode)
	nextRef, err := it.m.SpaceFor(nextCode)
	if err != nil {
		it.finished = true
		return ref, true
	}
	it.cur, it.curCode = nextRef, nextCode
	return ref, true
}
