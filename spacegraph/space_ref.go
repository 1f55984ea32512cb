// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package spacegraph builds and walks the addressable graph of temporal
// coordinate spaces exposed by a composition: every presentation, intrinsic,
// media, and child-slot space reachable from a root SpaceObject is assigned a
// treecode.Code, and the resulting TopologicalMap answers "does a path exist
// between these two spaces" and "what is it" for the projection package.
package spacegraph

import "github.com/brightlinemedia/spacegraph/composition"

// SpaceRef names one space exposed by one composition entity: a (entity,
// label, childIndex) triple. childIndex is only meaningful when Label is
// composition.SpaceChild; it is ignored (and should be left zero) otherwise.
//
// Two SpaceRef values naming the same entity pointer, label, and child index
// compare equal with ==, matching the original spec's ComposedValueRef
// identity semantics.
type SpaceRef struct {
	Entity     composition.SpaceObject
	Label      composition.SpaceLabel
	ChildIndex int
}

// refKey is SpaceRef reduced to a comparable map key. SpaceObject values are
// always backed by a pointer type in this package's domain, so == on the
// interface value is reference equality.
type refKey struct {
	entity     composition.SpaceObject
	label      composition.SpaceLabel
	childIndex int
}

func keyOf(r SpaceRef) refKey {
	return refKey{entity: r.Entity, label: r.Label, childIndex: r.ChildIndex}
}

func (k refKey) ref() SpaceRef {
	return SpaceRef{Entity: k.entity, Label: k.label, ChildIndex: k.childIndex}
}
