// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import "github.com/brightlinemedia/spacegraph/topology"

// SpaceLabel names one of an entity's internal temporal coordinate systems.
type SpaceLabel string

// The four space labels a composition entity may expose, per SPEC_FULL.md §3.
const (
	SpacePresentation SpaceLabel = "presentation"
	SpaceIntrinsic    SpaceLabel = "intrinsic"
	SpaceMedia        SpaceLabel = "media"
	SpaceChild        SpaceLabel = "child"
)

// SpaceObject is implemented by every composition entity (Clip, Gap, Track,
// Stack, Warp, Transition, Timeline) so that spacegraph.Build and
// projection.Build can dispatch per-entity edge-construction behavior
// through ordinary interface methods instead of a type switch — grounded on
// the teacher's Composable/Item/Composition interface-plus-embedded-base
// pattern, generalized to the space-graph addressing this system adds.
//
// SpaceObject deliberately does not embed Composable: Timeline is a
// SpaceObject (it owns an implicit Stack and exposes presentation/intrinsic
// spaces) but, per the teacher's own Timeline, is not itself parented inside
// another composition. ComposedValueRef is realized as SpaceObject, not
// Composable, so that reference equality (Go's == on the interface value)
// covers every addressable entity including the Timeline root.
type SpaceObject interface {
	// InternalSpaces enumerates the entity's spaces in the fixed order
	// used to assign treecode addresses: the first space reuses the
	// parent's code, each subsequent one descends by one left step.
	InternalSpaces() []SpaceLabel

	// NumChildren is zero for leaf entities (Clip, Gap) and one for Warp.
	NumChildren() int

	// ChildEntity returns the i-th child, or nil if i is out of range.
	ChildEntity(i int) Composable

	// ChildSpan returns the i-th child's span expressed in the entity's
	// own intrinsic (Track/Stack) or presentation (Warp) space.
	ChildSpan(i int) (topology.ContinuousInterval, error)

	// BuildTransform returns the Topology mapping the "from" space to the
	// "to" space. childIndex is only meaningful when either space is
	// SpaceChild.
	BuildTransform(from, to SpaceLabel, childIndex int) (topology.Topology, error)

	// BoundsOf returns the bounds of the named space. childIndex is only
	// meaningful when label is SpaceChild.
	BoundsOf(label SpaceLabel, childIndex int) (topology.ContinuousInterval, error)

	// DiscreteInfo returns the SampleIndexGenerator bridging the named space
	// to discrete sample indices, or nil if that space has no discrete
	// representation. Only Clip.media (via its active media reference) and
	// Timeline.presentation (via PictureRate) carry one.
	DiscreteInfo(label SpaceLabel, childIndex int) *topology.SampleIndexGenerator
}
