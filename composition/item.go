// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import "github.com/brightlinemedia/spacegraph/topology"

// Item is a Composable that occupies time: it has an (optional) source
// range, markers, effects, and a display color.
type Item interface {
	Composable

	// SourceRange is the item's trim in its own intrinsic space, or nil if
	// untrimmed (the item's full natural duration is used).
	SourceRange() *topology.ContinuousInterval
	SetSourceRange(sourceRange *topology.ContinuousInterval)

	Effects() []Effect
	SetEffects(effects []Effect)

	Markers() []*Marker
	SetMarkers(markers []*Marker)

	ItemColor() *Color
	SetItemColor(color *Color)

	// Duration is the item's own extent along its presentation/intrinsic
	// axis: SourceRange's duration if trimmed, else the item's natural
	// (untrimmed) duration.
	Duration() topology.Ordinate
}

// ItemBase is the embeddable base implementation of Item.
type ItemBase struct {
	ComposableBase
	sourceRange *topology.ContinuousInterval
	effects     []Effect
	markers     []*Marker
	color       *Color
}

// NewItemBase builds an ItemBase.
func NewItemBase(name string, sourceRange *topology.ContinuousInterval, metadata AnyDictionary, effects []Effect, markers []*Marker, color *Color) ItemBase {
	if effects == nil {
		effects = make([]Effect, 0)
	}
	if markers == nil {
		markers = make([]*Marker, 0)
	}
	return ItemBase{
		ComposableBase: NewComposableBase(name, metadata),
		sourceRange:    sourceRange,
		effects:        effects,
		markers:        markers,
		color:          color,
	}
}

// SourceRange returns the item's explicit trim, or nil.
func (i *ItemBase) SourceRange() *topology.ContinuousInterval { return i.sourceRange }

// SetSourceRange sets the item's explicit trim.
func (i *ItemBase) SetSourceRange(sourceRange *topology.ContinuousInterval) { i.sourceRange = sourceRange }

// Effects returns the item's effects.
func (i *ItemBase) Effects() []Effect { return i.effects }

// SetEffects replaces the item's effects.
func (i *ItemBase) SetEffects(effects []Effect) {
	if effects == nil {
		effects = make([]Effect, 0)
	}
	i.effects = effects
}

// Markers returns the item's markers.
func (i *ItemBase) Markers() []*Marker { return i.markers }

// SetMarkers replaces the item's markers.
func (i *ItemBase) SetMarkers(markers []*Marker) {
	if markers == nil {
		markers = make([]*Marker, 0)
	}
	i.markers = markers
}

// ItemColor returns the item's display color, or nil.
func (i *ItemBase) ItemColor() *Color { return i.color }

// SetItemColor sets the item's display color.
func (i *ItemBase) SetItemColor(color *Color) { i.color = color }

func cloneSourceRange(r *topology.ContinuousInterval) *topology.ContinuousInterval {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}

func cloneEffects(effects []Effect) []Effect {
	if effects == nil {
		return nil
	}
	out := make([]Effect, len(effects))
	for i, e := range effects {
		out[i] = e.Clone().(Effect)
	}
	return out
}

func cloneMarkers(markers []*Marker) []*Marker {
	if markers == nil {
		return nil
	}
	out := make([]*Marker, len(markers))
	for i, m := range markers {
		out[i] = m.Clone().(*Marker)
	}
	return out
}
