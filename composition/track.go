// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import (
	"github.com/bytedance/sonic"

	"github.com/brightlinemedia/spacegraph/topology"
)

// Track kinds, used only for presentation metadata — not topology.
const (
	TrackKindVideo = "Video"
	TrackKindAudio = "Audio"
)

// TrackSchema is the schema for Track.
var TrackSchema = Schema{Name: "Track", Version: 1}

// Track is a Composition whose children are arranged sequentially
// (concatenated) in time.
type Track struct {
	CompositionBase
	kind string
}

// NewTrack builds a Track.
func NewTrack(name, kind string, metadata AnyDictionary, effects []Effect, markers []*Marker, color *Color) *Track {
	if kind == "" {
		kind = TrackKindVideo
	}
	t := &Track{
		CompositionBase: NewCompositionBase(name, metadata, effects, markers, color),
		kind:            kind,
	}
	t.SetSelf(t)
	return t
}

// Kind returns "Video" or "Audio".
func (t *Track) Kind() string { return t.kind }

// SetKind sets the track's kind.
func (t *Track) SetKind(kind string) { t.kind = kind }

// CompositionKind implements Composition.
func (t *Track) CompositionKind() string { return "Track" }

// childDuration returns the i-th child's own duration, per Item.Duration.
func (t *Track) childDuration(i int) topology.Ordinate {
	if item, ok := t.Children()[i].(Item); ok {
		return item.Duration()
	}
	return 0
}

// Duration implements Item: the sum of all children's durations, or
// SourceRange's duration if the track is itself trimmed.
func (t *Track) Duration() topology.Ordinate {
	if t.SourceRange() != nil {
		return t.SourceRange().Duration()
	}
	var total topology.Ordinate
	for i := range t.Children() {
		total = total.Add(t.childDuration(i))
	}
	return total
}

// ChildSpan implements SpaceObject: the i-th child's cumulative offset span
// in the track's intrinsic space — concatenation, per SPEC_FULL.md §4.10.
func (t *Track) ChildSpan(i int) (topology.ContinuousInterval, error) {
	children := t.Children()
	if i < 0 || i >= len(children) {
		return topology.ContinuousInterval{}, &IndexError{Index: i, Size: len(children)}
	}
	var start topology.Ordinate
	for j := 0; j < i; j++ {
		start = start.Add(t.childDuration(j))
	}
	return topology.NewContinuousInterval(start, start.Add(t.childDuration(i))), nil
}

// InternalSpaces implements SpaceObject: presentation, then intrinsic.
func (t *Track) InternalSpaces() []SpaceLabel { return []SpaceLabel{SpacePresentation, SpaceIntrinsic} }

// NumChildren implements SpaceObject.
func (t *Track) NumChildren() int { return len(t.Children()) }

// ChildEntity implements SpaceObject.
func (t *Track) ChildEntity(i int) Composable {
	children := t.Children()
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}

// BuildTransform implements SpaceObject, per SPEC_FULL.md §4.6:
//   - presentation -> intrinsic: infinite identity.
//   - intrinsic -> child[i]: affine offsetting by -span.Start over input
//     bounds equal to the i-th child's span in intrinsic space.
func (t *Track) BuildTransform(from, to SpaceLabel, childIndex int) (topology.Topology, error) {
	if from == SpacePresentation && to == SpaceIntrinsic {
		return topology.InfiniteIdentity(), nil
	}
	if from == SpaceIntrinsic && to == SpaceChild {
		span, err := t.ChildSpan(childIndex)
		if err != nil {
			return topology.Topology{}, err
		}
		m := topology.Affine{
			Bounds: span,
			Scale:  topology.One,
			Offset: span.Start.Neg(),
		}
		return topology.FromSingleMapping(m), nil
	}
	if from == to {
		return topology.InfiniteIdentity(), nil
	}
	return topology.Topology{}, &SchemaError{Schema: TrackSchema.String(), Message: "no transform from " + string(from) + " to " + string(to)}
}

// BoundsOf implements SpaceObject.
func (t *Track) BoundsOf(label SpaceLabel, childIndex int) (topology.ContinuousInterval, error) {
	switch label {
	case SpacePresentation:
		if t.SourceRange() != nil {
			return *t.SourceRange(), nil
		}
		return topology.NewContinuousInterval(0, t.Duration()), nil
	case SpaceIntrinsic:
		return topology.NewContinuousInterval(0, t.Duration()), nil
	case SpaceChild:
		return t.ChildSpan(childIndex)
	default:
		return topology.ContinuousInterval{}, &SchemaError{Schema: TrackSchema.String(), Message: "no such space: " + string(label)}
	}
}

// DiscreteInfo implements SpaceObject: a Track has no discrete
// representation of its own.
func (t *Track) DiscreteInfo(label SpaceLabel, childIndex int) *topology.SampleIndexGenerator {
	return nil
}

// SchemaName implements SerializableObject.
func (t *Track) SchemaName() string { return TrackSchema.Name }

// SchemaVersion implements SerializableObject.
func (t *Track) SchemaVersion() int { return TrackSchema.Version }

// Clone implements SerializableObject.
func (t *Track) Clone() SerializableObject {
	cp := &Track{
		CompositionBase: NewCompositionBase(t.Name(), CloneAnyDictionary(t.Metadata()), cloneEffects(t.Effects()), cloneMarkers(t.Markers()), t.ItemColor()),
		kind:            t.kind,
	}
	cp.SetSelf(cp)
	for _, c := range t.Children() {
		child := c.Clone().(Composable)
		child.SetParent(cp)
		cp.children = append(cp.children, child)
	}
	return cp
}

type trackJSON struct {
	Schema      string                       `json:"OTIO_SCHEMA"`
	Name        string                       `json:"name"`
	Metadata    AnyDictionary                `json:"metadata"`
	SourceRange *topology.ContinuousInterval `json:"source_range"`
	Effects     []RawMessage                 `json:"effects"`
	Markers     []*Marker                    `json:"markers"`
	Color       *Color                       `json:"color"`
	Kind        string                       `json:"kind"`
	Children    []RawMessage                 `json:"children"`
}

// MarshalJSON implements json.Marshaler.
func (t *Track) MarshalJSON() ([]byte, error) {
	effects, err := encodeEffects(t.Effects())
	if err != nil {
		return nil, err
	}
	children, err := encodeChildren(t.Children())
	if err != nil {
		return nil, err
	}
	return sonic.Marshal(&trackJSON{
		Schema:      TrackSchema.String(),
		Name:        t.Name(),
		Metadata:    t.Metadata(),
		SourceRange: t.SourceRange(),
		Effects:     effects,
		Markers:     t.Markers(),
		Color:       t.ItemColor(),
		Kind:        t.kind,
		Children:    children,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Track) UnmarshalJSON(data []byte) error {
	var j trackJSON
	if err := sonic.Unmarshal(data, &j); err != nil {
		return err
	}
	effects, err := decodeEffects(j.Effects)
	if err != nil {
		return err
	}
	children, err := decodeChildren(j.Children)
	if err != nil {
		return err
	}
	*t = *NewTrack(j.Name, j.Kind, j.Metadata, effects, j.Markers, j.Color)
	t.SetSourceRange(j.SourceRange)
	for _, child := range children {
		if err := t.AppendChild(child); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	RegisterSchema(TrackSchema, func() SerializableObject { return NewTrack("", "", nil, nil, nil, nil) })
	RegisterSchemaAlias("Sequence", "Track")
}
