// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import (
	"github.com/bytedance/sonic"

	"github.com/brightlinemedia/spacegraph/topology"
)

// DefaultMediaKey is the key used for a Clip's primary media reference.
const DefaultMediaKey = "DEFAULT_MEDIA"

// ClipSchema is the schema for Clip. Version 2 replaced the original
// singular "media_reference" field with the "media_references" map plus
// "active_media_reference_key", so that a clip can carry alternates (e.g. a
// proxy alongside full-res media).
var ClipSchema = Schema{Name: "Clip", Version: 2}

// Clip is a segment of editable media. It exposes two spaces: presentation
// (how its parent sees it, trimmed by SourceRange) and media (its media
// reference's own time axis).
type Clip struct {
	ItemBase
	mediaReferences         map[string]MediaReference
	activeMediaReferenceKey string
}

// NewClip builds a Clip.
func NewClip(name string, mediaReference MediaReference, sourceRange *topology.ContinuousInterval, metadata AnyDictionary, effects []Effect, markers []*Marker, color *Color) *Clip {
	if mediaReference == nil {
		mediaReference = NewMissingReference("", nil, nil)
	}
	c := &Clip{
		ItemBase:                NewItemBase(name, sourceRange, metadata, effects, markers, color),
		mediaReferences:         map[string]MediaReference{DefaultMediaKey: mediaReference},
		activeMediaReferenceKey: DefaultMediaKey,
	}
	c.SetSelf(c)
	return c
}

// MediaReference returns the active media reference.
func (c *Clip) MediaReference() MediaReference {
	return c.mediaReferences[c.activeMediaReferenceKey]
}

// SetMediaReference sets the active media reference.
func (c *Clip) SetMediaReference(ref MediaReference) {
	if ref == nil {
		ref = NewMissingReference("", nil, nil)
	}
	c.mediaReferences[c.activeMediaReferenceKey] = ref
}

// ActiveMediaReferenceKey returns the active media reference's key, for
// clips carrying more than one reference (e.g. proxy vs. full-res).
func (c *Clip) ActiveMediaReferenceKey() string { return c.activeMediaReferenceKey }

// AvailableRange returns the active media reference's bounds, falling back
// to a zero-duration interval if the reference has none.
func (c *Clip) AvailableRange() topology.ContinuousInterval {
	ref := c.MediaReference()
	if ref == nil || ref.AvailableRange() == nil {
		return topology.ContinuousInterval{}
	}
	return *ref.AvailableRange()
}

// TrimmedRange returns SourceRange if set, else the full AvailableRange.
func (c *Clip) TrimmedRange() topology.ContinuousInterval {
	if c.SourceRange() != nil {
		return *c.SourceRange()
	}
	return c.AvailableRange()
}

// Duration implements Item.
func (c *Clip) Duration() topology.Ordinate { return c.TrimmedRange().Duration() }

// InternalSpaces implements SpaceObject: a Clip exposes presentation, then
// media.
func (c *Clip) InternalSpaces() []SpaceLabel { return []SpaceLabel{SpacePresentation, SpaceMedia} }

func (c *Clip) NumChildren() int            { return 0 }
func (c *Clip) ChildEntity(i int) Composable { return nil }
func (c *Clip) ChildSpan(i int) (topology.ContinuousInterval, error) {
	return topology.ContinuousInterval{}, &IndexError{Index: i, Size: 0}
}

// BuildTransform implements SpaceObject. Only presentation->media (and its
// inverse, via Topology.Inverted) is defined for a Clip.
func (c *Clip) BuildTransform(from, to SpaceLabel, childIndex int) (topology.Topology, error) {
	trimmed := c.TrimmedRange()
	if from == SpacePresentation && to == SpaceMedia {
		m := topology.Affine{
			Bounds: topology.NewContinuousInterval(0, trimmed.Duration()),
			Scale:  topology.One,
			Offset: trimmed.Start,
		}
		return topology.FromSingleMapping(m), nil
	}
	if from == SpaceMedia && to == SpacePresentation {
		fwd, err := c.BuildTransform(SpacePresentation, SpaceMedia, childIndex)
		if err != nil {
			return topology.Topology{}, err
		}
		inv, err := fwd.Inverted()
		if err != nil {
			return topology.Topology{}, err
		}
		if len(inv) == 0 {
			return topology.Topology{}, ErrNotFound
		}
		return inv[0], nil
	}
	if from == to {
		return topology.InfiniteIdentity(), nil
	}
	return topology.Topology{}, &SchemaError{Schema: ClipSchema.String(), Message: "no transform from " + string(from) + " to " + string(to)}
}

// BoundsOf implements SpaceObject.
func (c *Clip) BoundsOf(label SpaceLabel, childIndex int) (topology.ContinuousInterval, error) {
	switch label {
	case SpacePresentation:
		trimmed := c.TrimmedRange()
		return topology.NewContinuousInterval(0, trimmed.Duration()), nil
	case SpaceMedia:
		return c.TrimmedRange(), nil
	default:
		return topology.ContinuousInterval{}, &SchemaError{Schema: ClipSchema.String(), Message: "no such space: " + string(label)}
	}
}

// DiscreteInfo implements SpaceObject: only the media space may carry a
// sample index generator, taken from the active media reference.
func (c *Clip) DiscreteInfo(label SpaceLabel, childIndex int) *topology.SampleIndexGenerator {
	if label != SpaceMedia {
		return nil
	}
	ref := c.MediaReference()
	if ref == nil {
		return nil
	}
	return ref.DiscreteInfo()
}

// SchemaName implements SerializableObject.
func (c *Clip) SchemaName() string { return ClipSchema.Name }

// SchemaVersion implements SerializableObject.
func (c *Clip) SchemaVersion() int { return ClipSchema.Version }

// Clone implements SerializableObject.
func (c *Clip) Clone() SerializableObject {
	refs := make(map[string]MediaReference, len(c.mediaReferences))
	for k, v := range c.mediaReferences {
		refs[k] = v.Clone().(MediaReference)
	}
	cp := &Clip{
		ItemBase:                NewItemBase(c.Name(), cloneSourceRange(c.SourceRange()), CloneAnyDictionary(c.Metadata()), cloneEffects(c.Effects()), cloneMarkers(c.Markers()), c.ItemColor()),
		mediaReferences:         refs,
		activeMediaReferenceKey: c.activeMediaReferenceKey,
	}
	cp.SetSelf(cp)
	return cp
}

type clipJSON struct {
	Schema          string                       `json:"OTIO_SCHEMA"`
	Name            string                       `json:"name"`
	Metadata        AnyDictionary                `json:"metadata"`
	SourceRange     *topology.ContinuousInterval `json:"source_range"`
	Effects         []RawMessage                 `json:"effects"`
	Markers         []*Marker                    `json:"markers"`
	Color           *Color                       `json:"color"`
	MediaReferences map[string]RawMessage        `json:"media_references"`
	ActiveMediaRef  string                       `json:"active_media_reference_key"`
}

// MarshalJSON implements json.Marshaler.
func (c *Clip) MarshalJSON() ([]byte, error) {
	effects, err := encodeEffects(c.Effects())
	if err != nil {
		return nil, err
	}
	refs := make(map[string]RawMessage, len(c.mediaReferences))
	for k, v := range c.mediaReferences {
		data, err := encodeRaw(v)
		if err != nil {
			return nil, err
		}
		refs[k] = data
	}
	return sonic.Marshal(&clipJSON{
		Schema:          ClipSchema.String(),
		Name:            c.Name(),
		Metadata:        c.Metadata(),
		SourceRange:     c.SourceRange(),
		Effects:         effects,
		Markers:         c.Markers(),
		Color:           c.ItemColor(),
		MediaReferences: refs,
		ActiveMediaRef:  c.activeMediaReferenceKey,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Clip) UnmarshalJSON(data []byte) error {
	var j clipJSON
	if err := sonic.Unmarshal(data, &j); err != nil {
		return err
	}
	effects, err := decodeEffects(j.Effects)
	if err != nil {
		return err
	}
	refs := make(map[string]MediaReference, len(j.MediaReferences))
	for k, raw := range j.MediaReferences {
		obj, err := decodeRaw(raw)
		if err != nil {
			return err
		}
		ref, ok := obj.(MediaReference)
		if !ok {
			return &SchemaError{Schema: obj.SchemaName(), Message: "expected a MediaReference"}
		}
		refs[k] = ref
	}
	*c = Clip{
		ItemBase:                NewItemBase(j.Name, j.SourceRange, j.Metadata, effects, j.Markers, j.Color),
		mediaReferences:         refs,
		activeMediaReferenceKey: j.ActiveMediaRef,
	}
	if c.mediaReferences == nil {
		c.mediaReferences = map[string]MediaReference{DefaultMediaKey: NewMissingReference("", nil, nil)}
		c.activeMediaReferenceKey = DefaultMediaKey
	}
	c.SetSelf(c)
	return nil
}

// migrateClipV1ToV2 upgrades a Clip.1 record's singular "media_reference"
// field into the Clip.2 "media_references" map keyed by DefaultMediaKey.
func migrateClipV1ToV2(raw map[string]any) error {
	if _, hasMap := raw["media_references"]; hasMap {
		return nil
	}
	ref, ok := raw["media_reference"]
	if !ok {
		return nil
	}
	delete(raw, "media_reference")
	raw["media_references"] = map[string]any{DefaultMediaKey: ref}
	raw["active_media_reference_key"] = DefaultMediaKey
	return nil
}

func init() {
	RegisterSchema(ClipSchema, func() SerializableObject { return NewClip("", nil, nil, nil, nil, nil, nil) })
	RegisterSchemaMigration("Clip", 1, migrateClipV1ToV2)
}
