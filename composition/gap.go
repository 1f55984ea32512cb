// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import (
	"github.com/bytedance/sonic"

	"github.com/brightlinemedia/spacegraph/topology"
)

// GapSchema is the schema for Gap.
var GapSchema = Schema{Name: "Gap", Version: 1}

// Gap represents an empty span in a Track or Stack. Unlike Clip, its
// SourceRange is mandatory — a Gap has no other source of duration.
type Gap struct {
	ItemBase
}

// NewGap builds a Gap. bounds is required (original spec §3: "Gap: bounds_s
// required"); a nil bounds produces a Gap whose Bounds method returns
// ErrGapRequiresBounds.
func NewGap(name string, bounds *topology.ContinuousInterval, metadata AnyDictionary, effects []Effect, markers []*Marker, color *Color) *Gap {
	g := &Gap{ItemBase: NewItemBase(name, bounds, metadata, effects, markers, color)}
	g.SetSelf(g)
	return g
}

// NewGapWithDuration builds an unnamed Gap of the given duration starting at
// zero.
func NewGapWithDuration(duration topology.Ordinate) *Gap {
	bounds := topology.NewContinuousInterval(0, duration)
	return NewGap("", &bounds, nil, nil, nil, nil)
}

// Bounds returns the Gap's mandatory bounds, or ErrGapRequiresBounds if none
// was set.
func (g *Gap) Bounds() (topology.ContinuousInterval, error) {
	if g.SourceRange() == nil {
		return topology.ContinuousInterval{}, ErrGapRequiresBounds
	}
	return *g.SourceRange(), nil
}

// Duration implements Item. A Gap missing its mandatory bounds reports zero
// duration rather than propagating ErrGapRequiresBounds, so that it still
// composes predictably inside a parent's offset walk.
func (g *Gap) Duration() topology.Ordinate {
	b, err := g.Bounds()
	if err != nil {
		return 0
	}
	return b.Duration()
}

// InternalSpaces implements SpaceObject: a Gap exposes presentation only.
func (g *Gap) InternalSpaces() []SpaceLabel { return []SpaceLabel{SpacePresentation} }

func (g *Gap) NumChildren() int            { return 0 }
func (g *Gap) ChildEntity(i int) Composable { return nil }
func (g *Gap) ChildSpan(i int) (topology.ContinuousInterval, error) {
	return topology.ContinuousInterval{}, &IndexError{Index: i, Size: 0}
}

// BuildTransform implements SpaceObject. A Gap is identity over its own
// duration; it has no children and no other internal space.
func (g *Gap) BuildTransform(from, to SpaceLabel, childIndex int) (topology.Topology, error) {
	if from == SpacePresentation && to == SpacePresentation {
		return topology.InfiniteIdentity(), nil
	}
	return topology.Topology{}, &SchemaError{Schema: GapSchema.String(), Message: "no transform from " + string(from) + " to " + string(to)}
}

// BoundsOf implements SpaceObject.
func (g *Gap) BoundsOf(label SpaceLabel, childIndex int) (topology.ContinuousInterval, error) {
	if label != SpacePresentation {
		return topology.ContinuousInterval{}, &SchemaError{Schema: GapSchema.String(), Message: "no such space: " + string(label)}
	}
	return g.Bounds()
}

// DiscreteInfo implements SpaceObject: a Gap has no discrete representation.
func (g *Gap) DiscreteInfo(label SpaceLabel, childIndex int) *topology.SampleIndexGenerator {
	return nil
}

// SchemaName implements SerializableObject.
func (g *Gap) SchemaName() string { return GapSchema.Name }

// SchemaVersion implements SerializableObject.
func (g *Gap) SchemaVersion() int { return GapSchema.Version }

// Clone implements SerializableObject.
func (g *Gap) Clone() SerializableObject {
	cp := &Gap{ItemBase: NewItemBase(g.Name(), cloneSourceRange(g.SourceRange()), CloneAnyDictionary(g.Metadata()), cloneEffects(g.Effects()), cloneMarkers(g.Markers()), g.ItemColor())}
	cp.SetSelf(cp)
	return cp
}

type gapJSON struct {
	Schema      string                       `json:"OTIO_SCHEMA"`
	Name        string                       `json:"name"`
	Metadata    AnyDictionary                `json:"metadata"`
	SourceRange *topology.ContinuousInterval `json:"source_range"`
	Effects     []RawMessage                 `json:"effects"`
	Markers     []*Marker                    `json:"markers"`
	Color       *Color                       `json:"color"`
}

// MarshalJSON implements json.Marshaler.
func (g *Gap) MarshalJSON() ([]byte, error) {
	effects, err := encodeEffects(g.Effects())
	if err != nil {
		return nil, err
	}
	return sonic.Marshal(&gapJSON{
		Schema:      GapSchema.String(),
		Name:        g.Name(),
		Metadata:    g.Metadata(),
		SourceRange: g.SourceRange(),
		Effects:     effects,
		Markers:     g.Markers(),
		Color:       g.ItemColor(),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Gap) UnmarshalJSON(data []byte) error {
	var j gapJSON
	if err := sonic.Unmarshal(data, &j); err != nil {
		return err
	}
	effects, err := decodeEffects(j.Effects)
	if err != nil {
		return err
	}
	*g = Gap{ItemBase: NewItemBase(j.Name, j.SourceRange, j.Metadata, effects, j.Markers, j.Color)}
	g.SetSelf(g)
	return nil
}

func init() {
	bounds := topology.NewContinuousInterval(0, 0)
	RegisterSchema(GapSchema, func() SerializableObject { return NewGap("", &bounds, nil, nil, nil, nil) })
}
