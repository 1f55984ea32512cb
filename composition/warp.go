// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import (
	"github.com/bytedance/sonic"

	"github.com/brightlinemedia/spacegraph/topology"
)

// WarpSchema is the schema for Warp.
var WarpSchema = Schema{Name: "Warp", Version: 1}

// Warp retimes a single child through an arbitrary Topology. It generalizes
// the teacher's LinearTimeWarp/FreezeFrame/TimeEffect family, which each
// hard-coded one kind of retime, into a single entity carrying any Mapping
// variant — including a held (degenerate Affine) mapping for freeze frames.
type Warp struct {
	ItemBase
	child     Composable
	transform topology.Topology
}

// NewWarp builds a Warp wrapping child through transform.
func NewWarp(name string, child Composable, transform topology.Topology, metadata AnyDictionary, effects []Effect, markers []*Marker, color *Color) *Warp {
	w := &Warp{
		ItemBase:  NewItemBase(name, nil, metadata, effects, markers, color),
		child:     child,
		transform: transform,
	}
	if child != nil {
		child.SetParent(w)
	}
	w.SetSelf(w)
	return w
}

// Child returns the wrapped child.
func (w *Warp) Child() Composable { return w.child }

// SetChild replaces the wrapped child, reparenting it to w.
func (w *Warp) SetChild(child Composable) {
	if w.child != nil {
		w.child.SetParent(nil)
	}
	w.child = child
	if child != nil {
		child.SetParent(w)
	}
}

// Transform returns the warp's transform topology.
func (w *Warp) Transform() topology.Topology { return w.transform }

// SetTransform replaces the warp's transform topology.
func (w *Warp) SetTransform(t topology.Topology) { w.transform = t }

// Duration implements Item: the transform's own input span, or SourceRange's
// duration if the warp is itself trimmed.
func (w *Warp) Duration() topology.Ordinate {
	if w.SourceRange() != nil {
		return w.SourceRange().Duration()
	}
	return w.transform.InputBounds().Duration()
}

// InternalSpaces implements SpaceObject: a Warp exposes presentation only;
// its child's presentation space is reached through the child slot, per
// original spec §3 ("Gap/Warp: presentation only").
func (w *Warp) InternalSpaces() []SpaceLabel { return []SpaceLabel{SpacePresentation} }

// NumChildren implements SpaceObject: a Warp owns exactly one child.
func (w *Warp) NumChildren() int { return 1 }

// ChildEntity implements SpaceObject.
func (w *Warp) ChildEntity(i int) Composable {
	if i != 0 {
		return nil
	}
	return w.child
}

// ChildSpan implements SpaceObject: the transform's own output bounds, per
// SPEC_FULL.md §4.10.
func (w *Warp) ChildSpan(i int) (topology.ContinuousInterval, error) {
	if i != 0 {
		return topology.ContinuousInterval{}, &IndexError{Index: i, Size: 1}
	}
	return w.transform.OutputBounds(), nil
}

// BuildTransform implements SpaceObject: presentation -> child is the
// warp's own transform, unmodified, per original spec §3 ("Warp.presentation
// -> Warp.child.presentation: the Warp's own transform topology").
func (w *Warp) BuildTransform(from, to SpaceLabel, childIndex int) (topology.Topology, error) {
	if from == SpacePresentation && to == SpaceChild && childIndex == 0 {
		return w.transform, nil
	}
	if from == to {
		return topology.InfiniteIdentity(), nil
	}
	return topology.Topology{}, &SchemaError{Schema: WarpSchema.String(), Message: "no transform from " + string(from) + " to " + string(to)}
}

// BoundsOf implements SpaceObject.
func (w *Warp) BoundsOf(label SpaceLabel, childIndex int) (topology.ContinuousInterval, error) {
	switch label {
	case SpacePresentation:
		if w.SourceRange() != nil {
			return *w.SourceRange(), nil
		}
		return w.transform.InputBounds(), nil
	case SpaceChild:
		return w.ChildSpan(childIndex)
	default:
		return topology.ContinuousInterval{}, &SchemaError{Schema: WarpSchema.String(), Message: "no such space: " + string(label)}
	}
}

// DiscreteInfo implements SpaceObject: a Warp has no discrete representation
// of its own; its child's spaces carry whatever discrete info they have.
func (w *Warp) DiscreteInfo(label SpaceLabel, childIndex int) *topology.SampleIndexGenerator {
	return nil
}

// SchemaName implements SerializableObject.
func (w *Warp) SchemaName() string { return WarpSchema.Name }

// SchemaVersion implements SerializableObject.
func (w *Warp) SchemaVersion() int { return WarpSchema.Version }

// Clone implements SerializableObject.
func (w *Warp) Clone() SerializableObject {
	var childClone Composable
	if w.child != nil {
		childClone = w.child.Clone().(Composable)
	}
	cp := NewWarp(w.Name(), childClone, w.transform.Clone(), CloneAnyDictionary(w.Metadata()), cloneEffects(w.Effects()), cloneMarkers(w.Markers()), w.ItemColor())
	cp.SetSourceRange(cloneSourceRange(w.SourceRange()))
	return cp
}

type warpJSON struct {
	Schema      string                       `json:"OTIO_SCHEMA"`
	Name        string                       `json:"name"`
	Metadata    AnyDictionary                `json:"metadata"`
	SourceRange *topology.ContinuousInterval `json:"source_range"`
	Effects     []RawMessage                 `json:"effects"`
	Markers     []*Marker                    `json:"markers"`
	Color       *Color                       `json:"color"`
	Child       RawMessage                   `json:"child"`
	Transform   topology.Topology            `json:"transform"`
}

// MarshalJSON implements json.Marshaler.
func (w *Warp) MarshalJSON() ([]byte, error) {
	effects, err := encodeEffects(w.Effects())
	if err != nil {
		return nil, err
	}
	child, err := encodeRaw(w.child)
	if err != nil {
		return nil, err
	}
	return sonic.Marshal(&warpJSON{
		Schema:      WarpSchema.String(),
		Name:        w.Name(),
		Metadata:    w.Metadata(),
		SourceRange: w.SourceRange(),
		Effects:     effects,
		Markers:     w.Markers(),
		Color:       w.ItemColor(),
		Child:       child,
		Transform:   w.transform,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (w *Warp) UnmarshalJSON(data []byte) error {
	var j warpJSON
	if err := sonic.Unmarshal(data, &j); err != nil {
		return err
	}
	effects, err := decodeEffects(j.Effects)
	if err != nil {
		return err
	}
	var child Composable
	if obj, err := decodeRaw(j.Child); err != nil {
		return err
	} else if obj != nil {
		c, ok := obj.(Composable)
		if !ok {
			return &SchemaError{Schema: obj.SchemaName(), Message: "expected a Composable"}
		}
		child = c
	}
	*w = *NewWarp(j.Name, child, j.Transform, j.Metadata, effects, j.Markers, j.Color)
	w.SetSourceRange(j.SourceRange)
	return nil
}

func init() {
	RegisterSchema(WarpSchema, func() SerializableObject { return NewWarp("", nil, topology.InfiniteIdentity(), nil, nil, nil, nil) })
}
