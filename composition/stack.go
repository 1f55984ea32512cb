// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import (
	"github.com/bytedance/sonic"

	"github.com/brightlinemedia/spacegraph/topology"
)

// StackSchema is the schema for Stack.
var StackSchema = Schema{Name: "Stack", Version: 1}

// Stack is a Composition whose children overlay one another — each child
// occupies the same span starting at zero, rather than being concatenated
// like Track.
type Stack struct {
	CompositionBase
}

// NewStack builds a Stack.
func NewStack(name string, metadata AnyDictionary, effects []Effect, markers []*Marker, color *Color) *Stack {
	s := &Stack{CompositionBase: NewCompositionBase(name, metadata, effects, markers, color)}
	s.SetSelf(s)
	return s
}

// CompositionKind implements Composition.
func (s *Stack) CompositionKind() string { return "Stack" }

// Duration implements Item: the longest of all children's durations, or
// SourceRange's duration if the stack is itself trimmed.
func (s *Stack) Duration() topology.Ordinate {
	if s.SourceRange() != nil {
		return s.SourceRange().Duration()
	}
	var longest topology.Ordinate
	for _, c := range s.Children() {
		if item, ok := c.(Item); ok {
			longest = longest.Max(item.Duration())
		}
	}
	return longest
}

// ChildSpan implements SpaceObject: every child occupies [0, duration) — an
// overlay, not a concatenation.
func (s *Stack) ChildSpan(i int) (topology.ContinuousInterval, error) {
	children := s.Children()
	if i < 0 || i >= len(children) {
		return topology.ContinuousInterval{}, &IndexError{Index: i, Size: len(children)}
	}
	return topology.NewContinuousInterval(0, s.Duration()), nil
}

// InternalSpaces implements SpaceObject: presentation, then intrinsic.
func (s *Stack) InternalSpaces() []SpaceLabel { return []SpaceLabel{SpacePresentation, SpaceIntrinsic} }

// NumChildren implements SpaceObject.
func (s *Stack) NumChildren() int { return len(s.Children()) }

// ChildEntity implements SpaceObject.
func (s *Stack) ChildEntity(i int) Composable {
	children := s.Children()
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}

// BuildTransform implements SpaceObject. Stack behaves as identity on every
// edge — children are overlaid at the stack's own origin, per original spec
// §4.6: "Stack, Timeline: behave as identity on their presentation/
// intrinsic/child edges".
func (s *Stack) BuildTransform(from, to SpaceLabel, childIndex int) (topology.Topology, error) {
	switch {
	case from == SpacePresentation && to == SpaceIntrinsic:
		return topology.InfiniteIdentity(), nil
	case from == SpaceIntrinsic && to == SpaceChild:
		return topology.InfiniteIdentity(), nil
	case from == to:
		return topology.InfiniteIdentity(), nil
	default:
		return topology.Topology{}, &SchemaError{Schema: StackSchema.String(), Message: "no transform from " + string(from) + " to " + string(to)}
	}
}

// BoundsOf implements SpaceObject.
func (s *Stack) BoundsOf(label SpaceLabel, childIndex int) (topology.ContinuousInterval, error) {
	switch label {
	case SpacePresentation:
		if s.SourceRange() != nil {
			return *s.SourceRange(), nil
		}
		return topology.NewContinuousInterval(0, s.Duration()), nil
	case SpaceIntrinsic:
		return topology.NewContinuousInterval(0, s.Duration()), nil
	case SpaceChild:
		return s.ChildSpan(childIndex)
	default:
		return topology.ContinuousInterval{}, &SchemaError{Schema: StackSchema.String(), Message: "no such space: " + string(label)}
	}
}

// DiscreteInfo implements SpaceObject: a Stack has no discrete
// representation of its own.
func (s *Stack) DiscreteInfo(label SpaceLabel, childIndex int) *topology.SampleIndexGenerator {
	return nil
}

// SchemaName implements SerializableObject.
func (s *Stack) SchemaName() string { return StackSchema.Name }

// SchemaVersion implements SerializableObject.
func (s *Stack) SchemaVersion() int { return StackSchema.Version }

// Clone implements SerializableObject.
func (s *Stack) Clone() SerializableObject {
	cp := &Stack{CompositionBase: NewCompositionBase(s.Name(), CloneAnyDictionary(s.Metadata()), cloneEffects(s.Effects()), cloneMarkers(s.Markers()), s.ItemColor())}
	cp.SetSelf(cp)
	for _, c := range s.Children() {
		child := c.Clone().(Composable)
		child.SetParent(cp)
		if tr, ok := child.(*Transition); ok {
			tr.SetContainer(cp)
		}
		cp.children = append(cp.children, child)
	}
	return cp
}

type stackJSON struct {
	Schema      string                       `json:"OTIO_SCHEMA"`
	Name        string                       `json:"name"`
	Metadata    AnyDictionary                `json:"metadata"`
	SourceRange *topology.ContinuousInterval `json:"source_range"`
	Effects     []RawMessage                 `json:"effects"`
	Markers     []*Marker                    `json:"markers"`
	Color       *Color                       `json:"color"`
	Children    []RawMessage                 `json:"children"`
}

// MarshalJSON implements json.Marshaler.
func (s *Stack) MarshalJSON() ([]byte, error) {
	effects, err := encodeEffects(s.Effects())
	if err != nil {
		return nil, err
	}
	children, err := encodeChildren(s.Children())
	if err != nil {
		return nil, err
	}
	return sonic.Marshal(&stackJSON{
		Schema:      StackSchema.String(),
		Name:        s.Name(),
		Metadata:    s.Metadata(),
		SourceRange: s.SourceRange(),
		Effects:     effects,
		Markers:     s.Markers(),
		Color:       s.ItemColor(),
		Children:    children,
	})
}

// UnmarshalJSON implements json.Unmarshaler. A decoded Transition child has
// its Container re-attached to this Stack, mirroring Clone's treatment.
func (s *Stack) UnmarshalJSON(data []byte) error {
	var j stackJSON
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
	*s = *NewStack(j.Name, j.Metadata, effects, j.Markers, j.Color)
	s.SetSourceRange(j.SourceRange)
	for _, child := range children {
		if err := s.AppendChild(child); err != nil {
			return err
		}
		if tr, ok := child.(*Transition); ok {
			tr.SetContainer(s)
		}
	}
	return nil
}

func init() {
	RegisterSchema(StackSchema, func() SerializableObject { return NewStack("", nil, nil, nil, nil) })
}
