// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import (
	"github.com/bytedance/sonic"

	"github.com/brightlinemedia/spacegraph/topology"
)

// TransitionKind names a transition's editorial effect.
type TransitionKind string

// Standard transition kinds, grounded on the teacher's TransitionType.
const (
	TransitionSMPTEDissolve TransitionKind = "SMPTE_Dissolve"
	TransitionCustom        TransitionKind = "Custom_Transition"
)

// TransitionSchema is the schema for Transition.
var TransitionSchema = Schema{Name: "Transition", Version: 1}

// Transition sits between two adjacent items in a Stack's child list,
// marking an overlap rather than occupying independent space of its own. It
// is addressed (it has a presentation space inherited from its position in
// the Stack) but defines no build_transform edge of its own — per original
// spec §4.10 it is an identity pass-through, matching Stack's treatment.
type Transition struct {
	ItemBase
	container *Stack
	kind      TransitionKind
	inOffset  topology.Ordinate
	outOffset topology.Ordinate
}

// NewTransition builds a Transition.
func NewTransition(name string, kind TransitionKind, inOffset, outOffset topology.Ordinate, metadata AnyDictionary) *Transition {
	t := &Transition{
		ItemBase:  NewItemBase(name, nil, metadata, nil, nil, nil),
		kind:      kind,
		inOffset:  inOffset,
		outOffset: outOffset,
	}
	t.SetSelf(t)
	return t
}

// Kind returns the transition's editorial kind.
func (t *Transition) Kind() TransitionKind { return t.kind }

// SetKind sets the transition's editorial kind.
func (t *Transition) SetKind(kind TransitionKind) { t.kind = kind }

// InOffset returns the transition's pre-roll into the outgoing item.
func (t *Transition) InOffset() topology.Ordinate { return t.inOffset }

// SetInOffset sets the transition's pre-roll.
func (t *Transition) SetInOffset(o topology.Ordinate) { t.inOffset = o }

// OutOffset returns the transition's post-roll into the incoming item.
func (t *Transition) OutOffset() topology.Ordinate { return t.outOffset }

// SetOutOffset sets the transition's post-roll.
func (t *Transition) SetOutOffset(o topology.Ordinate) { t.outOffset = o }

// Container returns the Stack this transition's two neighbors overlap in,
// if set.
func (t *Transition) Container() *Stack { return t.container }

// SetContainer sets the transition's container Stack.
func (t *Transition) SetContainer(s *Stack) { t.container = s }

// Duration implements Item: the sum of the in and out offsets.
func (t *Transition) Duration() topology.Ordinate { return t.inOffset.Add(t.outOffset) }

// InternalSpaces implements SpaceObject: presentation only.
func (t *Transition) InternalSpaces() []SpaceLabel { return []SpaceLabel{SpacePresentation} }

func (t *Transition) NumChildren() int            { return 0 }
func (t *Transition) ChildEntity(i int) Composable { return nil }
func (t *Transition) ChildSpan(i int) (topology.ContinuousInterval, error) {
	return topology.ContinuousInterval{}, &IndexError{Index: i, Size: 0}
}

// BuildTransform implements SpaceObject: identity pass-through only.
func (t *Transition) BuildTransform(from, to SpaceLabel, childIndex int) (topology.Topology, error) {
	if from == SpacePresentation && to == SpacePresentation {
		return topology.InfiniteIdentity(), nil
	}
	return topology.Topology{}, &SchemaError{Schema: TransitionSchema.String(), Message: "no transform from " + string(from) + " to " + string(to)}
}

// BoundsOf implements SpaceObject.
func (t *Transition) BoundsOf(label SpaceLabel, childIndex int) (topology.ContinuousInterval, error) {
	if label != SpacePresentation {
		return topology.ContinuousInterval{}, &SchemaError{Schema: TransitionSchema.String(), Message: "no such space: " + string(label)}
	}
	return topology.NewContinuousInterval(0, t.Duration()), nil
}

// DiscreteInfo implements SpaceObject: a Transition has no discrete
// representation of its own.
func (t *Transition) DiscreteInfo(label SpaceLabel, childIndex int) *topology.SampleIndexGenerator {
	return nil
}

// SchemaName implements SerializableObject.
func (t *Transition) SchemaName() string { return TransitionSchema.Name }

// SchemaVersion implements SerializableObject.
func (t *Transition) SchemaVersion() int { return TransitionSchema.Version }

// Clone implements SerializableObject. Container is not deep-copied — it is
// re-attached by the containing Stack's own Clone.
func (t *Transition) Clone() SerializableObject {
	cp := NewTransition(t.Name(), t.kind, t.inOffset, t.outOffset, CloneAnyDictionary(t.Metadata()))
	return cp
}

type transitionJSON struct {
	Schema    string          `json:"OTIO_SCHEMA"`
	Name      string          `json:"name"`
	Metadata  AnyDictionary   `json:"metadata"`
	Kind      TransitionKind  `json:"transition_type"`
	InOffset  topology.Ordinate `json:"in_offset"`
	OutOffset topology.Ordinate `json:"out_offset"`
}

// MarshalJSON implements json.Marshaler. Container is deliberately omitted —
// it is re-attached by the containing Stack's own decode.
func (t *Transition) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(&transitionJSON{
		Schema:    TransitionSchema.String(),
		Name:      t.Name(),
		Metadata:  t.Metadata(),
		Kind:      t.kind,
		InOffset:  t.inOffset,
		OutOffset: t.outOffset,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Transition) UnmarshalJSON(data []byte) error {
	var j transitionJSON
	if err := sonic.Unmarshal(data, &j); err != nil {
		return err
	}
	*t = *NewTransition(j.Name, j.Kind, j.InOffset, j.OutOffset, j.Metadata)
	return nil
}

func init() {
	RegisterSchema(TransitionSchema, func() SerializableObject {
		return NewTransition("", TransitionSMPTEDissolve, 0, 0, nil)
	})
}
