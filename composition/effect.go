// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import "github.com/bytedance/sonic"

// Effect is a named effect attached to an Item. It carries no topology of
// its own in this module (time-warping effects are promoted to first-class
// Warp entities, see warp.go); Effect remains purely descriptive metadata,
// matching the teacher's Effect/EffectImpl split.
type Effect interface {
	SerializableObjectWithMetadata
	EffectName() string
	SetEffectName(name string)
}

// EffectSchema is the schema for Effect.
var EffectSchema = Schema{Name: "Effect", Version: 1}

// EffectBase is the embeddable base implementation of Effect.
type EffectBase struct {
	SerializableObjectWithMetadataBase
	effectName string
}

// NewEffectBase builds an EffectBase.
func NewEffectBase(name, effectName string, metadata AnyDictionary) EffectBase {
	return EffectBase{
		SerializableObjectWithMetadataBase: NewSerializableObjectWithMetadataBase(name, metadata),
		effectName:                         effectName,
	}
}

// EffectName returns the effect name.
func (e *EffectBase) EffectName() string { return e.effectName }

// SetEffectName sets the effect name.
func (e *EffectBase) SetEffectName(name string) { e.effectName = name }

// EffectImpl is the standard concrete Effect.
type EffectImpl struct {
	EffectBase
}

// NewEffect builds a new EffectImpl.
func NewEffect(name, effectName string, metadata AnyDictionary) *EffectImpl {
	return &EffectImpl{EffectBase: NewEffectBase(name, effectName, metadata)}
}

// SchemaName implements SerializableObject.
func (e *EffectImpl) SchemaName() string { return EffectSchema.Name }

// SchemaVersion implements SerializableObject.
func (e *EffectImpl) SchemaVersion() int { return EffectSchema.Version }

// Clone implements SerializableObject.
func (e *EffectImpl) Clone() SerializableObject {
	return &EffectImpl{EffectBase: EffectBase{
		SerializableObjectWithMetadataBase: NewSerializableObjectWithMetadataBase(e.Name(), CloneAnyDictionary(e.Metadata())),
		effectName:                         e.effectName,
	}}
}

type effectJSON struct {
	Schema     string        `json:"OTIO_SCHEMA"`
	Name       string        `json:"name"`
	Metadata   AnyDictionary `json:"metadata"`
	EffectName string        `json:"effect_name"`
}

// MarshalJSON implements json.Marshaler.
func (e *EffectImpl) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(&effectJSON{
		Schema:     EffectSchema.String(),
		Name:       e.Name(),
		Metadata:   e.Metadata(),
		EffectName: e.effectName,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *EffectImpl) UnmarshalJSON(data []byte) error {
	var j effectJSON
	if err := sonic.Unmarshal(data, &j); err != nil {
		return err
	}
	*e = *NewEffect(j.Name, j.EffectName, j.Metadata)
	return nil
}

func init() {
	RegisterSchema(EffectSchema, func() SerializableObject { return NewEffect("", "", nil) })
}
