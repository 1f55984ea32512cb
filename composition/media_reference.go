// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import (
	"github.com/bytedance/sonic"

	"github.com/brightlinemedia/spacegraph/topology"
)

// Domain names the kind of time axis a MediaReference's bounds describe.
type Domain string

// Standard domains, per SPEC_FULL.md §4.11.
const (
	DomainTime     Domain = "time"
	DomainPicture  Domain = "picture"
	DomainAudio    Domain = "audio"
	DomainMetadata Domain = "metadata"
)

// OtherDomain builds a Domain tag for a domain name not in the standard set.
func OtherDomain(name string) Domain { return Domain("other:" + name) }

// MediaReference is the referenced source material's time axis, owned by a
// Clip.
type MediaReference interface {
	SerializableObjectWithMetadata

	// AvailableRange is the reference's own bounds in its media space, if
	// known.
	AvailableRange() *topology.ContinuousInterval
	SetAvailableRange(r *topology.ContinuousInterval)

	// DiscreteInfo is the reference's SampleIndexGenerator, if it has a
	// discrete representation.
	DiscreteInfo() *topology.SampleIndexGenerator

	// Domain reports what kind of axis this reference's bounds are in.
	Domain() Domain
}

// MediaReferenceBase is the embeddable base implementation of MediaReference.
type MediaReferenceBase struct {
	SerializableObjectWithMetadataBase
	availableRange *topology.ContinuousInterval
	discreteInfo   *topology.SampleIndexGenerator
	domain         Domain
}

// NewMediaReferenceBase builds a MediaReferenceBase.
func NewMediaReferenceBase(name string, availableRange *topology.ContinuousInterval, metadata AnyDictionary, discreteInfo *topology.SampleIndexGenerator, domain Domain) MediaReferenceBase {
	if domain == "" {
		domain = DomainTime
	}
	return MediaReferenceBase{
		SerializableObjectWithMetadataBase: NewSerializableObjectWithMetadataBase(name, metadata),
		availableRange:                     availableRange,
		discreteInfo:                       discreteInfo,
		domain:                             domain,
	}
}

// AvailableRange returns the reference's own bounds, or nil.
func (m *MediaReferenceBase) AvailableRange() *topology.ContinuousInterval { return m.availableRange }

// SetAvailableRange sets the reference's own bounds.
func (m *MediaReferenceBase) SetAvailableRange(r *topology.ContinuousInterval) { m.availableRange = r }

// DiscreteInfo returns the reference's sample index generator, or nil.
func (m *MediaReferenceBase) DiscreteInfo() *topology.SampleIndexGenerator { return m.discreteInfo }

// SetDiscreteInfo sets the reference's sample index generator, bridging its
// media space to discrete sample indices.
func (m *MediaReferenceBase) SetDiscreteInfo(g *topology.SampleIndexGenerator) { m.discreteInfo = g }

// Domain returns the reference's domain tag.
func (m *MediaReferenceBase) Domain() Domain { return m.domain }

// ExternalReferenceSchema is the schema for ExternalReference.
var ExternalReferenceSchema = Schema{Name: "ExternalReference", Version: 1}

// ExternalReference points at media by URI.
type ExternalReference struct {
	MediaReferenceBase
	TargetURL string
}

// NewExternalReference builds an ExternalReference.
func NewExternalReference(name, targetURL string, availableRange *topology.ContinuousInterval, metadata AnyDictionary) *ExternalReference {
	return &ExternalReference{
		MediaReferenceBase: NewMediaReferenceBase(name, availableRange, metadata, nil, DomainTime),
		TargetURL:          targetURL,
	}
}

// SchemaName implements SerializableObject.
func (e *ExternalReference) SchemaName() string { return ExternalReferenceSchema.Name }

// SchemaVersion implements SerializableObject.
func (e *ExternalReference) SchemaVersion() int { return ExternalReferenceSchema.Version }

// Clone implements SerializableObject.
func (e *ExternalReference) Clone() SerializableObject {
	return &ExternalReference{
		MediaReferenceBase: NewMediaReferenceBase(e.Name(), cloneInterval(e.availableRange), CloneAnyDictionary(e.Metadata()), e.discreteInfo, e.Domain()),
		TargetURL:          e.TargetURL,
	}
}

// GeneratorReferenceSchema is the schema for GeneratorReference.
var GeneratorReferenceSchema = Schema{Name: "GeneratorReference", Version: 1}

// GeneratorReference describes procedurally-generated media (e.g. color
// bars, test signals) rather than a file on disk.
type GeneratorReference struct {
	MediaReferenceBase
	GeneratorKind string
	Parameters    AnyDictionary
}

// NewGeneratorReference builds a GeneratorReference.
func NewGeneratorReference(name, generatorKind string, availableRange *topology.ContinuousInterval, parameters, metadata AnyDictionary) *GeneratorReference {
	return &GeneratorReference{
		MediaReferenceBase: NewMediaReferenceBase(name, availableRange, metadata, nil, DomainTime),
		GeneratorKind:       generatorKind,
		Parameters:          parameters,
	}
}

// SchemaName implements SerializableObject.
func (g *GeneratorReference) SchemaName() string { return GeneratorReferenceSchema.Name }

// SchemaVersion implements SerializableObject.
func (g *GeneratorReference) SchemaVersion() int { return GeneratorReferenceSchema.Version }

// Clone implements SerializableObject.
func (g *GeneratorReference) Clone() SerializableObject {
	return &GeneratorReference{
		MediaReferenceBase: NewMediaReferenceBase(g.Name(), cloneInterval(g.availableRange), CloneAnyDictionary(g.Metadata()), g.discreteInfo, g.Domain()),
		GeneratorKind:       g.GeneratorKind,
		Parameters:          CloneAnyDictionary(g.Parameters),
	}
}

// MissingReferenceSchema is the schema for MissingReference.
var MissingReferenceSchema = Schema{Name: "MissingReference", Version: 1}

// MissingReference is a media reference carrying no data_reference at all —
// a Clip whose media was never linked.
type MissingReference struct {
	MediaReferenceBase
}

// NewMissingReference builds a MissingReference.
func NewMissingReference(name string, availableRange *topology.ContinuousInterval, metadata AnyDictionary) *MissingReference {
	return &MissingReference{MediaReferenceBase: NewMediaReferenceBase(name, availableRange, metadata, nil, DomainTime)}
}

// SchemaName implements SerializableObject.
func (m *MissingReference) SchemaName() string { return MissingReferenceSchema.Name }

// SchemaVersion implements SerializableObject.
func (m *MissingReference) SchemaVersion() int { return MissingReferenceSchema.Version }

// Clone implements SerializableObject.
func (m *MissingReference) Clone() SerializableObject {
	return &MissingReference{MediaReferenceBase: NewMediaReferenceBase(m.Name(), cloneInterval(m.availableRange), CloneAnyDictionary(m.Metadata()), nil, m.Domain())}
}

func cloneInterval(r *topology.ContinuousInterval) *topology.ContinuousInterval {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}

type externalReferenceJSON struct {
	Schema         string                       `json:"OTIO_SCHEMA"`
	Name           string                       `json:"name"`
	Metadata       AnyDictionary                `json:"metadata"`
	AvailableRange *topology.ContinuousInterval `json:"available_range"`
	TargetURL      string                       `json:"target_url"`
}

// MarshalJSON implements json.Marshaler.
func (e *ExternalReference) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(&externalReferenceJSON{
		Schema:         ExternalReferenceSchema.String(),
		Name:           e.Name(),
		Metadata:       e.Metadata(),
		AvailableRange: e.AvailableRange(),
		TargetURL:      e.TargetURL,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *ExternalReference) UnmarshalJSON(data []byte) error {
	var j externalReferenceJSON
	if err := sonic.Unmarshal(data, &j); err != nil {
		return err
	}
	*e = *NewExternalReference(j.Name, j.TargetURL, j.AvailableRange, j.Metadata)
	return nil
}

type generatorReferenceJSON struct {
	Schema         string                       `json:"OTIO_SCHEMA"`
	Name           string                       `json:"name"`
	Metadata       AnyDictionary                `json:"metadata"`
	AvailableRange *topology.ContinuousInterval `json:"available_range"`
	GeneratorKind  string                       `json:"generator_kind"`
	Parameters     AnyDictionary                `json:"parameters"`
}

// MarshalJSON implements json.Marshaler.
func (g *GeneratorReference) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(&generatorReferenceJSON{
		Schema:         GeneratorReferenceSchema.String(),
		Name:           g.Name(),
		Metadata:       g.Metadata(),
		AvailableRange: g.AvailableRange(),
		GeneratorKind:  g.GeneratorKind,
		Parameters:     g.Parameters,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *GeneratorReference) UnmarshalJSON(data []byte) error {
	var j generatorReferenceJSON
	if err := sonic.Unmarshal(data, &j); err != nil {
		return err
	}
	*g = *NewGeneratorReference(j.Name, j.GeneratorKind, j.AvailableRange, j.Parameters, j.Metadata)
	return nil
}

type missingReferenceJSON struct {
	Schema         string                       `json:"OTIO_SCHEMA"`
	Name           string                       `json:"name"`
	Metadata       AnyDictionary                `json:"metadata"`
	AvailableRange *topology.ContinuousInterval `json:"available_range"`
}

// MarshalJSON implements json.Marshaler.
func (m *MissingReference) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(&missingReferenceJSON{
		Schema:         MissingReferenceSchema.String(),
		Name:           m.Name(),
		Metadata:       m.Metadata(),
		AvailableRange: m.AvailableRange(),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *MissingReference) UnmarshalJSON(data []byte) error {
	var j missingReferenceJSON
	if err := sonic.Unmarshal(data, &j); err != nil {
		return err
	}
	*m = *NewMissingReference(j.Name, j.AvailableRange, j.Metadata)
	return nil
}

func init() {
	RegisterSchema(ExternalReferenceSchema, func() SerializableObject { return NewExternalReference("", "", nil, nil) })
	RegisterSchema(GeneratorReferenceSchema, func() SerializableObject { return NewGeneratorReference("", "", nil, nil, nil) })
	RegisterSchema(MissingReferenceSchema, func() SerializableObject { return NewMissingReference("", nil, nil) })
}
