// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

// SerializableObject is implemented by every type that can round-trip
// through the versioned JSON codec.
type SerializableObject interface {
	SchemaName() string
	SchemaVersion() int
	Clone() SerializableObject
}

// SerializableObjectWithMetadata adds a name and a free-form metadata
// dictionary, the shape shared by every composition entity and media
// reference.
type SerializableObjectWithMetadata interface {
	SerializableObject
	Name() string
	SetName(name string)
	Metadata() AnyDictionary
	SetMetadata(metadata AnyDictionary)
}

// SerializableObjectWithMetadataBase is the embeddable base implementation of
// SerializableObjectWithMetadata.
type SerializableObjectWithMetadataBase struct {
	name     string
	metadata AnyDictionary
}

// NewSerializableObjectWithMetadataBase builds a base with the given name and
// metadata (a fresh empty dictionary is allocated if metadata is nil).
func NewSerializableObjectWithMetadataBase(name string, metadata AnyDictionary) SerializableObjectWithMetadataBase {
	if metadata == nil {
		metadata = make(AnyDictionary)
	}
	return SerializableObjectWithMetadataBase{name: name, metadata: metadata}
}

// Name returns the object's name.
func (s *SerializableObjectWithMetadataBase) Name() string { return s.name }

// SetName sets the object's name.
func (s *SerializableObjectWithMetadataBase) SetName(name string) { s.name = name }

// Metadata returns the metadata dictionary.
func (s *SerializableObjectWithMetadataBase) Metadata() AnyDictionary { return s.metadata }

// SetMetadata replaces the metadata dictionary.
func (s *SerializableObjectWithMetadataBase) SetMetadata(metadata AnyDictionary) {
	if metadata == nil {
		metadata = make(AnyDictionary)
	}
	s.metadata = metadata
}
