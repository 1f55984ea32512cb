// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import (
	"github.com/bytedance/sonic"

	"github.com/brightlinemedia/spacegraph/topology"
)

// MarkerColor names a standard marker color (matching the teacher's
// OpenTimelineIO-derived palette).
type MarkerColor string

// Standard marker colors.
const (
	MarkerColorPink    MarkerColor = "PINK"
	MarkerColorRed     MarkerColor = "RED"
	MarkerColorOrange  MarkerColor = "ORANGE"
	MarkerColorYellow  MarkerColor = "YELLOW"
	MarkerColorGreen   MarkerColor = "GREEN"
	MarkerColorCyan    MarkerColor = "CYAN"
	MarkerColorBlue    MarkerColor = "BLUE"
	MarkerColorPurple  MarkerColor = "PURPLE"
	MarkerColorMagenta MarkerColor = "MAGENTA"
	MarkerColorBlack   MarkerColor = "BLACK"
	MarkerColorWhite   MarkerColor = "WHITE"
)

// MarkerSchema is the schema for Marker.
var MarkerSchema = Schema{Name: "Marker", Version: 1}

// Marker annotates a range on an Item with a color and comment. It is
// descriptive only and does not participate in the space graph.
type Marker struct {
	SerializableObjectWithMetadataBase
	markedRange topology.ContinuousInterval
	color       MarkerColor
	comment     string
}

// NewMarker builds a Marker.
func NewMarker(name string, markedRange topology.ContinuousInterval, color MarkerColor, comment string, metadata AnyDictionary) *Marker {
	if color == "" {
		color = MarkerColorGreen
	}
	return &Marker{
		SerializableObjectWithMetadataBase: NewSerializableObjectWithMetadataBase(name, metadata),
		markedRange:                        markedRange,
		color:                              color,
		comment:                            comment,
	}
}

// MarkedRange returns the marked interval.
func (m *Marker) MarkedRange() topology.ContinuousInterval { return m.markedRange }

// Color returns the marker's color.
func (m *Marker) Color() MarkerColor { return m.color }

// Comment returns the marker's comment.
func (m *Marker) Comment() string { return m.comment }

// SchemaName implements SerializableObject.
func (m *Marker) SchemaName() string { return MarkerSchema.Name }

// SchemaVersion implements SerializableObject.
func (m *Marker) SchemaVersion() int { return MarkerSchema.Version }

// Clone implements SerializableObject.
func (m *Marker) Clone() SerializableObject {
	return &Marker{
		SerializableObjectWithMetadataBase: NewSerializableObjectWithMetadataBase(m.Name(), CloneAnyDictionary(m.Metadata())),
		markedRange:                        m.markedRange,
		color:                              m.color,
		comment:                            m.comment,
	}
}

type markerJSON struct {
	Schema      string                     `json:"OTIO_SCHEMA"`
	Name        string                     `json:"name"`
	Metadata    AnyDictionary              `json:"metadata"`
	MarkedRange topology.ContinuousInterval `json:"marked_range"`
	Color       MarkerColor                `json:"color"`
	Comment     string                     `json:"comment"`
}

// MarshalJSON implements json.Marshaler.
func (m *Marker) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(&markerJSON{
		Schema:      MarkerSchema.String(),
		Name:        m.Name(),
		Metadata:    m.Metadata(),
		MarkedRange: m.markedRange,
		Color:       m.color,
		Comment:     m.comment,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Marker) UnmarshalJSON(data []byte) error {
	var j markerJSON
	if err := sonic.Unmarshal(data, &j); err != nil {
		return err
	}
	*m = *NewMarker(j.Name, j.MarkedRange, j.Color, j.Comment, j.Metadata)
	return nil
}

func init() {
	RegisterSchema(MarkerSchema, func() SerializableObject {
		return NewMarker("", topology.ContinuousInterval{}, "", "", nil)
	})
}
