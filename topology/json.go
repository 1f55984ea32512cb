// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

import (
	"encoding/json"
	"fmt"
)

// mappingJSON is the tagged-union wire representation of a single Mapping
// variant. Exactly one of the variant-specific fields is populated,
// selected by Kind.
type mappingJSON struct {
	Kind            string           `json:"kind"`
	Affine          *Affine          `json:"affine,omitempty"`
	LinearMonotonic *LinearMonotonic `json:"linear_monotonic,omitempty"`
	Bezier          *Bezier          `json:"bezier,omitempty"`
	Empty           *Empty           `json:"empty,omitempty"`
}

func encodeMapping(m Mapping) (mappingJSON, error) {
	switch v := m.(type) {
	case Affine:
		return mappingJSON{Kind: "affine", Affine: &v}, nil
	case LinearMonotonic:
		return mappingJSON{Kind: "linear_monotonic", LinearMonotonic: &v}, nil
	case Bezier:
		return mappingJSON{Kind: "bezier", Bezier: &v}, nil
	case Empty:
		return mappingJSON{Kind: "empty", Empty: &v}, nil
	default:
		return mappingJSON{}, fmt.Errorf("topology: unknown Mapping variant %T", m)
	}
}

func decodeMapping(j mappingJSON) (Mapping, error) {
	switch j.Kind {
	case "affine":
		if j.Affine == nil {
			return nil, fmt.Errorf("topology: affine mapping missing its payload")
		}
		return *j.Affine, nil
	case "linear_monotonic":
		if j.LinearMonotonic == nil {
			return nil, fmt.Errorf("topology: linear_monotonic mapping missing its payload")
		}
		return *j.LinearMonotonic, nil
	case "bezier":
		if j.Bezier == nil {
			return nil, fmt.Errorf("topology: bezier mapping missing its payload")
		}
		return *j.Bezier, nil
	case "empty":
		if j.Empty == nil {
			return nil, fmt.Errorf("topology: empty mapping missing its payload")
		}
		return *j.Empty, nil
	default:
		return nil, fmt.Errorf("topology: unknown mapping kind %q", j.Kind)
	}
}

// MarshalJSON implements json.Marshaler.
func (t Topology) MarshalJSON() ([]byte, error) {
	out := make([]mappingJSON, len(t.mappings))
	for i, m := range t.mappings {
		enc, err := encodeMapping(m)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Topology) UnmarshalJSON(data []byte) error {
	var raw []mappingJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	mappings := make([]Mapping, len(raw))
	for i, j := range raw {
		m, err := decodeMapping(j)
		if err != nil {
			return err
		}
		mappings[i] = m
	}
	t.mappings = mappings
	return nil
}
