// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// RawMessage is a raw encoded JSON value, used for polymorphic fields
// (children, effects, media references) whose concrete type is only known
// once OTIO_SCHEMA has been inspected.
type RawMessage = json.RawMessage

// sanitizeJSON replaces Python-style non-standard JSON literals (Inf, NaN,
// -Infinity) with null, so decoding a bundle authored by the Python
// reference implementation doesn't fail outright. Grounded on the teacher's
// decode_sonic.go SanitizeJSON, simplified to the byte-presence fast path.
func sanitizeJSON(data []byte) []byte {
	if !bytes.Contains(data, []byte("Inf")) && !bytes.Contains(data, []byte("NaN")) {
		return data
	}
	replacer := strings.NewReplacer(
		`: -Infinity`, `: null`,
		`:-Infinity`, `:null`,
		`: Infinity`, `: null`,
		`:Infinity`, `:null`,
		`: NaN`, `: null`,
		`:NaN`, `:null`,
	)
	return []byte(replacer.Replace(string(data)))
}

// FromJSONBytes decodes a single serialized object, resolving OTIO_SCHEMA
// (applying any registered alias and migrations) before unmarshaling into
// the concrete registered Go type.
func FromJSONBytes(data []byte) (SerializableObject, error) {
	data = sanitizeJSON(data)

	var raw map[string]any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("composition: decode schema envelope: %w", err)
	}
	schemaStr, _ := raw["OTIO_SCHEMA"].(string)
	name, version, err := ParseSchema(schemaStr)
	if err != nil {
		return nil, err
	}
	canonical := resolveSchemaName(name)
	applyMigrations(canonical, version, raw)

	obj, err := CreateSchema(canonical)
	if err != nil {
		return nil, &SchemaError{Schema: schemaStr, Message: "unknown schema: " + err.Error()}
	}
	migrated, err := sonic.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("composition: re-marshal migrated record: %w", err)
	}
	if err := sonic.Unmarshal(migrated, obj); err != nil {
		return nil, fmt.Errorf("composition: decode %s: %w", schemaStr, err)
	}
	return obj, nil
}

// ToJSONBytes encodes a single serializable object, dispatching to its own
// MarshalJSON.
func ToJSONBytes(obj SerializableObject) ([]byte, error) {
	return sonic.Marshal(obj)
}

// decodeRaw decodes a RawMessage into a SerializableObject via FromJSONBytes,
// or returns nil if r is empty.
func decodeRaw(r RawMessage) (SerializableObject, error) {
	if len(r) == 0 {
		return nil, nil
	}
	return FromJSONBytes(r)
}

func encodeRaw(obj SerializableObject) (RawMessage, error) {
	if obj == nil {
		return nil, nil
	}
	return ToJSONBytes(obj)
}

// encodeEffects encodes a heterogeneous Effect slice as raw JSON messages.
func encodeEffects(effects []Effect) ([]RawMessage, error) {
	out := make([]RawMessage, len(effects))
	for i, e := range effects {
		data, err := encodeRaw(e)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

// decodeEffects decodes a raw-message slice back into Effect values,
// rejecting any record whose schema does not itself implement Effect.
func decodeEffects(raw []RawMessage) ([]Effect, error) {
	out := make([]Effect, 0, len(raw))
	for _, r := range raw {
		obj, err := decodeRaw(r)
		if err != nil {
			return nil, err
		}
		eff, ok := obj.(Effect)
		if !ok {
			return nil, &SchemaError{Schema: obj.SchemaName(), Message: "expected an Effect"}
		}
		out = append(out, eff)
	}
	return out, nil
}

// encodeChildren encodes a heterogeneous Composable slice as raw JSON
// messages.
func encodeChildren(children []Composable) ([]RawMessage, error) {
	out := make([]RawMessage, len(children))
	for i, c := range children {
		data, err := encodeRaw(c)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

// decodeChildren decodes a raw-message slice back into Composable values.
func decodeChildren(raw []RawMessage) ([]Composable, error) {
	out := make([]Composable, 0, len(raw))
	for _, r := range raw {
		obj, err := decodeRaw(r)
		if err != nil {
			return nil, err
		}
		child, ok := obj.(Composable)
		if !ok {
			return nil, &SchemaError{Schema: obj.SchemaName(), Message: "expected a Composable"}
		}
		out = append(out, child)
	}
	return out, nil
}
