// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition_test

import (
	"testing"

	"github.com/brightlinemedia/spacegraph/composition"
)

func TestSchema_String(t *testing.T) {
	s := composition.Schema{Name: "Clip", Version: 2}
	if got := s.String(); got != "Clip.2" {
		t.Errorf("String() = %q, want Clip.2", got)
	}
}

func TestParseSchema(t *testing.T) {
	cases := []struct {
		in          string
		name        string
		version     int
		expectError bool
	}{
		{"Clip.2", "Clip", 2, false},
		{"Gap", "Gap", 1, false},
		{"", "", 0, true},
	}
	for _, c := range cases {
		name, version, err := composition.ParseSchema(c.in)
		if c.expectError {
			if err == nil {
				t.Errorf("ParseSchema(%q): expected an error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseSchema(%q): %v", c.in, err)
		}
		if name != c.name || version != c.version {
			t.Errorf("ParseSchema(%q) = (%q, %d), want (%q, %d)", c.in, name, version, c.name, c.version)
		}
	}
}

func TestCreateSchema_UnknownName(t *testing.T) {
	if _, err := composition.CreateSchema("NoSuchSchema"); err == nil {
		t.Fatal("expected an error for an unregistered schema")
	}
}

func TestIsSchemaRegistered(t *testing.T) {
	if !composition.IsSchemaRegistered("Clip") {
		t.Error("expected Clip to be registered")
	}
	if composition.IsSchemaRegistered("NoSuchSchema") {
		t.Error("expected NoSuchSchema to be unregistered")
	}
}

func TestFromJSONBytes_UnknownSchema(t *testing.T) {
	_, err := composition.FromJSONBytes([]byte(`{"OTIO_SCHEMA": "Bogus.1"}`))
	if err == nil {
		t.Fatal("expected an error decoding an unregistered schema")
	}
}

func TestFromJSONBytes_SanitizesNonStandardLiterals(t *testing.T) {
	raw := []byte(`{"OTIO_SCHEMA": "Gap.1", "name": "g", "source_range": {"start": 0, "end": Infinity}}`)
	obj, err := composition.FromJSONBytes(raw)
	if err != nil {
		t.Fatalf("FromJSONBytes: %v", err)
	}
	gap, ok := obj.(*composition.Gap)
	if !ok {
		t.Fatalf("expected *Gap, got %T", obj)
	}
	// Infinity was sanitized to null, so source_range.End falls back to the
	// zero Ordinate rather than failing to decode.
	if got := gap.Duration(); got != 0 {
		t.Errorf("Duration() = %v, want 0 after sanitizing a non-standard literal", got)
	}
}
