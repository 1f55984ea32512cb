// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition_test

import (
	"testing"

	"github.com/brightlinemedia/spacegraph/composition"
	"github.com/brightlinemedia/spacegraph/topology"
)

func TestMediaReference_DefaultsToTimeDomain(t *testing.T) {
	ref := composition.NewExternalReference("a.mov", "file:///a.mov", nil, nil)
	if ref.Domain() != composition.DomainTime {
		t.Errorf("Domain() = %v, want %v", ref.Domain(), composition.DomainTime)
	}
}

func TestMediaReference_OtherDomain(t *testing.T) {
	d := composition.OtherDomain("depth")
	if d != "other:depth" {
		t.Errorf("OtherDomain(\"depth\") = %v, want other:depth", d)
	}
}

func TestMediaReference_SetDiscreteInfo(t *testing.T) {
	ref := composition.NewGeneratorReference("bars", "SMPTEBars", nil, nil, nil)
	if ref.DiscreteInfo() != nil {
		t.Fatal("expected no generator before SetDiscreteInfo")
	}
	gen := topology.NewSampleIndexGenerator(24, 0)
	ref.SetDiscreteInfo(&gen)
	if ref.DiscreteInfo() != &gen {
		t.Error("SetDiscreteInfo did not take effect")
	}
}

func TestGeneratorReference_JSONRoundTrip(t *testing.T) {
	bounds := topology.NewContinuousInterval(0, 10)
	params := composition.AnyDictionary{"pattern": "SMPTEBars"}
	ref := composition.NewGeneratorReference("bars", "SMPTEBars", &bounds, params, nil)

	data, err := composition.ToJSONBytes(ref)
	if err != nil {
		t.Fatalf("ToJSONBytes: %v", err)
	}
	obj, err := composition.FromJSONBytes(data)
	if err != nil {
		t.Fatalf("FromJSONBytes: %v", err)
	}
	got, ok := obj.(*composition.GeneratorReference)
	if !ok {
		t.Fatalf("expected *GeneratorReference, got %T", obj)
	}
	if got.GeneratorKind != "SMPTEBars" {
		t.Errorf("GeneratorKind = %q, want SMPTEBars", got.GeneratorKind)
	}
	if got.AvailableRange() == nil || *got.AvailableRange() != bounds {
		t.Errorf("AvailableRange() = %v, want %v", got.AvailableRange(), bounds)
	}
}

func TestMissingReference_JSONRoundTrip(t *testing.T) {
	ref := composition.NewMissingReference("offline", nil, nil)
	data, err := composition.ToJSONBytes(ref)
	if err != nil {
		t.Fatalf("ToJSONBytes: %v", err)
	}
	obj, err := composition.FromJSONBytes(data)
	if err != nil {
		t.Fatalf("FromJSONBytes: %v", err)
	}
	if _, ok := obj.(*composition.MissingReference); !ok {
		t.Fatalf("expected *MissingReference, got %T", obj)
	}
}

func TestMediaReference_Clone(t *testing.T) {
	bounds := topology.NewContinuousInterval(0, 10)
	ref := composition.NewExternalReference("a.mov", "file:///a.mov", &bounds, nil)
	gen := topology.NewSampleIndexGenerator(24, 0)
	ref.SetDiscreteInfo(&gen)

	clone := ref.Clone().(*composition.ExternalReference)
	if clone.AvailableRange() == ref.AvailableRange() {
		t.Error("Clone should copy AvailableRange, not share the pointer")
	}
	if *clone.AvailableRange() != *ref.AvailableRange() {
		t.Error("cloned AvailableRange should have the same value")
	}
	if clone.DiscreteInfo() != ref.DiscreteInfo() {
		t.Error("Clone should carry over the same discrete info generator")
	}
}
