// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import (
	"testing"

	"github.com/vanta-engine/vanta/internal/rhivk"
)

func spirvModule(n int) []byte {
	code := make([]byte, n*4)
	code[0], code[1], code[2], code[3] = 0x03, 0x02, 0x23, 0x07 // little-endian 0x07230203.
	return code
}

func TestValidateSPIRV(t *testing.T) {
	if err := ValidateSPIRV(spirvModule(16)); err != nil {
		t.Fatalf("valid module rejected: %v", err)
	}
	if err := ValidateSPIRV([]byte{1, 2, 3}); err == nil {
		t.Fatalf("size-not-multiple-of-4 accepted")
	}
	bad := spirvModule(4)
	bad[0] = 0xFF
	if err := ValidateSPIRV(bad); err == nil {
		t.Fatalf("wrong magic accepted")
	}
}

func newTestDevice() *Device {
	return NewDevice(PhysicalDeviceInfo{GraphicsFamily: 0, ComputeFamily: 0, TransferFamily: 1})
}

func TestCreatePipelineStatePromotesDynamicUBO(t *testing.T) {
	d := newTestDevice()
	vs, err := d.CreateShader(ShaderDesc{Stage: rhivk.ShaderStageVertex, Code: spirvModule(8)},
		[]Binding{{Slot: 0, Type: rhivk.DescriptorTypeUniformBuffer, Count: 1, UBOSize: 64}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	fs, err := d.CreateShader(ShaderDesc{Stage: rhivk.ShaderStageFragment, Code: spirvModule(8)},
		[]Binding{
			{Slot: 0, Type: rhivk.DescriptorTypeUniformBuffer, Count: 1, UBOSize: 64},
			{Slot: 1, Type: rhivk.DescriptorTypeCombinedImageSampler, Count: 1},
		}, nil)
	if err != nil {
		t.Fatal(err)
	}

	pso, err := d.CreatePipelineState(PipelineStateDesc{Shaders: []*Shader{vs, fs}})
	if err != nil {
		t.Fatal(err)
	}
	if len(pso.Bindings) != 2 {
		t.Fatalf("got %d merged bindings, want 2", len(pso.Bindings))
	}
	if pso.Bindings[0].Type != rhivk.DescriptorTypeUniformBufferDynamic {
		t.Fatalf("slot 0 not promoted to dynamic UBO: %v", pso.Bindings[0].Type)
	}
	if pso.Bindings[0].Stage != rhivk.ShaderStageVertex|rhivk.ShaderStageFragment {
		t.Fatalf("slot 0 stage flags not ORed across stages: %v", pso.Bindings[0].Stage)
	}
	if len(pso.DynamicSlots) != 1 || pso.DynamicSlots[0] != 0 {
		t.Fatalf("got dynamic slots %v, want [0]", pso.DynamicSlots)
	}
}

func TestCreatePipelineStateRejectsDisagreeingBindings(t *testing.T) {
	d := newTestDevice()
	vs, _ := d.CreateShader(ShaderDesc{Stage: rhivk.ShaderStageVertex, Code: spirvModule(8)},
		[]Binding{{Slot: 0, Type: rhivk.DescriptorTypeUniformBuffer, Count: 1}}, nil)
	fs, _ := d.CreateShader(ShaderDesc{Stage: rhivk.ShaderStageFragment, Code: spirvModule(8)},
		[]Binding{{Slot: 0, Type: rhivk.DescriptorTypeCombinedImageSampler, Count: 1}}, nil)

	if _, err := d.CreatePipelineState(PipelineStateDesc{Shaders: []*Shader{vs, fs}}); err == nil {
		t.Fatalf("expected error for slot 0 type disagreement")
	}
}

func TestCreateShaderRejectsBindlessSet(t *testing.T) {
	d := newTestDevice()
	_, err := d.CreateShader(ShaderDesc{Stage: rhivk.ShaderStageFragment, Code: spirvModule(8)},
		nil, []uint32{1})
	if err == nil {
		t.Fatalf("expected rejection of non-zero descriptor set")
	}
}

func TestResolveVertexOffsetsAppendsAligned(t *testing.T) {
	layout := []VertexElement{
		{Binding: 0, Format: rhivk.FormatR32G32B32Sfloat, AlignedByteOffset: AppendAlignedElement},
		{Binding: 0, Format: rhivk.FormatR32Uint, AlignedByteOffset: AppendAlignedElement},
	}
	strides := map[rhivk.Format]uint32{
		rhivk.FormatR32G32B32Sfloat: formatStride(rhivk.FormatR32G32B32Sfloat),
		rhivk.FormatR32Uint:         formatStride(rhivk.FormatR32Uint),
	}
	offs := resolveVertexOffsets(layout, strides)
	if offs[0] != 0 || offs[1] != 12 {
		t.Fatalf("got offsets %v, want [0 12]", offs)
	}
}
