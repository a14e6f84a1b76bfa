// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import (
	"encoding/binary"
	"fmt"

	"github.com/vanta-engine/vanta/internal/rhivk"
)

// spirvMagic is the required first word of a valid SPIR-V module.
const spirvMagic = 0x07230203

// ValidateSPIRV checks the two cheap structural properties spec §6
// requires before a shader module is created: size is a multiple of 4
// and the first word is the SPIR-V magic number.
func ValidateSPIRV(code []byte) error {
	if len(code)%4 != 0 {
		return fmt.Errorf("rhi: spir-v size %d is not a multiple of 4", len(code))
	}
	if len(code) < 4 {
		return fmt.Errorf("rhi: spir-v module too short")
	}
	magic := binary.LittleEndian.Uint32(code[:4])
	if magic != spirvMagic {
		return fmt.Errorf("rhi: spir-v magic mismatch: got %#x, want %#x", magic, spirvMagic)
	}
	return nil
}

// Binding is one reflected descriptor binding.
type Binding struct {
	Slot     uint32
	Type     rhivk.DescriptorType
	Count    uint32
	Stage    rhivk.ShaderStageFlagBits
	UBOSize  uint32 // valid when Type is a uniform-buffer kind.
}

// ShaderDesc describes a Shader creation request.
type ShaderDesc struct {
	Stage rhivk.ShaderStageFlagBits
	Code  []byte // SPIR-V bytecode.
}

// Shader is an RHI shader module plus its reflected descriptor bindings.
type Shader struct {
	Stage      rhivk.ShaderStageFlagBits
	EntryPoint string
	Bindings   []Binding
	tracker    *Tracker
}

// CreateShader validates code, creates a module record, and reflects
// its descriptor bindings. Bindings with non-zero descriptor-set index
// are rejected (no bindless descriptor sets, per spec non-goals); the
// reflection data itself is supplied by the caller since decoding
// SPIR-V's binary reflection sections is delegated to an external
// collaborator (spec §1).
func (d *Device) CreateShader(desc ShaderDesc, bindings []Binding, setIndices []uint32) (*Shader, error) {
	if err := ValidateSPIRV(desc.Code); err != nil {
		return nil, err
	}
	for _, set := range setIndices {
		if set != 0 {
			return nil, fmt.Errorf("rhi: bindless descriptor sets not supported (set=%d)", set)
		}
	}

	s := &Shader{Stage: desc.Stage, EntryPoint: "main"}
	for _, b := range bindings {
		if b.Type == rhivk.DescriptorTypeUniformBuffer {
			b.Type = rhivk.DescriptorTypeUniformBufferDynamic
		}
		b.Stage = desc.Stage
		s.Bindings = append(s.Bindings, b)
	}
	s.tracker = NewTracker(d.Free, KindShaderModule, func() {})
	return s, nil
}

// ReleaseShader drops the shader's reference.
func (d *Device) ReleaseShader(s *Shader) {
	s.tracker.Release(d.FrameCount())
}
