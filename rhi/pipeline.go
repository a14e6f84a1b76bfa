// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import (
	"fmt"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/vanta-engine/vanta/internal/rhivk"
)

// RasterizerState mirrors the rasterizer fields a PipelineState needs.
type RasterizerState struct {
	CullMode  rhivk.CullModeFlags
	FrontFace rhivk.FrontFace
}

// DepthStencilState mirrors VkPipelineDepthStencilStateCreateInfo,
// including front/back stencil ops.
type DepthStencilState struct {
	DepthTestEnable  bool
	DepthWriteEnable bool
	DepthCompareOp   rhivk.CompareOp
	StencilEnable    bool
	StencilFront     StencilOpState
	StencilBack      StencilOpState
}

// StencilOpState mirrors VkStencilOpState.
type StencilOpState struct {
	CompareOp rhivk.CompareOp
	Reference uint8
}

// VertexElement is one entry of a PipelineState's input layout.
type VertexElement struct {
	Binding            uint32
	Format             rhivk.Format
	AlignedByteOffset  uint32 // AppendAlignedElement sentinel when auto-computed.
}

// AppendAlignedElement mirrors D3D12_APPEND_ALIGNED_ELEMENT: the binder
// computes the real offset from preceding elements' format strides.
const AppendAlignedElement = ^uint32(0)

// PipelineStateDesc describes a PipelineState creation request.
type PipelineStateDesc struct {
	Shaders           []*Shader
	Rasterizer        RasterizerState
	DepthStencil      DepthStencilState
	InputLayout       []VertexElement
	Topology          rhivk.PrimitiveTopology
}

// mergedBinding is one binding produced by merging all attached shader
// stages' reflected bindings.
type mergedBinding struct {
	Slot  uint32
	Type  rhivk.DescriptorType
	Count uint32
	Stage rhivk.ShaderStageFlagBits // OR of every stage that uses it.
}

// PipelineState is an RHI pipeline state object. The concrete dynamic
// VkPipeline is not created here (spec §4.4); CreatePipelineState only
// merges bindings, computes the layout hash, and populates the fixed
// state blocks. The dynamic pipeline itself is built lazily by the
// descriptor binder's validatePSO on first draw.
type PipelineState struct {
	Desc         PipelineStateDesc
	Bindings     []mergedBinding
	DynamicSlots []uint32 // dynamic-UBO slots, ascending.
	Hash         uint64

	tracker *Tracker
}

// layoutCache maps a binding hash to the pipeline layout created for
// it, so two PSOs with identical binding sets share one VkPipelineLayout.
type layoutCache struct {
	mu    sync.Mutex
	byKey map[uint64]uint64 // binding hash -> layout id (opaque, for tests).
	next  uint64
}

func newLayoutCache() *layoutCache {
	return &layoutCache{byKey: map[uint64]uint64{}}
}

func (c *layoutCache) get(hash uint64) (id uint64, created bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id, ok := c.byKey[hash]; ok {
		return id, false
	}
	c.next++
	c.byKey[hash] = c.next
	return c.next, true
}

// mergeBindings merges the reflected bindings of every attached shader
// stage. The same slot occurring in two stages must agree on type and
// count; stage flags are OR'd.
func mergeBindings(shaders []*Shader) ([]mergedBinding, error) {
	bySlot := map[uint32]*mergedBinding{}
	var order []uint32
	for _, sh := range shaders {
		for _, b := range sh.Bindings {
			if existing, ok := bySlot[b.Slot]; ok {
				if existing.Type != b.Type || existing.Count != b.Count {
					return nil, fmt.Errorf("rhi: binding slot %d disagrees across stages", b.Slot)
				}
				existing.Stage |= b.Stage
				continue
			}
			bySlot[b.Slot] = &mergedBinding{Slot: b.Slot, Type: b.Type, Count: b.Count, Stage: b.Stage}
			order = append(order, b.Slot)
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	merged := make([]mergedBinding, 0, len(order))
	for _, slot := range order {
		merged = append(merged, *bySlot[slot])
	}
	return merged, nil
}

// bindingHash hashes the merged binding set (slot, type, count, stage
// per entry, in ascending slot order) into the layout cache key.
func bindingHash(bindings []mergedBinding) uint64 {
	h := fnv.New64a()
	for _, b := range bindings {
		var word [16]byte
		putU32(word[0:4], b.Slot)
		putU32(word[4:8], uint32(b.Type))
		putU32(word[8:12], b.Count)
		putU32(word[12:16], uint32(b.Stage))
		h.Write(word[:])
	}
	return h.Sum64()
}

func putU32(dst []byte, v uint32) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
	dst[3] = byte(v >> 24)
}

// device-wide pipeline-layout cache, lazily constructed.
var globalLayoutCache = newLayoutCache()

// CreatePipelineState merges the attached shaders' bindings, sorts
// dynamic-UBO slots, computes the binding hash, and gets-or-creates the
// matching pipeline layout from the process-wide layout cache.
func (d *Device) CreatePipelineState(desc PipelineStateDesc) (*PipelineState, error) {
	merged, err := mergeBindings(desc.Shaders)
	if err != nil {
		return nil, err
	}
	var dyn []uint32
	for _, b := range merged {
		if b.Type == rhivk.DescriptorTypeUniformBufferDynamic {
			dyn = append(dyn, b.Slot)
		}
	}
	sort.Slice(dyn, func(i, j int) bool { return dyn[i] < dyn[j] })

	hash := bindingHash(merged)
	globalLayoutCache.get(hash)

	pso := &PipelineState{
		Desc:         desc,
		Bindings:     merged,
		DynamicSlots: dyn,
		Hash:         hash,
	}
	pso.tracker = NewTracker(d.Free, KindPipelineLayout, func() {})
	return pso, nil
}

// ReleasePipelineState drops the pso's reference.
func (d *Device) ReleasePipelineState(p *PipelineState) {
	p.tracker.Release(d.FrameCount())
}

// resolveVertexOffsets computes the byte offset of every input-layout
// element whose AlignedByteOffset is AppendAlignedElement, adding the
// preceding element's format stride within the same binding.
func resolveVertexOffsets(layout []VertexElement, strides map[rhivk.Format]uint32) []uint32 {
	offsets := make([]uint32, len(layout))
	running := map[uint32]uint32{}
	for i, e := range layout {
		if e.AlignedByteOffset != AppendAlignedElement {
			offsets[i] = e.AlignedByteOffset
			running[e.Binding] = e.AlignedByteOffset + strides[e.Format]
			continue
		}
		offsets[i] = running[e.Binding]
		running[e.Binding] += strides[e.Format]
	}
	return offsets
}

// formatStride returns the byte size of one vertex-format element.
func formatStride(f rhivk.Format) uint32 {
	switch f {
	case rhivk.FormatR32Uint:
		return 4
	case rhivk.FormatR32G32Sfloat:
		return 8
	case rhivk.FormatR32G32B32Sfloat:
		return 12
	case rhivk.FormatR32G32B32A32Sfloat:
		return 16
	case rhivk.FormatR8G8B8A8Unorm, rhivk.FormatR8G8B8A8Srgb:
		return 4
	default:
		return 0
	}
}
