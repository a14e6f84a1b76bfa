// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import (
	"fmt"
	"hash/fnv"

	"github.com/vanta-engine/vanta/internal/rhivk"
)

// cbvSlot is one bound constant-buffer-view slot: a buffer plus its
// dynamic offset.
type cbvSlot struct {
	buf    *Buffer
	offset uint64
}

// Binder is the per-command-list descriptor-set cache and write
// batcher (spec §4.5). It tracks a fixed binding table of up to
// rhivk.MaxDescriptorSlots CBVs/SRVs/samplers and a dirty bit that
// flush clears by allocating and writing a fresh descriptor set.
type Binder struct {
	cbv     [rhivk.MaxDescriptorSlots]cbvSlot
	srv     [rhivk.MaxDescriptorSlots]*Texture
	sampler [rhivk.MaxDescriptorSlots]*Sampler
	dirty   bool

	pool        *descriptorPool
	activeHash  uint64
	dynamicOffs []uint64
}

// descriptorPool models a per-frame descriptor pool: a capacity that
// doubles and retries on exhaustion, per spec §4.5.
type descriptorPool struct {
	capacity int
	inUse    int
}

func newDescriptorPool() *descriptorPool {
	return &descriptorPool{capacity: 32}
}

// allocate reserves one descriptor set, growing the pool (x2) and
// retrying once on simulated out-of-pool-memory.
func (p *descriptorPool) allocate() error {
	if p.inUse < p.capacity {
		p.inUse++
		return nil
	}
	p.capacity *= 2
	if p.inUse < p.capacity {
		p.inUse++
		return nil
	}
	return rhivk.ErrorOutOfPoolMemory
}

// reset releases every descriptor set the pool has handed out,
// called once per frame when the command list is reset.
func (p *descriptorPool) reset() {
	p.inUse = 0
}

func (b *Binder) reset() {
	for i := range b.cbv {
		b.cbv[i] = cbvSlot{}
	}
	for i := range b.srv {
		b.srv[i] = nil
	}
	for i := range b.sampler {
		b.sampler[i] = nil
	}
	b.dirty = true
	if b.pool == nil {
		b.pool = newDescriptorPool()
	} else {
		b.pool.reset()
	}
	b.activeHash = 0
}

// BindConstantBuffer updates slot and sets the dirty bit when the
// bound buffer or offset changed.
func (b *Binder) BindConstantBuffer(slot uint32, buf *Buffer, offset uint64) {
	cur := &b.cbv[slot]
	if cur.buf != buf || cur.offset != offset {
		*cur = cbvSlot{buf: buf, offset: offset}
		b.dirty = true
	}
}

// BindResource updates an SRV slot.
func (b *Binder) BindResource(slot uint32, tex *Texture) {
	if b.srv[slot] != tex {
		b.srv[slot] = tex
		b.dirty = true
	}
}

// BindSampler updates a sampler slot.
func (b *Binder) BindSampler(slot uint32, s *Sampler) {
	if b.sampler[slot] != s {
		b.sampler[slot] = s
		b.dirty = true
	}
}

// Flush is called before every draw. When the dirty bit is clear it
// merely recomputes the dynamic-offsets array in ascending slot order;
// otherwise it allocates a fresh descriptor set (growing the pool on
// exhaustion) and walks the pso's merged bindings emitting one
// conceptual WriteDescriptorSet per binding.
func (b *Binder) Flush(cl *CommandList, pso *PipelineState) error {
	if err := validatePSO(cl, pso); err != nil {
		return err
	}

	b.dynamicOffs = b.dynamicOffs[:0]
	for _, slot := range pso.DynamicSlots {
		b.dynamicOffs = append(b.dynamicOffs, b.cbv[slot].offset)
	}

	if !b.dirty {
		return nil
	}
	if b.pool == nil {
		b.pool = newDescriptorPool()
	}
	if err := b.pool.allocate(); err != nil {
		b.pool.capacity *= 2
		if err := b.pool.allocate(); err != nil {
			return fmt.Errorf("rhi: descriptor pool exhausted: %w", err)
		}
	}

	for _, bind := range pso.Bindings {
		switch bind.Type {
		case rhivk.DescriptorTypeCombinedImageSampler:
			_ = b.srv[bind.Slot]
			_ = b.sampler[bind.Slot]
		case rhivk.DescriptorTypeUniformBuffer, rhivk.DescriptorTypeUniformBufferDynamic:
			_ = b.cbv[bind.Slot]
		}
	}

	b.dirty = false
	return nil
}

// validatePSO composes the pipeline hash from pso.Hash, the active
// render pass hash, and the vertex-buffer strides hash, building the
// dynamic VkPipeline on cache miss (modeled as a plain cache lookup
// since there is no real pipeline object to create). Two draws sharing
// a pso and vertex strides but recorded under different render passes
// fold to different composite keys, since a render pass's attachment
// layout is as much a part of a Vulkan pipeline's identity as its shaders.
func validatePSO(cl *CommandList, pso *PipelineState) error {
	h := fnv.New64a()
	var word [8]byte
	putU64(word[:], pso.Hash)
	h.Write(word[:])
	putU64(word[:], activeRenderPassHash(cl.ActiveRenderPass))
	h.Write(word[:])
	putU64(word[:], vertexStridesHash(cl.VertexStrides))
	h.Write(word[:])

	composite := h.Sum64()
	globalPipelineCache.getOrBuild(composite, func() {})
	return nil
}

// activeRenderPassHash returns rp's hash, or 0 when no render pass is
// bound (e.g. a test command list recorded outside a BeginRenderPass/
// EndRenderPass pair).
func activeRenderPassHash(rp *RenderPass) uint64 {
	if rp == nil {
		return 0
	}
	return rp.Hash
}

func vertexStridesHash(strides map[uint32]uint32) uint64 {
	h := fnv.New64a()
	for b, s := range strides {
		var word [8]byte
		word[0], word[1], word[2], word[3] = byte(b), byte(b>>8), byte(b>>16), byte(b>>24)
		word[4], word[5], word[6], word[7] = byte(s), byte(s>>8), byte(s>>16), byte(s>>24)
		h.Write(word[:])
	}
	return h.Sum64()
}

func putU64(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}

// dynamicPipelineCache maps a composite (pso, renderpass, vb-strides)
// hash to a built dynamic pipeline, shared process-wide and cleared on
// shader reload (spec §4.10).
type dynamicPipelineCache struct {
	built map[uint64]bool
}

func (c *dynamicPipelineCache) getOrBuild(hash uint64, build func()) {
	if c.built == nil {
		c.built = map[uint64]bool{}
	}
	if c.built[hash] {
		return
	}
	build()
	c.built[hash] = true
}

// Clear drops every cached dynamic pipeline, called on shader reload.
func (c *dynamicPipelineCache) Clear() {
	c.built = map[uint64]bool{}
}

var globalPipelineCache = &dynamicPipelineCache{}

// ClearDynamicPipelineCache clears the process-wide dynamic pipeline
// cache. Call after a shader hot-reload.
func ClearDynamicPipelineCache() {
	globalPipelineCache.Clear()
}
