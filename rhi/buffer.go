// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import (
	"unsafe"

	"github.com/vanta-engine/vanta/internal/rhivk"
)

// BufferUsage selects the VMA-style memory hint a Buffer is allocated
// with (spec §4.4).
type BufferUsage int

const (
	BufferUsageDefault  BufferUsage = iota // device-local.
	BufferUsageUpload                      // host-visible, sequential write, mapped.
	BufferUsageReadback                    // host-visible, random read, mapped.
)

// BufferBindFlags union into Vulkan buffer-usage bits.
type BufferBindFlags uint32

const (
	BindVertex BufferBindFlags = 1 << iota
	BindIndex
	BindConstant
	BindShaderResource
)

// BufferDesc describes a Buffer creation request.
type BufferDesc struct {
	Size     uint64
	Usage    BufferUsage
	Bind     BufferBindFlags
	Stride   uint32
	InitData []byte // staged via the copy allocator when non-nil.
}

// Buffer is an RHI buffer resource.
type Buffer struct {
	Desc    BufferDesc
	VkUsage rhivk.BufferUsageFlags
	Mapped  []byte // non-nil for Upload/Readback.
	tracker *Tracker
}

// vkBufferUsage unions bind flags into Vulkan usage bits; transfer
// src/dst are always set per spec §4.4.
func vkBufferUsage(bind BufferBindFlags) rhivk.BufferUsageFlags {
	u := rhivk.BufferUsageTransferSrc | rhivk.BufferUsageTransferDst
	if bind&BindVertex != 0 {
		u |= rhivk.BufferUsageVertexBuffer
	}
	if bind&BindIndex != 0 {
		u |= rhivk.BufferUsageIndexBuffer
	}
	if bind&BindConstant != 0 {
		u |= rhivk.BufferUsageUniformBuffer
	}
	if bind&BindShaderResource != 0 {
		u |= rhivk.BufferUsageStorageBuffer
	}
	return u
}

// CreateBuffer allocates a Buffer per desc. If desc.InitData is set it
// is staged through the device's copy allocator with a pre-barrier
// (transfer-write) and a post-barrier restoring the bind-appropriate
// access, modeled here as a direct staged copy since there is no real
// transfer queue to fence against.
func (d *Device) CreateBuffer(desc BufferDesc) *Buffer {
	b := &Buffer{Desc: desc, VkUsage: vkBufferUsage(desc.Bind)}
	if desc.Usage != BufferUsageDefault {
		b.Mapped = make([]byte, desc.Size)
	}
	b.tracker = NewTracker(d.Free, KindBuffer, func() {})

	if desc.InitData != nil {
		d.Copy.StageToBuffer(b, desc.InitData)
	}
	return b
}

// ReleaseBuffer drops the buffer's reference, enqueuing its teardown on the
// device's deferred-free allocator.
func (d *Device) ReleaseBuffer(b *Buffer) {
	b.tracker.Release(d.FrameCount())
}

// WriteStruct copies the raw bytes of v into buf's mapped memory,
// growing it if undersized. Mirrors the teacher's unsafe-pointer
// upload pattern for pushing CPU constant-buffer structs into
// host-visible memory without a field-by-field marshaler.
func WriteStruct[T any](buf *Buffer, v *T) {
	size := int(unsafe.Sizeof(*v))
	if cap(buf.Mapped) < size {
		buf.Mapped = make([]byte, size)
	}
	buf.Mapped = buf.Mapped[:size]
	copy(buf.Mapped, unsafe.Slice((*byte)(unsafe.Pointer(v)), size))
}
