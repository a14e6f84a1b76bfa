// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package rhivk holds the Vulkan-shaped enum and flag constants the rhi
// package builds its descriptions from. It is the hand-curated, in-module
// equivalent of the teacher's generated internal/render/vk package: a
// fixed, small vocabulary rather than a full go-vk binding, since device
// and surface creation are out of scope here and every value below exists
// only to be compared, hashed, or unioned by host-side rhi logic.
package rhivk

// Format mirrors a narrow slice of VkFormat: the handful this engine's
// buffers, textures, and vertex layouts ever name.
type Format uint32

const (
	FormatUndefined Format = iota
	FormatR8G8B8A8Unorm
	FormatR32Uint
	FormatR32G32Sfloat
	FormatR32G32B32Sfloat
	FormatR32G32B32A32Sfloat
	FormatD32Sfloat
	FormatB8G8R8A8Unorm
	FormatB8G8R8A8Srgb
	FormatR8G8B8A8Srgb
)

// BufferUsageFlags mirrors VkBufferUsageFlagBits bind purposes.
type BufferUsageFlags uint32

const (
	BufferUsageTransferSrc BufferUsageFlags = 1 << iota
	BufferUsageTransferDst
	BufferUsageUniformBuffer
	BufferUsageIndexBuffer
	BufferUsageVertexBuffer
	BufferUsageStorageBuffer
)

// ImageUsageFlags mirrors VkImageUsageFlagBits.
type ImageUsageFlags uint32

const (
	ImageUsageTransferSrc ImageUsageFlags = 1 << iota
	ImageUsageTransferDst
	ImageUsageSampled
	ImageUsageStorage
	ImageUsageColorAttachment
	ImageUsageDepthStencilAttachment
)

// ImageLayout mirrors VkImageLayout.
type ImageLayout uint32

const (
	ImageLayoutUndefined ImageLayout = iota
	ImageLayoutGeneral
	ImageLayoutColorAttachmentOptimal
	ImageLayoutDepthStencilAttachmentOptimal
	ImageLayoutShaderReadOnlyOptimal
	ImageLayoutTransferSrcOptimal
	ImageLayoutTransferDstOptimal
	ImageLayoutPresentSrc
)

// DescriptorType mirrors VkDescriptorType, narrowed to the kinds the
// binder actually writes.
type DescriptorType uint32

const (
	DescriptorTypeUniformBuffer DescriptorType = iota
	DescriptorTypeUniformBufferDynamic
	DescriptorTypeCombinedImageSampler
)

// ShaderStageFlagBits mirrors VkShaderStageFlagBits.
type ShaderStageFlagBits uint32

const (
	ShaderStageVertex ShaderStageFlagBits = 1 << iota
	ShaderStageFragment
	ShaderStageGeometry
	ShaderStageCompute
)

// PresentModeKHR mirrors VkPresentModeKHR.
type PresentModeKHR uint32

const (
	PresentModeFifo PresentModeKHR = iota
	PresentModeMailbox
	PresentModeImmediate
)

// CompareOp mirrors VkCompareOp, narrowed to the ops the pipeline states
// in this engine actually request (reversed-Z: Greater/GreaterEqual).
type CompareOp uint32

const (
	CompareOpNever CompareOp = iota
	CompareOpLess
	CompareOpEqual
	CompareOpLessOrEqual
	CompareOpGreater
	CompareOpNotEqual
	CompareOpGreaterOrEqual
	CompareOpAlways
)

// CullModeFlags mirrors VkCullModeFlagBits.
type CullModeFlags uint32

const (
	CullModeNone CullModeFlags = iota
	CullModeFront
	CullModeBack
	CullModeFrontAndBack
)

// FrontFace mirrors VkFrontFace.
type FrontFace uint32

const (
	FrontFaceCounterClockwise FrontFace = iota
	FrontFaceClockwise
)

// AttachmentLoadOp mirrors VkAttachmentLoadOp.
type AttachmentLoadOp uint32

const (
	AttachmentLoadOpLoad AttachmentLoadOp = iota
	AttachmentLoadOpClear
	AttachmentLoadOpDontCare
)

// AttachmentStoreOp mirrors VkAttachmentStoreOp.
type AttachmentStoreOp uint32

const (
	AttachmentStoreOpStore AttachmentStoreOp = iota
	AttachmentStoreOpDontCare
)

// Filter mirrors VkFilter.
type Filter uint32

const (
	FilterNearest Filter = iota
	FilterLinear
)

// SamplerAddressMode mirrors VkSamplerAddressMode.
type SamplerAddressMode uint32

const (
	SamplerAddressModeRepeat SamplerAddressMode = iota
	SamplerAddressModeMirroredRepeat
	SamplerAddressModeClampToEdge
	SamplerAddressModeClampToBorder
)

// PrimitiveTopology mirrors VkPrimitiveTopology, narrowed to what the
// renderer issues.
type PrimitiveTopology uint32

const (
	PrimitiveTopologyTriangleList PrimitiveTopology = iota
	PrimitiveTopologyLineList
)

// Result mirrors a narrow slice of VkResult this layer returns from its
// own logic (pool growth, staging reclaim) rather than from a driver.
type Result int32

const (
	Success Result = iota
	ErrorOutOfPoolMemory
	ErrorDeviceLost
)

func (r Result) Error() string {
	switch r {
	case ErrorOutOfPoolMemory:
		return "rhivk: out of pool memory"
	case ErrorDeviceLost:
		return "rhivk: device lost"
	default:
		return "rhivk: success"
	}
}

// WholeSize mirrors VK_WHOLE_SIZE.
const WholeSize uint64 = ^uint64(0)

// MaxDescriptorSlots is the binder's fixed CBV/SRV/sampler table width
// (spec: "up to 14 CBVs... 14 SRVs, and 14 samplers").
const MaxDescriptorSlots = 14
