// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import "github.com/vanta-engine/vanta/internal/rhivk"

// TextureType mirrors VkImageType, narrowed to what this engine names.
type TextureType int

const (
	Texture1D TextureType = iota
	Texture2D
	Texture3D
)

// TextureBindFlags mirror the description's usage bits.
type TextureBindFlags uint32

const (
	TextureBindShaderResource TextureBindFlags = 1 << iota
	TextureBindRenderTarget
	TextureBindDepthStencil
)

// TextureDesc describes a Texture creation request.
type TextureDesc struct {
	Type            TextureType
	Width, Height   uint32
	Format          rhivk.Format
	ArraySize       uint32
	MipLevels       uint32
	Bind            TextureBindFlags
	InitialLayout   rhivk.ImageLayout
	InitData        []byte
}

// Texture is an RHI texture resource, with its sub-views created
// matching bind flags and the correct aspect.
type Texture struct {
	Desc    TextureDesc
	Layout  rhivk.ImageLayout
	SRV     bool
	RTV     bool
	DSV     bool
	tracker *Tracker
}

func vkImageUsage(bind TextureBindFlags) rhivk.ImageUsageFlags {
	u := rhivk.ImageUsageTransferSrc | rhivk.ImageUsageTransferDst
	if bind&TextureBindShaderResource != 0 {
		u |= rhivk.ImageUsageSampled
	}
	if bind&TextureBindRenderTarget != 0 {
		u |= rhivk.ImageUsageColorAttachment
	}
	if bind&TextureBindDepthStencil != 0 {
		u |= rhivk.ImageUsageDepthStencilAttachment
	}
	return u
}

// CreateTexture allocates a Texture per desc. If InitData is supplied
// it is staged then the image transitions Undefined -> TransferDst ->
// requested layout; otherwise it transitions directly from Undefined,
// both recorded conceptually on the frame's init command buffer.
func (d *Device) CreateTexture(desc TextureDesc) *Texture {
	_ = vkImageUsage(desc.Bind)
	t := &Texture{
		Desc:   desc,
		SRV:    desc.Bind&TextureBindShaderResource != 0,
		RTV:    desc.Bind&TextureBindRenderTarget != 0,
		DSV:    desc.Bind&TextureBindDepthStencil != 0,
	}
	t.tracker = NewTracker(d.Free, KindImage, func() {})

	if desc.InitData != nil {
		d.Copy.StageToTexture(t, desc.InitData)
		t.Layout = rhivk.ImageLayoutTransferDstOptimal
	}
	t.Layout = desc.InitialLayout
	return t
}

// ReleaseTexture drops the texture's reference.
func (d *Device) ReleaseTexture(t *Texture) {
	t.tracker.Release(d.FrameCount())
}
