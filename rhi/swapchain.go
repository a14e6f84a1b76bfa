// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import "github.com/vanta-engine/vanta/internal/rhivk"

// SurfaceCapabilities is the subset of VkSurfaceCapabilitiesKHR the
// swap-chain sizing logic needs. Actual surface queries are the
// platform layer's job (out of scope); callers supply this directly.
type SurfaceCapabilities struct {
	MinImageCount, MaxImageCount uint32 // MaxImageCount == 0 means unbounded.
	CurrentWidth, CurrentHeight  uint32 // 0xFFFFFFFF sentinel means "use requested".
	SupportedFormats             []rhivk.Format
	SupportedPresentModes        []rhivk.PresentModeKHR
}

// SwapChainDesc describes a SwapChain creation request.
type SwapChainDesc struct {
	RequestedFormat      rhivk.Format
	RequestedWidth       uint32
	RequestedHeight      uint32
	RequestedImageCount  uint32
	VSync                bool
}

// SwapChain is an RHI swap chain: surface format/extent/count resolved
// per spec §4.4, a default single-color render pass, one acquire and
// one release binary semaphore (modeled as plain handles, never
// signaled here since there's no real present engine), and per-image
// framebuffers.
type SwapChain struct {
	Format      rhivk.Format
	Width       uint32
	Height      uint32
	ImageCount  uint32
	PresentMode rhivk.PresentModeKHR
	RenderPass  *RenderPass

	Acquire uint64 // opaque semaphore id.
	Release uint64

	tracker *Tracker
}

const extentUseRequested = 0xFFFFFFFF

var nextSemaphoreID uint64

// chooseSurfaceFormat prefers the requested format with an sRGB-
// nonlinear color space; this layer has no color-space concept beyond
// format, so it only checks the format is offered, falling back to
// BGRA8 when it is not.
func chooseSurfaceFormat(caps SurfaceCapabilities, requested rhivk.Format) rhivk.Format {
	for _, f := range caps.SupportedFormats {
		if f == requested {
			return f
		}
	}
	for _, f := range caps.SupportedFormats {
		if f == rhivk.FormatB8G8R8A8Unorm {
			return f
		}
	}
	return rhivk.FormatB8G8R8A8Unorm
}

func choosePresentMode(caps SurfaceCapabilities, vsync bool) rhivk.PresentModeKHR {
	if vsync {
		return rhivk.PresentModeFifo
	}
	has := func(m rhivk.PresentModeKHR) bool {
		for _, s := range caps.SupportedPresentModes {
			if s == m {
				return true
			}
		}
		return false
	}
	if has(rhivk.PresentModeMailbox) {
		return rhivk.PresentModeMailbox
	}
	if has(rhivk.PresentModeImmediate) {
		return rhivk.PresentModeImmediate
	}
	return rhivk.PresentModeFifo
}

func chooseExtent(caps SurfaceCapabilities, w, h uint32) (uint32, uint32) {
	if caps.CurrentWidth != extentUseRequested {
		return caps.CurrentWidth, caps.CurrentHeight
	}
	return w, h
}

func chooseImageCount(caps SurfaceCapabilities, requested uint32) uint32 {
	n := requested
	if n < caps.MinImageCount {
		n = caps.MinImageCount
	}
	if caps.MaxImageCount > 0 && n > caps.MaxImageCount {
		n = caps.MaxImageCount
	}
	return n
}

// CreateSwapChain resolves format, extent, image count, and present
// mode against caps, then builds the default color render pass
// (Clear -> Store), the two binary semaphores, and the per-image
// framebuffers (represented implicitly by the render pass width/height
// since this layer has no real image views to attach).
func (d *Device) CreateSwapChain(desc SwapChainDesc, caps SurfaceCapabilities) (*SwapChain, error) {
	format := chooseSurfaceFormat(caps, desc.RequestedFormat)
	w, h := chooseExtent(caps, desc.RequestedWidth, desc.RequestedHeight)
	count := chooseImageCount(caps, desc.RequestedImageCount)
	mode := choosePresentMode(caps, desc.VSync)

	rp := d.CreateRenderPass(RenderPassDesc{
		Width:  w,
		Height: h,
		Attachments: []AttachmentDesc{{
			Type:          AttachmentRenderTarget,
			LoadOp:        rhivk.AttachmentLoadOpClear,
			StoreOp:       rhivk.AttachmentStoreOpStore,
			InitialLayout: rhivk.ImageLayoutUndefined,
			FinalLayout:   rhivk.ImageLayoutPresentSrc,
		}},
	})

	sc := &SwapChain{
		Format:      format,
		Width:       w,
		Height:      h,
		ImageCount:  count,
		PresentMode: mode,
		RenderPass:  rp,
		Acquire:     nextSemaphore(),
		Release:     nextSemaphore(),
	}
	sc.tracker = NewTracker(d.Free, KindSwapChain, func() {})
	return sc, nil
}

func nextSemaphore() uint64 {
	nextSemaphoreID++
	return nextSemaphoreID
}

// ReleaseSwapChain drops the swap chain's reference and its render pass.
func (d *Device) ReleaseSwapChain(sc *SwapChain) {
	d.ReleaseRenderPass(sc.RenderPass)
	sc.tracker.Release(d.FrameCount())
}
