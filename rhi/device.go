// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import (
	"fmt"
	"sync"
)

// BufferCount is the number of frame resources kept in flight, matching
// spec §4.3's BUFFER_COUNT.
const BufferCount = 2

// QueueFamily identifies one of the three queues a Device exposes.
type QueueFamily int

const (
	QueueGraphics QueueFamily = iota
	QueueCompute
	QueueTransfer
)

// PhysicalDeviceInfo is the subset of a selectPhysicalDevice candidate
// this layer cares about: whether it is discrete, and which queue
// families it can offer. Actual enumeration against a real instance is
// the external platform layer's job; tests and callers supply
// candidates directly.
type PhysicalDeviceInfo struct {
	Name              string
	Discrete          bool
	GraphicsFamily    int
	ComputeFamily     int
	TransferFamily    int
	DedicatedTransfer bool
}

// SelectPhysicalDevice picks the best candidate: prefer discrete GPUs,
// require graphics/compute/transfer family indices to exist (they may
// coincide), mirroring vulkanRenderer.selectPhysicalDevice's
// scoring loop.
func SelectPhysicalDevice(candidates []PhysicalDeviceInfo) (PhysicalDeviceInfo, error) {
	var best PhysicalDeviceInfo
	found := false
	for _, c := range candidates {
		if c.GraphicsFamily < 0 || c.ComputeFamily < 0 || c.TransferFamily < 0 {
			continue
		}
		if !found {
			best, found = c, true
			continue
		}
		if c.Discrete && !best.Discrete {
			best = c
		}
	}
	if !found {
		return PhysicalDeviceInfo{}, fmt.Errorf("rhi: no suitable physical device")
	}
	return best, nil
}

// FrameResource is one slot of the BUFFER_COUNT-sized ring: a
// completion fence (modeled as a done flag a real backend would signal)
// and the init command list used for layout transitions recorded
// outside of any application command list.
type FrameResource struct {
	FenceSignaled bool
	Init          *CommandList
}

// Device owns the frame ring, the deferred-free allocator, and the
// command-list freelist. It does not own an instance/surface/window;
// those are the external platform layer's responsibility per spec §1.
type Device struct {
	Info PhysicalDeviceInfo

	mu         sync.Mutex
	frames     [BufferCount]FrameResource
	frameCount uint64

	Free *DeferredFree
	Copy *CopyAllocator

	clPoolMu sync.Mutex
	clPool   []*CommandList
}

// NewDevice constructs a Device around the given physical device,
// wiring up its deferred-free allocator and copy allocator.
func NewDevice(info PhysicalDeviceInfo) *Device {
	d := &Device{
		Info: info,
		Free: NewDeferredFree(),
	}
	d.Copy = NewCopyAllocator(d)
	for i := range d.frames {
		d.frames[i] = FrameResource{FenceSignaled: true, Init: newCommandList()}
	}
	return d
}

// FrameCount returns the number of frames submitted so far.
func (d *Device) FrameCount() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frameCount
}

// BeginCommandList allocates a fresh command list from the freelist (or
// creates one), resets its descriptor binder, and sets a full-screen
// scissor equal to extent.
func (d *Device) BeginCommandList(extentW, extentH uint32) *CommandList {
	d.clPoolMu.Lock()
	var cl *CommandList
	if n := len(d.clPool); n > 0 {
		cl = d.clPool[n-1]
		d.clPool = d.clPool[:n-1]
	} else {
		cl = newCommandList()
	}
	d.clPoolMu.Unlock()

	cl.reset()
	cl.Binder.reset()
	cl.ScissorW, cl.ScissorH = extentW, extentH
	return cl
}

// SubmitCommandList ends cl, flushes the copy allocator, advances the
// frame counter, waits on the oldest in-flight frame's fence once the
// ring has filled (modeled as a no-op here since there is no real
// fence to wait on), and drains the deferred-free allocator for frames
// that have aged out.
func (d *Device) SubmitCommandList(cl *CommandList) uint64 {
	d.Copy.Flush()

	d.mu.Lock()
	d.frameCount++
	frameCount := d.frameCount
	slot := int(frameCount % BufferCount)
	d.frames[slot].FenceSignaled = true
	d.mu.Unlock()

	d.Free.Update(frameCount, BufferCount)

	d.clPoolMu.Lock()
	d.clPool = append(d.clPool, cl)
	d.clPoolMu.Unlock()

	return frameCount
}
