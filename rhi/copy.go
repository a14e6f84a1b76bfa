// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import "sync"

// pendingCopy is one command buffer awaiting submission in the copy
// allocator's submit pool.
type pendingCopy struct {
	target     uint64
	stagingLen int
	apply      func()
}

// CopyAllocator owns the transfer queue's staging buffer pools and a
// timeline semaphore value, per spec §4.6. Real queue submission and
// vkGetSemaphoreCounterValue polling have no meaning without a device
// to submit to, so "submit" here means "apply the staged copy and mark
// its timeline value reached" — the bookkeeping (target values,
// pool growth, reclaim) matches the spec regardless.
type CopyAllocator struct {
	device *Device

	mu        sync.Mutex
	nextTarget uint64
	signaled   uint64
	pending    []pendingCopy

	freeStaging [][]byte // pool of reusable staging buffers, by capacity.
}

// NewCopyAllocator returns a CopyAllocator bound to device.
func NewCopyAllocator(device *Device) *CopyAllocator {
	return &CopyAllocator{device: device}
}

// allocateStaging returns the smallest free staging buffer whose
// capacity is >= size, else allocates a new one sized to the next
// power of two.
func (c *CopyAllocator) allocateStaging(size int) []byte {
	best := -1
	for i, buf := range c.freeStaging {
		if cap(buf) >= size && (best == -1 || cap(buf) < cap(c.freeStaging[best])) {
			best = i
		}
	}
	if best >= 0 {
		buf := c.freeStaging[best]
		c.freeStaging = append(c.freeStaging[:best], c.freeStaging[best+1:]...)
		return buf[:size]
	}
	return make([]byte, size, nextPow2(size))
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// StageToBuffer copies data into buf via a staged command, recording
// a pending copy to be applied on the next Flush.
func (c *CopyAllocator) StageToBuffer(buf *Buffer, data []byte) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	staging := c.allocateStaging(len(data))
	copy(staging, data)
	c.nextTarget++
	target := c.nextTarget
	c.pending = append(c.pending, pendingCopy{
		target:     target,
		stagingLen: cap(staging),
		apply: func() {
			if buf.Mapped == nil {
				buf.Mapped = make([]byte, len(data))
			}
			copy(buf.Mapped, staging)
		},
	})
	return target
}

// StageToTexture stages data with the same bookkeeping as StageToBuffer.
// Texture has no CPU-side pixel storage, so applying the staged copy
// writes nothing.
func (c *CopyAllocator) StageToTexture(tex *Texture, data []byte) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	staging := c.allocateStaging(len(data))
	copy(staging, data)
	c.nextTarget++
	target := c.nextTarget
	c.pending = append(c.pending, pendingCopy{
		target:     target,
		stagingLen: cap(staging),
		apply:      func() {},
	})
	return target
}

// Flush submits every pending copy in one batch, signaling the
// timeline semaphore to the max target, reclaims completed command
// buffers' staging allocations back into the free pool, and returns
// the last signaled value so the graphics submit can add it as a wait.
func (c *CopyAllocator) Flush() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return c.signaled
	}
	maxTarget := c.signaled
	for _, p := range c.pending {
		p.apply()
		if p.target > maxTarget {
			maxTarget = p.target
		}
		c.freeStaging = append(c.freeStaging, make([]byte, 0, p.stagingLen))
	}
	c.signaled = maxTarget
	c.pending = c.pending[:0]
	return c.signaled
}

// Signaled returns the last value the timeline semaphore was signaled
// to, for tests.
func (c *CopyAllocator) Signaled() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.signaled
}
