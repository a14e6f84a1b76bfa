// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package rhi is a handle-based, reference-counted render hardware
// interface modeled on a Vulkan-class device. Device/surface/window
// bring-up is an external collaborator (out of scope); this package
// owns the host-side bookkeeping a real backend would drive: frame
// rings, deferred-free retirement, descriptor binding, pipeline-state
// caching, and the copy allocator's staging pools. Every destructor
// follows the teacher's vulkanRenderer.dispose ordering (instance
// resources torn down child-before-parent) but enqueues onto a
// deferred-free queue instead of calling a driver directly.
package rhi

import "sync"

// Kind identifies the class of object a deferred-free entry or handle
// tracks, matching the per-kind queues spec §4.3 names.
type Kind int

const (
	KindBuffer Kind = iota
	KindImage
	KindImageView
	KindSampler
	KindPipeline
	KindPipelineLayout
	KindDescriptorPool
	KindRenderPass
	KindFramebuffer
	KindSwapChain
	KindSurface
	KindSemaphore
	KindShaderModule
)

// retireEntry is one (resource, retireFrame) pair awaiting destruction.
type retireEntry struct {
	kind        Kind
	retireFrame uint64
	destroy     func()
}

// DeferredFree is the process-wide structure holding per-kind retire
// queues. Every RHI resource destructor enqueues here instead of
// calling a destructor immediately, so in-flight frames never see a
// resource they are still reading vanish out from under them.
type DeferredFree struct {
	mu      sync.Mutex
	entries []retireEntry
}

// NewDeferredFree returns an empty deferred-free allocator.
func NewDeferredFree() *DeferredFree {
	return &DeferredFree{}
}

// Enqueue retires destroy under kind at retireFrame. Safe for concurrent
// callers; resource destructors may run on any thread.
func (d *DeferredFree) Enqueue(kind Kind, retireFrame uint64, destroy func()) {
	d.mu.Lock()
	d.entries = append(d.entries, retireEntry{kind: kind, retireFrame: retireFrame, destroy: destroy})
	d.mu.Unlock()
}

// Update destroys every entry whose retireFrame+bufferCount <= frameCount,
// i.e. has survived bufferCount full frames since it was enqueued.
func (d *DeferredFree) Update(frameCount, bufferCount uint64) {
	d.mu.Lock()
	live := d.entries[:0]
	var ready []retireEntry
	for _, e := range d.entries {
		if e.retireFrame+bufferCount <= frameCount {
			ready = append(ready, e)
		} else {
			live = append(live, e)
		}
	}
	d.entries = live
	d.mu.Unlock()

	for _, e := range ready {
		e.destroy()
	}
}

// Pending returns the number of entries still awaiting retirement,
// exposed for tests.
func (d *DeferredFree) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Tracker is the shared allocation tracker every RHI resource holds a
// reference to (spec §3, "Ownership"). When the last reference drops,
// its release function is enqueued onto the owning DeferredFree at the
// device's current frame number rather than run inline.
type Tracker struct {
	mu       sync.Mutex
	refs     int
	released bool
	free     *DeferredFree
	kind     Kind
	release  func()
}

// NewTracker returns a Tracker with one reference held, to be released
// onto free under kind when the last reference drops.
func NewTracker(free *DeferredFree, kind Kind, release func()) *Tracker {
	return &Tracker{refs: 1, free: free, kind: kind, release: release}
}

// Retain adds a reference.
func (t *Tracker) Retain() {
	t.mu.Lock()
	t.refs++
	t.mu.Unlock()
}

// Release drops a reference. On the last release, the tracker's
// release func is enqueued on its DeferredFree at frameCount.
func (t *Tracker) Release(frameCount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		return
	}
	t.refs--
	if t.refs > 0 {
		return
	}
	t.released = true
	release := t.release
	t.free.Enqueue(t.kind, frameCount, release)
}

// RefCount reports the current reference count, for tests.
func (t *Tracker) RefCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refs
}
