// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package job provides the engine's fixed-size worker pool: a Context that
// counts outstanding work, Execute/Dispatch to submit tasks against it, and
// Wait to block until the context drains. It is built on
// golang.org/x/sync/errgroup for the submit/wait plumbing, with a weighted
// semaphore capping how many tasks run at once.
package job

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Task is a unit of work submitted to a Context. jobIndex is the item index
// within a Dispatch (always 0 for a plain Execute); groupID/groupIndex are
// only meaningful for Dispatch and are -1 otherwise.
type Task func(jobIndex, groupID, groupIndex int)

// Context counts outstanding work submitted through it and is waited on by
// Wait. A Context is single-use: create a new one per logical unit of work
// (a scene update, say) rather than reusing one across frames.
type Context struct {
	group      *errgroup.Group
	ctx        context.Context
	outstanding atomic.Int64
	cancelled   atomic.Bool

	// AllowWorkOnMainThread lets Wait assist by draining this context's
	// own pending tasks on the calling goroutine before blocking, rather
	// than sitting idle while worker goroutines finish.
	AllowWorkOnMainThread bool

	mu      sync.Mutex
	pending []func()
}

// NewContext returns a Context bound to pool.
func (p *Pool) NewContext() *Context {
	g, ctx := errgroup.WithContext(p.ctx)
	return &Context{group: g, ctx: ctx}
}

// Cancel sets the cooperative cancel flag tasks submitted to ctx should
// check. The job system does not forcibly stop a running task; long-running
// work (terrain generation, say) is expected to poll Cancelled.
func (c *Context) Cancel() { c.cancelled.Store(true) }

// Cancelled reports whether Cancel has been called on this context.
func (c *Context) Cancelled() bool { return c.cancelled.Load() }

// Pool is the fixed-size worker pool every Context submits into.
type Pool struct {
	sem *semaphoreGate
	ctx context.Context
}

// NewPool returns a Pool sized to hardware concurrency minus one (minimum
// one), matching the spec's "fixed-size worker pool (hardware concurrency
// minus one)".
func NewPool() *Pool {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return &Pool{sem: newSemaphoreGate(n), ctx: context.Background()}
}

// Execute submits a single task to ctx. Tasks submitted to the same
// context have no guaranteed inter-ordering; ordering between independent
// contexts is likewise undefined.
func (p *Pool) Execute(c *Context, fn Task) {
	c.outstanding.Add(1)
	p.sem.acquire()
	c.group.Go(func() error {
		defer p.sem.release()
		defer c.outstanding.Add(-1)
		fn(0, -1, -1)
		return nil
	})
}

// Dispatch partitions the range [0,n) into groups of groupSize, each group
// running sequentially inside one task, and submits one task per group to
// ctx. fn receives the global jobIndex, the group's id, and the job's index
// within its group.
func (p *Pool) Dispatch(c *Context, n, groupSize int, fn Task) {
	if groupSize < 1 {
		groupSize = 1
	}
	groupID := 0
	for start := 0; start < n; start += groupSize {
		end := start + groupSize
		if end > n {
			end = n
		}
		group := groupID
		groupID++
		lo, hi := start, end
		c.outstanding.Add(1)
		p.sem.acquire()
		c.group.Go(func() error {
			defer p.sem.release()
			defer c.outstanding.Add(-1)
			for i := lo; i < hi; i++ {
				fn(i, group, i-lo)
			}
			return nil
		})
	}
}

// Wait blocks until ctx's outstanding counter has drained. When
// AllowWorkOnMainThread is set, the calling goroutine first drains any
// tasks queued directly on ctx via RunInline before falling back to
// blocking on the worker pool.
func (p *Pool) Wait(c *Context) {
	if c.AllowWorkOnMainThread {
		c.drainInline()
	}
	_ = c.group.Wait()
}

// RunInline queues fn to run on whichever goroutine next calls Wait with
// AllowWorkOnMainThread set, instead of handing it to the worker pool. Used
// sparingly, for the rare task cheap enough that pool dispatch overhead
// would dominate it.
func (c *Context) RunInline(fn func()) {
	c.mu.Lock()
	c.pending = append(c.pending, fn)
	c.mu.Unlock()
}

func (c *Context) drainInline() {
	c.mu.Lock()
	tasks := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}
}
