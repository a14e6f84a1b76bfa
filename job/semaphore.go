// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package job

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// semaphoreGate caps the number of pool tasks running at once to the
// worker-pool size, using a weighted semaphore rather than a buffered
// channel.
type semaphoreGate struct {
	sem *semaphore.Weighted
	ctx context.Context
}

func newSemaphoreGate(capacity int) *semaphoreGate {
	return &semaphoreGate{sem: semaphore.NewWeighted(int64(capacity)), ctx: context.Background()}
}

func (g *semaphoreGate) acquire() {
	// background context never cancels; Acquire only blocks on capacity.
	_ = g.sem.Acquire(g.ctx, 1)
}

func (g *semaphoreGate) release() { g.sem.Release(1) }
