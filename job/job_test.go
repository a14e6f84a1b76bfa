// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package job

import (
	"sync/atomic"
	"testing"
)

func TestExecuteWaitDrains(t *testing.T) {
	pool := NewPool()
	ctx := pool.NewContext()
	var ran atomic.Bool
	pool.Execute(ctx, func(jobIndex, groupID, groupIndex int) {
		ran.Store(true)
	})
	pool.Wait(ctx)
	if !ran.Load() {
		t.Fatalf("task did not run before Wait returned")
	}
}

func TestDispatchCoversRange(t *testing.T) {
	pool := NewPool()
	ctx := pool.NewContext()
	const n = 97
	var seen [n]atomic.Bool
	pool.Dispatch(ctx, n, 8, func(jobIndex, groupID, groupIndex int) {
		seen[jobIndex].Store(true)
	})
	pool.Wait(ctx)
	for i := range seen {
		if !seen[i].Load() {
			t.Fatalf("dispatch index %d never ran", i)
		}
	}
}

func TestDispatchGroupIndexing(t *testing.T) {
	pool := NewPool()
	ctx := pool.NewContext()
	var mismatches atomic.Int64
	pool.Dispatch(ctx, 10, 3, func(jobIndex, groupID, groupIndex int) {
		wantGroup := jobIndex / 3
		wantIndex := jobIndex % 3
		if groupID != wantGroup || groupIndex != wantIndex {
			mismatches.Add(1)
		}
	})
	pool.Wait(ctx)
	if mismatches.Load() != 0 {
		t.Fatalf("%d jobs had wrong group/index", mismatches.Load())
	}
}

func TestCancelIsCooperative(t *testing.T) {
	pool := NewPool()
	ctx := pool.NewContext()
	pool.Execute(ctx, func(jobIndex, groupID, groupIndex int) {
		ctx.Cancel()
	})
	pool.Wait(ctx)
	if !ctx.Cancelled() {
		t.Fatalf("context not cancelled after task called Cancel")
	}
}

func TestRunInlineRunsDuringWait(t *testing.T) {
	pool := NewPool()
	ctx := pool.NewContext()
	ctx.AllowWorkOnMainThread = true
	var ran atomic.Bool
	ctx.RunInline(func() { ran.Store(true) })
	pool.Wait(ctx)
	if !ran.Load() {
		t.Fatalf("inline task did not run during Wait")
	}
}
