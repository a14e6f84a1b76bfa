// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import "testing"

func TestCopyAllocatorStageAndFlush(t *testing.T) {
	d := newTestDevice()
	buf := d.CreateBuffer(BufferDesc{Size: 4, Usage: BufferUsageUpload, Bind: BindConstant})
	target := d.Copy.StageToBuffer(buf, []byte{1, 2, 3, 4})
	if target != 1 {
		t.Fatalf("got target %d, want 1 (first monotonically-increasing value)", target)
	}

	signaled := d.Copy.Flush()
	if signaled != target {
		t.Fatalf("got signaled %d, want %d", signaled, target)
	}
	if buf.Mapped[0] != 1 || buf.Mapped[3] != 4 {
		t.Fatalf("staged data not applied to buffer: %v", buf.Mapped)
	}
}

func TestCopyAllocatorFlushIsIdempotentWhenEmpty(t *testing.T) {
	d := newTestDevice()
	first := d.Copy.Flush()
	second := d.Copy.Flush()
	if first != second {
		t.Fatalf("flushing with nothing pending changed the signaled value: %d -> %d", first, second)
	}
}

func TestNextPow2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 1024: 1024, 1025: 2048}
	for n, want := range cases {
		if got := nextPow2(n); got != want {
			t.Fatalf("nextPow2(%d) = %d, want %d", n, got, want)
		}
	}
}
