// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import "testing"

func TestSelectPhysicalDevicePrefersDiscrete(t *testing.T) {
	candidates := []PhysicalDeviceInfo{
		{Name: "integrated", Discrete: false, GraphicsFamily: 0, ComputeFamily: 0, TransferFamily: 1},
		{Name: "discrete", Discrete: true, GraphicsFamily: 0, ComputeFamily: 0, TransferFamily: 1},
	}
	picked, err := SelectPhysicalDevice(candidates)
	if err != nil {
		t.Fatal(err)
	}
	if picked.Name != "discrete" {
		t.Fatalf("got %q, want discrete GPU preferred", picked.Name)
	}
}

func TestSelectPhysicalDeviceRejectsMissingFamilies(t *testing.T) {
	candidates := []PhysicalDeviceInfo{{Name: "no-compute", GraphicsFamily: 0, ComputeFamily: -1, TransferFamily: 1}}
	if _, err := SelectPhysicalDevice(candidates); err == nil {
		t.Fatalf("expected rejection of a candidate missing a required queue family")
	}
}

func TestSubmitCommandListAdvancesFrameAndDrainsDeferredFree(t *testing.T) {
	d := newTestDevice()
	var destroyed bool
	d.Free.Enqueue(KindBuffer, 0, func() { destroyed = true })

	cl := d.BeginCommandList(640, 480)
	d.SubmitCommandList(cl)
	if destroyed {
		t.Fatalf("destroyed before BufferCount frames elapsed")
	}

	for i := 0; i < BufferCount; i++ {
		cl := d.BeginCommandList(640, 480)
		d.SubmitCommandList(cl)
	}
	if !destroyed {
		t.Fatalf("entry retired at frame 0 should be destroyed by frame %d", d.FrameCount())
	}
}

func TestBeginCommandListReusesFreelist(t *testing.T) {
	d := newTestDevice()
	cl1 := d.BeginCommandList(640, 480)
	d.SubmitCommandList(cl1)
	cl2 := d.BeginCommandList(640, 480)
	if cl1 != cl2 {
		t.Fatalf("expected the freed command list to be reused")
	}
}
