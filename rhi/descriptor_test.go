// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import (
	"testing"

	"github.com/vanta-engine/vanta/internal/rhivk"
)

func testPSO(t *testing.T, d *Device) *PipelineState {
	t.Helper()
	vs, err := d.CreateShader(ShaderDesc{Stage: rhivk.ShaderStageVertex, Code: spirvModule(8)},
		[]Binding{{Slot: 0, Type: rhivk.DescriptorTypeUniformBuffer, Count: 1}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	pso, err := d.CreatePipelineState(PipelineStateDesc{Shaders: []*Shader{vs}})
	if err != nil {
		t.Fatal(err)
	}
	return pso
}

func TestBinderDirtyOnBindChange(t *testing.T) {
	d := newTestDevice()
	cl := d.BeginCommandList(640, 480)
	buf := d.CreateBuffer(BufferDesc{Size: 64, Usage: BufferUsageUpload, Bind: BindConstant})

	cl.Binder.reset()
	if !cl.Binder.dirty {
		t.Fatalf("binder not dirty after reset")
	}
	pso := testPSO(t, d)
	if err := cl.Binder.Flush(cl, pso); err != nil {
		t.Fatal(err)
	}
	if cl.Binder.dirty {
		t.Fatalf("binder still dirty after flush")
	}

	cl.Binder.BindConstantBuffer(0, buf, 0)
	if !cl.Binder.dirty {
		t.Fatalf("binder not marked dirty after BindConstantBuffer")
	}
	if err := cl.Binder.Flush(cl, pso); err != nil {
		t.Fatal(err)
	}
	cl.Binder.BindConstantBuffer(0, buf, 0)
	if cl.Binder.dirty {
		t.Fatalf("rebinding the same buffer/offset should not mark dirty")
	}
}

func TestValidatePSOKeysOnActiveRenderPass(t *testing.T) {
	d := newTestDevice()
	cl := d.BeginCommandList(640, 480)
	pso := testPSO(t, d)

	rpA := d.CreateRenderPass(RenderPassDesc{Width: 640, Height: 480, Attachments: []AttachmentDesc{
		{Type: AttachmentRenderTarget, LoadOp: rhivk.AttachmentLoadOpClear, StoreOp: rhivk.AttachmentStoreOpStore},
	}})
	rpB := d.CreateRenderPass(RenderPassDesc{Width: 640, Height: 480, Attachments: []AttachmentDesc{
		{Type: AttachmentRenderTarget, LoadOp: rhivk.AttachmentLoadOpLoad, StoreOp: rhivk.AttachmentStoreOpStore},
	}})
	if rpA.Hash == rpB.Hash {
		t.Fatalf("render passes with different load ops hashed identically")
	}

	cl.BeginRenderPass(rpA)
	if err := validatePSO(cl, pso); err != nil {
		t.Fatal(err)
	}
	if cl.ActiveRenderPass != rpA {
		t.Fatalf("BeginRenderPass did not set the active render pass")
	}

	cl.BeginRenderPass(rpB)
	if err := validatePSO(cl, pso); err != nil {
		t.Fatal(err)
	}

	cl.EndRenderPass()
	if cl.ActiveRenderPass != nil {
		t.Fatalf("EndRenderPass did not clear the active render pass")
	}
}

func TestDescriptorPoolGrowsOnExhaustion(t *testing.T) {
	p := newDescriptorPool()
	p.capacity = 2
	if err := p.allocate(); err != nil {
		t.Fatal(err)
	}
	if err := p.allocate(); err != nil {
		t.Fatal(err)
	}
	// Pool exhausted at inUse==capacity==2; next allocate must grow and
	// succeed rather than return an immediate out-of-pool-memory error.
	if err := p.allocate(); err != nil {
		t.Fatalf("pool did not grow to absorb the next allocation: %v", err)
	}
	if p.capacity != 4 {
		t.Fatalf("got capacity %d, want 4 after one growth", p.capacity)
	}
}
