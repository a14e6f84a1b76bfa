// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

// CommandList is an opaque, per-thread command-recording handle. Each
// carries its own descriptor Binder (spec §5: "Per command list,
// descriptor binders are single-threaded... and require no lock").
type CommandList struct {
	Binder           Binder
	ScissorW         uint32
	ScissorH         uint32
	StencilRef       uint8
	BoundPSO         *PipelineState
	VertexStrides    map[uint32]uint32
	ActiveRenderPass *RenderPass
	draws            int
}

func newCommandList() *CommandList {
	return &CommandList{VertexStrides: map[uint32]uint32{}}
}

func (cl *CommandList) reset() {
	cl.BoundPSO = nil
	cl.StencilRef = 0
	cl.draws = 0
	cl.ActiveRenderPass = nil
	for k := range cl.VertexStrides {
		delete(cl.VertexStrides, k)
	}
}

// BeginRenderPass marks rp as the command list's active render pass.
// validatePSO folds rp's hash into the dynamic-pipeline cache key so two
// draws with identical pso and vertex strides under different render
// passes never collide on one cache entry (spec §4.5/invariant 8).
func (cl *CommandList) BeginRenderPass(rp *RenderPass) {
	cl.ActiveRenderPass = rp
}

// EndRenderPass clears the command list's active render pass.
func (cl *CommandList) EndRenderPass() {
	cl.ActiveRenderPass = nil
}

// SetVertexBufferStride records the stride used to compute
// AppendAlignedElement offsets for the next draw's input layout.
func (cl *CommandList) SetVertexBufferStride(binding uint32, stride uint32) {
	cl.VertexStrides[binding] = stride
}

// Draw records a draw call against the currently bound pipeline state,
// flushing the descriptor binder first.
func (cl *CommandList) Draw(pso *PipelineState) {
	cl.BoundPSO = pso
	cl.Binder.Flush(cl, pso)
	cl.draws++
}

// DrawCount reports the number of draws recorded since reset, for tests.
func (cl *CommandList) DrawCount() int {
	return cl.draws
}
