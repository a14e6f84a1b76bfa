// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import (
	"github.com/vanta-engine/vanta/internal/rhivk"
	"github.com/vanta-engine/vanta/math/lin"
	"github.com/vanta-engine/vanta/rhi"
)

// Pipelines holds the process-wide pipeline-state table the renderer
// selects from by material shader type, plus the fixed samplers it binds.
// Built once at init; shader reload clears rhi's dynamic pipeline cache
// and these are revalidated on the next draw (spec §4.10).
type Pipelines struct {
	ByShader   map[MaterialShader]*rhi.PipelineState
	Sky        *rhi.PipelineState
	Outline    *rhi.PipelineState
	WireCube   *rhi.PipelineState
	PointClamp *rhi.Sampler
}

// Renderer draws a View against an rhi.Device: per-frame/camera/material
// constant buffers, the opaque scene, sky, optional debug overlays, and
// the outline post-process (spec §4.10).
type Renderer struct {
	device    *rhi.Device
	pipelines *Pipelines

	frameBuf    *rhi.Buffer
	cameraBuf   *rhi.Buffer
	materialBuf *rhi.Buffer
	miscBuf     *rhi.Buffer

	currentVP lin.M4

	DebugAABBs  bool
	DebugLights bool
}

// NewRenderer allocates the Frame/Camera/Material/Misc constant buffers
// as Upload buffers (host-visible, mapped) and wires up the pipeline
// table the caller built for the active shader set.
func NewRenderer(device *rhi.Device, pipelines *Pipelines) *Renderer {
	return &Renderer{
		device:      device,
		pipelines:   pipelines,
		frameBuf:    device.CreateBuffer(rhi.BufferDesc{Size: 65536, Usage: rhi.BufferUsageUpload, Bind: rhi.BindConstant}),
		cameraBuf:   device.CreateBuffer(rhi.BufferDesc{Size: 512, Usage: rhi.BufferUsageUpload, Bind: rhi.BindConstant}),
		materialBuf: device.CreateBuffer(rhi.BufferDesc{Size: 256, Usage: rhi.BufferUsageUpload, Bind: rhi.BindConstant}),
		miscBuf:     device.CreateBuffer(rhi.BufferDesc{Size: 256, Usage: rhi.BufferUsageUpload, Bind: rhi.BindConstant}),
	}
}

// UpdatePerFrame writes the Frame and Camera constant buffers for this
// draw, populating Frame from scene/view/time and Camera from cam, and
// caches cam.VP for DrawScene's per-object Misc CB.
func (r *Renderer) UpdatePerFrame(scene *Scene, view *View, cam *Camera, timeSeconds float64) {
	var frame FrameCB
	UpdatePerFrameData(scene, view, timeSeconds, &frame)
	rhi.WriteStruct(r.frameBuf, &frame)

	camCB := CameraCB{
		Proj: cam.Proj, View: cam.View, VP: cam.VP,
		InvProj: cam.InvProj, InvView: cam.InvView, InvVP: cam.InvVP,
		Position: cam.Position,
	}
	rhi.WriteStruct(r.cameraBuf, &camCB)
	r.currentVP = cam.VP
}

// DrawScene iterates view.ObjectIndexes, binding each object's transform
// into the Misc CB and, per mesh subset, a Material CB and the subset's
// material-selected pipeline (spec §4.10's drawScene).
func (r *Renderer) DrawScene(scene *Scene, view *View, cl *rhi.CommandList) {
	cl.Binder.BindConstantBuffer(SlotFrame, r.frameBuf, 0)
	cl.Binder.BindConstantBuffer(SlotCamera, r.cameraBuf, 0)

	lastStencil := uint8(0xFF)
	for _, idx := range view.ObjectIndexes {
		obj := &scene.Objects.data[idx]
		e := scene.Objects.getEntity(idx)
		t := scene.Transforms.getComponent(e)
		mesh := scene.Meshes.getComponent(obj.Mesh)
		if t == nil || mesh == nil {
			continue
		}
		ref := obj.StencilRef
		if ref > 15 {
			ref = 15
		}
		if ref != lastStencil {
			cl.StencilRef = ref
			lastStencil = ref
		}

		var misc MiscCB
		misc.Model = t.World
		misc.ModelVP.Mult(&t.World, &r.currentVP)
		rhi.WriteStruct(r.miscBuf, &misc)
		cl.Binder.BindConstantBuffer(SlotMisc, r.miscBuf, 0)

		for _, sub := range mesh.Subsets {
			mat := scene.Materials.getComponent(sub.Material)
			if mat == nil {
				continue
			}
			matCB := MaterialCB{BaseColor: mat.BaseColor, Roughness: mat.Roughness, Metalness: mat.Metalness}
			rhi.WriteStruct(r.materialBuf, &matCB)
			cl.Binder.BindConstantBuffer(SlotMaterial, r.materialBuf, 0)

			pso := r.pipelines.ByShader[mat.Shader]
			if pso == nil {
				continue
			}
			cl.Draw(pso)
		}
	}
}

// DrawSky draws the fullscreen sky triangle with stencil ref 255,
// leaning on the sky pipeline state's own depth-GreaterEqual,
// write-disabled, CW-front-face configuration (spec §4.10).
func (r *Renderer) DrawSky(cl *rhi.CommandList) {
	if r.pipelines.Sky == nil {
		return
	}
	cl.StencilRef = 255
	cl.Draw(r.pipelines.Sky)
}

// DrawDebugScene draws, when enabled, one wire-cube per visible object's
// AABB and one per visible point light's AABB (spec §4.10). The vertex
// data backing the shared wire-cube geometry is an asset-layer concern
// outside the RHI bookkeeping modeled here; this only issues the draws.
func (r *Renderer) DrawDebugScene(scene *Scene, view *View, cl *rhi.CommandList) {
	if r.pipelines.WireCube == nil {
		return
	}
	if r.DebugAABBs {
		for range view.ObjectIndexes {
			cl.Draw(r.pipelines.WireCube)
		}
	}
	if r.DebugLights {
		for _, idx := range view.LightIndexes {
			if scene.Lights.data[idx].Type == Point {
				cl.Draw(r.pipelines.WireCube)
			}
		}
	}
}

// PostprocessOutline binds the point-clamp sampler and input texture and
// draws the fullscreen outline triangle; the outline pipeline's own state
// carries depth-testing disabled and double-sided rasterization.
// thickness, threshold, time and color are accepted but not recorded into
// cl: no PostProcessPush is built here, and CommandList carries no
// push-constant data.
func (r *Renderer) PostprocessOutline(input *rhi.Texture, cl *rhi.CommandList, thickness, threshold, time float32, color [4]float32) {
	if r.pipelines.Outline == nil {
		return
	}
	cl.Binder.BindSampler(0, r.pipelines.PointClamp)
	cl.Binder.BindResource(0, input)
	cl.Draw(r.pipelines.Outline)
}

// SkyRasterizer and SkyDepthStencil, OutlineRasterizer and
// OutlineDepthStencil are the fixed-function states the two
// fullscreen-triangle pipelines must be created with (spec §4.10).

func SkyRasterizer() rhi.RasterizerState {
	return rhi.RasterizerState{CullMode: rhivk.CullModeBack, FrontFace: rhivk.FrontFaceClockwise}
}

func SkyDepthStencil() rhi.DepthStencilState {
	return rhi.DepthStencilState{
		DepthTestEnable:  true,
		DepthWriteEnable: false,
		DepthCompareOp:   rhivk.CompareOpGreaterOrEqual,
	}
}

func OutlineRasterizer() rhi.RasterizerState {
	return rhi.RasterizerState{CullMode: rhivk.CullModeNone}
}

func OutlineDepthStencil() rhi.DepthStencilState {
	return rhi.DepthStencilState{DepthTestEnable: false}
}
