// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package terrain

import (
	vanta "github.com/vanta-engine/vanta"
	"github.com/vanta-engine/vanta/math/lin"
)

// GradientStop is one control point of a height-to-color ramp:
// normalized height in [0,1] maps to Color. Stops must be given in
// ascending Height order.
type GradientStop struct {
	Height float64
	Color  [4]uint8
}

// RockColor is the fixed vertex color assigned to triangles steep
// enough to be split into the rock sub-mesh, regardless of height.
var RockColor = [4]uint8{110, 100, 95, 255}

// ChunkDesc parameterizes one call to GenerateMesh: the chunk's
// world-space footprint, sample resolution, vertical scale, and the
// height-to-color gradient for its ground sub-mesh.
type ChunkDesc struct {
	OriginX, OriginY float64
	Size             float64
	Resolution       int // vertices per side, clamped to >= 2.
	HeightScale      float64
	Gradient         []GradientStop
}

// ChunkResult names the entities GenerateMesh creates in the staging
// scene, for the caller to merge into the main scene at its next
// ThreadSafePoint.
type ChunkResult struct {
	Object         vanta.Entity
	Mesh           vanta.Entity
	GroundMaterial vanta.Entity
	RockMaterial   vanta.Entity
}

// GenerateMesh samples n over a Resolution x Resolution chunk-local
// grid, triangulates the resulting height field as a regular grid of
// quads (the "external collaborator" triangulator's contract reduced
// to its simplest concrete form: height grid in, point list and
// triangle list out), colors each vertex from Gradient keyed on
// normalized height, and routes each triangle into either the ground
// or the rock sub-mesh depending on whether its face normal's dot with
// up falls below 0.55. The two sub-meshes become separate subsets of
// one Mesh sharing one vertex buffer, bound to a ground and a rock
// material respectively, and are emitted as object+mesh+material
// entities into staging.
func GenerateMesh(n Node, desc ChunkDesc, staging *vanta.Scene) ChunkResult {
	res := desc.Resolution
	if res < 2 {
		res = 2
	}
	step := desc.Size / float64(res-1)

	heights := make([][]float64, res)
	for i := range heights {
		heights[i] = make([]float64, res)
		for j := range heights[i] {
			wx := desc.OriginX + float64(i)*step
			wy := desc.OriginY + float64(j)*step
			heights[i][j] = n.Value(wx, wy) * desc.HeightScale
		}
	}

	minH, maxH := heights[0][0], heights[0][0]
	for _, row := range heights {
		for _, h := range row {
			if h < minH {
				minH = h
			}
			if h > maxH {
				maxH = h
			}
		}
	}
	rangeH := maxH - minH
	if rangeH == 0 {
		rangeH = 1
	}

	idx := func(i, j int) int { return i*res + j }

	positions := make([]lin.V3, res*res)
	colors := make([][4]uint8, res*res)
	normals := make([]lin.V3, res*res)

	for i := 0; i < res; i++ {
		for j := 0; j < res; j++ {
			wx := desc.OriginX + float64(i)*step
			wy := desc.OriginY + float64(j)*step
			h := heights[i][j]
			k := idx(i, j)
			positions[k] = lin.V3{X: wx, Y: h, Z: wy}
			colors[k] = sampleGradient(desc.Gradient, (h-minH)/rangeH)

			hl := heightAt(heights, i-1, j)
			hr := heightAt(heights, i+1, j)
			hd := heightAt(heights, i, j-1)
			hu := heightAt(heights, i, j+1)
			norm := lin.V3{X: hl - hr, Y: 2 * step, Z: hd - hu}
			norm.Unit()
			normals[k] = norm
		}
	}

	up := lin.V3{Y: 1}
	var groundIdx, rockIdx []uint32
	addTri := func(i0, i1, i2 uint32) {
		p0, p1, p2 := positions[i0], positions[i1], positions[i2]
		var e1, e2, fn lin.V3
		e1.Sub(&p1, &p0)
		e2.Sub(&p2, &p0)
		fn.Cross(&e2, &e1) // upward for the grid's a,b,c / a,c,d winding.
		fn.Unit()
		if fn.Dot(&up) < 0.55 {
			colors[i0], colors[i1], colors[i2] = RockColor, RockColor, RockColor
			rockIdx = append(rockIdx, i0, i1, i2)
		} else {
			groundIdx = append(groundIdx, i0, i1, i2)
		}
	}
	for i := 0; i < res-1; i++ {
		for j := 0; j < res-1; j++ {
			a := uint32(idx(i, j))
			b := uint32(idx(i+1, j))
			c := uint32(idx(i+1, j+1))
			d := uint32(idx(i, j+1))
			addTri(a, b, c)
			addTri(a, c, d)
		}
	}

	groundMat := staging.CreateMaterial("terrain-ground")
	staging.SetMaterial(groundMat, vanta.Material{
		Shader: vanta.TerrainShader, BaseColor: [4]float32{1, 1, 1, 1}, Roughness: 0.9,
		Flags: vanta.UsesVertexColors,
	})
	rockMat := staging.CreateMaterial("terrain-rock")
	staging.SetMaterial(rockMat, vanta.Material{
		Shader: vanta.TerrainShader, BaseColor: [4]float32{1, 1, 1, 1}, Roughness: 1,
		Flags: vanta.UsesVertexColors,
	})

	indices := make([]uint32, 0, len(groundIdx)+len(rockIdx))
	indices = append(indices, groundIdx...)
	indices = append(indices, rockIdx...)

	var subsets []vanta.MeshSubset
	if len(groundIdx) > 0 {
		subsets = append(subsets, vanta.MeshSubset{Material: groundMat, IndexOffset: 0, IndexCount: uint32(len(groundIdx))})
	}
	if len(rockIdx) > 0 {
		subsets = append(subsets, vanta.MeshSubset{Material: rockMat, IndexOffset: uint32(len(groundIdx)), IndexCount: uint32(len(rockIdx))})
	}

	meshEntity := staging.CreateMesh("terrain-chunk")
	staging.SetMesh(meshEntity, vanta.Mesh{
		Positions: positions,
		Normals:   normals,
		Colors:    colors,
		Indices:   indices,
		Subsets:   subsets,
	})

	objEntity := staging.CreateObject("terrain-chunk", meshEntity)
	staging.SetLocalTransform(objEntity, lin.V3{X: 1, Y: 1, Z: 1}, lin.V3{}, lin.Q{W: 1})

	return ChunkResult{Object: objEntity, Mesh: meshEntity, GroundMaterial: groundMat, RockMaterial: rockMat}
}

// heightAt clamps (i,j) to the grid's valid range, so edge vertices'
// central-difference normals fall back to a one-sided difference
// instead of reading out of bounds.
func heightAt(heights [][]float64, i, j int) float64 {
	res := len(heights)
	if i < 0 {
		i = 0
	}
	if i >= res {
		i = res - 1
	}
	if j < 0 {
		j = 0
	}
	if j >= len(heights[i]) {
		j = len(heights[i]) - 1
	}
	return heights[i][j]
}

// sampleGradient linearly interpolates color between the two stops
// bracketing h, clamping to the first/last stop outside their range.
func sampleGradient(stops []GradientStop, h float64) [4]uint8 {
	if len(stops) == 0 {
		return [4]uint8{255, 255, 255, 255}
	}
	if h <= stops[0].Height {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if h <= stops[i].Height {
			span := stops[i].Height - stops[i-1].Height
			t := 0.0
			if span != 0 {
				t = (h - stops[i-1].Height) / span
			}
			return lerpColor(stops[i-1].Color, stops[i].Color, t)
		}
	}
	return stops[len(stops)-1].Color
}

func lerpColor(a, b [4]uint8, t float64) [4]uint8 {
	var c [4]uint8
	for i := range c {
		c[i] = uint8(float64(a[i]) + (float64(b[i])-float64(a[i]))*t)
	}
	return c
}
