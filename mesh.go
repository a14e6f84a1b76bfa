// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import (
	"math"

	"github.com/vanta-engine/vanta/math/lin"
)

// MeshSubset is a contiguous run of indices drawn with one material.
type MeshSubset struct {
	Material    Entity
	IndexOffset uint32
	IndexCount  uint32
}

// gpuVertex is the interleaved position+encoded-normal layout the mesh pass
// builds for the vertex-position GPU buffer: 12 bytes of position followed
// by a 4-byte octahedral-packed normal.
type gpuVertex struct {
	Position [3]float32
	Normal   uint32
}

// Mesh is CPU-side geometry plus the GPU-ready buffers the mesh pass
// derives from it. Positions, Normals, Colors, and Indices are the
// authored data; the GPU* fields and AABB are rebuilt once, the first time
// a mesh without them is seen in a scene update.
type Mesh struct {
	Positions []lin.V3
	Normals   []lin.V3
	Colors    [][4]uint8 // empty when the mesh carries no vertex colors.
	Indices   []uint32
	Subsets   []MeshSubset

	AABB AABB

	built       bool
	GPUVertices []gpuVertex // packed position+normal stream.
	GPUColors   []uint32    // packed RGBA8 stream, one per vertex, empty if Colors is.
	GPUIndices  []uint32
}

// packNormal encodes a unit normal into 32 bits using an octahedral
// mapping: project the sphere onto the octahedron, fold the lower
// hemisphere into the upper one, then quantize each axis to 16 bits. This
// is the same trick used to keep the vertex-position stream's stride small
// while still carrying full per-vertex normals.
func packNormal(n lin.V3) uint32 {
	absSum := math.Abs(n.X) + math.Abs(n.Y) + math.Abs(n.Z)
	if absSum == 0 {
		return 0
	}
	ox, oy := n.X/absSum, n.Y/absSum
	if n.Z < 0 {
		ox, oy = (1-math.Abs(oy))*sign(ox), (1-math.Abs(ox))*sign(oy)
	}
	qx := uint32(math.Round((ox*0.5 + 0.5) * 65535))
	qy := uint32(math.Round((oy*0.5 + 0.5) * 65535))
	return qx | qy<<16
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func packColor(c [4]uint8) uint32 {
	return uint32(c[0]) | uint32(c[1])<<8 | uint32(c[2])<<16 | uint32(c[3])<<24
}

// meshPass builds GPU buffers and the AABB for every mesh that does not
// already have them. Meshes are immutable once built within a frame's
// lifetime; re-authoring one (appending vertices, say) must clear built to
// force a rebuild.
func meshPass(meshes *componentManager[Mesh]) {
	meshes.each(func(_ Entity, m *Mesh) {
		if m.built {
			return
		}
		buildMesh(m)
	})
}

func buildMesh(m *Mesh) {
	m.GPUVertices = make([]gpuVertex, len(m.Positions))
	box := emptyAABB()
	for i, p := range m.Positions {
		var n lin.V3
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		m.GPUVertices[i] = gpuVertex{
			Position: [3]float32{float32(p.X), float32(p.Y), float32(p.Z)},
			Normal:   packNormal(n),
		}
		box = box.encapsulate(p)
	}
	m.AABB = box

	if len(m.Colors) > 0 {
		m.GPUColors = make([]uint32, len(m.Colors))
		for i, c := range m.Colors {
			m.GPUColors[i] = packColor(c)
		}
	} else {
		m.GPUColors = nil
	}

	m.GPUIndices = append([]uint32(nil), m.Indices...)
	m.built = true
}
