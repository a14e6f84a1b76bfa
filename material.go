// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

// MaterialShader selects the pipeline family a material's subsets draw
// with. Matches the wire enum in the shared shader header:
// 0 = BRDF, 1 = DisneyBRDF, 2 = Unlit, 3 = Terrain.
type MaterialShader uint32

const (
	BRDF MaterialShader = iota
	DisneyBRDF
	Unlit
	TerrainShader
)

// MaterialFlags are bit flags carried alongside a material's shading mode.
type MaterialFlags uint32

const (
	// UsesVertexColors tells the renderer to bind the mesh's color stream
	// and multiply it into the base color rather than leaving it unread.
	UsesVertexColors MaterialFlags = 1 << iota
)

// Material is a shading recipe: which pipeline family to draw with and the
// BRDF parameters fed to its constant buffer.
type Material struct {
	Shader     MaterialShader
	BaseColor  [4]float32
	Roughness  float32
	Metalness  float32
	Flags      MaterialFlags
}

// newMaterial returns a default BRDF material: white, half-rough,
// non-metallic.
func newMaterial() Material {
	return Material{
		Shader:    BRDF,
		BaseColor: [4]float32{1, 1, 1, 1},
		Roughness: 0.5,
	}
}
