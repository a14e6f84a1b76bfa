// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package terrain

import (
	"testing"

	vanta "github.com/vanta-engine/vanta"
	"github.com/vanta-engine/vanta/job"
)

func TestGenerateMeshFlatFieldIsAllGround(t *testing.T) {
	staging := vanta.NewScene(job.NewPool())
	flat := Const{V: 0}
	res := GenerateMesh(flat, ChunkDesc{Size: 10, Resolution: 5, HeightScale: 10}, staging)

	if res.Mesh == vanta.InvalidEntity {
		t.Fatalf("got invalid mesh entity")
	}
	if res.GroundMaterial == vanta.InvalidEntity || res.RockMaterial == vanta.InvalidEntity {
		t.Fatalf("materials not created")
	}
}

func TestSampleGradientInterpolates(t *testing.T) {
	stops := []GradientStop{
		{Height: 0, Color: [4]uint8{0, 0, 0, 255}},
		{Height: 1, Color: [4]uint8{200, 200, 200, 255}},
	}
	mid := sampleGradient(stops, 0.5)
	if mid[0] != 100 {
		t.Fatalf("got R %d at h=0.5, want 100", mid[0])
	}
	below := sampleGradient(stops, -1)
	if below != stops[0].Color {
		t.Fatalf("below-range height did not clamp to first stop")
	}
	above := sampleGradient(stops, 2)
	if above != stops[1].Color {
		t.Fatalf("above-range height did not clamp to last stop")
	}
}

func TestHeightAtClampsToGrid(t *testing.T) {
	grid := [][]float64{{1, 2}, {3, 4}}
	if heightAt(grid, -1, -1) != 1 {
		t.Fatalf("negative indices did not clamp to the origin corner")
	}
	if heightAt(grid, 5, 5) != 4 {
		t.Fatalf("out-of-range indices did not clamp to the far corner")
	}
}
