// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import (
	"testing"

	"github.com/vanta-engine/vanta/math/lin"
)

// TestViewFrustumCullingS2 builds 100 cubes on a line at x=i, a camera at
// the origin facing +x, and checks objectCount is strictly less than 100
// and grows monotonically with fov (spec S2).
func TestViewFrustumCullingS2(t *testing.T) {
	countAtFov := func(fov float64) int {
		s, _ := newTestScene()
		mat := s.CreateMaterial("m")
		mesh := s.CreateMesh("cube")
		*s.Meshes.getComponent(mesh) = unitCube()
		s.Meshes.getComponent(mesh).Subsets = []MeshSubset{{Material: mat, IndexCount: 6}}

		for i := 0; i < 100; i++ {
			obj := s.CreateObject("o", mesh)
			s.Transforms.getComponent(obj).move(lin.V3{X: float64(i)})
		}

		cam := s.CreateCamera("cam")
		c := s.Cameras.getComponent(cam)
		c.Position = lin.V3{}
		c.Target = lin.V3{X: 1}
		c.Up = lin.V3{Y: 1}
		c.FovDeg = fov
		c.Aspect = 1
		c.Near, c.Far = 0.1, 1000

		s.Update(0)
		var v View
		v.Reset(s, c)
		return len(v.ObjectIndexes)
	}

	narrow := countAtFov(60)
	wide := countAtFov(120)

	if narrow >= 100 {
		t.Fatalf("got objectCount %d at fov 60, want strictly less than 100", narrow)
	}
	if wide < narrow {
		t.Fatalf("got objectCount %d at fov 120, want >= %d at fov 60 (monotonic in fov)", wide, narrow)
	}
}

func TestBoxInFrustumRejectsBehindCamera(t *testing.T) {
	s, _ := newTestScene()
	cam := s.CreateCamera("cam")
	c := s.Cameras.getComponent(cam)
	c.Position = lin.V3{}
	c.Target = lin.V3{X: 1}
	c.Up = lin.V3{Y: 1}
	c.FovDeg = 60
	c.Aspect = 1
	c.Near, c.Far = 0.1, 1000
	s.Update(0)

	behind := AABB{Min: lin.V3{X: -10, Y: -1, Z: -1}, Max: lin.V3{X: -8, Y: 1, Z: 1}}
	if boxInFrustum(behind, &c.Frustum) {
		t.Fatalf("box entirely behind the camera was admitted")
	}
}
