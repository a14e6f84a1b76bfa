// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import (
	"math"
	"testing"

	"github.com/vanta-engine/vanta/job"
	"github.com/vanta-engine/vanta/math/lin"
)

func unitCube() Mesh {
	positions := []lin.V3{
		{X: -0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: -0.5},
		{X: 0.5, Y: 0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: -0.5},
		{X: -0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: 0.5},
		{X: 0.5, Y: 0.5, Z: 0.5}, {X: -0.5, Y: 0.5, Z: 0.5},
	}
	normals := make([]lin.V3, len(positions))
	for i := range normals {
		normals[i] = lin.V3{Y: 1}
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}
	return Mesh{Positions: positions, Normals: normals, Indices: indices}
}

func newTestScene() (*Scene, *job.Pool) {
	pool := job.NewPool()
	return NewScene(pool), pool
}

func almostEqual(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestSceneHierarchyTranslation(t *testing.T) {
	s, _ := newTestScene()
	parent := s.CreateEntity("parent")
	child := s.CreateEntity("child")
	s.Transforms.getComponent(parent).setLocal(lin.V3{X: 1, Y: 1, Z: 1}, lin.V3{X: 10}, lin.Q{W: 1})
	s.Transforms.getComponent(child).setLocal(lin.V3{X: 1, Y: 1, Z: 1}, lin.V3{Y: 5}, lin.Q{W: 1})
	if err := s.ComponentAttach(child, parent); err != nil {
		t.Fatal(err)
	}

	s.Update(0)

	w := s.Transforms.getComponent(child).World
	if !almostEqual(w.Wx, 10, 1e-5) || !almostEqual(w.Wy, 5, 1e-5) || !almostEqual(w.Wz, 0, 1e-5) {
		t.Fatalf("got child world translation (%v,%v,%v), want (10,5,0)", w.Wx, w.Wy, w.Wz)
	}
}

func TestSceneHierarchyTranslationStableAcrossFrames(t *testing.T) {
	s, _ := newTestScene()
	parent := s.CreateEntity("parent")
	child := s.CreateEntity("child")
	s.Transforms.getComponent(parent).setLocal(lin.V3{X: 1, Y: 1, Z: 1}, lin.V3{X: 10}, lin.Q{W: 1})
	s.Transforms.getComponent(child).setLocal(lin.V3{X: 1, Y: 1, Z: 1}, lin.V3{Y: 5}, lin.Q{W: 1})
	if err := s.ComponentAttach(child, parent); err != nil {
		t.Fatal(err)
	}

	s.Update(0)
	first := s.Transforms.getComponent(child).World
	for i := 0; i < 3; i++ {
		s.Update(0)
	}
	after := s.Transforms.getComponent(child).World
	if after != first {
		t.Fatalf("a static parented child's world matrix drifted across frames: %+v != %+v", after, first)
	}
	if !almostEqual(after.Wx, 10, 1e-5) || !almostEqual(after.Wy, 5, 1e-5) || !almostEqual(after.Wz, 0, 1e-5) {
		t.Fatalf("got child world translation (%v,%v,%v) after repeated updates, want (10,5,0)", after.Wx, after.Wy, after.Wz)
	}
}

func TestComponentAttachRejectsCycle(t *testing.T) {
	s, _ := newTestScene()
	a := s.CreateEntity("a")
	b := s.CreateEntity("b")
	if err := s.ComponentAttach(b, a); err != nil {
		t.Fatal(err)
	}
	if err := s.ComponentAttach(a, b); err != ErrCyclicParent {
		t.Fatalf("got %v, want ErrCyclicParent", err)
	}
}

func TestComponentDetachPreservesWorld(t *testing.T) {
	s, _ := newTestScene()
	parent := s.CreateEntity("parent")
	child := s.CreateEntity("child")
	s.Transforms.getComponent(parent).move(lin.V3{X: 10})
	s.Transforms.getComponent(child).move(lin.V3{Y: 5})
	if err := s.ComponentAttach(child, parent); err != nil {
		t.Fatal(err)
	}
	s.Update(0)
	before := s.Transforms.getComponent(child).World

	s.ComponentDetach(child)
	after := s.Transforms.getComponent(child).World
	if after != before {
		t.Fatalf("detach mutated world matrix: %+v != %+v", after, before)
	}
}

func TestSceneUpdateS1(t *testing.T) {
	s, _ := newTestScene()

	mat := s.CreateMaterial("default")
	mesh := s.CreateMesh("cube")
	*s.Meshes.getComponent(mesh) = unitCube()
	s.Meshes.getComponent(mesh).Subsets = []MeshSubset{{Material: mat, IndexOffset: 0, IndexCount: 6}}

	s.CreateObject("cubeObj", mesh)

	light := s.CreateLight("sun", Directional)
	_ = light

	cam := s.CreateCamera("main")
	camC := s.Cameras.getComponent(cam)
	camC.Position = lin.V3{Z: -5}
	camC.Target = lin.V3{}
	camC.FovDeg = 60
	camC.Aspect = 16.0 / 9.0

	s.Update(1.0 / 60.0)

	var view View
	view.Reset(s, s.Cameras.getComponent(cam))
	if len(view.ObjectIndexes) != 1 {
		t.Fatalf("got objectCount %d, want 1", len(view.ObjectIndexes))
	}
	if len(view.LightIndexes) != 1 {
		t.Fatalf("got lightCount %d, want 1 (directional lights always admitted)", len(view.LightIndexes))
	}
}

func TestSceneUpdateIdempotentAtZeroDT(t *testing.T) {
	s, _ := newTestScene()
	e := s.CreateEntity("thing")
	s.Transforms.getComponent(e).move(lin.V3{X: 1, Y: 2, Z: 3})

	s.Update(0)
	first := s.Transforms.getComponent(e).World
	s.Update(0)
	second := s.Transforms.getComponent(e).World
	if first != second {
		t.Fatalf("two successive zero-dt updates diverged: %+v != %+v", first, second)
	}
}

func TestRemoveRecursiveLinkedFreesUnreferencedMesh(t *testing.T) {
	s, _ := newTestScene()
	mesh := s.CreateMesh("m")
	*s.Meshes.getComponent(mesh) = unitCube()
	obj := s.CreateObject("o", mesh)

	s.RemoveRecursiveLinked(obj)

	if s.Meshes.getComponent(mesh) != nil {
		t.Fatalf("mesh still present after its only referencing object was removed")
	}
	if s.Objects.getComponent(obj) != nil {
		t.Fatalf("object still present after RemoveRecursiveLinked")
	}
}

func TestMergeRemapsEntities(t *testing.T) {
	other, _ := newTestScene()
	e := other.CreateEntity("imported")
	other.Transforms.getComponent(e).move(lin.V3{X: 9})

	s, _ := newTestScene()
	local := s.CreateEntity("local")
	s.Merge(other)

	if s.Transforms.size() != 2 {
		t.Fatalf("got %d transforms after merge, want 2", s.Transforms.size())
	}
	if s.Names.getComponent(local) == nil {
		t.Fatalf("local entity's components lost identity across merge")
	}
}
