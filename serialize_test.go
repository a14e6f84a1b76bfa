// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import (
	"bytes"
	"testing"

	"github.com/vanta-engine/vanta/job"
	"github.com/vanta-engine/vanta/math/lin"
)

func buildRoundTripScene() *Scene {
	s := NewScene(job.NewPool())

	mat := s.CreateMaterial("mat")
	s.SetMaterial(mat, Material{Shader: DisneyBRDF, BaseColor: [4]float32{1, 0.5, 0.2, 1}, Roughness: 0.3, Metalness: 0.1})

	mesh := s.CreateMesh("mesh")
	s.SetMesh(mesh, Mesh{
		Positions: []lin.V3{{X: 0}, {X: 1}, {X: 1, Y: 1}},
		Normals:   []lin.V3{{Y: 1}, {Y: 1}, {Y: 1}},
		Indices:   []uint32{0, 1, 2},
		Subsets:   []MeshSubset{{Material: mat, IndexOffset: 0, IndexCount: 3}},
	})

	obj := s.CreateObject("obj", mesh)
	s.SetLocalTransform(obj, lin.V3{X: 1, Y: 1, Z: 1}, lin.V3{X: 2, Y: 3, Z: 4}, lin.Q{W: 1})

	child := s.CreateEntity("child")
	s.SetLocalTransform(child, lin.V3{X: 1, Y: 1, Z: 1}, lin.V3{X: 1}, lin.Q{W: 1})
	s.ComponentAttach(child, obj)

	bulb := s.CreateLight("sun", Directional)
	s.Lights.getComponent(bulb).Energy = 3

	cam := s.CreateCamera("cam")
	s.Cameras.getComponent(cam).FovDeg = 45

	anim := s.CreateAnimation("clip", 0, 2)
	a := s.Animations.getComponent(anim)
	a.Samplers = append(a.Samplers, Sampler{Mode: Linear, Times: []float64{0, 1}, Data: []float64{0, 0, 0, 1, 1, 1}})
	a.Channels = append(a.Channels, Channel{Target: obj, SamplerIndex: 0, Path: Translation})

	*s.Weathers.create(s.CreateEntity("weather")) = newWeather()

	s.Update(0)
	return s
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	orig := buildRoundTripScene()

	var buf bytes.Buffer
	if err := Serialize(orig, &buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	copyScene, err := Deserialize(&buf, job.NewPool())
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if copyScene.Lights.size() != orig.Lights.size() {
		t.Fatalf("got %d lights, want %d", copyScene.Lights.size(), orig.Lights.size())
	}
	if copyScene.Lights.data[0].Energy != 3 {
		t.Fatalf("got light energy %v, want 3", copyScene.Lights.data[0].Energy)
	}

	if copyScene.Meshes.size() != 1 || len(copyScene.Meshes.data[0].Indices) != 3 {
		t.Fatalf("mesh indices did not round-trip: %+v", copyScene.Meshes.data)
	}

	copyScene.Update(0)

	if copyScene.Animations.size() != 1 {
		t.Fatalf("got %d animations, want 1", copyScene.Animations.size())
	}
	clip := &copyScene.Animations.data[0]
	if len(clip.Channels) != 1 || clip.Channels[0].Target == InvalidEntity {
		t.Fatalf("animation channel target did not resolve: %+v", clip.Channels)
	}
	if clip.Channels[0].Target != copyScene.Objects.getEntity(0) {
		t.Fatalf("animation channel target did not remap to the round-tripped object")
	}

	if copyScene.Meshes.data[0].Subsets[0].Material != copyScene.Materials.getEntity(0) {
		t.Fatalf("mesh subset material did not remap to the round-tripped material")
	}
}

func TestDeserializeRejectsUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := writeU64(&buf, 99); err != nil {
		t.Fatal(err)
	}
	if _, err := Deserialize(&buf, job.NewPool()); err == nil {
		t.Fatal("expected an error for an unrecognized scene version")
	}
}
