// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import "github.com/vanta-engine/vanta/math/lin"

// SetLocalTransform rewrites e's local scale/rotation/translation and
// marks it dirty, so the next Update recomposes its world matrix. This
// is the only way a package outside vanta (e.g. terrain) can place an
// entity it created through Scene's Create* constructors, since the
// component managers themselves are not exported.
func (s *Scene) SetLocalTransform(e Entity, scale, translation lin.V3, rotation lin.Q) {
	if t := s.Transforms.getComponent(e); t != nil {
		t.setLocal(scale, translation, rotation)
	}
}

// SetMesh replaces e's Mesh component wholesale. Used by external
// producers (the terrain node graph) that build Mesh values entirely
// off the scene update graph and then hand them to a staging scene.
func (s *Scene) SetMesh(e Entity, m Mesh) {
	if c := s.Meshes.getComponent(e); c != nil {
		*c = m
	}
}

// SetMaterial replaces e's Material component wholesale.
func (s *Scene) SetMaterial(e Entity, m Material) {
	if c := s.Materials.getComponent(e); c != nil {
		*c = m
	}
}
