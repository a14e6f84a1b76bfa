// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import "github.com/vanta-engine/vanta/math/lin"

// LightType distinguishes infinite directional lights from positional
// point lights. Matches the wire encoding in the shared shader header:
// 0 = Directional, 1 = Point.
type LightType uint32

const (
	Directional LightType = iota
	Point
)

// LightFlags are bit flags controlling whether a light contributes to the
// scene and whether it casts shadows.
type LightFlags uint32

const (
	AffectsScene LightFlags = 1 << iota
	CastShadows
)

// Light is a scene light source. Position is derived each frame from the
// owning entity's transform by the light+AABB pass; it has no meaning
// before that pass runs.
type Light struct {
	Type   LightType
	Color  [3]float32
	Energy float32
	Range  float32
	Flags  LightFlags

	Position lin.V3 // world-space, derived.
}

// newLight returns a white, scene-affecting, shadow-casting light of the
// given type.
func newLight(kind LightType) Light {
	return Light{
		Type:   kind,
		Color:  [3]float32{1, 1, 1},
		Energy: 1,
		Range:  10,
		Flags:  AffectsScene | CastShadows,
	}
}

// lightAABBPass writes each light's world-space position from its
// transform and builds its AABB: a sphere-sized box for point lights
// centered on that position, or an infinite box for directional lights.
func lightAABBPass(lights *componentManager[Light], transforms *componentManager[Transform], aabbs []AABB) []AABB {
	if cap(aabbs) < lights.size() {
		aabbs = make([]AABB, lights.size())
	}
	aabbs = aabbs[:lights.size()]
	for i := range lights.data {
		l := &lights.data[i]
		e := lights.entities[i]
		if t := transforms.getComponent(e); t != nil {
			l.Position = lin.V3{X: t.World.Wx, Y: t.World.Wy, Z: t.World.Wz}
		}
		if l.Type == Directional {
			aabbs[i] = infiniteAABB()
		} else {
			aabbs[i] = boxFromSphere(l.Position, float64(l.Range))
		}
	}
	return aabbs
}
