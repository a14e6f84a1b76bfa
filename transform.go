// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import "github.com/vanta-engine/vanta/math/lin"

// Transform holds the local scale, rotation, and translation an entity is
// placed with, plus the matrices derived from it during the scene
// update's transform and hierarchy passes. Local is the S·R·T composed
// from the local pose alone, rebuilt only when dirty; World is Local
// folded with every ancestor's World, rebuilt fresh every frame so a
// parented, unmoving child never accumulates its parent's transform more
// than once. Both are only valid for the frame after that pass ran;
// nothing outside scene.update should read them before then.
type Transform struct {
	Scale       lin.V3
	Rotation    lin.Q
	Translation lin.V3
	dirty       bool
	Local       lin.M4
	World       lin.M4
}

// newTransform returns a Transform at the identity pose, scale one,
// flagged dirty so its first update pass recomposes World.
func newTransform() Transform {
	return Transform{
		Scale: lin.V3{X: 1, Y: 1, Z: 1},
		dirty: true,
	}
}

// setLocal rewrites the local SRT and marks the transform dirty.
func (t *Transform) setLocal(scale, translation lin.V3, rotation lin.Q) {
	t.Scale, t.Translation, t.Rotation = scale, translation, rotation
	t.dirty = true
}

// move offsets the local translation by d and marks the transform dirty.
func (t *Transform) move(d lin.V3) {
	t.Translation.Add(&t.Translation, &d)
	t.dirty = true
}

// spin composes an additional rotation into the local rotation and marks
// the transform dirty.
func (t *Transform) spin(r lin.Q) {
	t.Rotation.Mult(&r, &t.Rotation)
	t.dirty = true
}

// transformPass recomposes Local for every dirty transform from its local
// S·R·T, then resets World to that clean Local for every transform,
// parented or not. Transforms with a hierarchy parent get their World
// folded with the parent's by the following hierarchy pass; seeding World
// from Local here every frame (rather than leaving it at whatever the
// previous frame's fold produced) is what keeps that fold from compounding
// on a static parented child across frames.
func transformPass(transforms *componentManager[Transform]) {
	transforms.each(func(_ Entity, t *Transform) {
		t.recompose()
		t.World = t.Local
	})
}

// recompose rebuilds Local from the local S·R·T and clears dirty. Called
// only from the scene update's transform pass.
func (t *Transform) recompose() {
	if !t.dirty {
		return
	}
	var rot lin.M4
	rot.SetQ(&t.Rotation)
	t.Local = *lin.M4I
	t.Local.ScaleSM(t.Scale.X, t.Scale.Y, t.Scale.Z)
	t.Local.Mult(&t.Local, &rot)
	t.Local.TranslateMT(t.Translation.X, t.Translation.Y, t.Translation.Z)
	t.dirty = false
}
