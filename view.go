// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

// View is a per-camera visible-object/light list, rebuilt every frame
// by Reset. Index order follows the underlying manager's insertion
// order (spec §4.9), which matters for draw-order stability.
type View struct {
	ObjectIndexes []int
	LightIndexes  []int
}

// Reset clears view's index lists and repopulates them by testing
// scene's object and light AABB streams against camera's frustum.
//
// Spec §9's "OR-of-disjunctions is likely a bug" Open Question is
// resolved here as an AND of per-plane tests: a box is inside (or
// straddling) the frustum only when, for every one of the six planes,
// the box's furthest corner toward that plane is on the positive side.
// An OR would admit a box rejected by any single plane as long as it
// passed some other plane, which visibly over-admits.
func (v *View) Reset(scene *Scene, camera *Camera) {
	v.ObjectIndexes = v.ObjectIndexes[:0]
	v.LightIndexes = v.LightIndexes[:0]

	for i, box := range scene.ObjectAABBs {
		if boxInFrustum(box, &camera.Frustum) {
			v.ObjectIndexes = append(v.ObjectIndexes, i)
		}
	}
	for i := 0; i < scene.Lights.size(); i++ {
		if scene.Lights.data[i].Type == Directional {
			v.LightIndexes = append(v.LightIndexes, i)
			continue
		}
		if i < len(scene.LightAABBs) && boxInFrustum(scene.LightAABBs[i], &camera.Frustum) {
			v.LightIndexes = append(v.LightIndexes, i)
		}
	}
}

// boxInFrustum reports whether box is not entirely on the negative
// side of any frustum plane, i.e. the AND-of-half-space test: for each
// plane, the corner of box furthest in the plane normal's direction
// must have a non-negative signed distance or the box is fully
// rejected.
func boxInFrustum(box AABB, f *Frustum) bool {
	for _, p := range f {
		fx, fy, fz := box.Min.X, box.Min.Y, box.Min.Z
		if p.Normal.X >= 0 {
			fx = box.Max.X
		}
		if p.Normal.Y >= 0 {
			fy = box.Max.Y
		}
		if p.Normal.Z >= 0 {
			fz = box.Max.Z
		}
		d := p.Normal.X*fx + p.Normal.Y*fy + p.Normal.Z*fz + p.D
		if d < 0 {
			return false
		}
	}
	return true
}
