// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import (
	"math"

	"github.com/vanta-engine/vanta/math/lin"
)

// AABB is an axis-aligned bounding box defined by its min and max corners.
type AABB struct {
	Min, Max lin.V3
}

// infiniteAABB bounds everything; used for directional lights, which have
// no meaningful finite extent.
func infiniteAABB() AABB {
	return AABB{
		Min: lin.V3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
		Max: lin.V3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
	}
}

// emptyAABB is the identity element for encapsulate: merging it with any box
// yields that box unchanged.
func emptyAABB() AABB {
	return AABB{
		Min: lin.V3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: lin.V3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// boxFromSphere returns an AABB centered on center with the given radius in
// every axis, used for point-light extents.
func boxFromSphere(center lin.V3, radius float64) AABB {
	r := lin.V3{X: radius, Y: radius, Z: radius}
	var min, max lin.V3
	min.Sub(&center, &r)
	max.Add(&center, &r)
	return AABB{Min: min, Max: max}
}

// encapsulate grows b to also cover point p.
func (b AABB) encapsulate(p lin.V3) AABB {
	b.Min.X, b.Min.Y, b.Min.Z = math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)
	b.Max.X, b.Max.Y, b.Max.Z = math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)
	return b
}

// union returns the smallest box containing both b and o.
func (b AABB) union(o AABB) AABB {
	b = b.encapsulate(o.Min)
	b = b.encapsulate(o.Max)
	return b
}

// corners writes all 8 corners of b into out, which must have length 8.
func (b AABB) corners(out []lin.V3) {
	out[0] = lin.V3{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z}
	out[1] = lin.V3{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z}
	out[2] = lin.V3{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z}
	out[3] = lin.V3{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z}
	out[4] = lin.V3{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z}
	out[5] = lin.V3{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z}
	out[6] = lin.V3{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z}
	out[7] = lin.V3{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z}
}

// transformed returns the AABB enclosing b after every corner is carried
// through world. Used by the object+AABB scene-update pass: a mesh's local
// AABB becomes an object's world AABB.
func (b AABB) transformed(world *lin.M4) AABB {
	var corners [8]lin.V3
	b.corners(corners[:])
	out := emptyAABB()
	for _, c := range corners {
		var v4 lin.V4
		v4.MultvM(&lin.V4{X: c.X, Y: c.Y, Z: c.Z, W: 1}, world)
		out = out.encapsulate(lin.V3{X: v4.X, Y: v4.Y, Z: v4.Z})
	}
	return out
}
