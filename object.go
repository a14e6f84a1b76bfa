// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

// ObjectFlags are bit flags controlling whether and how an object draws.
type ObjectFlags uint32

const (
	Renderable ObjectFlags = 1 << iota
	CastShadow
)

// Object is a drawable instance: a reference to the mesh it draws and the
// per-instance state the renderer consumes.
type Object struct {
	Flags      ObjectFlags
	Mesh       Entity
	StencilRef uint8 // 0-15, user-assigned; values above 15 are clamped.

	// transformIndex is scratch valid only within the frame that produced
	// it: the object+AABB pass stamps the owning transform's dense slot
	// here so the renderer can look the world matrix up again without a
	// second map lookup per draw.
	transformIndex int
}

// newObject returns an Object referencing mesh, renderable and
// shadow-casting by default.
func newObject(mesh Entity) Object {
	return Object{Flags: Renderable | CastShadow, Mesh: mesh}
}

// objectAABBPass transforms each object's mesh AABB by its transform's
// world matrix into the scene's parallel object-AABB stream, and stamps the
// owning transform's dense index into the object for the renderer's later
// single-lookup use.
func objectAABBPass(objects *componentManager[Object], transforms *componentManager[Transform], meshes *componentManager[Mesh], aabbs []AABB) []AABB {
	if cap(aabbs) < objects.size() {
		aabbs = make([]AABB, objects.size())
	}
	aabbs = aabbs[:objects.size()]
	for i := range objects.data {
		obj := &objects.data[i]
		e := objects.entities[i]
		t := transforms.getComponent(e)
		mesh := meshes.getComponent(obj.Mesh)
		if t == nil || mesh == nil {
			aabbs[i] = emptyAABB()
			continue
		}
		if idx, ok := transforms.indexOf(e); ok {
			obj.transformIndex = idx
		}
		aabbs[i] = mesh.AABB.transformed(&t.World)
	}
	return aabbs
}
