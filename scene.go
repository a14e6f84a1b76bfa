// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import (
	"github.com/vanta-engine/vanta/job"
)

// Scene owns every component manager and the per-scene culling streams.
// It is the thing scene.update(dt) advances each frame and the thing a
// View is built against.
type Scene struct {
	entities *entities

	Names       *componentManager[Name]
	Transforms  *componentManager[Transform]
	Groups      *componentManager[Group]
	Hierarchies *componentManager[Hierarchy]
	Materials   *componentManager[Material]
	Meshes      *componentManager[Mesh]
	Objects     *componentManager[Object]
	Lights      *componentManager[Light]
	Cameras     *componentManager[Camera]
	Animations  *componentManager[Animation]
	Weathers    *componentManager[Weather]

	ObjectAABBs []AABB
	LightAABBs  []AABB
	Active      Weather

	pool *job.Pool

	// pending holds callbacks (entity removals, scene merges) deferred
	// until the next ThreadSafePoint, so they never run while a draw is
	// in flight (spec §4.8).
	pending []func()
}

// NewScene returns an empty scene backed by pool for its per-frame job
// dispatch.
func NewScene(pool *job.Pool) *Scene {
	return &Scene{
		entities:    newEntities(),
		Names:       newComponentManager[Name](),
		Transforms:  newComponentManager[Transform](),
		Groups:      newComponentManager[Group](),
		Hierarchies: newComponentManager[Hierarchy](),
		Materials:   newComponentManager[Material](),
		Meshes:      newComponentManager[Mesh](),
		Objects:     newComponentManager[Object](),
		Lights:      newComponentManager[Light](),
		Cameras:     newComponentManager[Camera](),
		Animations:  newComponentManager[Animation](),
		Weathers:    newComponentManager[Weather](),
		Active:      newWeather(),
		pool:        pool,
	}
}

// CreateEntity allocates a bare entity with a Name and a Group marker,
// making it a hierarchy root until componentAttach says otherwise.
func (s *Scene) CreateEntity(name string) Entity {
	e := s.entities.create()
	setName(s.Names.create(e), name)
	*s.Groups.create(e) = Group{}
	*s.Transforms.create(e) = newTransform()
	return e
}

// CreateMesh creates a mesh entity and its Mesh component.
func (s *Scene) CreateMesh(name string) Entity {
	e := s.CreateEntity(name)
	*s.Meshes.create(e) = Mesh{}
	return e
}

// CreateMaterial creates a material entity and its Material component.
func (s *Scene) CreateMaterial(name string) Entity {
	e := s.CreateEntity(name)
	*s.Materials.create(e) = newMaterial()
	return e
}

// CreateObject creates an object entity bound to mesh.
func (s *Scene) CreateObject(name string, mesh Entity) Entity {
	e := s.CreateEntity(name)
	*s.Objects.create(e) = newObject(mesh)
	return e
}

// CreateLight creates a light entity of the given type.
func (s *Scene) CreateLight(name string, kind LightType) Entity {
	e := s.CreateEntity(name)
	*s.Lights.create(e) = newLight(kind)
	return e
}

// CreateCamera creates a camera entity with default projection.
func (s *Scene) CreateCamera(name string) Entity {
	e := s.CreateEntity(name)
	*s.Cameras.create(e) = newCamera()
	return e
}

// CreateAnimation creates an animation entity spanning [start, end].
func (s *Scene) CreateAnimation(name string, start, end float64) Entity {
	e := s.CreateEntity(name)
	*s.Animations.create(e) = newAnimation(start, end)
	return e
}

// ComponentAttach parents child under parent in the hierarchy, rejecting
// the attach with ErrCyclicParent if parent is child or a descendant of
// child. A successful attach removes child's Group marker, since a
// parented entity is no longer a hierarchy root. An existing Hierarchy
// entry for child is re-pointed in place; otherwise a new entry is
// appended. Where that entry lands relative to the entries of child's own
// children is not checked (see hierarchyPass).
func (s *Scene) ComponentAttach(child, parent Entity) error {
	if child == parent {
		return ErrCyclicParent
	}
	for cur := parent; cur != InvalidEntity; {
		if cur == child {
			return ErrCyclicParent
		}
		h := s.Hierarchies.getComponent(cur)
		if h == nil {
			break
		}
		cur = h.Parent
	}

	s.Groups.remove(child)
	if h := s.Hierarchies.getComponent(child); h != nil {
		h.Parent = parent
		return nil
	}
	*s.Hierarchies.create(child) = Hierarchy{Parent: parent}
	return nil
}

// ComponentDetach removes child's Hierarchy component, restoring its
// Group marker so it is once again a hierarchy root. child's world
// matrix is left exactly as the last update computed it; only the next
// update recomposes it without a parent's contribution.
func (s *Scene) ComponentDetach(child Entity) {
	if s.Hierarchies.removeKeepSorted(child) {
		*s.Groups.create(child) = Group{}
	}
}

// RemoveShallow deletes only the components attached directly to e.
func (s *Scene) RemoveShallow(e Entity) {
	s.Names.remove(e)
	s.Transforms.remove(e)
	s.Groups.remove(e)
	s.Hierarchies.removeKeepSorted(e)
	s.Materials.remove(e)
	s.Meshes.remove(e)
	s.Objects.remove(e)
	s.Lights.remove(e)
	s.Cameras.remove(e)
	s.Animations.remove(e)
	s.entities.dispose(e)
}

// children returns every entity whose Hierarchy.Parent is e.
func (s *Scene) children(e Entity) []Entity {
	var out []Entity
	for i := 0; i < s.Hierarchies.size(); i++ {
		if s.Hierarchies.data[i].Parent == e {
			out = append(out, s.Hierarchies.getEntity(i))
		}
	}
	return out
}

// RemoveRecursive deletes e and every descendant reachable through the
// hierarchy.
func (s *Scene) RemoveRecursive(e Entity) {
	for _, c := range s.children(e) {
		s.RemoveRecursive(c)
	}
	s.RemoveShallow(e)
}

// meshUseCount and materialUseCount support RemoveRecursiveLinked's
// use-count based cleanup of now-unreferenced mesh/material entities.
func (s *Scene) meshUseCount(mesh Entity) int {
	n := 0
	for i := 0; i < s.Objects.size(); i++ {
		if s.Objects.data[i].Mesh == mesh {
			n++
		}
	}
	return n
}

func (s *Scene) materialUseCount(mat Entity) int {
	n := 0
	for i := 0; i < s.Meshes.size(); i++ {
		for _, sub := range s.Meshes.data[i].Subsets {
			if sub.Material == mat {
				n++
			}
		}
	}
	return n
}

// RemoveRecursiveLinked removes e recursively, then frees any mesh or
// material entity left with zero referencing objects/subsets.
func (s *Scene) RemoveRecursiveLinked(e Entity) {
	var meshes, materials []Entity
	removed := map[Entity]bool{}
	var mark func(Entity)
	mark = func(x Entity) {
		removed[x] = true
		for _, c := range s.children(x) {
			mark(c)
		}
	}
	mark(e)
	for i := 0; i < s.Objects.size(); i++ {
		obj := s.Objects.getEntity(i)
		if removed[obj] {
			meshes = append(meshes, s.Objects.data[i].Mesh)
		}
	}
	for i := 0; i < s.Meshes.size(); i++ {
		for _, sub := range s.Meshes.data[i].Subsets {
			materials = append(materials, sub.Material)
		}
	}

	s.RemoveRecursive(e)

	for _, m := range meshes {
		if s.meshUseCount(m) == 0 {
			s.RemoveShallow(m)
		}
	}
	for _, m := range materials {
		if s.materialUseCount(m) == 0 {
			s.RemoveShallow(m)
		}
	}
}

// Defer queues fn to run at the scene's next ThreadSafePoint rather
// than immediately, the way entity removals and merges must never run
// while a draw is in flight (spec §4.8).
func (s *Scene) Defer(fn func()) {
	s.pending = append(s.pending, fn)
}

// ThreadSafePoint drains every deferred callback queued since the last
// call. Fired between the update job graph and the renderer each
// frame.
func (s *Scene) ThreadSafePoint() {
	pending := s.pending
	s.pending = nil
	for _, fn := range pending {
		fn()
	}
}

// Merge appends other's entities and components into s, remapping
// other's entity ids to freshly allocated ones in s so the two scenes'
// id spaces never collide.
func (s *Scene) Merge(other *Scene) {
	remapped := map[Entity]Entity{}
	remap := func(e Entity) Entity {
		if e == InvalidEntity {
			return InvalidEntity
		}
		if r, ok := remapped[e]; ok {
			return r
		}
		r := s.entities.create()
		remapped[e] = r
		return r
	}

	s.Names.merge(other.Names, remap)
	s.Transforms.merge(other.Transforms, remap)
	s.Groups.merge(other.Groups, remap)
	s.Hierarchies.merge(other.Hierarchies, remap)
	s.Materials.merge(other.Materials, remap)
	s.Meshes.merge(other.Meshes, remap)
	s.Objects.merge(other.Objects, remap)
	s.Lights.merge(other.Lights, remap)
	s.Cameras.merge(other.Cameras, remap)
	s.Animations.merge(other.Animations, remap)
	s.Weathers.merge(other.Weathers, remap)

	for i := range s.Meshes.data {
		for j, sub := range s.Meshes.data[i].Subsets {
			if r, ok := remapped[sub.Material]; ok {
				s.Meshes.data[i].Subsets[j].Material = r
			}
		}
	}
	for i := range s.Objects.data {
		if r, ok := remapped[s.Objects.data[i].Mesh]; ok {
			s.Objects.data[i].Mesh = r
		}
	}
}

// Update advances the eight-phase scene update graph (spec §4.8) by
// job-dispatching each phase and waiting for it to drain before
// starting the next; this is the one place phase ordering is
// guaranteed, each phase's own element order is not.
func (s *Scene) Update(dt float64) {
	ctx := s.pool.NewContext()
	s.pool.Execute(ctx, func(int, int, int) { transformPass(s.Transforms) })
	s.pool.Wait(ctx)

	ctx = s.pool.NewContext()
	s.pool.Execute(ctx, func(int, int, int) { hierarchyPass(s.Hierarchies, s.Transforms) })
	s.pool.Wait(ctx)

	ctx = s.pool.NewContext()
	s.pool.Execute(ctx, func(int, int, int) { animationPass(s.Animations, s.Transforms, dt) })
	s.pool.Wait(ctx)

	ctx = s.pool.NewContext()
	s.pool.Execute(ctx, func(int, int, int) { meshPass(s.Meshes) })
	s.pool.Wait(ctx)

	ctx = s.pool.NewContext()
	s.pool.Execute(ctx, func(int, int, int) {
		s.ObjectAABBs = objectAABBPass(s.Objects, s.Transforms, s.Meshes, s.ObjectAABBs)
	})
	s.pool.Wait(ctx)

	ctx = s.pool.NewContext()
	s.pool.Execute(ctx, func(int, int, int) {
		s.LightAABBs = lightAABBPass(s.Lights, s.Transforms, s.LightAABBs)
	})
	s.pool.Wait(ctx)

	ctx = s.pool.NewContext()
	s.pool.Execute(ctx, func(int, int, int) { cameraPass(s.Cameras) })
	s.pool.Wait(ctx)

	ctx = s.pool.NewContext()
	s.pool.Execute(ctx, func(int, int, int) { weatherPass(s.Weathers, &s.Active) })
	s.pool.Wait(ctx)

	s.ThreadSafePoint()
}
