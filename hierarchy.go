// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

// Group marks an entity as a hierarchy root. It carries no data; its
// presence is the marker scene factories check before treating an entity as
// a top-level node rather than something that must be parented explicitly.
type Group struct{}

// Hierarchy records the parent of an entity that has one. An entity with no
// Hierarchy component is its own root for transform purposes.
type Hierarchy struct {
	Parent Entity
}

// hierarchyPass walks hierarchy components in insertion order, folding each
// child's parent world matrix into the child's *clean* local transform
// (transformPass has already reset every World to its Local this frame) to
// produce the child's world matrix. Folding from Local rather than the
// previous World is what keeps a static parented child's world matrix from
// picking up another copy of the parent's transform every frame. The walk
// is strictly linear, so a parent's own fold (if it too has a parent) has
// run before its children's only when the parent's Hierarchy entry was
// inserted first. ComponentAttach does not check this order: attaching an
// entity that already has attached children appends its entry after
// theirs, and those children then fold in the parent's World before the
// parent's own fold has updated it.
func hierarchyPass(hierarchies *componentManager[Hierarchy], transforms *componentManager[Transform]) {
	hierarchies.each(func(e Entity, h *Hierarchy) {
		child := transforms.getComponent(e)
		parent := transforms.getComponent(h.Parent)
		if child == nil || parent == nil {
			return
		}
		child.World.Mult(&child.Local, &parent.World)
	})
}
