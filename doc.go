// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package vanta is a real-time 3D rendering engine built on an explicit-GPU,
// Vulkan-class render hardware interface. It composes a scene graph, an
// entity-component store, a job-dispatched scene-update pipeline, a resource
// cache, and a frustum-culled renderer into an engine that draws meshes,
// lights, sky, and procedurally generated terrain.
//
// Subpackages:
//   - job      parallel dispatch of work items with contexts and waits.
//   - asset    deduplicated, hash-keyed loader with hot-reload.
//   - rhi      the Vulkan-class render hardware interface: buffers,
//     textures, shaders, pipeline states, descriptor binding, the copy
//     allocator, and deferred-free resource lifetime.
//   - terrain  the noise/modifier/consumer node graph for procedural chunks.
//   - math/lin vectors, matrices, quaternions, transforms.
//
// The root package owns the entity-component store, the scene update
// pipeline, the frustum culler, and the renderer that assembles constant
// buffers and issues draws against rhi: everything that needs direct
// access to the component store's internals, which are unexported and so
// cannot be split into a separate package without exporting them.
package vanta
