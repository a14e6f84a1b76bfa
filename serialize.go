// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vanta-engine/vanta/job"
	"github.com/vanta-engine/vanta/math/lin"
)

// sceneVersion is the wire version stamped at the head of every
// serialized scene. Bump it whenever a component's record layout
// changes; Deserialize rejects anything it doesn't recognize.
const sceneVersion uint64 = 4

// Serialize writes s to w in the engine's little-endian scene wire
// format: a u64 version, then one section per component manager, each
// section a u64 count, that many u64 entity ids, then that many
// component records. GPU-only state (transformIndex, World, the built
// mesh buffers) is never written; Deserialize's following Update pass
// rebuilds it.
func Serialize(s *Scene, w io.Writer) error {
	if err := writeU64(w, sceneVersion); err != nil {
		return err
	}
	writers := []func(io.Writer) error{
		func(w io.Writer) error { return writeNames(s, w) },
		func(w io.Writer) error { return writeTransforms(s, w) },
		func(w io.Writer) error { return writeGroups(s, w) },
		func(w io.Writer) error { return writeHierarchies(s, w) },
		func(w io.Writer) error { return writeMaterials(s, w) },
		func(w io.Writer) error { return writeMeshes(s, w) },
		func(w io.Writer) error { return writeObjects(s, w) },
		func(w io.Writer) error { return writeLights(s, w) },
		func(w io.Writer) error { return writeCameras(s, w) },
		func(w io.Writer) error { return writeAnimations(s, w) },
		func(w io.Writer) error { return writeWeathers(s, w) },
	}
	for _, fn := range writers {
		if err := fn(w); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize reads a scene previously written by Serialize into a
// fresh Scene backed by pool, remapping every stored entity id to a
// freshly allocated one the same way Scene.Merge does, so a
// deserialized scene never depends on the allocator state of whatever
// wrote it.
func Deserialize(r io.Reader, pool *job.Pool) (*Scene, error) {
	version, err := readU64(r)
	if err != nil {
		return nil, err
	}
	if version != sceneVersion {
		return nil, fmt.Errorf("vanta: serialized scene has version %d, want %d", version, sceneVersion)
	}

	s := NewScene(pool)
	remap := map[Entity]Entity{}
	resolve := func(stored Entity) Entity {
		if stored == InvalidEntity {
			return InvalidEntity
		}
		if e, ok := remap[stored]; ok {
			return e
		}
		e := s.entities.create()
		remap[stored] = e
		return e
	}

	readers := []func(io.Reader) error{
		func(r io.Reader) error { return readNames(s, r, resolve) },
		func(r io.Reader) error { return readTransforms(s, r, resolve) },
		func(r io.Reader) error { return readGroups(s, r, resolve) },
		func(r io.Reader) error { return readHierarchies(s, r, resolve) },
		func(r io.Reader) error { return readMaterials(s, r, resolve) },
		func(r io.Reader) error { return readMeshes(s, r, resolve) },
		func(r io.Reader) error { return readObjects(s, r, resolve) },
		func(r io.Reader) error { return readLights(s, r, resolve) },
		func(r io.Reader) error { return readCameras(s, r, resolve) },
		func(r io.Reader) error { return readAnimations(s, r, resolve) },
		func(r io.Reader) error { return readWeathers(s, r, resolve) },
	}
	for _, fn := range readers {
		if err := fn(r); err != nil {
			return nil, err
		}
	}

	for i := range s.Meshes.data {
		for j, sub := range s.Meshes.data[i].Subsets {
			s.Meshes.data[i].Subsets[j].Material = resolve(sub.Material)
		}
	}
	for i := range s.Objects.data {
		s.Objects.data[i].Mesh = resolve(s.Objects.data[i].Mesh)
	}
	for i := range s.Animations.data {
		for j, ch := range s.Animations.data[i].Channels {
			s.Animations.data[i].Channels[j].Target = resolve(ch.Target)
		}
	}
	return s, nil
}

// --- primitive encodings -------------------------------------------------

func writeU8(w io.Writer, v uint8) error  { return binary.Write(w, binary.LittleEndian, v) }
func writeU32(w io.Writer, v uint32) error { return binary.Write(w, binary.LittleEndian, v) }
func writeU64(w io.Writer, v uint64) error { return binary.Write(w, binary.LittleEndian, v) }
func writeF32(w io.Writer, v float32) error { return binary.Write(w, binary.LittleEndian, v) }
func writeF64(w io.Writer, v float64) error { return binary.Write(w, binary.LittleEndian, v) }

func writeBool(w io.Writer, v bool) error {
	if v {
		return writeU8(w, 1)
	}
	return writeU8(w, 0)
}

func writeEntity(w io.Writer, e Entity) error { return writeU64(w, uint64(e)) }

func writeString(w io.Writer, s string) error {
	if err := writeU32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

func writeV3(w io.Writer, v lin.V3) error {
	for _, f := range [3]float64{v.X, v.Y, v.Z} {
		if err := writeF32(w, float32(f)); err != nil {
			return err
		}
	}
	return nil
}

func writeV4(w io.Writer, a, b, c, d float64) error {
	for _, f := range [4]float64{a, b, c, d} {
		if err := writeF32(w, float32(f)); err != nil {
			return err
		}
	}
	return nil
}

func writeM4(w io.Writer, m lin.M4) error {
	rows := [16]float64{
		m.Xx, m.Xy, m.Xz, m.Xw,
		m.Yx, m.Yy, m.Yz, m.Yw,
		m.Zx, m.Zy, m.Zz, m.Zw,
		m.Wx, m.Wy, m.Wz, m.Ww,
	}
	for _, f := range rows {
		if err := writeF32(w, float32(f)); err != nil {
			return err
		}
	}
	return nil
}

func readU8(r io.Reader) (uint8, error) {
	var v uint8
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readU32(r io.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readU64(r io.Reader) (uint64, error) {
	var v uint64
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readF32(r io.Reader) (float32, error) {
	var v float32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readBool(r io.Reader) (bool, error) {
	v, err := readU8(r)
	return v != 0, err
}

func readEntity(r io.Reader) (Entity, error) {
	v, err := readU64(r)
	return Entity(v), err
}

func readString(r io.Reader) (string, error) {
	n, err := readU32(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readV3(r io.Reader) (lin.V3, error) {
	var out [3]float64
	for i := range out {
		f, err := readF32(r)
		if err != nil {
			return lin.V3{}, err
		}
		out[i] = float64(f)
	}
	return lin.V3{X: out[0], Y: out[1], Z: out[2]}, nil
}

func readV4(r io.Reader) (a, b, c, d float64, err error) {
	var out [4]float64
	for i := range out {
		var f float32
		f, err = readF32(r)
		if err != nil {
			return
		}
		out[i] = float64(f)
	}
	return out[0], out[1], out[2], out[3], nil
}

func readM4(r io.Reader) (lin.M4, error) {
	var f [16]float64
	for i := range f {
		v, err := readF32(r)
		if err != nil {
			return lin.M4{}, err
		}
		f[i] = float64(v)
	}
	return lin.M4{
		Xx: f[0], Xy: f[1], Xz: f[2], Xw: f[3],
		Yx: f[4], Yy: f[5], Yz: f[6], Yw: f[7],
		Zx: f[8], Zy: f[9], Zz: f[10], Zw: f[11],
		Wx: f[12], Wy: f[13], Wz: f[14], Ww: f[15],
	}, nil
}

// --- component sections ---------------------------------------------------

func writeNames(s *Scene, w io.Writer) error {
	if err := writeU64(w, uint64(s.Names.size())); err != nil {
		return err
	}
	var outerErr error
	s.Names.each(func(e Entity, n *Name) {
		if outerErr != nil {
			return
		}
		if err := writeEntity(w, e); err != nil {
			outerErr = err
			return
		}
		outerErr = writeString(w, n.Text)
	})
	return outerErr
}

func readNames(s *Scene, r io.Reader, resolve func(Entity) Entity) error {
	count, err := readU64(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		stored, err := readEntity(r)
		if err != nil {
			return err
		}
		text, err := readString(r)
		if err != nil {
			return err
		}
		*s.Names.create(resolve(stored)) = Name{Text: text}
	}
	return nil
}

func writeTransforms(s *Scene, w io.Writer) error {
	if err := writeU64(w, uint64(s.Transforms.size())); err != nil {
		return err
	}
	var outerErr error
	s.Transforms.each(func(e Entity, t *Transform) {
		if outerErr != nil {
			return
		}
		if err := writeEntity(w, e); err != nil {
			outerErr = err
			return
		}
		if err := writeV3(w, t.Scale); err != nil {
			outerErr = err
			return
		}
		if err := writeV4(w, t.Rotation.X, t.Rotation.Y, t.Rotation.Z, t.Rotation.W); err != nil {
			outerErr = err
			return
		}
		outerErr = writeV3(w, t.Translation)
	})
	return outerErr
}

func readTransforms(s *Scene, r io.Reader, resolve func(Entity) Entity) error {
	count, err := readU64(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		stored, err := readEntity(r)
		if err != nil {
			return err
		}
		scale, err := readV3(r)
		if err != nil {
			return err
		}
		qx, qy, qz, qw, err := readV4(r)
		if err != nil {
			return err
		}
		translation, err := readV3(r)
		if err != nil {
			return err
		}
		e := resolve(stored)
		*s.Transforms.create(e) = Transform{
			Scale: scale, Rotation: lin.Q{X: qx, Y: qy, Z: qz, W: qw},
			Translation: translation, dirty: true,
		}
	}
	return nil
}

func writeGroups(s *Scene, w io.Writer) error {
	if err := writeU64(w, uint64(s.Groups.size())); err != nil {
		return err
	}
	var outerErr error
	s.Groups.each(func(e Entity, _ *Group) {
		if outerErr != nil {
			return
		}
		outerErr = writeEntity(w, e)
	})
	return outerErr
}

func readGroups(s *Scene, r io.Reader, resolve func(Entity) Entity) error {
	count, err := readU64(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		stored, err := readEntity(r)
		if err != nil {
			return err
		}
		*s.Groups.create(resolve(stored)) = Group{}
	}
	return nil
}

func writeHierarchies(s *Scene, w io.Writer) error {
	if err := writeU64(w, uint64(s.Hierarchies.size())); err != nil {
		return err
	}
	var outerErr error
	s.Hierarchies.each(func(e Entity, h *Hierarchy) {
		if outerErr != nil {
			return
		}
		if err := writeEntity(w, e); err != nil {
			outerErr = err
			return
		}
		outerErr = writeEntity(w, h.Parent)
	})
	return outerErr
}

func readHierarchies(s *Scene, r io.Reader, resolve func(Entity) Entity) error {
	count, err := readU64(r)
	if err != nil {
		return err
	}
	type pending struct {
		child, parent Entity
	}
	batch := make([]pending, 0, count)
	for i := uint64(0); i < count; i++ {
		storedChild, err := readEntity(r)
		if err != nil {
			return err
		}
		storedParent, err := readEntity(r)
		if err != nil {
			return err
		}
		batch = append(batch, pending{resolve(storedChild), resolve(storedParent)})
	}
	// entity ids for every record were read (and thus allocated via
	// resolve) before any Hierarchy component is created, so a parent
	// appearing after its child in the stream still resolves to a
	// valid, already-known entity.
	for _, p := range batch {
		*s.Hierarchies.create(p.child) = Hierarchy{Parent: p.parent}
		s.Groups.remove(p.child)
	}
	return nil
}

func writeMaterials(s *Scene, w io.Writer) error {
	if err := writeU64(w, uint64(s.Materials.size())); err != nil {
		return err
	}
	var outerErr error
	s.Materials.each(func(e Entity, m *Material) {
		if outerErr != nil {
			return
		}
		if err := writeEntity(w, e); err != nil {
			outerErr = err
			return
		}
		if err := writeU32(w, uint32(m.Shader)); err != nil {
			outerErr = err
			return
		}
		if err := writeV4(w, float64(m.BaseColor[0]), float64(m.BaseColor[1]), float64(m.BaseColor[2]), float64(m.BaseColor[3])); err != nil {
			outerErr = err
			return
		}
		if err := writeF32(w, m.Roughness); err != nil {
			outerErr = err
			return
		}
		if err := writeF32(w, m.Metalness); err != nil {
			outerErr = err
			return
		}
		outerErr = writeU32(w, uint32(m.Flags))
	})
	return outerErr
}

func readMaterials(s *Scene, r io.Reader, resolve func(Entity) Entity) error {
	count, err := readU64(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		stored, err := readEntity(r)
		if err != nil {
			return err
		}
		shader, err := readU32(r)
		if err != nil {
			return err
		}
		r0, g0, b0, a0, err := readV4(r)
		if err != nil {
			return err
		}
		rough, err := readF32(r)
		if err != nil {
			return err
		}
		metal, err := readF32(r)
		if err != nil {
			return err
		}
		flags, err := readU32(r)
		if err != nil {
			return err
		}
		*s.Materials.create(resolve(stored)) = Material{
			Shader:    MaterialShader(shader),
			BaseColor: [4]float32{float32(r0), float32(g0), float32(b0), float32(a0)},
			Roughness: rough, Metalness: metal,
			Flags: MaterialFlags(flags),
		}
	}
	return nil
}

func writeMeshes(s *Scene, w io.Writer) error {
	if err := writeU64(w, uint64(s.Meshes.size())); err != nil {
		return err
	}
	var outerErr error
	s.Meshes.each(func(e Entity, m *Mesh) {
		if outerErr != nil {
			return
		}
		if err := writeEntity(w, e); err != nil {
			outerErr = err
			return
		}
		if err := writeU32(w, uint32(len(m.Positions))); err != nil {
			outerErr = err
			return
		}
		for _, p := range m.Positions {
			if err := writeV3(w, p); err != nil {
				outerErr = err
				return
			}
		}
		if err := writeU32(w, uint32(len(m.Normals))); err != nil {
			outerErr = err
			return
		}
		for _, n := range m.Normals {
			if err := writeV3(w, n); err != nil {
				outerErr = err
				return
			}
		}
		if err := writeU32(w, uint32(len(m.Colors))); err != nil {
			outerErr = err
			return
		}
		for _, c := range m.Colors {
			for _, ch := range c {
				if err := writeU8(w, ch); err != nil {
					outerErr = err
					return
				}
			}
		}
		if err := writeU32(w, uint32(len(m.Indices))); err != nil {
			outerErr = err
			return
		}
		for _, idx := range m.Indices {
			if err := writeU32(w, idx); err != nil {
				outerErr = err
				return
			}
		}
		if err := writeU32(w, uint32(len(m.Subsets))); err != nil {
			outerErr = err
			return
		}
		for _, sub := range m.Subsets {
			if err := writeEntity(w, sub.Material); err != nil {
				outerErr = err
				return
			}
			if err := writeU32(w, sub.IndexOffset); err != nil {
				outerErr = err
				return
			}
			if err := writeU32(w, sub.IndexCount); err != nil {
				outerErr = err
				return
			}
		}
	})
	return outerErr
}

func readMeshes(s *Scene, r io.Reader, resolve func(Entity) Entity) error {
	count, err := readU64(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		stored, err := readEntity(r)
		if err != nil {
			return err
		}
		var m Mesh

		posCount, err := readU32(r)
		if err != nil {
			return err
		}
		m.Positions = make([]lin.V3, posCount)
		for i := range m.Positions {
			if m.Positions[i], err = readV3(r); err != nil {
				return err
			}
		}

		normCount, err := readU32(r)
		if err != nil {
			return err
		}
		m.Normals = make([]lin.V3, normCount)
		for i := range m.Normals {
			if m.Normals[i], err = readV3(r); err != nil {
				return err
			}
		}

		colorCount, err := readU32(r)
		if err != nil {
			return err
		}
		m.Colors = make([][4]uint8, colorCount)
		for i := range m.Colors {
			for ch := 0; ch < 4; ch++ {
				b, err := readU8(r)
				if err != nil {
					return err
				}
				m.Colors[i][ch] = b
			}
		}

		idxCount, err := readU32(r)
		if err != nil {
			return err
		}
		m.Indices = make([]uint32, idxCount)
		for i := range m.Indices {
			if m.Indices[i], err = readU32(r); err != nil {
				return err
			}
		}

		subCount, err := readU32(r)
		if err != nil {
			return err
		}
		m.Subsets = make([]MeshSubset, subCount)
		for i := range m.Subsets {
			matEntity, err := readEntity(r)
			if err != nil {
				return err
			}
			offset, err := readU32(r)
			if err != nil {
				return err
			}
			indexCount, err := readU32(r)
			if err != nil {
				return err
			}
			// Material is resolved in Deserialize's final fixup pass,
			// once every mesh and material entity has been allocated;
			// stash the stored id in the field for now.
			m.Subsets[i] = MeshSubset{Material: matEntity, IndexOffset: offset, IndexCount: indexCount}
		}

		*s.Meshes.create(resolve(stored)) = m
	}
	return nil
}

func writeObjects(s *Scene, w io.Writer) error {
	if err := writeU64(w, uint64(s.Objects.size())); err != nil {
		return err
	}
	var outerErr error
	s.Objects.each(func(e Entity, o *Object) {
		if outerErr != nil {
			return
		}
		if err := writeEntity(w, e); err != nil {
			outerErr = err
			return
		}
		if err := writeU32(w, uint32(o.Flags)); err != nil {
			outerErr = err
			return
		}
		if err := writeEntity(w, o.Mesh); err != nil {
			outerErr = err
			return
		}
		outerErr = writeU8(w, o.StencilRef)
	})
	return outerErr
}

func readObjects(s *Scene, r io.Reader, resolve func(Entity) Entity) error {
	count, err := readU64(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		stored, err := readEntity(r)
		if err != nil {
			return err
		}
		flags, err := readU32(r)
		if err != nil {
			return err
		}
		mesh, err := readEntity(r)
		if err != nil {
			return err
		}
		stencil, err := readU8(r)
		if err != nil {
			return err
		}
		*s.Objects.create(resolve(stored)) = Object{
			Flags: ObjectFlags(flags), Mesh: mesh, StencilRef: stencil,
		}
	}
	return nil
}

func writeLights(s *Scene, w io.Writer) error {
	if err := writeU64(w, uint64(s.Lights.size())); err != nil {
		return err
	}
	var outerErr error
	s.Lights.each(func(e Entity, l *Light) {
		if outerErr != nil {
			return
		}
		if err := writeEntity(w, e); err != nil {
			outerErr = err
			return
		}
		if err := writeU32(w, uint32(l.Type)); err != nil {
			outerErr = err
			return
		}
		if err := writeV4(w, float64(l.Color[0]), float64(l.Color[1]), float64(l.Color[2]), 0); err != nil {
			outerErr = err
			return
		}
		if err := writeF32(w, l.Energy); err != nil {
			outerErr = err
			return
		}
		if err := writeF32(w, l.Range); err != nil {
			outerErr = err
			return
		}
		outerErr = writeU32(w, uint32(l.Flags))
	})
	return outerErr
}

func readLights(s *Scene, r io.Reader, resolve func(Entity) Entity) error {
	count, err := readU64(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		stored, err := readEntity(r)
		if err != nil {
			return err
		}
		kind, err := readU32(r)
		if err != nil {
			return err
		}
		cr, cg, cb, _, err := readV4(r)
		if err != nil {
			return err
		}
		energy, err := readF32(r)
		if err != nil {
			return err
		}
		rng, err := readF32(r)
		if err != nil {
			return err
		}
		flags, err := readU32(r)
		if err != nil {
			return err
		}
		*s.Lights.create(resolve(stored)) = Light{
			Type:   LightType(kind),
			Color:  [3]float32{float32(cr), float32(cg), float32(cb)},
			Energy: energy, Range: rng, Flags: LightFlags(flags),
		}
	}
	return nil
}

func writeCameras(s *Scene, w io.Writer) error {
	if err := writeU64(w, uint64(s.Cameras.size())); err != nil {
		return err
	}
	var outerErr error
	s.Cameras.each(func(e Entity, c *Camera) {
		if outerErr != nil {
			return
		}
		if err := writeEntity(w, e); err != nil {
			outerErr = err
			return
		}
		if err := writeV4(w, c.Aspect, c.Near, c.Far, c.FovDeg); err != nil {
			outerErr = err
			return
		}
		if err := writeV3(w, c.Position); err != nil {
			outerErr = err
			return
		}
		if err := writeV3(w, c.Target); err != nil {
			outerErr = err
			return
		}
		outerErr = writeV3(w, c.Up)
	})
	return outerErr
}

func readCameras(s *Scene, r io.Reader, resolve func(Entity) Entity) error {
	count, err := readU64(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		stored, err := readEntity(r)
		if err != nil {
			return err
		}
		aspect, near, far, fov, err := readV4(r)
		if err != nil {
			return err
		}
		pos, err := readV3(r)
		if err != nil {
			return err
		}
		target, err := readV3(r)
		if err != nil {
			return err
		}
		up, err := readV3(r)
		if err != nil {
			return err
		}
		*s.Cameras.create(resolve(stored)) = Camera{
			Aspect: aspect, Near: near, Far: far, FovDeg: fov,
			Position: pos, Target: target, Up: up,
		}
	}
	return nil
}

func writeAnimations(s *Scene, w io.Writer) error {
	if err := writeU64(w, uint64(s.Animations.size())); err != nil {
		return err
	}
	var outerErr error
	s.Animations.each(func(e Entity, a *Animation) {
		if outerErr != nil {
			return
		}
		if err := writeEntity(w, e); err != nil {
			outerErr = err
			return
		}
		if err := writeV4(w, a.Start, a.End, a.Timer, a.Speed); err != nil {
			outerErr = err
			return
		}
		if err := writeF32(w, float32(a.Blend)); err != nil {
			outerErr = err
			return
		}
		if err := writeU32(w, uint32(a.Flags)); err != nil {
			outerErr = err
			return
		}
		if err := writeU32(w, uint32(len(a.Channels))); err != nil {
			outerErr = err
			return
		}
		for _, ch := range a.Channels {
			if err := writeEntity(w, ch.Target); err != nil {
				outerErr = err
				return
			}
			if err := writeU32(w, uint32(ch.SamplerIndex)); err != nil {
				outerErr = err
				return
			}
			if err := writeU8(w, uint8(ch.Path)); err != nil {
				outerErr = err
				return
			}
		}
		if err := writeU32(w, uint32(len(a.Samplers))); err != nil {
			outerErr = err
			return
		}
		for _, samp := range a.Samplers {
			if err := writeU8(w, uint8(samp.Mode)); err != nil {
				outerErr = err
				return
			}
			if err := writeU32(w, uint32(len(samp.Times))); err != nil {
				outerErr = err
				return
			}
			for _, t := range samp.Times {
				if err := writeF32(w, float32(t)); err != nil {
					outerErr = err
					return
				}
			}
			if err := writeU32(w, uint32(len(samp.Data))); err != nil {
				outerErr = err
				return
			}
			for _, v := range samp.Data {
				if err := writeF32(w, float32(v)); err != nil {
					outerErr = err
					return
				}
			}
		}
	})
	return outerErr
}

func readAnimations(s *Scene, r io.Reader, resolve func(Entity) Entity) error {
	count, err := readU64(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		stored, err := readEntity(r)
		if err != nil {
			return err
		}
		start, end, timer, speed, err := readV4(r)
		if err != nil {
			return err
		}
		blend, err := readF32(r)
		if err != nil {
			return err
		}
		flags, err := readU32(r)
		if err != nil {
			return err
		}
		a := Animation{Start: start, End: end, Timer: timer, Speed: speed, Blend: float64(blend), Flags: AnimationFlags(flags)}

		chCount, err := readU32(r)
		if err != nil {
			return err
		}
		a.Channels = make([]Channel, chCount)
		for i := range a.Channels {
			target, err := readEntity(r)
			if err != nil {
				return err
			}
			samplerIdx, err := readU32(r)
			if err != nil {
				return err
			}
			path, err := readU8(r)
			if err != nil {
				return err
			}
			// target is resolved in Deserialize's final fixup pass.
			a.Channels[i] = Channel{Target: target, SamplerIndex: int(samplerIdx), Path: ChannelPath(path)}
		}

		sampCount, err := readU32(r)
		if err != nil {
			return err
		}
		a.Samplers = make([]Sampler, sampCount)
		for i := range a.Samplers {
			mode, err := readU8(r)
			if err != nil {
				return err
			}
			timeCount, err := readU32(r)
			if err != nil {
				return err
			}
			times := make([]float64, timeCount)
			for j := range times {
				v, err := readF32(r)
				if err != nil {
					return err
				}
				times[j] = float64(v)
			}
			dataCount, err := readU32(r)
			if err != nil {
				return err
			}
			data := make([]float64, dataCount)
			for j := range data {
				v, err := readF32(r)
				if err != nil {
					return err
				}
				data[j] = float64(v)
			}
			a.Samplers[i] = Sampler{Mode: InterpolationMode(mode), Times: times, Data: data}
		}

		*s.Animations.create(resolve(stored)) = a
	}
	return nil
}

func writeWeathers(s *Scene, w io.Writer) error {
	if err := writeU64(w, uint64(s.Weathers.size())); err != nil {
		return err
	}
	var outerErr error
	s.Weathers.each(func(e Entity, wt *Weather) {
		if outerErr != nil {
			return
		}
		if err := writeEntity(w, e); err != nil {
			outerErr = err
			return
		}
		if err := writeV4(w, float64(wt.HorizonColor[0]), float64(wt.HorizonColor[1]), float64(wt.HorizonColor[2]), 0); err != nil {
			outerErr = err
			return
		}
		if err := writeV4(w, float64(wt.ZenithColor[0]), float64(wt.ZenithColor[1]), float64(wt.ZenithColor[2]), 0); err != nil {
			outerErr = err
			return
		}
		if err := writeV4(w, float64(wt.FogStart), float64(wt.FogEnd), float64(wt.FogHeight), 0); err != nil {
			outerErr = err
			return
		}
		if err := writeBool(w, wt.DrawSun); err != nil {
			outerErr = err
			return
		}
		if err := writeV4(w, float64(wt.Cloudiness), float64(wt.CloudTurbulence), float64(wt.CloudHeight), float64(wt.WindSpeed)); err != nil {
			outerErr = err
			return
		}
		outerErr = writeU32(w, uint32(int32(wt.SunLightIndex)))
	})
	return outerErr
}

func readWeathers(s *Scene, r io.Reader, resolve func(Entity) Entity) error {
	count, err := readU64(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		stored, err := readEntity(r)
		if err != nil {
			return err
		}
		hr, hg, hb, _, err := readV4(r)
		if err != nil {
			return err
		}
		zr, zg, zb, _, err := readV4(r)
		if err != nil {
			return err
		}
		fogStart, fogEnd, fogHeight, _, err := readV4(r)
		if err != nil {
			return err
		}
		drawSun, err := readBool(r)
		if err != nil {
			return err
		}
		cloudiness, turbulence, cloudHeight, wind, err := readV4(r)
		if err != nil {
			return err
		}
		sunIdx, err := readU32(r)
		if err != nil {
			return err
		}
		*s.Weathers.create(resolve(stored)) = Weather{
			HorizonColor: [3]float32{float32(hr), float32(hg), float32(hb)},
			ZenithColor:  [3]float32{float32(zr), float32(zg), float32(zb)},
			FogStart:     float32(fogStart), FogEnd: float32(fogEnd), FogHeight: float32(fogHeight),
			DrawSun:         drawSun,
			Cloudiness:      float32(cloudiness),
			CloudTurbulence: float32(turbulence),
			CloudHeight:     float32(cloudHeight),
			WindSpeed:       float32(wind),
			SunLightIndex:   int(int32(sunIdx)),
		}
	}
	return nil
}
