// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

// entity.go holds the stable entity identifier and the allocator that hands
// them out. Entities carry no data of their own; every attribute lives in a
// component manager indexed by entity.

// Entity is an opaque identifier for a thing in a scene. The zero value is
// the reserved invalid entity.
type Entity uint64

// InvalidEntity is never returned by entities.create and never appears as a
// live key in any component manager.
const InvalidEntity Entity = 0

// idBits sizes the slot-index half of an Entity; edBits sizes the edition
// (generation) half, used to detect use of a stale id after its slot was
// recycled. 40 bits of index supports well over a trillion concurrently
// live entities, which is more headroom than any single scene needs, while
// leaving 24 bits of edition so a recycled slot can be reused about 16
// million times before editions wrap.
const (
	idBits = 40
	edBits = 64 - idBits

	maxID      = 1<<idBits - 1
	maxEdition = 1<<edBits - 1
)

func newEntity(index uint64, edition uint32) Entity {
	return Entity(index&maxID | uint64(edition&maxEdition)<<idBits)
}

// index returns the slot index this entity refers to.
func (e Entity) index() uint64 { return uint64(e) & maxID }

// edition returns the generation stamped on this entity's slot when it was
// allocated.
func (e Entity) edition() uint32 { return uint32(uint64(e) >> idBits) }

// entities is the allocator for Entity values. It hands out ids from a
// monotonically growing slice of editions, recycling freed slots and
// bumping their edition so a retained stale Entity compares as dead.
type entities struct {
	editions []uint32 // edition currently live at each slot index.
	free     []uint64 // recycled slot indexes available for reuse.
}

func newEntities() *entities {
	// index 0 is reserved for InvalidEntity and never handed out.
	return &entities{editions: []uint32{0}}
}

// create allocates a fresh Entity, reusing a freed slot when one is
// available.
func (es *entities) create() Entity {
	if n := len(es.free); n > 0 {
		index := es.free[n-1]
		es.free = es.free[:n-1]
		return newEntity(index, es.editions[index])
	}
	index := uint64(len(es.editions))
	es.editions = append(es.editions, 0)
	return newEntity(index, 0)
}

// valid reports whether e refers to a currently live slot at the edition it
// was created with.
func (es *entities) valid(e Entity) bool {
	if e == InvalidEntity {
		return false
	}
	index := e.index()
	return index < uint64(len(es.editions)) && es.editions[index] == e.edition()
}

// dispose recycles e's slot, bumping its edition so outstanding copies of e
// are recognized as stale. Disposing an already-dead or unknown entity is a
// no-op.
func (es *entities) dispose(e Entity) {
	if !es.valid(e) {
		return
	}
	index := e.index()
	es.editions[index]++
	if es.editions[index] <= maxEdition {
		es.free = append(es.free, index)
	}
	// an edition that wrapped past maxEdition retires the slot rather
	// than risk handing out a colliding id; this is expected to never
	// happen in practice given edBits's headroom.
}
