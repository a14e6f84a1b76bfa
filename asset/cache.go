// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package asset implements the engine's resource cache: a deduplicated,
// hash-keyed loader with weak references and hot-reload. Names are hashed
// with FNV-1a the way the old sound package tagged resources with
// type<<32|hash; decoding dispatches by file extension: png and jpeg use
// the standard library, bmp uses golang.org/x/image/bmp, and tga and dds
// are parsed by this package.
package asset

import (
	"errors"
	"hash/fnv"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// ErrNotFound is returned by Load when name cannot be located on any
// search path.
var ErrNotFound = errors.New("asset: not found")

// ErrUnknownExtension is returned by Load when name's extension is not in
// the fixed type table.
var ErrUnknownExtension = errors.New("asset: unknown extension")

// Kind is the decoded resource category.
type Kind int

const (
	KindImage Kind = iota
	KindShader
	KindSound // reserved: no decoder implemented, per spec §4.2.
)

// Flags alter how Load treats a resource.
type Flags uint32

const (
	// RetainFileData keeps the raw bytes around after decode.
	RetainFileData Flags = 1 << iota
	// ImageFlip flips the image vertically on decode.
	ImageFlip
)

// Resource is a loaded, decoded asset. A Resource returned invalid (Valid
// == false) carries no usable data; callers must check before use.
type Resource struct {
	Name  string
	Hash  uint64
	Kind  Kind
	Valid bool

	Image *DecodedImage // set when Kind == KindImage and Valid.
	Bytes []byte        // shader bytecode, or raw file data when RetainFileData.
}

// hashName returns the FNV-1a 64-bit hash of a logical resource name.
func hashName(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64()
}

// extensionKinds is the fixed extension-to-kind table from spec §4.2.
var extensionKinds = map[string]Kind{
	".jpg": KindImage, ".jpeg": KindImage, ".png": KindImage,
	".dds": KindImage, ".tga": KindImage, ".bmp": KindImage,
	".frag": KindShader, ".vert": KindShader, ".geom": KindShader, ".comp": KindShader,
	".spv": KindShader,
}

// weakEntry is a simulated weak reference: a *Resource whose finalizer
// clears the cache's strong map slot when the garbage collector decides
// nothing else holds it. Go has no native weak-pointer type the way the
// source engine's reference-counted handles do, so "weak" here means "the
// cache stops pinning it and lets the collector reclaim it on its own
// schedule" rather than true weak-pointer semantics; see DESIGN.md.
type weakEntry struct {
	resource *Resource
}

// Cache is the process-wide resource cache. The zero value is not usable;
// construct with New.
type Cache struct {
	mu          sync.Mutex
	searchPaths []string
	live        map[uint64]*weakEntry

	watcher *watcher
}

// New returns a Cache that searches the given directories, in order, for
// resources that are not already decoded.
func New(searchPaths ...string) *Cache {
	return &Cache{
		searchPaths: searchPaths,
		live:        map[uint64]*weakEntry{},
	}
}

// Load resolves name's kind from its extension, returns the live resource
// if one is still referenced, and otherwise locates, reads, and decodes it
// from the search paths. The lock is released while decoding so a slow
// decode never blocks unrelated cache lookups.
func (c *Cache) Load(name string, flags Flags) (*Resource, error) {
	kind, ok := extensionKinds[filepath.Ext(name)]
	if !ok {
		return nil, ErrUnknownExtension
	}
	hash := hashName(name)

	c.mu.Lock()
	if entry, ok := c.live[hash]; ok {
		c.mu.Unlock()
		return entry.resource, nil
	}
	c.mu.Unlock()

	path, data, err := c.readFile(name)
	if err != nil {
		slog.Warn("resource load failed", "name", name, "err", err)
		return &Resource{Name: name, Hash: hash, Kind: kind, Valid: false}, err
	}

	res, err := decode(name, hash, kind, data, flags)
	if err != nil {
		slog.Warn("resource decode failed", "name", name, "path", path, "err", err)
		return &Resource{Name: name, Hash: hash, Kind: kind, Valid: false}, err
	}

	c.install(hash, res)
	return res, nil
}

// install inserts res into the live map and arms its weak-reference
// finalizer.
func (c *Cache) install(hash uint64, res *Resource) {
	entry := &weakEntry{resource: res}
	c.mu.Lock()
	c.live[hash] = entry
	c.mu.Unlock()
	runtime.SetFinalizer(res, func(r *Resource) {
		c.mu.Lock()
		if c.live[hash] == entry {
			delete(c.live, hash)
		}
		c.mu.Unlock()
	})
}

// readFile walks the search paths in order, returning the first match.
func (c *Cache) readFile(name string) (path string, data []byte, err error) {
	candidates := append([]string{""}, c.searchPaths...)
	for _, dir := range candidates {
		p := filepath.Join(dir, name)
		data, err = os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
	}
	return "", nil, ErrNotFound
}

// Reload force-reruns the loader for name, re-decoding it in place if it is
// still referenced. Called by the hot-reload watcher; harmless to call
// directly.
func (c *Cache) Reload(name string) {
	kind, ok := extensionKinds[filepath.Ext(name)]
	if !ok {
		return
	}
	hash := hashName(name)

	c.mu.Lock()
	entry, live := c.live[hash]
	c.mu.Unlock()
	if !live {
		return
	}

	_, data, err := c.readFile(name)
	if err != nil {
		slog.Warn("hot-reload read failed", "name", name, "err", err)
		return
	}
	res, err := decode(name, hash, kind, data, 0)
	if err != nil {
		slog.Warn("hot-reload decode failed", "name", name, "err", err)
		return
	}
	*entry.resource = *res
	slog.Info("resource hot-reloaded", "name", name)
}
