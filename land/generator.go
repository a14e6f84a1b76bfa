// Copyright © 2014-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package land

// Generator is the exported, per-point wrapper around the package's
// simplex-noise implementation. Generator.Sample exposes the gradient noise
// one point at a time, for callers (the terrain node graph's Perlin
// producer) that compose it with their own octave/lacunarity/persistence
// loop.
type Generator struct {
	n *noise
}

// NewGenerator returns a Generator seeded the way newNoise's other callers
// do: 0 picks a time-based seed, any other value reproduces a previously
// generated field.
func NewGenerator(seed int64) *Generator {
	return &Generator{n: newNoise(seed)}
}

// Sample returns raw 2D simplex noise in [-1,1] at (x, y).
func (g *Generator) Sample(x, y float64) float64 {
	return g.n.generate(x, y)
}
