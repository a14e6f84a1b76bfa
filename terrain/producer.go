// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package terrain

import (
	"math"

	"github.com/vanta-engine/vanta/land"
)

// Perlin is a classic gradient-noise FBM producer: seed, base frequency,
// octave count, lacunarity (frequency growth per octave), and
// persistence (amplitude decay per octave). fractalBounding normalizes
// the summed amplitudes back toward [-1,1] for any octave count, with
// the field sampled one point at a time through land.Generator.
type Perlin struct {
	Frequency   float64
	Octaves     int
	Lacunarity  float64
	Persistence float64

	gen             *land.Generator
	fractalBounding float64
}

// NewPerlin seeds a Perlin producer. octaves, lacunarity, and
// persistence follow the classic FBM recipe; fractalBounding is
// precomputed once as 1/Σ persistence^i so Value's output stays in
// roughly [-1,1] regardless of octave count.
func NewPerlin(seed int64, frequency float64, octaves int, lacunarity, persistence float64) *Perlin {
	p := &Perlin{
		Frequency:   frequency,
		Octaves:     octaves,
		Lacunarity:  lacunarity,
		Persistence: persistence,
		gen:         land.NewGenerator(seed),
	}
	amp, sum := 1.0, 0.0
	for i := 0; i < octaves; i++ {
		sum += amp
		amp *= persistence
	}
	if sum != 0 {
		p.fractalBounding = 1 / sum
	}
	return p
}

func (p *Perlin) Value(x, y float64) float64 {
	freq, amp, total := p.Frequency, 1.0, 0.0
	for i := 0; i < p.Octaves; i++ {
		total += p.gen.Sample(x*freq, y*freq) * amp
		freq *= p.Lacunarity
		amp *= p.Persistence
	}
	return total * p.fractalBounding
}

// CellularReturn selects what a Cellular node reports about the Worley
// cell a point falls in.
type CellularReturn int

const (
	CellularDistance  CellularReturn = iota // distance to the nearest cell point.
	CellularDistance2                       // difference between the two nearest cell distances.
	CellularValue                           // a pseudo-random value keyed on the nearest cell.
)

// Cellular is a Worley/cellular-noise producer: a seeded, jittered point
// per unit grid cell, compared against the sampled point in its 3x3
// cell neighborhood.
type Cellular struct {
	Seed   int64
	Jitter float64
	Return CellularReturn
}

// NewCellular returns a Cellular producer; jitter <= 0 falls back to
// 0.45, the point at which cell points can't cross into a neighboring
// cell and flicker the nearest-point assignment.
func NewCellular(seed int64, jitter float64, ret CellularReturn) *Cellular {
	if jitter <= 0 {
		jitter = 0.45
	}
	return &Cellular{Seed: seed, Jitter: jitter, Return: ret}
}

func (c *Cellular) Value(x, y float64) float64 {
	xi, yi := math.Floor(x), math.Floor(y)
	best, second := math.MaxFloat64, math.MaxFloat64
	var bestHash uint32

	for oy := -1; oy <= 1; oy++ {
		for ox := -1; ox <= 1; ox++ {
			cx, cy := xi+float64(ox), yi+float64(oy)
			h := cellHash(c.Seed, int64(cx), int64(cy))
			jx := (float64(h&0xFFFF)/0xFFFF - 0.5) * 2 * c.Jitter
			jy := (float64((h>>16)&0xFFFF)/0xFFFF - 0.5) * 2 * c.Jitter
			dx, dy := cx+jx-x, cy+jy-y
			d := dx*dx + dy*dy
			if d < best {
				second = best
				best = d
				bestHash = h
			} else if d < second {
				second = d
			}
		}
	}

	switch c.Return {
	case CellularDistance2:
		return math.Sqrt(second) - math.Sqrt(best)
	case CellularValue:
		return float64(bestHash&0xFFFF) / 0xFFFF
	default:
		return math.Sqrt(best)
	}
}

// cellHash mixes seed and cell coordinates with a splitmix64-style
// avalanche; there is no cellular-noise implementation anywhere in the
// corpus to ground this on, so it is hand-rolled from a well-known
// public-domain mixing function rather than a hashing library.
func cellHash(seed, x, y int64) uint32 {
	h := uint64(seed)
	h = h*6364136223846793005 + uint64(x)*1442695040888963407
	h ^= h >> 33
	h = h*0xff51afd7ed558ccd + uint64(y)*0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return uint32(h)
}

// Const is a producer that returns the same value everywhere.
type Const struct{ V float64 }

func (c Const) Value(x, y float64) float64 { return c.V }
