// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package terrain

import "math"

// ScaleBias returns scale*in + bias, the node graph's one purely affine
// modifier.
type ScaleBias struct {
	In          Node
	Scale, Bias float64
}

func (s *ScaleBias) Value(x, y float64) float64 {
	return sample(s.In, x, y)*s.Scale + s.Bias
}

// StrataMode selects one of the four step functions Strata applies.
type StrataMode int

const (
	SharpSub StrataMode = iota
	SharpAdd
	Quantize
	Smooth
)

// Strata quantizes its input into Count discrete bands, shaping the
// transition between bands according to Mode.
type Strata struct {
	In    Node
	Mode  StrataMode
	Count float64
}

func (s *Strata) Value(x, y float64) float64 {
	v := sample(s.In, x, y)
	if s.Count <= 0 {
		return v
	}
	scaled := v * s.Count
	floor := math.Floor(scaled)
	frac := scaled - floor
	switch s.Mode {
	case SharpSub:
		return (floor - frac) / s.Count
	case SharpAdd:
		return (floor + frac) / s.Count
	case Quantize:
		return floor / s.Count
	default: // Smooth
		eased := frac * frac * (3 - 2*frac)
		return (floor + eased) / s.Count
	}
}

// Invert negates its input.
type Invert struct{ In Node }

func (i *Invert) Value(x, y float64) float64 { return -sample(i.In, x, y) }

// Blend linearly interpolates A and B by a constant Alpha.
type Blend struct {
	A, B  Node
	Alpha float64
}

func (b *Blend) Value(x, y float64) float64 {
	a, c := sample(b.A, x, y), sample(b.B, x, y)
	return a + (c-a)*b.Alpha
}

// Select chooses between A and B by comparing Control against
// Threshold, smoothstepping across a band of width 2*Falloff centered
// on Threshold when Falloff > 0 rather than switching abruptly.
type Select struct {
	A, B, Control      Node
	Threshold, Falloff float64
}

func (s *Select) Value(x, y float64) float64 {
	c := sample(s.Control, x, y)
	a, b := sample(s.A, x, y), sample(s.B, x, y)
	if s.Falloff <= 0 {
		if c < s.Threshold {
			return a
		}
		return b
	}
	lo, hi := s.Threshold-s.Falloff, s.Threshold+s.Falloff
	t := clamp01((c - lo) / (hi - lo))
	t = t * t * (3 - 2*t)
	return a + (b-a)*t
}
