// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import "github.com/vanta-engine/vanta/math/lin"

// InterpolationMode selects how a sampler blends between keyframes.
type InterpolationMode uint8

const (
	Step InterpolationMode = iota
	Linear
	CubicSpline
)

// ChannelPath selects which part of a target transform a channel writes.
// Weights targets morph-target weights; since skinned/morph deformation is
// out of scope here, a Weights channel still advances its sampler (for
// round-trip fidelity) but has nothing to write its result into.
type ChannelPath uint8

const (
	Unknown ChannelPath = iota
	Translation
	Rotation
	Scale
	Weights
)

// AnimationFlags are bit flags controlling playback.
type AnimationFlags uint32

const (
	Playing AnimationFlags = 1 << iota
	Looped
	PingPong
)

// Sampler holds one channel's keyframe data. Data is stored flat: for
// CubicSpline, each keyframe contributes three consecutive vectors
// (in-tangent, value, out-tangent); for Step and Linear, one. A vector's
// width (3 for Translation/Scale, 4 for Rotation) is implied by the
// channel referencing this sampler.
type Sampler struct {
	Mode  InterpolationMode
	Times []float64
	Data  []float64
}

// Channel drives one property of one transform from one sampler.
type Channel struct {
	Target        Entity
	SamplerIndex  int
	Path          ChannelPath
}

// Animation is a playable clip: a timer advancing over [Start,End], a set
// of samplers, and the channels that read them.
type Animation struct {
	Start, End float64
	Timer      float64
	Speed      float64
	Blend      float64
	Flags      AnimationFlags

	Channels []Channel
	Samplers []Sampler

	pingPongReverse bool
}

// newAnimation returns a stopped, unit-speed animation spanning [start,end].
func newAnimation(start, end float64) Animation {
	return Animation{Start: start, End: end, Speed: 1, Blend: 1}
}

// animationPass advances every playing animation's timer and writes its
// channels' sampled values into the target transforms, marking each
// touched transform dirty so the following transform pass recomposes it.
func animationPass(animations *componentManager[Animation], transforms *componentManager[Transform], dt float64) {
	animations.each(func(_ Entity, a *Animation) {
		if a.Flags&Playing == 0 {
			return
		}
		advance(a, dt)
		for _, ch := range a.Channels {
			if ch.SamplerIndex < 0 || ch.SamplerIndex >= len(a.Samplers) {
				continue
			}
			t := transforms.getComponent(ch.Target)
			if t == nil {
				continue
			}
			applyChannel(a.Samplers[ch.SamplerIndex], ch.Path, a.Timer, t)
		}
	})
}

func advance(a *Animation, dt float64) {
	span := a.End - a.Start
	if span <= 0 {
		return
	}
	step := dt * a.Speed
	if a.pingPongReverse {
		step = -step
	}
	a.Timer += step

	switch {
	case a.Timer > a.End:
		switch {
		case a.Flags&PingPong != 0:
			a.Timer = a.End - (a.Timer - a.End)
			a.pingPongReverse = true
		case a.Flags&Looped != 0:
			a.Timer = a.Start + mod(a.Timer-a.Start, span)
		default:
			a.Timer = a.End
			a.Flags &^= Playing
		}
	case a.Timer < a.Start:
		switch {
		case a.Flags&PingPong != 0:
			a.Timer = a.Start + (a.Start - a.Timer)
			a.pingPongReverse = false
		case a.Flags&Looped != 0:
			a.Timer = a.End - mod(a.Start-a.Timer, span)
		default:
			a.Timer = a.Start
			a.Flags &^= Playing
		}
	}
}

func mod(v, m float64) float64 {
	if m == 0 {
		return 0
	}
	r := v
	for r >= m {
		r -= m
	}
	for r < 0 {
		r += m
	}
	return r
}

// applyChannel samples s at time and writes the result into t according to
// path.
func applyChannel(s Sampler, path ChannelPath, time float64, t *Transform) {
	width := 3
	if path == Rotation {
		width = 4
	}
	v := sample(s, width, time)
	switch path {
	case Translation:
		t.Translation = lin.V3{X: v[0], Y: v[1], Z: v[2]}
		t.dirty = true
	case Scale:
		t.Scale = lin.V3{X: v[0], Y: v[1], Z: v[2]}
		t.dirty = true
	case Rotation:
		q := lin.Q{X: v[0], Y: v[1], Z: v[2], W: v[3]}
		q.Unit()
		t.Rotation = q
		t.dirty = true
	case Weights, Unknown:
		// no write target; see ChannelPath doc.
	}
}

// sample returns the width-wide vector at time, using s.Mode to
// interpolate between the bracketing keyframes found by binary search.
func sample(s Sampler, width int, time float64) []float64 {
	n := len(s.Times)
	if n == 0 {
		return make([]float64, width)
	}
	if n == 1 || time <= s.Times[0] {
		return keyframeValue(s, width, 0)
	}
	if time >= s.Times[n-1] {
		return keyframeValue(s, width, n-1)
	}

	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if s.Times[mid] <= time {
			lo = mid
		} else {
			hi = mid
		}
	}

	t0, t1 := s.Times[lo], s.Times[hi]
	span := t1 - t0
	frac := 0.0
	if span > 0 {
		frac = (time - t0) / span
	}

	switch s.Mode {
	case Step:
		return keyframeValue(s, width, lo)
	case CubicSpline:
		return hermite(s, width, lo, hi, frac, span)
	default: // Linear
		a, b := keyframeValue(s, width, lo), keyframeValue(s, width, hi)
		out := make([]float64, width)
		for i := range out {
			out[i] = a[i] + (b[i]-a[i])*frac
		}
		return out
	}
}

// keyframeValue reads keyframe k's value vector, accounting for
// CubicSpline's three-vectors-per-keyframe stride.
func keyframeValue(s Sampler, width, k int) []float64 {
	stride := width
	offset := k * width
	if s.Mode == CubicSpline {
		stride = width * 3
		offset = k*stride + width // skip the in-tangent.
	}
	_ = stride
	out := make([]float64, width)
	copy(out, s.Data[offset:offset+width])
	return out
}

// hermite evaluates the cubic-Hermite spline between keyframes lo and hi
// using their out/in tangents, per the glTF cubic-spline convention.
func hermite(s Sampler, width, lo, hi int, t, dt float64) []float64 {
	stride := width * 3
	p0 := s.Data[lo*stride+width : lo*stride+2*width]
	m0 := s.Data[lo*stride+2*width : lo*stride+3*width]
	p1 := s.Data[hi*stride+width : hi*stride+2*width]
	m1 := s.Data[hi*stride : hi*stride+width]

	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	out := make([]float64, width)
	for i := 0; i < width; i++ {
		out[i] = h00*p0[i] + h10*dt*m0[i] + h01*p1[i] + h11*dt*m1[i]
	}
	return out
}
