// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import "github.com/vanta-engine/vanta/internal/rhivk"

// SamplerDesc describes a Sampler creation request.
type SamplerDesc struct {
	MinFilter, MagFilter rhivk.Filter
	AddressU, AddressV, AddressW rhivk.SamplerAddressMode
	LODBias, LODMin, LODMax float32
	MaxAnisotropy float32
	BorderColor [4]float32
}

// Sampler is an RHI sampler resource.
type Sampler struct {
	Desc    SamplerDesc
	tracker *Tracker
}

// CreateSampler allocates a Sampler per desc.
func (d *Device) CreateSampler(desc SamplerDesc) *Sampler {
	s := &Sampler{Desc: desc}
	s.tracker = NewTracker(d.Free, KindSampler, func() {})
	return s
}

// ReleaseSampler drops the sampler's reference.
func (d *Device) ReleaseSampler(s *Sampler) {
	s.tracker.Release(d.FrameCount())
}

// PointClampSampler returns the description for the point-filter,
// clamp-to-edge sampler the outline post-process binds (spec §4.10).
func PointClampSampler() SamplerDesc {
	return SamplerDesc{
		MinFilter: rhivk.FilterNearest,
		MagFilter: rhivk.FilterNearest,
		AddressU:  rhivk.SamplerAddressModeClampToEdge,
		AddressV:  rhivk.SamplerAddressModeClampToEdge,
		AddressW:  rhivk.SamplerAddressModeClampToEdge,
		LODMax:    1000,
	}
}
