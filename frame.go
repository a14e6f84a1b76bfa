// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import "github.com/vanta-engine/vanta/math/lin"

// ShaderMaxLightsources bounds the fixed light array every Frame constant
// buffer carries (spec §6).
const ShaderMaxLightsources = 64

// Constant-buffer binding slots shared with shaders, per spec §6.
const (
	SlotFrame    = 0
	SlotCamera   = 2
	SlotMisc     = 3
	SlotMaterial = 4
	SlotImage    = 5
)

// WireLight is the 64-byte, std140-compatible per-light record the Frame
// constant buffer embeds, matching spec §6's wire format exactly:
// position, direction, color as padded vec4s, then type/energy/range/pad.
type WireLight struct {
	Position  [4]float32
	Direction [4]float32
	Color     [4]float32
	Type      int32
	Energy    float32
	Range     float32
	_pad      float32
}

// FrameCB is the per-frame constant buffer (spec §4.10, slot 0).
type FrameCB struct {
	Time  float32
	Gamma float32

	HorizonColor [3]float32
	_pad0        float32
	ZenithColor  [3]float32
	_pad1        float32

	FogStart      float32
	FogEnd        float32
	FogHeight     float32
	FogInvRange   float32 // 1/(FogEnd-FogStart).

	Cloudiness      float32
	CloudTurbulence float32
	CloudHeight     float32
	WindSpeed       float32

	DrawSun bool

	NumLights              int32
	PointLightsOffset      int32
	MostImportantLightIndex int32

	Lights [ShaderMaxLightsources]WireLight
}

// CameraCB is the per-camera constant buffer (spec §4.10, slot 2).
type CameraCB struct {
	Proj, View, VP             lin.M4
	InvProj, InvView, InvVP    lin.M4
	Position                   lin.V3
}

// MaterialCB is the per-subset material constant buffer (spec §4.10,
// slot 4).
type MaterialCB struct {
	BaseColor [4]float32
	Roughness float32
	Metalness float32
}

// MiscCB carries the per-draw model matrices (spec §4.10, slot 3).
type MiscCB struct {
	Model   lin.M4
	ModelVP lin.M4
}

// PostProcessPush is the outline post-process's push-constant payload:
// two vec4s holding thickness/threshold/time/color (spec §4.10).
type PostProcessPush struct {
	ThicknessThresholdTime [4]float32
	Color                  [4]float32
}

// toWireLight converts a scene Light plus its derived world position into
// the wire format; direction is derived from the owning transform's
// forward (-Z) axis for directional lights, and left zeroed for point
// lights, which have no meaningful direction.
func toWireLight(l *Light, forward lin.V3) WireLight {
	var dir [4]float32
	if l.Type == Directional {
		dir = [4]float32{float32(forward.X), float32(forward.Y), float32(forward.Z), 0}
	}
	return WireLight{
		Position:  [4]float32{float32(l.Position.X), float32(l.Position.Y), float32(l.Position.Z), 1},
		Direction: dir,
		Color:     [4]float32{l.Color[0], l.Color[1], l.Color[2], 1},
		Type:      int32(l.Type),
		Energy:    l.Energy,
		Range:     l.Range,
	}
}

// UpdatePerFrameData populates frame from scene's active weather and the
// lights visible in view, sorting directional lights first (so
// pointLightsOffset marks where point lights begin) and recording the
// index of the brightest light as mostImportantLightIndex.
func UpdatePerFrameData(scene *Scene, view *View, timeSeconds float64, frame *FrameCB) {
	w := scene.Active
	frame.Time = float32(timeSeconds)
	frame.Gamma = 2.2
	frame.HorizonColor = w.HorizonColor
	frame.ZenithColor = w.ZenithColor
	frame.FogStart, frame.FogEnd, frame.FogHeight = w.FogStart, w.FogEnd, w.FogHeight
	if rng := w.FogEnd - w.FogStart; rng != 0 {
		frame.FogInvRange = 1 / rng
	}
	frame.Cloudiness, frame.CloudTurbulence = w.Cloudiness, w.CloudTurbulence
	frame.CloudHeight, frame.WindSpeed = w.CloudHeight, w.WindSpeed
	frame.DrawSun = w.DrawSun

	type indexed struct {
		idx int
		l   Light
	}
	var directional, point []indexed
	for _, idx := range view.LightIndexes {
		l := scene.Lights.data[idx]
		if l.Type == Directional {
			directional = append(directional, indexed{idx, l})
		} else {
			point = append(point, indexed{idx, l})
		}
	}

	n := 0
	brightest := -1
	var brightestEnergy float32 = -1
	write := func(idx int, l Light) {
		if n >= ShaderMaxLightsources {
			return
		}
		var forward lin.V3
		if e := scene.Lights.getEntity(idx); e != InvalidEntity {
			if t := scene.Transforms.getComponent(e); t != nil {
				forward = lin.V3{X: -t.World.Zx, Y: -t.World.Zy, Z: -t.World.Zz}
			}
		}
		frame.Lights[n] = toWireLight(&l, forward)
		if l.Energy > brightestEnergy {
			brightestEnergy = l.Energy
			brightest = n
		}
		n++
	}
	for _, d := range directional {
		write(d.idx, d.l)
	}
	frame.PointLightsOffset = int32(len(directional))
	for _, p := range point {
		write(p.idx, p.l)
	}
	frame.NumLights = int32(n)
	frame.MostImportantLightIndex = int32(brightest)
}
