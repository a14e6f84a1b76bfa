// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import (
	"testing"

	"github.com/vanta-engine/vanta/math/lin"
)

func TestUpdatePerFrameDataSortsDirectionalFirst(t *testing.T) {
	s, _ := newTestScene()

	sun := s.CreateLight("sun", Directional)
	s.Lights.getComponent(sun).Energy = 1

	bulb := s.CreateLight("bulb", Point)
	s.Lights.getComponent(bulb).Energy = 5
	s.Lights.getComponent(bulb).Range = 3

	s.Update(0)

	bulbIdx, _ := s.Lights.indexOf(bulb)
	sunIdx, _ := s.Lights.indexOf(sun)

	var view View
	view.LightIndexes = []int{bulbIdx, sunIdx}

	var frame FrameCB
	UpdatePerFrameData(s, &view, 1.5, &frame)

	if frame.NumLights != 2 {
		t.Fatalf("got NumLights %d, want 2", frame.NumLights)
	}
	if frame.PointLightsOffset != 1 {
		t.Fatalf("got PointLightsOffset %d, want 1 (one directional light precedes the points)", frame.PointLightsOffset)
	}
	if frame.Lights[0].Type != int32(Directional) {
		t.Fatalf("got Lights[0].Type %d, want Directional", frame.Lights[0].Type)
	}
	if frame.Lights[1].Type != int32(Point) {
		t.Fatalf("got Lights[1].Type %d, want Point", frame.Lights[1].Type)
	}
	if frame.MostImportantLightIndex != 1 {
		t.Fatalf("got MostImportantLightIndex %d, want 1 (the brighter point light)", frame.MostImportantLightIndex)
	}
}

func TestUpdatePerFrameDataCapsAtShaderMax(t *testing.T) {
	s, _ := newTestScene()
	var view View
	for i := 0; i < ShaderMaxLightsources+5; i++ {
		l := s.CreateLight("l", Point)
		s.Lights.getComponent(l).Energy = float32(i)
		view.LightIndexes = append(view.LightIndexes, i)
	}
	s.Update(0)

	var frame FrameCB
	UpdatePerFrameData(s, &view, 0, &frame)

	if frame.NumLights != ShaderMaxLightsources {
		t.Fatalf("got NumLights %d, want %d (capped)", frame.NumLights, ShaderMaxLightsources)
	}
}

func TestUpdatePerFrameDataCarriesWeather(t *testing.T) {
	s, _ := newTestScene()
	s.Active.FogStart, s.Active.FogEnd = 10, 110
	s.Active.Cloudiness = 0.5

	var view View
	var frame FrameCB
	UpdatePerFrameData(s, &view, 0, &frame)

	if frame.FogInvRange != 0.01 {
		t.Fatalf("got FogInvRange %v, want 0.01", frame.FogInvRange)
	}
	if frame.Cloudiness != 0.5 {
		t.Fatalf("got Cloudiness %v, want 0.5", frame.Cloudiness)
	}
}

func TestToWireLightEncodesForward(t *testing.T) {
	l := &Light{Type: Directional, Color: [3]float32{1, 0, 0}, Energy: 2, Position: lin.V3{Y: 1}}
	w := toWireLight(l, lin.V3{Z: -1})
	if w.Direction != [4]float32{0, 0, -1, 0} {
		t.Fatalf("got Direction %v, want (0,0,-1,0)", w.Direction)
	}
	if w.Position != [4]float32{0, 1, 0, 1} {
		t.Fatalf("got Position %v, want (0,1,0,1)", w.Position)
	}
}
