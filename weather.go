// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

// Weather describes the sky/atmosphere state the renderer's Frame constant
// buffer copies each frame. A scene may hold several; only weathers[0], if
// any, is active (see weatherPass).
type Weather struct {
	HorizonColor [3]float32
	ZenithColor  [3]float32

	FogStart, FogEnd, FogHeight float32

	DrawSun bool

	Cloudiness      float32
	CloudTurbulence float32
	CloudHeight     float32

	WindSpeed float32

	// SunLightIndex names the dense index, within the light manager, of
	// the most important directional light (usually the brightest); -1
	// when none is set.
	SunLightIndex int
}

// newWeather returns a pale-blue-sky default with no fog and no assigned
// sun light.
func newWeather() Weather {
	return Weather{
		HorizonColor:  [3]float32{0.8, 0.85, 0.9},
		ZenithColor:   [3]float32{0.2, 0.4, 0.8},
		FogStart:      50,
		FogEnd:        500,
		FogHeight:     0,
		DrawSun:       true,
		SunLightIndex: -1,
	}
}

// weatherPass copies weathers[0], if one exists, into active. Returns
// active unchanged (and false) when the scene carries no weather.
func weatherPass(weathers *componentManager[Weather], active *Weather) bool {
	if weathers.size() == 0 {
		return false
	}
	*active = weathers.data[0]
	return true
}
