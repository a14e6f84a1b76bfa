// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package terrain

import (
	"image"
	"image/color"
)

// Preview renders n's height field into a grayscale debug image, width
// by height pixels, step world units apart per pixel, mapping [-1,1] to a
// plain grayscale ramp (rather than a fixed water/land split) since a
// Node has no inherent land/water threshold.
func Preview(n Node, width, height int, step float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := n.Value(float64(x)*step, float64(y)*step)
			g := uint8(clamp01((v+1)/2) * 255)
			img.SetNRGBA(x, y, color.NRGBA{R: g, G: g, B: g, A: 255})
		}
	}
	return img
}
