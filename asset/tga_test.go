// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import "testing"

// encodeTestTGA builds an uncompressed, bottom-left-origin, 32bpp TGA
// for a 2x2 image from BGRA pixel rows (bottom row first, as TGA stores
// them by default).
func encodeTestTGA(bgra [][4]byte) []byte {
	header := make([]byte, 18)
	header[2] = tgaTypeTrueColor
	header[12], header[13] = 2, 0 // width 2
	header[14], header[15] = 2, 0 // height 2
	header[16] = 32
	header[17] = 0 // bottom-left origin

	buf := append([]byte{}, header...)
	for _, p := range bgra {
		buf = append(buf, p[:]...)
	}
	return buf
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// Bottom row first: (0,0) red, (1,0) green; (0,1) blue, (1,1) white.
	data := encodeTestTGA([][4]byte{
		{0, 0, 255, 255}, // bottom-left: red (BGRA)
		{0, 255, 0, 255}, // bottom-right: green
		{255, 0, 0, 255}, // top-left: blue
		{255, 255, 255, 255},
	})

	img, err := decodeTGA(data)
	if err != nil {
		t.Fatalf("decodeTGA: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Fatalf("got %dx%d, want 2x2", img.Width, img.Height)
	}
	// Flipped to top-to-bottom: row 0 is the TGA's top-left/top-right.
	topLeft := img.Pixels[0:4]
	if topLeft[0] != 0 || topLeft[1] != 0 || topLeft[2] != 255 {
		t.Fatalf("got top-left RGB %v, want blue", topLeft[:3])
	}
}

func TestDecodeTGARLE(t *testing.T) {
	header := make([]byte, 18)
	header[2] = tgaTypeTrueColorRLE
	header[12], header[13] = 4, 0 // width 4
	header[14], header[15] = 1, 0 // height 1
	header[16] = 32
	header[17] = 0x20 // top-left origin

	// One RLE packet: 4 identical red pixels.
	packet := []byte{0x80 | 3, 0, 0, 255, 255} // count-1=3 -> 4 pixels, BGRA red
	data := append(append([]byte{}, header...), packet...)

	img, err := decodeTGA(data)
	if err != nil {
		t.Fatalf("decodeTGA: %v", err)
	}
	if len(img.Pixels) != 4*4 {
		t.Fatalf("got %d pixel bytes, want 16", len(img.Pixels))
	}
	for i := 0; i < 4; i++ {
		px := img.Pixels[i*4 : i*4+4]
		if px[0] != 255 || px[1] != 0 || px[2] != 0 {
			t.Fatalf("pixel %d got RGB %v, want red", i, px[:3])
		}
	}
}

func TestDecodeTGARejectsColormap(t *testing.T) {
	header := make([]byte, 18)
	header[1] = 1 // colormap present
	header[2] = 1 // colormapped image type
	if _, err := decodeTGA(header); err == nil {
		t.Fatalf("expected error decoding a colormapped TGA")
	}
}
