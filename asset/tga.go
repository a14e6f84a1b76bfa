// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import (
	"encoding/binary"
	"fmt"
)

// tgaImageType values this decoder accepts: uncompressed true-color (2)
// and RLE-compressed true-color (10). Colormapped and grayscale TGAs
// are rejected; the engine's texture pipeline only ever writes true-color
// TGAs, so there is nothing in the corpus to ground a colormap expansion
// on.
const (
	tgaTypeTrueColor    = 2
	tgaTypeTrueColorRLE = 10
)

// decodeTGA parses the 18-byte TGA header and pixel data directly; there
// is no TGA decoder anywhere in the module corpus to reuse (unlike png/
// jpeg/bmp, which lean on a standard or golang.org/x/image package), so
// this follows the format's own (public-domain, widely documented)
// layout by hand. Supports 24 and 32 bit-per-pixel true-color images,
// both uncompressed and RLE-compressed, origin top-left or bottom-left
// (the common cases stb_image's TGA path also covers).
func decodeTGA(data []byte) (*DecodedImage, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("asset: tga: file too short for header")
	}
	idLen := int(data[0])
	colorMapType := data[1]
	imgType := data[2]
	width := int(binary.LittleEndian.Uint16(data[12:14]))
	height := int(binary.LittleEndian.Uint16(data[14:16]))
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("asset: tga: colormapped images not implemented")
	}
	if imgType != tgaTypeTrueColor && imgType != tgaTypeTrueColorRLE {
		return nil, fmt.Errorf("asset: tga: image type %d not implemented", imgType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("asset: tga: %d bpp not implemented", bpp)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("asset: tga: invalid dimensions %dx%d", width, height)
	}

	offset := 18 + idLen
	srcBytesPerPixel := bpp / 8
	pixelCount := width * height
	bgra := make([]byte, pixelCount*srcBytesPerPixel)

	if imgType == tgaTypeTrueColor {
		need := offset + len(bgra)
		if need > len(data) {
			return nil, fmt.Errorf("asset: tga: truncated pixel data")
		}
		copy(bgra, data[offset:need])
	} else {
		if err := decodeTGARLE(data[offset:], bgra, srcBytesPerPixel); err != nil {
			return nil, err
		}
	}

	pixels := make([]byte, pixelCount*4)
	for i := 0; i < pixelCount; i++ {
		s := bgra[i*srcBytesPerPixel : i*srcBytesPerPixel+srcBytesPerPixel]
		d := pixels[i*4 : i*4+4]
		d[0], d[1], d[2] = s[2], s[1], s[0] // BGR(A) -> RGB.
		if srcBytesPerPixel == 4 {
			d[3] = s[3]
		} else {
			d[3] = 0xFF
		}
	}

	img := &DecodedImage{Width: width, Height: height, Pixels: pixels}
	// Bit 5 of the image descriptor set means the origin is top-left
	// already; clear means bottom-left, the TGA default, so flip to
	// match this decoder's row-major top-to-bottom output.
	if descriptor&0x20 == 0 {
		flipVertical(img)
	}
	return img, nil
}

// decodeTGARLE expands TGA's packet-based run-length encoding: each
// packet's high bit selects a raw run (literal pixels follow) or an RLE
// run (one pixel repeats), and the low 7 bits give the run length minus
// one.
func decodeTGARLE(src, dst []byte, bytesPerPixel int) error {
	di := 0
	si := 0
	for di < len(dst) {
		if si >= len(src) {
			return fmt.Errorf("asset: tga: truncated RLE stream")
		}
		header := src[si]
		si++
		count := int(header&0x7f) + 1

		if header&0x80 != 0 {
			if si+bytesPerPixel > len(src) {
				return fmt.Errorf("asset: tga: truncated RLE pixel")
			}
			px := src[si : si+bytesPerPixel]
			si += bytesPerPixel
			for i := 0; i < count && di < len(dst); i++ {
				copy(dst[di:di+bytesPerPixel], px)
				di += bytesPerPixel
			}
		} else {
			n := count * bytesPerPixel
			if si+n > len(src) {
				return fmt.Errorf("asset: tga: truncated raw run")
			}
			copy(dst[di:di+n], src[si:si+n])
			si += n
			di += n
		}
	}
	return nil
}
