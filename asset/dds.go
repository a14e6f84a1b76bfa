// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import (
	"encoding/binary"
	"fmt"
)

const ddsMagic = 0x20534444 // "DDS " little-endian.

// ddsPixelFormatFlags bits this decoder understands.
const (
	ddpfAlphaPixels = 0x1
	ddpfRGB         = 0x40
)

// decodeDDS parses just enough of a DDS container to recover an
// uncompressed RGB/RGBA pixel buffer: the fixed 128-byte header (no
// DX10 extension header support, since nothing in the corpus writes
// one) and the pixel-format block's bit masks. Block-compressed
// payloads (DXT1/3/5, BC4-7, identified by a non-zero FourCC) are
// rejected outright rather than silently misread, since decompressing
// them needs a real BC-decoder this corpus has no library for.
func decodeDDS(data []byte) (*DecodedImage, error) {
	if len(data) < 128 {
		return nil, fmt.Errorf("asset: dds: file too short for header")
	}
	if binary.LittleEndian.Uint32(data[0:4]) != ddsMagic {
		return nil, fmt.Errorf("asset: dds: bad magic")
	}
	height := int(binary.LittleEndian.Uint32(data[12:16]))
	width := int(binary.LittleEndian.Uint32(data[16:20]))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("asset: dds: invalid dimensions %dx%d", width, height)
	}

	// DDS_PIXELFORMAT: dwSize, dwFlags, dwFourCC, dwRGBBitCount, then the
	// four channel bit masks, starting at byte 76 of the file header.
	pf := data[76:128]
	pfFlags := binary.LittleEndian.Uint32(pf[4:8])
	fourCC := binary.LittleEndian.Uint32(pf[8:12])
	if fourCC != 0 {
		return nil, fmt.Errorf("asset: dds: block-compressed fourCC %08x not implemented", fourCC)
	}
	if pfFlags&ddpfRGB == 0 {
		return nil, fmt.Errorf("asset: dds: non-RGB pixel format not implemented")
	}
	rgbBitCount := int(binary.LittleEndian.Uint32(pf[12:16]))
	if rgbBitCount != 24 && rgbBitCount != 32 {
		return nil, fmt.Errorf("asset: dds: %d bit RGB not implemented", rgbBitCount)
	}
	rMask := binary.LittleEndian.Uint32(pf[16:20])
	gMask := binary.LittleEndian.Uint32(pf[20:24])
	bMask := binary.LittleEndian.Uint32(pf[24:28])
	aMask := binary.LittleEndian.Uint32(pf[28:32])
	hasAlpha := pfFlags&ddpfAlphaPixels != 0 && aMask != 0

	srcBytesPerPixel := rgbBitCount / 8
	offset := 128
	pixelCount := width * height
	need := offset + pixelCount*srcBytesPerPixel
	if need > len(data) {
		return nil, fmt.Errorf("asset: dds: truncated pixel data")
	}

	pixels := make([]byte, pixelCount*4)
	for i := 0; i < pixelCount; i++ {
		src := data[offset+i*srcBytesPerPixel : offset+i*srcBytesPerPixel+srcBytesPerPixel]
		var word uint32
		for b := srcBytesPerPixel - 1; b >= 0; b-- {
			word = word<<8 | uint32(src[b])
		}
		d := pixels[i*4 : i*4+4]
		d[0] = byte(channelFromMask(word, rMask))
		d[1] = byte(channelFromMask(word, gMask))
		d[2] = byte(channelFromMask(word, bMask))
		if hasAlpha {
			d[3] = byte(channelFromMask(word, aMask))
		} else {
			d[3] = 0xFF
		}
	}

	return &DecodedImage{Width: width, Height: height, Pixels: pixels}, nil
}

// channelFromMask extracts and rescales the bits mask selects from word
// to a full 0-255 range.
func channelFromMask(word, mask uint32) uint32 {
	if mask == 0 {
		return 0
	}
	shift := 0
	for mask&1 == 0 {
		mask >>= 1
		shift++
	}
	bits := 0
	for m := mask; m&1 != 0; m >>= 1 {
		bits++
	}
	v := (word >> shift) & mask
	if bits >= 8 {
		return v >> (uint(bits) - 8)
	}
	return v << (8 - uint(bits))
}
