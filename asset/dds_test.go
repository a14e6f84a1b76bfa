// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import (
	"encoding/binary"
	"testing"
)

// encodeTestDDS builds a minimal 128-byte-header DDS with an uncompressed
// 32bpp BGRA pixel format, following pixels.
func encodeTestDDS(width, height int, bgra []byte) []byte {
	header := make([]byte, 128)
	binary.LittleEndian.PutUint32(header[0:4], ddsMagic)
	binary.LittleEndian.PutUint32(header[4:8], 124) // header size field.
	binary.LittleEndian.PutUint32(header[12:16], uint32(height))
	binary.LittleEndian.PutUint32(header[16:20], uint32(width))

	pf := header[76:128]
	binary.LittleEndian.PutUint32(pf[4:8], ddpfRGB|ddpfAlphaPixels)
	binary.LittleEndian.PutUint32(pf[8:12], 0) // fourCC none.
	binary.LittleEndian.PutUint32(pf[12:16], 32)
	binary.LittleEndian.PutUint32(pf[16:20], 0x00FF0000) // R mask.
	binary.LittleEndian.PutUint32(pf[20:24], 0x0000FF00) // G mask.
	binary.LittleEndian.PutUint32(pf[24:28], 0x000000FF) // B mask.
	binary.LittleEndian.PutUint32(pf[28:32], 0xFF000000) // A mask.

	return append(header, bgra...)
}

func TestDecodeDDSUncompressed(t *testing.T) {
	// Packed word 0xFF0000FF under masks A=0xFF000000, R=0x00FF0000,
	// G=0x0000FF00, B=0x000000FF gives A=0xFF, R=0x00, G=0x00, B=0xFF:
	// opaque blue.
	pixel := make([]byte, 4)
	binary.LittleEndian.PutUint32(pixel, 0xFF0000FF)
	data := encodeTestDDS(1, 1, pixel)

	img, err := decodeDDS(data)
	if err != nil {
		t.Fatalf("decodeDDS: %v", err)
	}
	if img.Width != 1 || img.Height != 1 {
		t.Fatalf("got %dx%d, want 1x1", img.Width, img.Height)
	}
	if img.Pixels[0] != 0 || img.Pixels[1] != 0 || img.Pixels[2] != 0xFF || img.Pixels[3] != 0xFF {
		t.Fatalf("got RGBA %v, want (0,0,255,255)", img.Pixels[:4])
	}
}

func TestDecodeDDSRejectsCompressed(t *testing.T) {
	header := make([]byte, 128)
	binary.LittleEndian.PutUint32(header[0:4], ddsMagic)
	binary.LittleEndian.PutUint32(header[12:16], 4)
	binary.LittleEndian.PutUint32(header[16:20], 4)
	pf := header[76:128]
	binary.LittleEndian.PutUint32(pf[8:12], 0x31545844) // "DXT1"
	if _, err := decodeDDS(header); err == nil {
		t.Fatalf("expected error decoding a block-compressed DDS")
	}
}
