// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// DecodedImage is an image decoded to the engine's one GPU-facing pixel
// format, RGBA8_UNORM, with row-major top-to-bottom pixels unless ImageFlip
// asked for bottom-to-top.
type DecodedImage struct {
	Width, Height int
	Pixels        []byte // 4 bytes per pixel, RGBA8_UNORM.
}

// decode dispatches a type-specific decoder by kind and, for images,
// extension, producing a Resource. Shader bytes are stored opaquely: SPIR-V
// validation (the "size % 4 == 0, first word == 0x07230203" check) is the
// RHI's job when it creates the shader module, not the cache's.
func decode(name string, hash uint64, kind Kind, data []byte, flags Flags) (*Resource, error) {
	res := &Resource{Name: name, Hash: hash, Kind: kind}
	switch kind {
	case KindImage:
		img, err := decodeImage(filepath.Ext(name), data)
		if err != nil {
			return nil, err
		}
		if flags&ImageFlip != 0 {
			flipVertical(img)
		}
		res.Image = img
		res.Valid = true
	case KindShader:
		res.Bytes = data
		res.Valid = true
	case KindSound:
		return nil, fmt.Errorf("asset: sound decode reserved, not implemented")
	}
	if flags&RetainFileData != 0 {
		res.Bytes = data
	}
	return res, nil
}

func decodeImage(ext string, data []byte) (*DecodedImage, error) {
	switch ext {
	case ".tga":
		return decodeTGA(data)
	case ".dds":
		return decodeDDS(data)
	}

	var src image.Image
	var err error
	switch ext {
	case ".png":
		src, err = png.Decode(bytes.NewReader(data))
	case ".jpg", ".jpeg":
		src, err = jpeg.Decode(bytes.NewReader(data))
	case ".bmp":
		src, err = bmp.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("asset: %s image decode not implemented", ext)
	}
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)
	return &DecodedImage{Width: bounds.Dx(), Height: bounds.Dy(), Pixels: rgba.Pix}, nil
}

func flipVertical(img *DecodedImage) {
	stride := img.Width * 4
	row := make([]byte, stride)
	for y := 0; y < img.Height/2; y++ {
		top := img.Pixels[y*stride : y*stride+stride]
		bottom := img.Pixels[(img.Height-1-y)*stride : (img.Height-1-y)*stride+stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

// GenerateMip halves img's dimensions (each clamped to at least 1) with
// approximate bilinear scaling, producing the next mip level in a chain.
// Nothing in this module calls it; callers build their own chains.
func GenerateMip(img *DecodedImage) *DecodedImage {
	w, h := img.Width/2, img.Height/2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	src := &image.RGBA{
		Pix:    img.Pixels,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return &DecodedImage{Width: w, Height: h, Pixels: dst.Pix}
}
