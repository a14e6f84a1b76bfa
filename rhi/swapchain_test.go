// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rhi

import (
	"testing"

	"github.com/vanta-engine/vanta/internal/rhivk"
)

func TestCreateSwapChainVSyncPicksFIFO(t *testing.T) {
	d := newTestDevice()
	caps := SurfaceCapabilities{
		MinImageCount: 2, MaxImageCount: 4,
		CurrentWidth: extentUseRequested, CurrentHeight: extentUseRequested,
		SupportedFormats:      []rhivk.Format{rhivk.FormatB8G8R8A8Unorm},
		SupportedPresentModes: []rhivk.PresentModeKHR{rhivk.PresentModeFifo, rhivk.PresentModeMailbox},
	}
	sc, err := d.CreateSwapChain(SwapChainDesc{
		RequestedFormat: rhivk.FormatB8G8R8A8Unorm, RequestedWidth: 1280, RequestedHeight: 720,
		RequestedImageCount: 2, VSync: true,
	}, caps)
	if err != nil {
		t.Fatal(err)
	}
	if sc.PresentMode != rhivk.PresentModeFifo {
		t.Fatalf("vsync=true got present mode %v, want FIFO", sc.PresentMode)
	}
}

func TestCreateSwapChainNoVSyncPrefersMailbox(t *testing.T) {
	d := newTestDevice()
	caps := SurfaceCapabilities{
		MinImageCount: 2, MaxImageCount: 4,
		CurrentWidth: extentUseRequested, CurrentHeight: extentUseRequested,
		SupportedFormats:      []rhivk.Format{rhivk.FormatB8G8R8A8Unorm},
		SupportedPresentModes: []rhivk.PresentModeKHR{rhivk.PresentModeFifo, rhivk.PresentModeMailbox, rhivk.PresentModeImmediate},
	}
	sc, err := d.CreateSwapChain(SwapChainDesc{
		RequestedFormat: rhivk.FormatB8G8R8A8Unorm, RequestedWidth: 1280, RequestedHeight: 720,
		RequestedImageCount: 2, VSync: false,
	}, caps)
	if err != nil {
		t.Fatal(err)
	}
	if sc.PresentMode != rhivk.PresentModeMailbox {
		t.Fatalf("vsync=false got present mode %v, want Mailbox preferred", sc.PresentMode)
	}
}

func TestCreateSwapChainClampsImageCount(t *testing.T) {
	d := newTestDevice()
	caps := SurfaceCapabilities{
		MinImageCount: 3, MaxImageCount: 4,
		CurrentWidth: extentUseRequested, CurrentHeight: extentUseRequested,
		SupportedFormats:      []rhivk.Format{rhivk.FormatB8G8R8A8Unorm},
		SupportedPresentModes: []rhivk.PresentModeKHR{rhivk.PresentModeFifo},
	}
	sc, err := d.CreateSwapChain(SwapChainDesc{
		RequestedFormat: rhivk.FormatB8G8R8A8Unorm, RequestedWidth: 1280, RequestedHeight: 720,
		RequestedImageCount: 1, VSync: true,
	}, caps)
	if err != nil {
		t.Fatal(err)
	}
	if sc.ImageCount != 3 {
		t.Fatalf("got image count %d, want clamped up to MinImageCount 3", sc.ImageCount)
	}
}
