// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 50), G: uint8(y * 50), B: 0, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDecodesImage(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "tile.png"))

	c := New(dir)
	res, err := c.Load("tile.png", 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !res.Valid || res.Image == nil {
		t.Fatalf("expected valid decoded image, got %+v", res)
	}
	if res.Image.Width != 4 || res.Image.Height != 4 {
		t.Fatalf("got %dx%d, want 4x4", res.Image.Width, res.Image.Height)
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	c := New(t.TempDir())
	if _, err := c.Load("thing.xyz", 0); err != ErrUnknownExtension {
		t.Fatalf("got %v, want ErrUnknownExtension", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	c := New(t.TempDir())
	res, err := c.Load("missing.png", 0)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if res.Valid {
		t.Fatalf("expected invalid resource on load failure")
	}
}

func TestLoadSameHashReturnsLiveResource(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "tile.png"))
	c := New(dir)

	first, err := c.Load("tile.png", 0)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Load("tile.png", 0)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("expected the same *Resource for a still-live load")
	}
}

func TestWatchFiresAfterDebounce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tile.png")
	writeTestPNG(t, path)

	c := New(dir)
	if _, err := c.Load("tile.png", 0); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 4)
	c.Watch(dir, 30*time.Millisecond, func(name string) { changed <- name })
	defer c.StopWatch()

	time.Sleep(15 * time.Millisecond)
	writeTestPNG(t, path) // touch mtime.

	select {
	case name := <-changed:
		if name != "tile.png" {
			t.Fatalf("got change for %q, want tile.png", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced change notification")
	}
}
