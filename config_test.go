// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vanta.yaml")
	const doc = "searchPaths: [\"assets\", \"mods\"]\nvsync: false\nworkerCount: 4\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.SearchPaths) != 2 || cfg.SearchPaths[0] != "assets" {
		t.Fatalf("got SearchPaths %v, want [assets mods]", cfg.SearchPaths)
	}
	if cfg.VSync {
		t.Fatalf("got VSync true, want false (overridden)")
	}
	if cfg.WorkerCount != 4 {
		t.Fatalf("got WorkerCount %d, want 4", cfg.WorkerCount)
	}
	if cfg.WatchDebounce != 150*time.Millisecond {
		t.Fatalf("got WatchDebounce %v, want the default 150ms (not overridden)", cfg.WatchDebounce)
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
	if len(cfg.SearchPaths) != 1 || cfg.SearchPaths[0] != "." {
		t.Fatalf("got SearchPaths %v on error path, want DefaultConfig's", cfg.SearchPaths)
	}
}
