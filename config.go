// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the engine's top-level, YAML-backed configuration: resource
// search paths, hot-reload debounce, and the handful of knobs that
// govern the job pool and RHI rather than anything scene-specific.
type Config struct {
	// SearchPaths are the directories asset.New searches, in order, for
	// resource files.
	SearchPaths []string `yaml:"searchPaths"`

	// WatchDebounce is how long a watched file must be quiet before
	// asset.Cache.Watch fires its onChange callback.
	WatchDebounce time.Duration `yaml:"watchDebounce"`

	// WorkerCount overrides job.NewPool's hardware-concurrency-minus-one
	// default when non-zero.
	WorkerCount int `yaml:"workerCount"`

	// VSync is the swap chain's default present-mode preference; true
	// requests FIFO, false prefers Mailbox/Immediate (rhi.chooseSurfaceFormat
	// and friends resolve the rest against surface capabilities).
	VSync bool `yaml:"vsync"`

	// DebugAABBs and DebugLights seed a Renderer's debug-overlay toggles.
	DebugAABBs  bool `yaml:"debugAABBs"`
	DebugLights bool `yaml:"debugLights"`
}

// DefaultConfig returns the engine's baked-in defaults: the working
// directory as the sole search path, a 150ms watch debounce (the asset
// cache's tests exercise a much shorter one), vsync on, worker count
// left at the job package's own default, and debug overlays off.
func DefaultConfig() Config {
	return Config{
		SearchPaths:   []string{"."},
		WatchDebounce: 150 * time.Millisecond,
		VSync:         true,
	}
}

// LoadConfig reads and parses a YAML config file at path, starting from
// DefaultConfig so a config file only needs to name the fields it wants
// to override.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
