// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build !unix

package asset

import (
	"os"
	"path/filepath"
	"time"
)

// statMTime is the portable fallback for platforms without a raw stat(2),
// matching the teacher's own per-OS split (vulkan_windows.go carried its
// own device-init path rather than sharing the unix one).
func statMTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func listFiles(dir string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr == nil {
			names = append(names, rel)
		}
		return nil
	})
	return names, err
}
