// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build unix

package asset

import (
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// statMTime reads a file's modification time via a raw stat(2) call rather
// than os.Stat; watch_other.go holds the os.Stat version for non-unix
// platforms.
func statMTime(path string) (time.Time, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, err
	}
	return time.Unix(st.Mtim.Sec, st.Mtim.Nsec), nil
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
