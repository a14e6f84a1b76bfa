// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import (
	"path/filepath"
	"sync"
	"time"
)

// watcher polls a directory tree on a dedicated goroutine and coalesces
// bursts of modifications to the same file by holding an event until it
// has been quiet for debounce. This is the only off-main-thread I/O wait in
// the engine besides the per-frame fence wait (spec §5, "Suspension
// points").
type watcher struct {
	dir      string
	debounce time.Duration
	interval time.Duration
	onChange func(name string)

	stop chan struct{}
	done chan struct{}

	mu      sync.Mutex
	mtimes  map[string]time.Time
	pending map[string]time.Time // file -> time its latest change quiets at.
}

// Watch starts watching dir for modified files, invoking onChange with a
// path relative to dir once a file's changes have been quiet for debounce.
// Files already present when Watch is called are recorded as the baseline
// and only fire once they change. Call StopWatch to end the watcher
// goroutine.
func (c *Cache) Watch(dir string, debounce time.Duration, onChange func(name string)) {
	w := &watcher{
		dir:      dir,
		debounce: debounce,
		interval: debounce / 4,
		onChange: onChange,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		mtimes:   map[string]time.Time{},
		pending:  map[string]time.Time{},
	}
	if w.interval < 10*time.Millisecond {
		w.interval = 10 * time.Millisecond
	}
	w.poll()
	w.pending = map[string]time.Time{}
	c.watcher = w
	go w.run()
}

// StopWatch stops the cache's directory watcher, if one is running.
func (c *Cache) StopWatch() {
	if c.watcher == nil {
		return
	}
	close(c.watcher.stop)
	<-c.watcher.done
	c.watcher = nil
}

func (w *watcher) run() {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.poll()
			w.flush()
		}
	}
}

// poll stats every file under dir, recording a pending quiet-deadline for
// any whose mtime changed since the last poll.
func (w *watcher) poll() {
	files, err := listFiles(w.dir)
	if err != nil {
		return
	}
	now := time.Now()
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, name := range files {
		mtime, err := statMTime(filepath.Join(w.dir, name))
		if err != nil {
			continue
		}
		if last, ok := w.mtimes[name]; !ok || !mtime.Equal(last) {
			w.mtimes[name] = mtime
			w.pending[name] = now.Add(w.debounce)
		}
	}
}

// flush fires onChange for every pending file whose quiet deadline has
// passed, i.e. has seen no further modification for at least debounce.
func (w *watcher) flush() {
	now := time.Now()
	var ready []string
	w.mu.Lock()
	for name, deadline := range w.pending {
		if !now.Before(deadline) {
			ready = append(ready, name)
			delete(w.pending, name)
		}
	}
	w.mu.Unlock()
	for _, name := range ready {
		w.onChange(name)
	}
}
