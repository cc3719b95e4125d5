// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
)

// DefaultDebounce is the settle time applied when a watcher is built
// with a non-positive debounce.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reports external changes to configuration files. Directories
// are watched instead of the files themselves, so the watch survives the
// atomic rename-over-replace that [FileSource] performs. Events for one
// watch are debounced together: a burst of writes to any of its paths
// collapses into a single callback once the files settle.
type Watcher struct {
	logger   *logger.Logger
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	entries map[string]*watchEntry
	dirs    map[string]int
	pending map[*watchEntry]time.Time
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// watchEntry groups the paths of one registration behind one callback.
type watchEntry struct {
	paths    []string
	onChange func()
}

// Watch is a handle on one registered callback.
type Watch struct {
	w     *Watcher
	entry *watchEntry
}

// NewWatcher constructs a started [Watcher]. debounce is the settle time
// before a change callback fires; non-positive values select
// [DefaultDebounce].
func NewWatcher(debounce time.Duration, log *logger.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logger.Nop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		logger:   log,
		fsw:      fsw,
		debounce: debounce,
		entries:  make(map[string]*watchEntry),
		dirs:     make(map[string]int),
		pending:  make(map[*watchEntry]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}

	w.wg.Add(2)
	go w.processEvents()
	go w.processPending()
	return w, nil
}

// Watch registers onChange for every path in paths. A change to any of
// them fires the callback once after the debounce interval. Paths may
// not exist yet; their parent directories must.
func (w *Watcher) Watch(paths []string, onChange func()) (*Watch, error) {
	if len(paths) == 0 {
		return nil, errors.New("no paths to watch")
	}
	if onChange == nil {
		return nil, errors.New("nil change callback")
	}

	abs := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		a, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		if seen[a] {
			continue
		}
		seen[a] = true
		abs = append(abs, a)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrWatcherClosed
	}
	for _, p := range abs {
		if _, ok := w.entries[p]; ok {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyWatching, p)
		}
	}

	entry := &watchEntry{paths: abs, onChange: onChange}
	var added []string
	for _, p := range abs {
		dir := filepath.Dir(p)
		if w.dirs[dir] == 0 {
			if err := w.fsw.Add(dir); err != nil {
				w.releaseDirsLocked(added)
				return nil, fmt.Errorf("watching %s: %w", dir, err)
			}
		}
		w.dirs[dir]++
		added = append(added, p)
		w.entries[p] = entry
	}
	return &Watch{w: w, entry: entry}, nil
}

// Cancel removes the watch. It is safe to call after the watcher closed.
func (h *Watch) Cancel() error {
	h.w.mu.Lock()
	defer h.w.mu.Unlock()
	if h.w.closed {
		return nil
	}
	h.w.releaseDirsLocked(h.entry.paths)
	delete(h.w.pending, h.entry)
	return nil
}

// releaseDirsLocked unregisters paths and drops directory watches whose
// refcount reaches zero. Callers hold w.mu.
func (w *Watcher) releaseDirsLocked(paths []string) {
	for _, p := range paths {
		if _, ok := w.entries[p]; !ok {
			continue
		}
		delete(w.entries, p)
		dir := filepath.Dir(p)
		if w.dirs[dir]--; w.dirs[dir] <= 0 {
			delete(w.dirs, dir)
			// The directory may already be gone; nothing to do then.
			_ = w.fsw.Remove(dir)
		}
	}
}

// Close stops the watcher and waits for in-flight callbacks to return.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	w.cancel()
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			path := filepath.Clean(event.Name)
			w.mu.Lock()
			if entry, ok := w.entries[path]; ok {
				w.pending[entry] = time.Now()
			}
			w.mu.Unlock()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Str("func", "Watcher.processEvents").Msg("watch error")
		}
	}
}

// processPending fires callbacks for entries whose last event settled
// longer than the debounce interval ago.
func (w *Watcher) processPending() {
	defer w.wg.Done()

	interval := w.debounce / 4
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}
	if interval > 100*time.Millisecond {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()

			w.mu.Lock()
			var fire []func()
			for entry, last := range w.pending {
				if now.Sub(last) >= w.debounce {
					fire = append(fire, entry.onChange)
					delete(w.pending, entry)
				}
			}
			w.mu.Unlock()

			// Callbacks run outside the lock; they take their own.
			for _, fn := range fire {
				fn()
			}
		}
	}
}
