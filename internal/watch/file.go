package watch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/kabucey/teex/internal/window"
)

type fileWatch struct {
	window  window.ID
	paths   []string // sorted canonical paths
	set     map[string]bool
	watcher *fsnotify.Watcher

	lastEmitted map[string]time.Time // guarded by FileRegistry.mu
}

// FileRegistry holds at most one watch set per window over an explicit list
// of files. Debouncing is per path, so a burst on one file never hides a
// change to another.
type FileRegistry struct {
	mu       sync.Mutex
	byWindow map[window.ID]*fileWatch

	live     window.Liveness
	emitter  window.Emitter
	interval time.Duration
	now      func() time.Time
	log      zerolog.Logger

	newWatcher func() (*fsnotify.Watcher, error)
}

// NewFileRegistry creates an empty registry.
func NewFileRegistry(live window.Liveness, emitter window.Emitter, interval time.Duration, log zerolog.Logger) *FileRegistry {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &FileRegistry{
		byWindow: make(map[window.ID]*fileWatch),
		live:     live,
		emitter:  emitter,
		interval: interval,
		now:      time.Now,
		log:      log,

		newWatcher: fsnotify.NewWatcher,
	}
}

// NormalizePaths canonicalizes paths, keeps existing regular files, drops
// duplicates and returns them sorted.
func NormalizePaths(paths []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, raw := range paths {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		canonical := Canonicalize(raw)
		info, err := os.Stat(canonical)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}

// Install replaces the watch set for id with paths. An empty normalized set
// clears the watch; an identical set is a no-op.
func (r *FileRegistry) Install(id window.ID, paths []string) error {
	normalized := NormalizePaths(paths)
	if len(normalized) == 0 {
		r.Clear(id)
		return nil
	}

	r.mu.Lock()
	existing := r.byWindow[id]
	if existing != nil && slices.Equal(existing.paths, normalized) {
		r.mu.Unlock()
		return nil
	}
	delete(r.byWindow, id)
	r.mu.Unlock()

	if existing != nil {
		r.closeWatch(existing)
	}

	if !r.live.Exists(id) {
		return fmt.Errorf("%w: %s", ErrWindowClosed, id)
	}

	fw, err := r.start(id, normalized)
	if err != nil {
		return err
	}

	r.mu.Lock()
	prev := r.byWindow[id]
	r.byWindow[id] = fw
	r.mu.Unlock()

	if prev != nil {
		r.closeWatch(prev)
	}

	go pump(fw.watcher, r.log, func(event fsnotify.Event) {
		r.handleEvent(fw, event)
	})

	if !r.live.Exists(id) {
		r.Clear(id)
		return fmt.Errorf("%w: %s", ErrWindowClosed, id)
	}

	r.log.Debug().Str("window", id.String()).Int("files", len(normalized)).Msg("file watch installed")
	return nil
}

// start watches the parent directory of each file and filters events by
// name, so atomic saves (write temp, rename over) keep being observed.
func (r *FileRegistry) start(id window.ID, paths []string) (*fileWatch, error) {
	w, err := r.newWatcher()
	if err != nil {
		return nil, startFailed(paths[0], err)
	}

	set := make(map[string]bool, len(paths))
	added := make(map[string]bool)
	for _, p := range paths {
		set[p] = true
		dir := filepath.Dir(p)
		if added[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, startFailed(p, err)
		}
		added[dir] = true
	}

	return &fileWatch{
		window:      id,
		paths:       paths,
		set:         set,
		watcher:     w,
		lastEmitted: make(map[string]time.Time),
	}, nil
}

func (r *FileRegistry) handleEvent(fw *fileWatch, event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if !fw.set[path] {
		return
	}

	r.mu.Lock()
	if r.byWindow[fw.window] != fw {
		r.mu.Unlock()
		return
	}
	now := r.now()
	if !due(fw.lastEmitted[path], now, r.interval) {
		r.mu.Unlock()
		return
	}
	fw.lastEmitted[path] = now
	r.mu.Unlock()

	window.EmitTo(r.emitter, fw.window, window.EventProjectFileChanged, path)
}

// Clear stops the file watch for id, if any.
func (r *FileRegistry) Clear(id window.ID) {
	r.mu.Lock()
	fw := r.byWindow[id]
	delete(r.byWindow, id)
	r.mu.Unlock()

	if fw != nil {
		r.closeWatch(fw)
	}
}

func (r *FileRegistry) closeWatch(fw *fileWatch) {
	if err := fw.watcher.Close(); err != nil {
		r.log.Debug().Err(err).Str("window", fw.window.String()).Msg("failed to close file watcher")
	}
}

// Paths returns the canonical paths watched for id.
func (r *FileRegistry) Paths(id window.ID) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	fw, ok := r.byWindow[id]
	if !ok {
		return nil
	}
	return slices.Clone(fw.paths)
}

// Count returns the number of windows with an active file watch.
func (r *FileRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byWindow)
}

// CloseAll stops every file watch.
func (r *FileRegistry) CloseAll() error {
	r.mu.Lock()
	watches := r.byWindow
	r.byWindow = make(map[window.ID]*fileWatch)
	r.mu.Unlock()

	var errs []error
	for id, fw := range watches {
		if err := fw.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close file watch for %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}
