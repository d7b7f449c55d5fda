package watch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/kabucey/teex/internal/project"
	"github.com/kabucey/teex/internal/window"
)

type folderWatch struct {
	window      window.ID
	root        string
	watcher     *fsnotify.Watcher
	lastEmitted time.Time // guarded by FolderRegistry.mu
}

// FolderRegistry holds at most one recursive folder watch per window and
// emits a single project-folder-changed event per debounce interval.
type FolderRegistry struct {
	mu       sync.Mutex
	byWindow map[window.ID]*folderWatch

	live     window.Liveness
	emitter  window.Emitter
	interval time.Duration
	now      func() time.Time
	log      zerolog.Logger

	newWatcher func() (*fsnotify.Watcher, error)
}

// NewFolderRegistry creates an empty registry.
func NewFolderRegistry(live window.Liveness, emitter window.Emitter, interval time.Duration, log zerolog.Logger) *FolderRegistry {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &FolderRegistry{
		byWindow: make(map[window.ID]*folderWatch),
		live:     live,
		emitter:  emitter,
		interval: interval,
		now:      time.Now,
		log:      log,

		newWatcher: fsnotify.NewWatcher,
	}
}

// Install watches root recursively on behalf of id. Re-installing the same
// canonical root is a no-op that keeps the running watch and its debounce
// state; a different root replaces the old watch, which is torn down first.
func (r *FolderRegistry) Install(id window.ID, root string) error {
	canonical := Canonicalize(root)
	info, err := os.Stat(canonical)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}

	r.mu.Lock()
	existing := r.byWindow[id]
	if existing != nil && existing.root == canonical {
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

	fw, err := r.start(id, canonical)
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

	// The window may have been destroyed while the watch was starting.
	if !r.live.Exists(id) {
		r.Clear(id)
		return fmt.Errorf("%w: %s", ErrWindowClosed, id)
	}

	r.log.Debug().Str("window", id.String()).Str("root", canonical).Msg("folder watch installed")
	return nil
}

func (r *FolderRegistry) start(id window.ID, root string) (*folderWatch, error) {
	w, err := r.newWatcher()
	if err != nil {
		return nil, startFailed(root, err)
	}
	if err := w.Add(root); err != nil {
		_ = w.Close()
		return nil, startFailed(root, err)
	}

	fw := &folderWatch{window: id, root: root, watcher: w}
	r.addSubdirs(fw, root)
	return fw, nil
}

// addSubdirs registers every directory below dir. Subdirectories that cannot
// be watched are skipped; the rest of the tree is still covered.
func (r *FolderRegistry) addSubdirs(fw *folderWatch, dir string) {
	dirs, err := project.Dirs(dir)
	if err != nil {
		r.log.Debug().Err(err).Str("dir", dir).Msg("failed to walk folder")
	}
	for _, d := range dirs {
		if d == fw.root {
			continue
		}
		if err := fw.watcher.Add(d); err != nil {
			r.log.Debug().Err(err).Str("dir", d).Msg("failed to watch subdirectory")
		}
	}
}

// folderEventQualifies reports whether an event changes the folder tree.
// Content writes and attribute changes do not.
func folderEventQualifies(event fsnotify.Event) bool {
	return event.Op == 0 ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}

func (r *FolderRegistry) handleEvent(fw *folderWatch, event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Lstat(event.Name); err == nil && info.IsDir() && !project.SkipDir(filepath.Base(event.Name)) {
			if err := fw.watcher.Add(event.Name); err == nil {
				r.addSubdirs(fw, event.Name)
			}
		}
	}

	if !folderEventQualifies(event) {
		return
	}

	r.mu.Lock()
	if r.byWindow[fw.window] != fw {
		r.mu.Unlock()
		return
	}
	now := r.now()
	if !due(fw.lastEmitted, now, r.interval) {
		r.mu.Unlock()
		return
	}
	fw.lastEmitted = now
	r.mu.Unlock()

	window.EmitTo(r.emitter, fw.window, window.EventProjectFolderChanged, nil)
}

// Clear stops the folder watch for id, if any. A callback that already
// passed the debounce check may still deliver one notification.
func (r *FolderRegistry) Clear(id window.ID) {
	r.mu.Lock()
	fw := r.byWindow[id]
	delete(r.byWindow, id)
	r.mu.Unlock()

	if fw != nil {
		r.closeWatch(fw)
	}
}

func (r *FolderRegistry) closeWatch(fw *folderWatch) {
	if err := fw.watcher.Close(); err != nil {
		r.log.Debug().Err(err).Str("window", fw.window.String()).Msg("failed to close folder watcher")
	}
}

// Root returns the canonical root watched for id.
func (r *FolderRegistry) Root(id window.ID) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fw, ok := r.byWindow[id]
	if !ok {
		return "", false
	}
	return fw.root, true
}

// Count returns the number of active folder watches.
func (r *FolderRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byWindow)
}

// CloseAll stops every folder watch.
func (r *FolderRegistry) CloseAll() error {
	r.mu.Lock()
	watches := r.byWindow
	r.byWindow = make(map[window.ID]*folderWatch)
	r.mu.Unlock()

	var errs []error
	for id, fw := range watches {
		if err := fw.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close folder watch for %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}
