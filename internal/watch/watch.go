// Package watch keeps one debounced filesystem watch per window: a recursive
// folder watch that drives sidebar refreshes, and a file watch over the
// window's open documents.
package watch

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the minimum gap between two notifications for the same
// window (folder watch) or the same file (file watch).
const DefaultDebounce = 250 * time.Millisecond

var (
	// ErrNotADirectory is returned when a folder watch target is not a folder.
	ErrNotADirectory = errors.New("selected path is not a folder")
	// ErrWatchStartFailed is returned when the OS watch could not be established.
	ErrWatchStartFailed = errors.New("unable to start watch")
	// ErrWindowClosed is returned when the window went away while its watch was being set up.
	ErrWindowClosed = errors.New("window is no longer available")
)

// Canonicalize resolves path to an absolute, symlink-free form. When the path
// cannot be resolved the cleaned absolute path is returned.
func Canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs
	}
	return resolved
}

// due reports whether enough time has passed since last to emit again.
func due(last, now time.Time, interval time.Duration) bool {
	return last.IsZero() || now.Sub(last) >= interval
}

// pump forwards watcher events to handle until the watcher is closed. A bad
// event or watcher error is logged and never ends the watch.
func pump(w *fsnotify.Watcher, log zerolog.Logger, handle func(fsnotify.Event)) {
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			handle(event)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}

func startFailed(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrWatchStartFailed, path, err)
}
