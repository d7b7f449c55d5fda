// Package project lists the editable files under a project folder.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// ErrNotADirectory is returned when the project root is not a folder.
var ErrNotADirectory = errors.New("selected path is not a folder")

// Entry is a text-like file inside a project.
type Entry struct {
	Path    string `json:"path"`
	RelPath string `json:"relPath"`
}

var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"target":       true,
	"dist":         true,
	"build":        true,
}

var textExtensions = map[string]bool{
	"md": true, "markdown": true, "txt": true, "rst": true,
	"json": true, "toml": true, "yaml": true, "yml": true,
	"csv": true, "log": true,
	"js": true, "ts": true, "jsx": true, "tsx": true,
	"html": true, "css": true, "scss": true,
	"rs": true, "py": true, "go": true, "java": true, "kt": true, "swift": true,
	"sh": true, "zsh": true,
}

// SkipDir reports whether a directory named name is left out of listings
// and folder watches: VCS metadata, dependency and build output, and hidden
// directories.
func SkipDir(name string) bool {
	return skippedDirs[name] || strings.HasPrefix(name, ".")
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// IsMarkdown reports whether path has a markdown extension.
func IsMarkdown(path string) bool {
	ext := extension(path)
	return ext == "md" || ext == "markdown"
}

// IsTextLike reports whether path looks like an editable text file.
func IsTextLike(path string) bool {
	return textExtensions[extension(path)]
}

// Kind returns "markdown" or "text".
func Kind(path string) string {
	if IsMarkdown(path) {
		return "markdown"
	}
	return "text"
}

// ListEntries walks root and returns its text-like files sorted by relative path.
func ListEntries(root string) ([]Entry, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}

	var mu sync.Mutex
	var entries []Entry

	conf := &fastwalk.Config{Follow: false}
	err = fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped
		}
		if path == root {
			return nil
		}
		if d.IsDir() {
			if SkipDir(d.Name()) {
				return fastwalk.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || strings.HasPrefix(d.Name(), ".") || !IsTextLike(path) {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}

		mu.Lock()
		entries = append(entries, Entry{Path: path, RelPath: rel})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RelPath < entries[j].RelPath
	})
	return entries, nil
}

// Dirs returns root and every subdirectory below it that SkipDir keeps.
func Dirs(root string) ([]string, error) {
	var mu sync.Mutex
	dirs := []string{root}

	conf := &fastwalk.Config{Follow: false}
	err := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == root || !d.IsDir() {
			return nil
		}
		if SkipDir(d.Name()) {
			return fastwalk.SkipDir
		}
		mu.Lock()
		dirs = append(dirs, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(dirs[1:])
	return dirs, nil
}
