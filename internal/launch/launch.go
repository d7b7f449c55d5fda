// Package launch turns raw path lists from the OS, the command line or a
// picker into an open intent.
package launch

import (
	"os"
	"strings"
)

// Mode is the kind of open intent.
type Mode string

const (
	ModeFolder Mode = "folder"
	ModeFiles  Mode = "files"
	ModeFile   Mode = "file"
	ModeEmpty  Mode = "empty"
)

// Context is the classified open intent handed to a window.
type Context struct {
	Mode  Mode     `json:"mode"`
	Path  string   `json:"path,omitempty"`
	Paths []string `json:"paths"`
}

func folderContext(path string) Context {
	return Context{Mode: ModeFolder, Path: path, Paths: []string{}}
}

func fileContext(path string) Context {
	return Context{Mode: ModeFile, Path: path, Paths: []string{}}
}

func filesContext(paths []string) Context {
	return Context{Mode: ModeFiles, Paths: paths}
}

func emptyContext() Context {
	return Context{Mode: ModeEmpty, Paths: []string{}}
}

type pathKind int

const (
	kindMissing pathKind = iota
	kindFile
	kindDir
	kindOther
)

// statKind follows symlinks, so a link to a folder counts as a folder.
func statKind(path string) pathKind {
	info, err := os.Stat(path)
	if err != nil {
		return kindMissing
	}
	switch {
	case info.Mode().IsRegular():
		return kindFile
	case info.IsDir():
		return kindDir
	}
	return kindOther
}

// Split partitions raw paths into existing files and directories, preserving
// input order and duplicates. Blank and missing entries are dropped.
func Split(paths []string) (files, folders []string) {
	for _, raw := range paths {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		switch statKind(raw) {
		case kindFile:
			files = append(files, raw)
		case kindDir:
			folders = append(folders, raw)
		}
	}
	return files, folders
}

// Categorize classifies paths:
//   - no files and exactly one folder: folder intent
//   - two or more files: files intent (folders are ignored)
//   - exactly one file: file intent
//   - anything else: empty intent
func Categorize(paths []string) Context {
	files, folders := Split(paths)

	if len(files) == 0 && len(folders) == 1 {
		return folderContext(folders[0])
	}
	if len(files) >= 2 {
		return filesContext(files)
	}
	if len(files) == 1 {
		return fileContext(files[0])
	}
	return emptyContext()
}

// FromArgs builds the launch context for process arguments (without the
// program name). Flags are skipped and the first existing folder wins
// outright, ahead of any files.
func FromArgs(args []string) Context {
	var files []string
	folder := ""

	for _, arg := range args {
		if strings.HasPrefix(arg, "--") || strings.TrimSpace(arg) == "" {
			continue
		}
		switch statKind(arg) {
		case kindFile:
			files = append(files, arg)
		case kindDir:
			if folder == "" {
				folder = arg
			}
		}
	}

	if folder != "" {
		return folderContext(folder)
	}
	if len(files) >= 2 {
		return filesContext(files)
	}
	if len(files) == 1 {
		return fileContext(files[0])
	}
	return emptyContext()
}

// Existing filters paths down to existing files and folders, in input order.
func Existing(paths []string) []string {
	var out []string
	for _, raw := range paths {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		switch statKind(raw) {
		case kindFile, kindDir:
			out = append(out, raw)
		}
	}
	return out
}
