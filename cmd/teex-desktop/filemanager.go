package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// runCommand is replaced in tests.
var runCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

var goos = runtime.GOOS

// fileManagerCommand returns the program that reveals a path on this OS.
func fileManagerCommand() string {
	switch goos {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// OpenInFileManager shows path in the OS file manager.
func (a *App) OpenInFileManager(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("path does not exist: %s", path)
	}

	name := fileManagerCommand()
	if err := runCommand(name, path); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("file manager command exited with status %d: %w", exitErr.ExitCode(), err)
		}
		return fmt.Errorf("unable to open file manager: %w", err)
	}

	a.log.Debug().Str("path", path).Str("command", name).Msg("opened in file manager")
	return nil
}
