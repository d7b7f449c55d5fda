package config

import (
	"os/exec"
	"runtime"
	"strings"
)

// runCommand is replaced in tests.
var runCommand = func(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return string(out), err
}

var goos = runtime.GOOS

// ResolveTheme maps a configured theme onto the concrete "dark" or "light"
// the editor should paint with. "system" asks the OS.
func ResolveTheme(theme string) string {
	switch NormalizeTheme(theme) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	}
	return DetectSystemTheme()
}

// DetectSystemTheme reads the OS appearance setting. Unknown platforms and
// failed lookups report dark.
func DetectSystemTheme() string {
	switch goos {
	case "darwin":
		// The key is absent in light mode.
		out, err := runCommand("defaults", "read", "-g", "AppleInterfaceStyle")
		if err != nil {
			return ThemeLight
		}
		if strings.EqualFold(strings.TrimSpace(out), "dark") {
			return ThemeDark
		}
		return ThemeLight
	case "linux":
		if out, err := runCommand("gsettings", "get", "org.gnome.desktop.interface", "color-scheme"); err == nil {
			lower := strings.ToLower(out)
			switch {
			case strings.Contains(lower, "dark"):
				return ThemeDark
			case strings.Contains(lower, "light"):
				return ThemeLight
			}
		}
		if out, err := runCommand("gsettings", "get", "org.gnome.desktop.interface", "gtk-theme"); err == nil &&
			strings.Contains(strings.ToLower(out), "dark") {
			return ThemeDark
		}
	}
	return ThemeDark
}
