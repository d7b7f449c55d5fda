// Package config loads the runtime configuration from ~/.teex/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultDebounceMs     = 250
	DefaultRecentWindowMs = 2000
	DefaultWindowTitle    = "Teex"
	DefaultWindowWidth    = 800
	DefaultWindowHeight   = 600
	DefaultTheme          = ThemeDark
	DefaultLogLevel       = "info"

	minDebounceMs     = 50
	maxDebounceMs     = 5000
	maxRecentWindowMs = 10000
)

// Theme names.
const (
	ThemeDark   = "dark"
	ThemeLight  = "light"
	ThemeSystem = "system"
)

// RuntimeConfig represents the [runtime] section of config.toml
type RuntimeConfig struct {
	FolderDebounceMs int `toml:"folder_debounce_ms"`
	FileDebounceMs   int `toml:"file_debounce_ms"`
	// RecentWindowMs is how long a freshly created window wins target resolution
	RecentWindowMs int `toml:"recent_window_ms"`
}

// WindowConfig represents the [window] section of config.toml
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Theme  string `toml:"theme"` // "dark", "light", or "system"
}

// LogConfig represents the [log] section of config.toml
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Config is the full configuration file.
type Config struct {
	Runtime RuntimeConfig `toml:"runtime"`
	Window  WindowConfig  `toml:"window"`
	Log     LogConfig     `toml:"log"`
}

// FolderDebounce returns the folder watch debounce interval.
func (c *Config) FolderDebounce() time.Duration {
	return time.Duration(c.Runtime.FolderDebounceMs) * time.Millisecond
}

// FileDebounce returns the per-file watch debounce interval.
func (c *Config) FileDebounce() time.Duration {
	return time.Duration(c.Runtime.FileDebounceMs) * time.Millisecond
}

// RecentWindow returns how long a newly created window is preferred as target.
func (c *Config) RecentWindow() time.Duration {
	return time.Duration(c.Runtime.RecentWindowMs) * time.Millisecond
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			FolderDebounceMs: DefaultDebounceMs,
			FileDebounceMs:   DefaultDebounceMs,
			RecentWindowMs:   DefaultRecentWindowMs,
		},
		Window: WindowConfig{
			Title:  DefaultWindowTitle,
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			Theme:  DefaultTheme,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// DefaultPath returns ~/.teex/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".teex", "config.toml")
	}
	return filepath.Join(home, ".teex", "config.toml")
}

// Load reads the config at path. A missing file yields defaults. A file that
// fails to parse also yields defaults, together with the parse error so the
// caller can log it.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize applies defaults for empty values and clamps out-of-range ones.
func (c *Config) normalize() {
	c.Runtime.FolderDebounceMs = clampDebounce(c.Runtime.FolderDebounceMs)
	c.Runtime.FileDebounceMs = clampDebounce(c.Runtime.FileDebounceMs)

	// Zero is a valid value here: it disables the new-window bias.
	if c.Runtime.RecentWindowMs < 0 {
		c.Runtime.RecentWindowMs = DefaultRecentWindowMs
	} else if c.Runtime.RecentWindowMs > maxRecentWindowMs {
		c.Runtime.RecentWindowMs = maxRecentWindowMs
	}

	if strings.TrimSpace(c.Window.Title) == "" {
		c.Window.Title = DefaultWindowTitle
	}
	if c.Window.Width <= 0 {
		c.Window.Width = DefaultWindowWidth
	}
	if c.Window.Height <= 0 {
		c.Window.Height = DefaultWindowHeight
	}
	c.Window.Theme = NormalizeTheme(c.Window.Theme)

	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "error":
		c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	default:
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.File != "" {
		c.Log.File = expandHome(c.Log.File)
	}
}

func clampDebounce(ms int) int {
	switch {
	case ms == 0:
		return DefaultDebounceMs
	case ms < minDebounceMs:
		return minDebounceMs
	case ms > maxDebounceMs:
		return maxDebounceMs
	}
	return ms
}

// NormalizeTheme maps a theme name onto "dark", "light" or "system".
func NormalizeTheme(theme string) string {
	theme = strings.ToLower(strings.TrimSpace(theme))
	switch theme {
	case ThemeDark, ThemeLight, ThemeSystem:
		return theme
	case "":
		return DefaultTheme
	}
	return ThemeSystem
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
