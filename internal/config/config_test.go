package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 250*time.Millisecond, cfg.FolderDebounce())
	assert.Equal(t, 250*time.Millisecond, cfg.FileDebounce())
	assert.Equal(t, 2*time.Second, cfg.RecentWindow())
}

func TestLoad_ParsesSections(t *testing.T) {
	path := writeConfig(t, `
[runtime]
folder_debounce_ms = 500
file_debounce_ms = 100
recent_window_ms = 1500

[window]
title = "Notes"
width = 1024
height = 768
theme = "Light"

[log]
level = "DEBUG"
file = "/tmp/teex.log"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Runtime.FolderDebounceMs)
	assert.Equal(t, 100, cfg.Runtime.FileDebounceMs)
	assert.Equal(t, 1500*time.Millisecond, cfg.RecentWindow())
	assert.Equal(t, "Notes", cfg.Window.Title)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, "light", cfg.Window.Theme)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/teex.log", cfg.Log.File)
}

func TestLoad_ClampsOutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		folder   int
		file     int
		recentMs int
	}{
		{"too small", "[runtime]\nfolder_debounce_ms = 1\nfile_debounce_ms = 10\n", 50, 50, DefaultRecentWindowMs},
		{"too large", "[runtime]\nfolder_debounce_ms = 99999\nfile_debounce_ms = 6000\nrecent_window_ms = 60000\n", 5000, 5000, 10000},
		{"negative recent", "[runtime]\nrecent_window_ms = -5\n", 250, 250, DefaultRecentWindowMs},
		{"zero recent disables bias", "[runtime]\nrecent_window_ms = 0\n", 250, 250, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.folder, cfg.Runtime.FolderDebounceMs)
			assert.Equal(t, tt.file, cfg.Runtime.FileDebounceMs)
			assert.Equal(t, tt.recentMs, cfg.Runtime.RecentWindowMs)
		})
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[window]
title = "   "
width = -1
theme = "neon"

[log]
level = "chatty"
`))
	require.NoError(t, err)
	assert.Equal(t, DefaultWindowTitle, cfg.Window.Title)
	assert.Equal(t, DefaultWindowWidth, cfg.Window.Width)
	assert.Equal(t, DefaultWindowHeight, cfg.Window.Height)
	assert.Equal(t, "system", cfg.Window.Theme)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestLoad_MalformedFileReturnsDefaultsAndError(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[runtime\nfolder_debounce_ms = "))
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, Default(), cfg)
}

func TestNormalizeTheme(t *testing.T) {
	assert.Equal(t, "dark", NormalizeTheme(""))
	assert.Equal(t, "light", NormalizeTheme(" LIGHT "))
	assert.Equal(t, "system", NormalizeTheme("system"))
	assert.Equal(t, "system", NormalizeTheme("solarized"))
}
