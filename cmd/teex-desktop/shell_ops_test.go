package main

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabucey/teex/internal/config"
)

// stubNativeTitle records native title updates and gives the app a context
// so they are attempted. Only title calls may run while it is in place.
func stubNativeTitle(t *testing.T, app *App) *[]string {
	t.Helper()
	var shown []string
	orig := windowSetTitle
	t.Cleanup(func() { windowSetTitle = orig })
	windowSetTitle = func(_ context.Context, title string) { shown = append(shown, title) }

	app.mu.Lock()
	app.ctx = context.Background()
	app.mu.Unlock()
	return &shown
}

func TestSetWindowTitle(t *testing.T) {
	app := NewApp(config.Default(), nil)
	first := app.RegisterWindow()
	second := app.RegisterWindow()
	app.NotifyWindowFocused(first)
	shown := stubNativeTitle(t, app)

	path := "/work/notes.md"
	require.NoError(t, app.SetWindowTitle(second, "notes.md", &path))
	assert.Empty(t, *shown, "second is not the target")
	assert.Equal(t, WindowTitle{Title: "notes.md", RepresentedPath: path}, app.GetWindowTitle(second))

	require.NoError(t, app.SetWindowTitle(first, "Teex", nil))
	assert.Equal(t, []string{"Teex"}, *shown)

	// Focusing a view brings its title back.
	app.NotifyWindowFocused(second)
	assert.Equal(t, []string{"Teex", "notes.md"}, *shown)

	assert.Error(t, app.SetWindowTitle("teex-window-99", "gone", nil))
}

func TestCloseWindow_ClosesCallingView(t *testing.T) {
	app := NewApp(config.Default(), nil)
	first := app.RegisterWindow()
	second := app.RegisterWindow()
	app.NotifyWindowFocused(second)
	require.NoError(t, app.SetWindowTitle(first, "draft", nil))

	app.CloseWindow(first)

	assert.Equal(t, []string{second}, labels(app))
	assert.Equal(t, WindowTitle{}, app.GetWindowTitle(first))
}

func labels(app *App) []string {
	var out []string
	for _, id := range app.coord.Windows() {
		out = append(out, id.String())
	}
	return out
}

func stubFileManager(t *testing.T, platform string, result error) *[][]string {
	t.Helper()
	var calls [][]string
	origRun, origOS := runCommand, goos
	t.Cleanup(func() { runCommand, goos = origRun, origOS })

	goos = platform
	runCommand = func(name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		return result
	}
	return &calls
}

func TestOpenInFileManager(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		platform string
		want     string
	}{
		{"darwin", "open"},
		{"windows", "explorer"},
		{"linux", "xdg-open"},
		{"freebsd", "xdg-open"},
	}
	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			calls := stubFileManager(t, tt.platform, nil)
			app := NewApp(config.Default(), nil)

			require.NoError(t, app.OpenInFileManager(dir))
			assert.Equal(t, [][]string{{tt.want, dir}}, *calls)
		})
	}
}

func TestOpenInFileManager_Errors(t *testing.T) {
	app := NewApp(config.Default(), nil)

	t.Run("missing path", func(t *testing.T) {
		calls := stubFileManager(t, "linux", nil)
		err := app.OpenInFileManager(filepath.Join(t.TempDir(), "missing"))
		assert.ErrorContains(t, err, "path does not exist")
		assert.Empty(t, *calls)
	})

	t.Run("exit status", func(t *testing.T) {
		exitErr := exec.Command("sh", "-c", "exit 3").Run()
		require.Error(t, exitErr)
		stubFileManager(t, "linux", exitErr)

		err := app.OpenInFileManager(t.TempDir())
		assert.ErrorContains(t, err, "exited with status 3")
	})

	t.Run("command missing", func(t *testing.T) {
		stubFileManager(t, "linux", errors.New("executable file not found"))

		err := app.OpenInFileManager(t.TempDir())
		assert.ErrorContains(t, err, "unable to open file manager")
	})
}
