package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/kabucey/teex/internal/window"
)

// wailsEmitter sends runtime events to the webview. Events emitted before
// startup are dropped.
type wailsEmitter struct {
	ctx func() context.Context
	log zerolog.Logger
}

func (e *wailsEmitter) Emit(name string, payload any) {
	ctx := e.ctx()
	if ctx == nil {
		e.log.Debug().Str("event", name).Msg("dropping event before startup")
		return
	}
	if payload == nil {
		wailsRuntime.EventsEmit(ctx, name)
		return
	}
	wailsRuntime.EventsEmit(ctx, name, payload)
}

// dialogPicker shows the native open dialogs. The webview has a single
// native window, so the parent label is not used.
type dialogPicker struct {
	ctx func() context.Context
}

func (p *dialogPicker) PickFile(window.ID) (string, error) {
	ctx := p.ctx()
	if ctx == nil {
		return "", nil
	}
	return wailsRuntime.OpenFileDialog(ctx, wailsRuntime.OpenDialogOptions{
		Title: "Open File",
	})
}

func (p *dialogPicker) PickFolder(window.ID) (string, error) {
	ctx := p.ctx()
	if ctx == nil {
		return "", nil
	}
	return wailsRuntime.OpenDirectoryDialog(ctx, wailsRuntime.OpenDialogOptions{
		Title:                "Open Folder",
		CanCreateDirectories: true,
	})
}

// resolveArgs turns the arguments of a second launch into paths, relative
// to the directory that launch ran in. Flags are skipped.
func resolveArgs(cwd string, args []string) []string {
	var paths []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") || strings.TrimSpace(arg) == "" {
			continue
		}
		if !filepath.IsAbs(arg) && cwd != "" {
			arg = filepath.Join(cwd, arg)
		}
		paths = append(paths, arg)
	}
	return paths
}

// wailsLogger routes Wails runtime logs through zerolog.
type wailsLogger struct {
	log zerolog.Logger
}

func newWailsLogger(log zerolog.Logger) *wailsLogger {
	return &wailsLogger{log: log}
}

func (l *wailsLogger) Print(message string)   { l.log.Info().Msg(message) }
func (l *wailsLogger) Trace(message string)   { l.log.Trace().Msg(message) }
func (l *wailsLogger) Debug(message string)   { l.log.Debug().Msg(message) }
func (l *wailsLogger) Info(message string)    { l.log.Info().Msg(message) }
func (l *wailsLogger) Warning(message string) { l.log.Warn().Msg(message) }
func (l *wailsLogger) Error(message string)   { l.log.Error().Msg(message) }
func (l *wailsLogger) Fatal(message string)   { l.log.Fatal().Msg(message) }
