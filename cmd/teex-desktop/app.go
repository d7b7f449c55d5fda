package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/options"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/kabucey/teex/internal/config"
	"github.com/kabucey/teex/internal/coordinator"
	"github.com/kabucey/teex/internal/launch"
	"github.com/kabucey/teex/internal/logging"
	"github.com/kabucey/teex/internal/project"
	"github.com/kabucey/teex/internal/transfer"
	"github.com/kabucey/teex/internal/window"
)

// App struct holds the application state.
type App struct {
	mu  sync.RWMutex
	ctx context.Context

	cfg    *config.Config
	host   *window.MemoryHost
	coord  *coordinator.Coordinator
	menu   *appMenu
	titles *titleBook
	launch launch.Context
	log    zerolog.Logger
}

// NewApp creates a new App application struct. args are the positional
// command-line paths.
func NewApp(cfg *config.Config, args []string) *App {
	a := &App{
		cfg:    cfg,
		host:   window.NewMemoryHost(),
		titles: newTitleBook(),
		launch: launch.FromArgs(args),
		log:    logging.ForComponent(logging.CompShell),
	}
	a.host.OnBuild = a.buildWindow
	a.host.OnClose = a.closeWindow

	a.coord = coordinator.New(coordinator.Options{
		Host:         a.host,
		Emitter:      &wailsEmitter{ctx: a.context, log: a.log},
		Picker:       &dialogPicker{ctx: a.context},
		Config:       cfg,
		Log:          logging.ForComponent(logging.CompRuntime),
		ComponentLog: logging.ForComponent,
	})
	a.menu = newAppMenu(a.runMenuCommand)
	a.menu.checkTheme(cfg.Window.Theme)

	if paths := launch.Existing(args); len(paths) > 0 {
		a.coord.QueueOpenPaths(paths)
	}
	return a
}

func (a *App) context() context.Context {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ctx
}

// startup is called when the app starts.
func (a *App) startup(ctx context.Context) {
	a.mu.Lock()
	a.ctx = ctx
	a.mu.Unlock()

	a.menu.attach(ctx)
	a.applyTheme(a.cfg.Window.Theme)
	a.log.Info().Str("version", Version).Str("launch", string(a.launch.Mode)).Msg("teex started")
}

// shutdown is called when the app is closing.
func (a *App) shutdown(ctx context.Context) {
	if err := a.coord.Shutdown(); err != nil {
		a.log.Warn().Err(err).Msg("failed to stop watches")
	}
}

// buildWindow asks the frontend to open a view for id.
func (a *App) buildWindow(id window.ID) error {
	ctx := a.context()
	if ctx == nil {
		return fmt.Errorf("desktop runtime not started")
	}
	wailsRuntime.EventsEmit(ctx, window.EventWindowCreate, id.String())
	return nil
}

func (a *App) closeWindow(id window.ID) {
	a.titles.forget(id)
	if ctx := a.context(); ctx != nil {
		wailsRuntime.EventsEmit(ctx, window.EventWindowClose, id.String())
	}
}

// onSecondInstanceLaunch forwards paths from a second `teex` invocation to
// the running instance.
func (a *App) onSecondInstanceLaunch(data options.SecondInstanceData) {
	a.log.Debug().Strs("args", data.Args).Str("cwd", data.WorkingDirectory).Msg("second instance launched")
	a.coord.ReceiveOSOpenPaths(resolveArgs(data.WorkingDirectory, data.Args))
	if ctx := a.context(); ctx != nil {
		wailsRuntime.WindowUnminimise(ctx)
		wailsRuntime.Show(ctx)
	}
}

func (a *App) runMenuCommand(id string) {
	if err := a.coord.HandleCommand(id); err != nil {
		a.log.Warn().Err(err).Str("command", id).Msg("menu command failed")
		return
	}
	switch id {
	case coordinator.CmdThemeDark, coordinator.CmdThemeLight, coordinator.CmdThemeSystem:
		a.applyTheme(themeForCommand(id))
	}
}

// applyTheme sets the native window theme.
func (a *App) applyTheme(theme string) {
	ctx := a.context()
	if ctx == nil {
		return
	}
	switch config.NormalizeTheme(theme) {
	case config.ThemeDark:
		wailsRuntime.WindowSetDarkTheme(ctx)
	case config.ThemeLight:
		wailsRuntime.WindowSetLightTheme(ctx)
	default:
		wailsRuntime.WindowSetSystemDefaultTheme(ctx)
	}
}

// GetVersion returns the application version.
func (a *App) GetVersion() string {
	return Version
}

// GetLaunchContext returns how the first window should open.
func (a *App) GetLaunchContext() launch.Context {
	return a.launch
}

// GetTheme returns the configured theme.
func (a *App) GetTheme() string {
	return a.cfg.Window.Theme
}

// GetResolvedTheme returns the concrete theme ("dark" or "light") for the
// configured one, asking the OS when it is "system".
func (a *App) GetResolvedTheme(theme string) string {
	if theme == "" {
		theme = a.cfg.Window.Theme
	}
	return config.ResolveTheme(theme)
}

// CategorizePaths classifies dropped or picked paths.
func (a *App) CategorizePaths(paths []string) launch.Context {
	return launch.Categorize(paths)
}

// RegisterWindow records the view the shell opened at startup and returns
// its label.
func (a *App) RegisterWindow() string {
	id := a.coord.NextLabel()
	a.coord.AdoptWindow(id)
	return id.String()
}

// NewWindow opens an empty window.
func (a *App) NewWindow() (string, error) {
	id, err := a.coord.CreateWindow()
	return id.String(), err
}

// NotifyWindowFocused records that a window gained focus.
func (a *App) NotifyWindowFocused(label string) {
	a.coord.OnFocused(window.ID(label))
	a.showTitle(window.ID(label))
}

// NotifyWindowBlurred records that a window lost focus.
func (a *App) NotifyWindowBlurred(label string) {
	a.coord.OnBlurred(window.ID(label))
}

// CloseWindow closes the calling view and releases its state.
func (a *App) CloseWindow(label string) {
	a.coord.CloseWindow(window.ID(label))
}

// NotifyWindowDestroyed releases everything held for a closed window.
func (a *App) NotifyWindowDestroyed(label string) {
	a.coord.OnDestroyed(window.ID(label))
}

// TakePendingOpenPaths returns paths waiting for the window.
func (a *App) TakePendingOpenPaths(label string) []string {
	return a.coord.TakePendingOpenPaths(window.ID(label))
}

// OpenPathsInNewWindow opens paths in a new window.
func (a *App) OpenPathsInNewWindow(paths []string) error {
	_, err := a.coord.OpenPathsInNewWindow(paths)
	return err
}

// WatchProjectFolder watches root for tree changes on behalf of a window.
func (a *App) WatchProjectFolder(label, root string) error {
	return a.coord.WatchFolder(window.ID(label), root)
}

// ClearProjectFolderWatch stops the window's folder watch.
func (a *App) ClearProjectFolderWatch(label string) {
	a.coord.ClearFolderWatch(window.ID(label))
}

// WatchProjectFiles watches the window's open files.
func (a *App) WatchProjectFiles(label string, paths []string) error {
	return a.coord.WatchFiles(window.ID(label), paths)
}

// ClearProjectFileWatch stops the window's file watch.
func (a *App) ClearProjectFileWatch(label string) {
	a.coord.ClearFileWatch(window.ID(label))
}

// ListProjectEntries lists the text files under root for the sidebar.
func (a *App) ListProjectEntries(root string) ([]project.Entry, error) {
	return project.ListEntries(root)
}

// RouteTabTransfer hands tabs exported by source to target.
func (a *App) RouteTabTransfer(source, target, requestID string, tabs []transfer.Tab) error {
	return a.coord.RouteTabTransfer(window.ID(source), window.ID(target), transfer.RequestID(requestID), tabs)
}

// RouteTabTransferResult reports back to source how many tabs target accepted.
func (a *App) RouteTabTransferResult(source, target, requestID string, acceptedCount int) error {
	return a.coord.RouteTabTransferResult(window.ID(source), window.ID(target), transfer.RequestID(requestID), acceptedCount)
}

// RunCommand runs a menu command triggered from a frontend shortcut.
func (a *App) RunCommand(id string) {
	a.runMenuCommand(id)
}

// UpdateMenuState enables or disables the view menu items that depend on
// the focused window's state.
func (a *App) UpdateMenuState(canToggleSidebar, canToggleMarkdownMode bool) {
	a.menu.setEnabled(coordinator.CmdToggleSidebar, canToggleSidebar)
	a.menu.setEnabled(coordinator.CmdToggleMarkdown, canToggleMarkdownMode)
}

// LogFrontendDiagnostic writes a frontend message to the backend log.
func (a *App) LogFrontendDiagnostic(message string) {
	a.log.Debug().Str("source", "frontend").Msg(message)
}
