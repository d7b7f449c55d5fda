// Package coordinator owns the process-wide window services and exposes the
// operations the desktop shell binds to: window lifecycle, menu commands,
// OS open requests, watches and tab transfer.
package coordinator

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kabucey/teex/internal/config"
	"github.com/kabucey/teex/internal/focus"
	"github.com/kabucey/teex/internal/launch"
	"github.com/kabucey/teex/internal/logging"
	"github.com/kabucey/teex/internal/pending"
	"github.com/kabucey/teex/internal/transfer"
	"github.com/kabucey/teex/internal/watch"
	"github.com/kabucey/teex/internal/window"
)

// Picker shows native open dialogs. An empty path with a nil error means the
// user cancelled.
type Picker interface {
	PickFile(parent window.ID) (string, error)
	PickFolder(parent window.ID) (string, error)
}

// Options configures a Coordinator.
type Options struct {
	Host    window.Host
	Emitter window.Emitter
	Picker  Picker
	Config  *config.Config
	Log     zerolog.Logger

	// LabelPrefix names new windows; defaults to window.DefaultLabelPrefix.
	LabelPrefix string

	// ComponentLog returns the logger for a named component. When nil every
	// component logs through Log.
	ComponentLog func(component string) zerolog.Logger

	// Now overrides the clock used for the new-window focus bias.
	Now func() time.Time
}

// Coordinator ties the window host to the focus tracker, pending path queue,
// watch registries and tab router.
type Coordinator struct {
	host    window.Host
	emitter window.Emitter
	picker  Picker
	labels  *window.Sequence

	focus   *focus.Tracker
	pending *pending.Queue
	folders *watch.FolderRegistry
	files   *watch.FileRegistry
	router  *transfer.Router

	log zerolog.Logger
}

// New builds a coordinator and its registries.
func New(opts Options) *Coordinator {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	prefix := opts.LabelPrefix
	if prefix == "" {
		prefix = window.DefaultLabelPrefix
	}

	componentLog := opts.ComponentLog
	if componentLog == nil {
		componentLog = func(string) zerolog.Logger { return opts.Log }
	}

	tracker := focus.NewTracker(cfg.RecentWindow(), componentLog(logging.CompFocus))
	if opts.Now != nil {
		tracker.SetClock(opts.Now)
	}

	return &Coordinator{
		host:    opts.Host,
		emitter: opts.Emitter,
		picker:  opts.Picker,
		labels:  window.NewSequence(prefix),
		focus:   tracker,
		pending: pending.NewQueue(),
		folders: watch.NewFolderRegistry(opts.Host, opts.Emitter, cfg.FolderDebounce(), componentLog(logging.CompWatch)),
		files:   watch.NewFileRegistry(opts.Host, opts.Emitter, cfg.FileDebounce(), componentLog(logging.CompWatch)),
		router:  transfer.NewRouter(opts.Host, opts.Emitter, componentLog(logging.CompTransfer)),
		log:     opts.Log,
	}
}

// NextLabel reserves the next window id without creating the window.
func (c *Coordinator) NextLabel() window.ID {
	return c.labels.Next()
}

// CreateWindow creates a new window, focuses it and marks it as recently
// created.
func (c *Coordinator) CreateWindow() (window.ID, error) {
	id := c.labels.Next()
	if err := c.buildWindow(id); err != nil {
		return "", err
	}
	return id, nil
}

// buildWindow creates the window for a reserved id. On failure any paths
// queued for id are dropped so they cannot leak.
func (c *Coordinator) buildWindow(id window.ID) error {
	if err := c.host.Build(id); err != nil {
		c.pending.ClearForWindow(id)
		c.log.Error().Err(err).Str("window", id.String()).Msg("failed to create window")
		if errors.Is(err, window.ErrCreationFailed) {
			return err
		}
		return fmt.Errorf("%w: %s: %w", window.ErrCreationFailed, id, err)
	}

	c.focus.SetFocused(id)
	c.focus.SetRecentlyCreated(id)
	if err := c.host.Focus(id); err != nil {
		c.log.Debug().Err(err).Str("window", id.String()).Msg("failed to focus new window")
	}

	c.log.Info().Str("window", id.String()).Msg("window created")
	return nil
}

// AdoptWindow records a window the shell created itself, such as the first
// window at startup.
func (c *Coordinator) AdoptWindow(id window.ID) {
	if r, ok := c.host.(interface{ Register(window.ID) }); ok {
		r.Register(id)
	}
	c.focus.SetFocused(id)
}

// OpenPathsInNewWindow opens existing paths in a fresh window. The paths are
// queued for the new window before it is built.
func (c *Coordinator) OpenPathsInNewWindow(paths []string) (window.ID, error) {
	existing := launch.Existing(paths)
	if len(existing) == 0 {
		return "", nil
	}

	id := c.labels.Next()
	c.pending.QueueForWindow(id, existing)
	if err := c.buildWindow(id); err != nil {
		return "", err
	}
	return id, nil
}

// OnDestroyed releases everything held for id. The global pending queue is
// not window-scoped and is left alone.
func (c *Coordinator) OnDestroyed(id window.ID) {
	if err := c.host.Close(id); err != nil {
		c.log.Debug().Err(err).Str("window", id.String()).Msg("failed to close window")
	}
	c.folders.Clear(id)
	c.files.Clear(id)
	c.pending.ClearForWindow(id)
	c.focus.Forget(id)

	c.log.Info().Str("window", id.String()).Msg("window destroyed")
}

// OnFocused records that id gained focus.
func (c *Coordinator) OnFocused(id window.ID) {
	if !c.host.Exists(id) {
		return
	}
	if r, ok := c.host.(window.FocusRecorder); ok {
		r.SetFocused(id, true)
	}
	c.focus.SetFocused(id)
}

// OnBlurred records that id lost focus.
func (c *Coordinator) OnBlurred(id window.ID) {
	if r, ok := c.host.(window.FocusRecorder); ok {
		r.SetFocused(id, false)
	}
}

// CloseWindow closes id and releases its state.
func (c *Coordinator) CloseWindow(id window.ID) {
	c.OnDestroyed(id)
}

// Target resolves the window a window-less action should go to.
func (c *Coordinator) Target() (window.ID, bool) {
	return c.focus.Resolve(c.host)
}

// Windows lists live windows in creation order.
func (c *Coordinator) Windows() []window.ID {
	return c.host.Labels()
}

// TakePendingOpenPaths drains the paths waiting for id.
func (c *Coordinator) TakePendingOpenPaths(id window.ID) []string {
	return c.pending.Drain(id)
}

// QueueOpenPaths queues paths for whichever window drains first.
func (c *Coordinator) QueueOpenPaths(paths []string) {
	c.pending.QueueGlobal(paths)
}

// ReceiveOSOpenPaths handles paths handed over by the OS or a second
// launch. The paths are queued globally for a window that is not ready yet,
// and the current target window is told about them right away.
func (c *Coordinator) ReceiveOSOpenPaths(paths []string) {
	existing := launch.Existing(paths)
	if len(existing) == 0 {
		return
	}
	c.pending.QueueGlobal(existing)

	target, ok := c.Target()
	if !ok {
		c.log.Debug().Int("paths", len(existing)).Msg("no window for os open paths, queued")
		return
	}

	files, folders := launch.Split(existing)
	if len(files) == 0 && len(folders) == 1 {
		window.EmitTo(c.emitter, target, window.EventOpenFolderSelected, folders[0])
		return
	}
	if len(files) > 0 {
		window.EmitTo(c.emitter, target, window.EventOSOpenPaths, files)
	}
}

// WatchFolder starts or replaces the folder watch for id.
func (c *Coordinator) WatchFolder(id window.ID, root string) error {
	return c.folders.Install(id, root)
}

// ClearFolderWatch stops the folder watch for id.
func (c *Coordinator) ClearFolderWatch(id window.ID) {
	c.folders.Clear(id)
}

// WatchFiles replaces the set of open files watched for id.
func (c *Coordinator) WatchFiles(id window.ID, paths []string) error {
	return c.files.Install(id, paths)
}

// ClearFileWatch stops the file watch for id.
func (c *Coordinator) ClearFileWatch(id window.ID) {
	c.files.Clear(id)
}

// MergeAllInto asks every other window to send its tabs to target.
func (c *Coordinator) MergeAllInto(target window.ID) map[window.ID]transfer.RequestID {
	return c.router.RequestExport(target, c.host.Labels())
}

// RouteTabTransfer delivers tabs exported by source to target.
func (c *Coordinator) RouteTabTransfer(source, target window.ID, id transfer.RequestID, tabs []transfer.Tab) error {
	return c.router.Route(source, target, id, tabs)
}

// RouteTabTransferResult reports an accepted tab count back to source.
func (c *Coordinator) RouteTabTransferResult(source, target window.ID, id transfer.RequestID, accepted int) error {
	return c.router.RouteResult(source, target, id, accepted)
}

// Shutdown stops every watch.
func (c *Coordinator) Shutdown() error {
	return errors.Join(c.folders.CloseAll(), c.files.CloseAll())
}
