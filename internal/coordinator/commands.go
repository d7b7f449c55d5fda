package coordinator

import (
	"fmt"

	"github.com/kabucey/teex/internal/config"
	"github.com/kabucey/teex/internal/window"
)

// Menu command ids.
const (
	CmdNewWindow       = "new_window"
	CmdMergeAllWindows = "merge_all_windows_into_this_window"
	CmdNewTab          = "new_tab"
	CmdCloseActiveFile = "close_active_file"
	CmdCloseWindow     = "close_window"
	CmdOpenFile        = "open_file"
	CmdOpenFolder      = "open_folder"
	CmdToggleSidebar   = "toggle_sidebar"
	CmdToggleMarkdown  = "toggle_markdown_mode"
	CmdThemeSystem     = "theme_system"
	CmdThemeLight      = "theme_light"
	CmdThemeDark       = "theme_dark"
)

// Service request actions.
const (
	ServiceNewFileTabHere = "new-file-tab-here"
	ServiceNewWindowHere  = "new-window-here"
)

// targetEvents are commands that only forward an event to the target window.
var targetEvents = map[string]string{
	CmdNewTab:          window.EventNewTab,
	CmdCloseActiveFile: window.EventCloseActiveFile,
	CmdToggleSidebar:   window.EventToggleSidebar,
	CmdToggleMarkdown:  window.EventToggleMarkdownMode,
}

var themes = map[string]string{
	CmdThemeSystem: config.ThemeSystem,
	CmdThemeLight:  config.ThemeLight,
	CmdThemeDark:   config.ThemeDark,
}

// HandleCommand runs a menu command. Unknown ids are ignored. Only a failing
// file picker is reported as an error.
func (c *Coordinator) HandleCommand(id string) error {
	c.log.Debug().Str("command", id).Msg("handling command")

	if name, ok := targetEvents[id]; ok {
		if target, ok := c.Target(); ok {
			window.EmitTo(c.emitter, target, name, nil)
		}
		return nil
	}
	if theme, ok := themes[id]; ok {
		c.emitter.Emit(window.EventSetTheme, theme)
		return nil
	}

	switch id {
	case CmdNewWindow:
		if _, err := c.CreateWindow(); err != nil {
			if target, ok := c.Target(); ok {
				window.EmitTo(c.emitter, target, window.EventWindowError, err.Error())
			}
		}
	case CmdMergeAllWindows:
		if target, ok := c.Target(); ok {
			c.MergeAllInto(target)
		}
	case CmdCloseWindow:
		if target, ok := c.Target(); ok {
			c.CloseWindow(target)
		}
	case CmdOpenFile:
		return c.pick(CmdOpenFile, window.EventOpenFileSelected)
	case CmdOpenFolder:
		return c.pick(CmdOpenFolder, window.EventOpenFolderSelected)
	default:
		c.log.Debug().Str("command", id).Msg("ignoring unknown command")
	}
	return nil
}

// pick asks the picker for a path on behalf of the current target window and
// sends the choice to that same window, even if focus moved meanwhile.
func (c *Coordinator) pick(cmd, event string) error {
	target, ok := c.Target()
	if !ok || c.picker == nil {
		return nil
	}

	var (
		path string
		err  error
	)
	if cmd == CmdOpenFolder {
		path, err = c.picker.PickFolder(target)
	} else {
		path, err = c.picker.PickFile(target)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	if path == "" {
		return nil
	}

	window.EmitTo(c.emitter, target, event, path)
	return nil
}

// HandleServiceRequest handles a "open here" request from the OS services
// menu.
func (c *Coordinator) HandleServiceRequest(action, path string) error {
	switch action {
	case ServiceNewFileTabHere:
		if target, ok := c.Target(); ok {
			window.EmitTo(c.emitter, target, window.EventOpenFileSelected, path)
			return nil
		}
		c.pending.QueueGlobal([]string{path})
		return nil
	case ServiceNewWindowHere:
		_, err := c.OpenPathsInNewWindow([]string{path})
		return err
	default:
		return fmt.Errorf("unknown service action %q", action)
	}
}
