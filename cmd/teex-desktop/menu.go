package main

import (
	"context"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/kabucey/teex/internal/config"
	"github.com/kabucey/teex/internal/coordinator"
)

var themeCommands = map[string]string{
	coordinator.CmdThemeSystem: config.ThemeSystem,
	coordinator.CmdThemeLight:  config.ThemeLight,
	coordinator.CmdThemeDark:   config.ThemeDark,
}

func themeForCommand(id string) string {
	return themeCommands[id]
}

// appMenu is the native application menu. Every item dispatches its command
// id; items are kept by id so their state can be changed later.
type appMenu struct {
	mu       sync.Mutex
	ctx      context.Context
	root     *menu.Menu
	items    map[string]*menu.MenuItem
	dispatch func(id string)
}

func newAppMenu(dispatch func(id string)) *appMenu {
	m := &appMenu{
		items:    make(map[string]*menu.MenuItem),
		dispatch: dispatch,
	}
	m.root = m.build()
	return m
}

// Build returns the menu for options.App.
func (m *appMenu) Build() *menu.Menu {
	return m.root
}

func (m *appMenu) attach(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx = ctx
}

func (m *appMenu) build() *menu.Menu {
	root := menu.NewMenu()
	root.Append(menu.AppMenu())

	file := root.AddSubmenu("File")
	m.text(file, "Open File...", coordinator.CmdOpenFile, keys.CmdOrCtrl("o"))
	m.text(file, "Open Folder...", coordinator.CmdOpenFolder, keys.Combo("o", keys.CmdOrCtrlKey, keys.ShiftKey))
	file.AddSeparator()
	m.text(file, "New Window", coordinator.CmdNewWindow, keys.CmdOrCtrl("n"))
	m.text(file, "New Tab", coordinator.CmdNewTab, keys.CmdOrCtrl("t"))
	file.AddSeparator()
	m.text(file, "Close File", coordinator.CmdCloseActiveFile, keys.CmdOrCtrl("w"))
	m.text(file, "Close Window", coordinator.CmdCloseWindow, keys.Combo("w", keys.CmdOrCtrlKey, keys.ShiftKey))

	root.Append(menu.EditMenu())

	view := root.AddSubmenu("View")
	m.text(view, "Toggle Sidebar", coordinator.CmdToggleSidebar, keys.CmdOrCtrl("\\"))
	m.text(view, "Toggle Markdown Edit/Preview", coordinator.CmdToggleMarkdown, keys.CmdOrCtrl("e"))
	view.AddSeparator()
	theme := view.AddSubmenu("Theme")
	m.radio(theme, "System", coordinator.CmdThemeSystem)
	m.radio(theme, "Light", coordinator.CmdThemeLight)
	m.radio(theme, "Dark", coordinator.CmdThemeDark)

	win := root.AddSubmenu("Window")
	m.text(win, "Merge All Windows Into This Window", coordinator.CmdMergeAllWindows, nil)

	return root
}

func (m *appMenu) text(parent *menu.Menu, label, id string, accel *keys.Accelerator) {
	m.items[id] = parent.AddText(label, accel, func(*menu.CallbackData) {
		m.dispatch(id)
	})
}

func (m *appMenu) radio(parent *menu.Menu, label, id string) {
	m.items[id] = parent.AddRadio(label, false, nil, func(*menu.CallbackData) {
		m.checkTheme(themeForCommand(id))
		m.dispatch(id)
	})
}

// checkTheme marks the radio item for theme as selected.
func (m *appMenu) checkTheme(theme string) {
	m.mu.Lock()
	for id, name := range themeCommands {
		if item := m.items[id]; item != nil {
			item.Checked = name == config.NormalizeTheme(theme)
		}
	}
	m.mu.Unlock()
	m.refresh()
}

func (m *appMenu) setEnabled(id string, enabled bool) {
	m.mu.Lock()
	item := m.items[id]
	if item == nil || item.Disabled == !enabled {
		m.mu.Unlock()
		return
	}
	item.Disabled = !enabled
	m.mu.Unlock()
	m.refresh()
}

func (m *appMenu) refresh() {
	m.mu.Lock()
	ctx := m.ctx
	m.mu.Unlock()
	if ctx != nil {
		wailsRuntime.MenuUpdateApplicationMenu(ctx)
	}
}
