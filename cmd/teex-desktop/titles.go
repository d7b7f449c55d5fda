package main

import (
	"fmt"
	"sync"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/kabucey/teex/internal/window"
)

// windowSetTitle is replaced in tests.
var windowSetTitle = wailsRuntime.WindowSetTitle

// WindowTitle is what a view last asked the native title bar to show.
// RepresentedPath is the document the title stands for; Wails has no
// proxy-icon API, so it is kept for the frontend only.
type WindowTitle struct {
	Title           string `json:"title"`
	RepresentedPath string `json:"representedPath,omitempty"`
}

// titleBook keeps the title of every view. The native window shows the
// title of whichever view is the current target.
type titleBook struct {
	mu     sync.Mutex
	titles map[window.ID]WindowTitle
}

func newTitleBook() *titleBook {
	return &titleBook{titles: make(map[window.ID]WindowTitle)}
}

func (b *titleBook) set(id window.ID, t WindowTitle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.titles[id] = t
}

func (b *titleBook) get(id window.ID) (WindowTitle, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.titles[id]
	return t, ok
}

func (b *titleBook) forget(id window.ID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.titles, id)
}

// SetWindowTitle records the title for a view. The native title bar is
// updated when that view is the current target.
func (a *App) SetWindowTitle(label, title string, representedPath *string) error {
	id := window.ID(label)
	if !a.host.Exists(id) {
		return fmt.Errorf("unable to set window title: window %s not found", label)
	}

	t := WindowTitle{Title: title}
	if representedPath != nil {
		t.RepresentedPath = *representedPath
	}
	a.titles.set(id, t)

	if target, ok := a.coord.Target(); ok && target == id {
		a.showTitle(id)
	}
	return nil
}

// showTitle puts the recorded title of id on the native window.
func (a *App) showTitle(id window.ID) {
	t, ok := a.titles.get(id)
	if !ok {
		return
	}
	ctx := a.context()
	if ctx == nil {
		return
	}
	windowSetTitle(ctx, t.Title)
}

// GetWindowTitle returns the title recorded for a view.
func (a *App) GetWindowTitle(label string) WindowTitle {
	t, _ := a.titles.get(window.ID(label))
	return t
}
