package window

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrCreationFailed is returned when the underlying window could not be constructed.
var ErrCreationFailed = errors.New("window creation failed")

// Liveness reports whether a window currently exists.
type Liveness interface {
	Exists(id ID) bool
}

// Host is the native window layer the runtime coordinates.
type Host interface {
	Liveness

	// Build constructs the window for id. It must not retain id on failure.
	Build(id ID) error
	// Close asks the window to close. Closing an unknown window is a no-op.
	Close(id ID) error
	// Focus brings the window to the front.
	Focus(id ID) error
	// IsFocused queries the real-time focus state of a window.
	IsFocused(id ID) bool
	// Labels lists live windows in creation order.
	Labels() []ID
}

// FocusRecorder is implemented by hosts that learn about focus changes from
// the windows themselves rather than from the OS.
type FocusRecorder interface {
	SetFocused(id ID, focused bool)
}

type hostWindow struct {
	focused bool
	seq     uint64
}

// MemoryHost is an in-process window table. The desktop shell layers native
// behaviour on top of it through the OnBuild/OnClose/OnFocus hooks.
type MemoryHost struct {
	mu      sync.RWMutex
	windows map[ID]*hostWindow
	seq     uint64

	// OnBuild runs after a window is recorded; an error aborts creation.
	OnBuild func(id ID) error
	// OnClose runs after a window has been removed.
	OnClose func(id ID)
	// OnFocus runs after a window has been marked focused.
	OnFocus func(id ID)
}

// NewMemoryHost creates an empty window table.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		windows: make(map[ID]*hostWindow),
	}
}

// Build records a new window, then runs OnBuild. The window is live while
// the hook runs; it is removed again if the hook fails.
func (h *MemoryHost) Build(id ID) error {
	h.mu.Lock()
	if _, exists := h.windows[id]; exists {
		h.mu.Unlock()
		return fmt.Errorf("%w: %s already exists", ErrCreationFailed, id)
	}
	h.seq++
	h.windows[id] = &hostWindow{seq: h.seq}
	h.mu.Unlock()

	if h.OnBuild != nil {
		if err := h.OnBuild(id); err != nil {
			h.mu.Lock()
			delete(h.windows, id)
			h.mu.Unlock()
			return fmt.Errorf("%w: %s: %v", ErrCreationFailed, id, err)
		}
	}
	return nil
}

// Register records a window created outside of Build (e.g. the shell's first window).
func (h *MemoryHost) Register(id ID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.windows[id]; exists {
		return
	}
	h.seq++
	h.windows[id] = &hostWindow{seq: h.seq}
}

// Close removes a window from the table.
func (h *MemoryHost) Close(id ID) error {
	h.mu.Lock()
	_, exists := h.windows[id]
	delete(h.windows, id)
	h.mu.Unlock()

	if exists && h.OnClose != nil {
		h.OnClose(id)
	}
	return nil
}

// Focus marks id as the only focused window.
func (h *MemoryHost) Focus(id ID) error {
	h.mu.Lock()
	w, exists := h.windows[id]
	if !exists {
		h.mu.Unlock()
		return fmt.Errorf("window %s not found", id)
	}
	for _, other := range h.windows {
		other.focused = false
	}
	w.focused = true
	h.mu.Unlock()

	if h.OnFocus != nil {
		h.OnFocus(id)
	}
	return nil
}

// SetFocused records a focus report from the window itself. Blur reports
// only clear the flag for that window.
func (h *MemoryHost) SetFocused(id ID, focused bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	w, exists := h.windows[id]
	if !exists {
		return
	}
	if focused {
		for _, other := range h.windows {
			other.focused = false
		}
	}
	w.focused = focused
}

// Exists reports whether id is live.
func (h *MemoryHost) Exists(id ID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.windows[id]
	return exists
}

// IsFocused reports the last focus state recorded for id.
func (h *MemoryHost) IsFocused(id ID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	w, exists := h.windows[id]
	return exists && w.focused
}

// Labels returns live windows ordered by creation.
func (h *MemoryHost) Labels() []ID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]ID, 0, len(h.windows))
	for id := range h.windows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return h.windows[ids[i]].seq < h.windows[ids[j]].seq
	})
	return ids
}

// Count returns the number of live windows.
func (h *MemoryHost) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.windows)
}
