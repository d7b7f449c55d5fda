// Package windowtest provides test doubles for the window package.
package windowtest

import (
	"strings"
	"sync"

	"github.com/kabucey/teex/internal/window"
)

// Event is one recorded emission.
type Event struct {
	Name    string
	Payload any
}

// Recorder is a window.Emitter that keeps every emitted event.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Emit records the event.
func (r *Recorder) Emit(name string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Name: name, Payload: payload})
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Named returns recorded events whose name equals name.
func (r *Recorder) Named(name string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Prefixed returns recorded events whose name starts with prefix.
func (r *Recorder) Prefixed(prefix string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if strings.HasPrefix(e.Name, prefix) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of events named name.
func (r *Recorder) Count(name string) int {
	return len(r.Named(name))
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Live is a window.Liveness backed by a mutable set.
type Live struct {
	mu  sync.RWMutex
	ids map[window.ID]bool
}

// NewLive returns a liveness set containing ids.
func NewLive(ids ...window.ID) *Live {
	l := &Live{ids: make(map[window.ID]bool)}
	for _, id := range ids {
		l.ids[id] = true
	}
	return l
}

// Exists reports whether id is in the set.
func (l *Live) Exists(id window.ID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ids[id]
}

// Add marks id live.
func (l *Live) Add(id window.ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ids[id] = true
}

// Remove marks id dead.
func (l *Live) Remove(id window.ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.ids, id)
}
