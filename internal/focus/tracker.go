// Package focus tracks which window should receive window-less actions such
// as menu commands and OS open requests.
package focus

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kabucey/teex/internal/window"
)

// DefaultRecentWindow is how long a newly created window is preferred over
// the real-time focus state.
const DefaultRecentWindow = 2 * time.Second

// Prober answers real-time questions about live windows.
type Prober interface {
	window.Liveness
	IsFocused(id window.ID) bool
	Labels() []window.ID
}

// Tracker records the last focused window and the most recently created one.
type Tracker struct {
	mu        sync.Mutex
	label     window.ID
	created   window.ID
	createdAt time.Time

	recent time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

// NewTracker creates a tracker. A zero recent duration disables the
// new-window bias.
func NewTracker(recent time.Duration, log zerolog.Logger) *Tracker {
	return &Tracker{
		recent: recent,
		now:    time.Now,
		log:    log,
	}
}

// SetClock replaces the time source used for the new-window bias.
func (t *Tracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
}

// SetFocused records an explicit focus notification.
func (t *Tracker) SetFocused(id window.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.label = id
}

// SetRecentlyCreated marks id as just created.
func (t *Tracker) SetRecentlyCreated(id window.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.created = id
	t.createdAt = t.now()
}

// Focused returns the last explicitly tracked window, if any.
func (t *Tracker) Focused() (window.ID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.label, t.label != ""
}

// Forget drops any record of id. Resolve already ignores dead windows; this
// only keeps the record tidy after a window is destroyed.
func (t *Tracker) Forget(id window.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.label == id {
		t.label = ""
	}
	if t.created == id {
		t.created = ""
		t.createdAt = time.Time{}
	}
}

// Resolve picks the window an action should go to, in order:
//  1. a window created less than the recent-window interval ago, if still live
//  2. the first live window reporting real-time focus
//  3. the last tracked window, if still live
//  4. any live window
//
// The record is snapshotted first; no lock is held while probing windows.
func (t *Tracker) Resolve(p Prober) (window.ID, bool) {
	t.mu.Lock()
	label := t.label
	created := t.created
	createdAt := t.createdAt
	now := t.now()
	t.mu.Unlock()

	if created != "" && now.Sub(createdAt) < t.recent && p.Exists(created) {
		return created, true
	}

	labels := p.Labels()
	for _, id := range labels {
		if p.IsFocused(id) {
			return id, true
		}
	}

	if label != "" && p.Exists(label) {
		return label, true
	}

	for _, id := range labels {
		if p.Exists(id) {
			t.log.Debug().Str("window", id.String()).Msg("no focused window, using first live window")
			return id, true
		}
	}
	return "", false
}
