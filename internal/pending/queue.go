// Package pending holds filesystem paths waiting for a window to ask for them.
package pending

import (
	"sync"

	"github.com/kabucey/teex/internal/window"
)

// Queue stores paths queued globally (claimed by the first window to drain)
// and paths queued for a specific window.
type Queue struct {
	mu       sync.Mutex
	global   []string
	byWindow map[window.ID][]string
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		byWindow: make(map[window.ID][]string),
	}
}

// QueueGlobal appends paths for whichever window drains first.
func (q *Queue) QueueGlobal(paths []string) {
	if len(paths) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.global = append(q.global, paths...)
}

// QueueForWindow appends paths for a single window, which may not exist yet.
func (q *Queue) QueueForWindow(id window.ID, paths []string) {
	if len(paths) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.byWindow[id] = append(q.byWindow[id], paths...)
}

// Drain returns the window's own paths followed by every global path, and
// forgets them. Each path is delivered at most once.
func (q *Queue) Drain(id window.ID) []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	drained := make([]string, 0, len(q.byWindow[id])+len(q.global))
	drained = append(drained, q.byWindow[id]...)
	delete(q.byWindow, id)

	drained = append(drained, q.global...)
	q.global = nil
	return drained
}

// ClearForWindow drops the per-window queue for id. The global queue is untouched.
func (q *Queue) ClearForWindow(id window.ID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.byWindow, id)
}

// Len reports the number of queued paths for id and globally.
func (q *Queue) Len(id window.ID) (own, global int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.byWindow[id]), len(q.global)
}
