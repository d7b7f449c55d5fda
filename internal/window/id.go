// Package window holds the window identity, liveness and event-emission
// primitives shared by every registry in the runtime.
package window

import (
	"fmt"
	"sync/atomic"
)

// DefaultLabelPrefix is the prefix used for window labels when none is configured.
const DefaultLabelPrefix = "teex-window"

// ID is an opaque, process-unique window label. IDs are never reused, even
// after the window they named has been destroyed.
type ID string

// String returns the label.
func (id ID) String() string {
	return string(id)
}

// Sequence hands out monotonically increasing window IDs.
type Sequence struct {
	prefix string
	next   atomic.Uint64
}

// NewSequence creates a sequence whose first ID is "<prefix>-1".
func NewSequence(prefix string) *Sequence {
	if prefix == "" {
		prefix = DefaultLabelPrefix
	}
	s := &Sequence{prefix: prefix}
	s.next.Store(1)
	return s
}

// Next reserves and returns the next window ID.
func (s *Sequence) Next() ID {
	n := s.next.Add(1) - 1
	return ID(fmt.Sprintf("%s-%d", s.prefix, n))
}
