// Package transfer routes tabs between windows. A merge asks every other
// window to export its tabs; each export is delivered to the merge target,
// which reports back how many tabs it accepted. Requests are correlated by
// id only and never tracked.
package transfer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kabucey/teex/internal/window"
)

// ErrTargetUnavailable is returned when the receiving window has closed.
var ErrTargetUnavailable = errors.New("target window is no longer available")

const requestIDPrefix = "tab-transfer-"

// RequestID correlates an export request with its transfer and result.
type RequestID string

// NewRequestID returns a fresh correlation id.
func NewRequestID() RequestID {
	return RequestID(requestIDPrefix + uuid.NewString())
}

func (r RequestID) String() string { return string(r) }

// Tab is one open document session. The router passes tabs through untouched.
type Tab struct {
	Path             *string `json:"path"`
	Content          string  `json:"content"`
	Kind             string  `json:"kind"`
	Writable         bool    `json:"writable"`
	IsDirty          bool    `json:"isDirty"`
	MarkdownViewMode string  `json:"markdownViewMode"`
}

// ExportRequest asks a window to send its tabs to TargetLabel.
type ExportRequest struct {
	RequestID   RequestID `json:"requestId"`
	TargetLabel window.ID `json:"targetLabel"`
}

// ReceivePayload delivers exported tabs to the merge target.
type ReceivePayload struct {
	RequestID   RequestID `json:"requestId"`
	SourceLabel window.ID `json:"sourceLabel"`
	Tabs        []Tab     `json:"tabs"`
}

// ResultPayload tells the exporting window how many tabs were accepted.
type ResultPayload struct {
	RequestID     RequestID `json:"requestId"`
	TargetLabel   window.ID `json:"targetLabel"`
	AcceptedCount int       `json:"acceptedCount"`
}

// Router delivers transfer messages between live windows.
type Router struct {
	live    window.Liveness
	emitter window.Emitter
	log     zerolog.Logger
}

// NewRouter creates a router.
func NewRouter(live window.Liveness, emitter window.Emitter, log zerolog.Logger) *Router {
	return &Router{live: live, emitter: emitter, log: log}
}

// RequestExport asks every live window in labels other than target to export
// its tabs to target. It returns the ids issued, one per window asked.
func (r *Router) RequestExport(target window.ID, labels []window.ID) map[window.ID]RequestID {
	issued := make(map[window.ID]RequestID)
	for _, id := range labels {
		if id == target || !r.live.Exists(id) {
			continue
		}
		req := ExportRequest{RequestID: NewRequestID(), TargetLabel: target}
		window.EmitTo(r.emitter, id, window.EventRequestExportAllTabs, req)
		issued[id] = req.RequestID
	}

	r.log.Debug().Str("target", target.String()).Int("requests", len(issued)).Msg("requested tab export")
	return issued
}

// Route delivers tabs exported by source to target.
func (r *Router) Route(source, target window.ID, id RequestID, tabs []Tab) error {
	if !r.live.Exists(target) {
		return fmt.Errorf("%w: %s", ErrTargetUnavailable, target)
	}
	if tabs == nil {
		tabs = []Tab{}
	}

	window.EmitTo(r.emitter, target, window.EventReceiveTransferredTabs, ReceivePayload{
		RequestID:   id,
		SourceLabel: source,
		Tabs:        tabs,
	})
	r.log.Debug().
		Str("request", id.String()).
		Str("source", source.String()).
		Str("target", target.String()).
		Int("tabs", len(tabs)).
		Msg("routed tabs")
	return nil
}

// RouteResult reports back to source how many tabs target accepted. A closed
// source is not an error.
func (r *Router) RouteResult(source, target window.ID, id RequestID, accepted int) error {
	if !r.live.Exists(source) {
		r.log.Debug().Str("request", id.String()).Str("source", source.String()).Msg("dropping transfer result for closed window")
		return nil
	}

	window.EmitTo(r.emitter, source, window.EventTabTransferResult, ResultPayload{
		RequestID:     id,
		TargetLabel:   target,
		AcceptedCount: accepted,
	})
	return nil
}
