package transfer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabucey/teex/internal/window"
	"github.com/kabucey/teex/internal/window/windowtest"
)

func newTestRouter(ids ...window.ID) (*Router, *windowtest.Recorder, *windowtest.Live) {
	rec := &windowtest.Recorder{}
	live := windowtest.NewLive(ids...)
	return NewRouter(live, rec, zerolog.Nop()), rec, live
}

func TestNewRequestID(t *testing.T) {
	a := NewRequestID()
	b := NewRequestID()
	assert.True(t, strings.HasPrefix(a.String(), "tab-transfer-"))
	assert.NotEqual(t, a, b)
}

func TestRequestExport(t *testing.T) {
	r, rec, _ := newTestRouter("w-1", "w-2", "w-3")

	issued := r.RequestExport("w-2", []window.ID{"w-1", "w-2", "w-3", "w-gone"})
	require.Len(t, issued, 2)
	assert.NotEqual(t, issued["w-1"], issued["w-3"])

	for _, id := range []window.ID{"w-1", "w-3"} {
		events := rec.Named(window.Scoped(window.EventRequestExportAllTabs, id))
		require.Len(t, events, 1)
		assert.Equal(t, ExportRequest{RequestID: issued[id], TargetLabel: "w-2"}, events[0].Payload)
	}
	assert.Zero(t, rec.Count(window.Scoped(window.EventRequestExportAllTabs, "w-2")))
	assert.Len(t, rec.Events(), 2)
}

func TestRequestExport_SingleWindow(t *testing.T) {
	r, rec, _ := newTestRouter("w-1")
	assert.Empty(t, r.RequestExport("w-1", []window.ID{"w-1"}))
	assert.Empty(t, rec.Events())
}

func TestRoute(t *testing.T) {
	path := "/tmp/notes.md"
	tabs := []Tab{
		{Path: &path, Content: "# notes", Kind: "markdown", Writable: true, IsDirty: true, MarkdownViewMode: "preview"},
		{Content: "scratch", Kind: "text", Writable: true},
	}

	t.Run("live target", func(t *testing.T) {
		r, rec, _ := newTestRouter("w-1", "w-2")
		require.NoError(t, r.Route("w-1", "w-2", "tab-transfer-abc", tabs))

		events := rec.Events()
		require.Len(t, events, 1)
		assert.Equal(t, window.Scoped(window.EventReceiveTransferredTabs, "w-2"), events[0].Name)
		assert.Equal(t, ReceivePayload{RequestID: "tab-transfer-abc", SourceLabel: "w-1", Tabs: tabs}, events[0].Payload)
	})

	t.Run("closed target", func(t *testing.T) {
		r, rec, live := newTestRouter("w-1", "w-2")
		live.Remove("w-2")

		err := r.Route("w-1", "w-2", "tab-transfer-abc", tabs)
		assert.ErrorIs(t, err, ErrTargetUnavailable)
		assert.Empty(t, rec.Events())
	})

	t.Run("nil tabs", func(t *testing.T) {
		r, rec, _ := newTestRouter("w-2")
		require.NoError(t, r.Route("w-1", "w-2", "id", nil))
		payload := rec.Events()[0].Payload.(ReceivePayload)
		assert.NotNil(t, payload.Tabs)
	})
}

func TestRouteResult(t *testing.T) {
	t.Run("live source", func(t *testing.T) {
		r, rec, _ := newTestRouter("w-1", "w-2")
		require.NoError(t, r.RouteResult("w-1", "w-2", "tab-transfer-abc", 3))

		events := rec.Named(window.Scoped(window.EventTabTransferResult, "w-1"))
		require.Len(t, events, 1)
		assert.Equal(t, ResultPayload{RequestID: "tab-transfer-abc", TargetLabel: "w-2", AcceptedCount: 3}, events[0].Payload)
	})

	t.Run("closed source", func(t *testing.T) {
		r, rec, _ := newTestRouter("w-2")
		assert.NoError(t, r.RouteResult("w-1", "w-2", "tab-transfer-abc", 3))
		assert.Empty(t, rec.Events())
	})
}

func TestPayloadJSON(t *testing.T) {
	data, err := json.Marshal(ReceivePayload{
		RequestID:   "tab-transfer-1",
		SourceLabel: "teex-window-2",
		Tabs:        []Tab{{Kind: "text", Content: "x"}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"requestId": "tab-transfer-1",
		"sourceLabel": "teex-window-2",
		"tabs": [{"path": null, "content": "x", "kind": "text", "writable": false, "isDirty": false, "markdownViewMode": ""}]
	}`, string(data))
}
