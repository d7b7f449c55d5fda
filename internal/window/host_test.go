package window

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_MonotonicAndUnique(t *testing.T) {
	seq := NewSequence("")

	assert.Equal(t, ID("teex-window-1"), seq.Next())
	assert.Equal(t, ID("teex-window-2"), seq.Next())

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[ID]bool)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := seq.Next()
			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 50)
}

func TestScoped(t *testing.T) {
	assert.Equal(t, "teex://tab-transfer-result/teex-window-3", Scoped(EventTabTransferResult, "teex-window-3"))
}

func TestMemoryHost_BuildCloseLabels(t *testing.T) {
	h := NewMemoryHost()

	require.NoError(t, h.Build("w-1"))
	require.NoError(t, h.Build("w-2"))
	require.NoError(t, h.Build("w-3"))

	assert.Equal(t, []ID{"w-1", "w-2", "w-3"}, h.Labels())
	assert.True(t, h.Exists("w-2"))

	require.NoError(t, h.Close("w-2"))
	assert.False(t, h.Exists("w-2"))
	assert.Equal(t, []ID{"w-1", "w-3"}, h.Labels())
	assert.Equal(t, 2, h.Count())

	// Closing twice is harmless.
	require.NoError(t, h.Close("w-2"))
}

func TestMemoryHost_BuildHookFailure(t *testing.T) {
	h := NewMemoryHost()
	h.OnBuild = func(id ID) error { return errors.New("no display") }

	err := h.Build("w-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCreationFailed)
	assert.False(t, h.Exists("w-1"))
}

func TestMemoryHost_BuildHookSeesLiveWindow(t *testing.T) {
	h := NewMemoryHost()
	var liveInHook bool
	h.OnBuild = func(id ID) error {
		liveInHook = h.Exists(id)
		return nil
	}

	require.NoError(t, h.Build("w-1"))
	assert.True(t, liveInHook)
	assert.Equal(t, []ID{"w-1"}, h.Labels())
}

func TestMemoryHost_DuplicateBuild(t *testing.T) {
	h := NewMemoryHost()
	require.NoError(t, h.Build("w-1"))
	assert.ErrorIs(t, h.Build("w-1"), ErrCreationFailed)
}

func TestMemoryHost_Focus(t *testing.T) {
	h := NewMemoryHost()
	require.NoError(t, h.Build("w-1"))
	require.NoError(t, h.Build("w-2"))

	var focused []ID
	h.OnFocus = func(id ID) { focused = append(focused, id) }

	require.NoError(t, h.Focus("w-1"))
	assert.True(t, h.IsFocused("w-1"))

	require.NoError(t, h.Focus("w-2"))
	assert.False(t, h.IsFocused("w-1"))
	assert.True(t, h.IsFocused("w-2"))
	assert.Equal(t, []ID{"w-1", "w-2"}, focused)

	h.SetFocused("w-2", false)
	assert.False(t, h.IsFocused("w-2"))

	assert.Error(t, h.Focus("missing"))
}
