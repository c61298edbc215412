package tray

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetStatusBuffersBeforeReady(t *testing.T) {
	presenter := New(nil, nil, nil)

	presenter.SetStatus("recording")
	presenter.SetStatus("processing")

	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	require.False(t, presenter.ready)
	require.Equal(t, "processing", presenter.pending)
}

func TestStateGlyphsCoverSessionStates(t *testing.T) {
	for _, state := range []string{"idle", "recording", "processing", "error"} {
		require.Contains(t, stateGlyphs, state)
	}
}
