package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCueSamplesPresent(t *testing.T) {
	require.NotEmpty(t, cueSamples(cueStart))
	require.NotEmpty(t, cueSamples(cueStop))
	require.NotEmpty(t, cueSamples(cueComplete))
	require.NotEmpty(t, cueSamples(cueCancel))
	require.Empty(t, cueSamples(cueKind(0)))
}

func TestRenderToneDuration(t *testing.T) {
	got := renderTone(tone{hz: 440, dur: 100 * time.Millisecond})
	require.Len(t, got, sampleCount(100*time.Millisecond))
}

func TestRenderToneInvalidSpecReturnsEmpty(t *testing.T) {
	require.Empty(t, renderTone(tone{hz: 0, dur: 100 * time.Millisecond}))
	require.Empty(t, renderTone(tone{hz: 440, dur: 0}))
}

func TestSampleCount(t *testing.T) {
	require.Equal(t, 0, sampleCount(0))
	require.Equal(t, 1600, sampleCount(100*time.Millisecond))
}

func TestRenderCueInsertsGaps(t *testing.T) {
	got := renderCue(
		tone{hz: 880, dur: 50 * time.Millisecond},
		tone{hz: 440, dur: 50 * time.Millisecond},
	)
	want := 2*sampleCount(50*time.Millisecond) + sampleCount(cueGap)
	require.Len(t, got, want)
}
