//go:build integration

package audio

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Requires a reachable PulseAudio or PipeWire server; run with
// go test -tags integration ./internal/audio.
func TestListDevicesIntegration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	devices, err := ListDevices(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, devices)

	var defaults int
	for _, device := range devices {
		if device.Default {
			defaults++
		}
	}
	require.LessOrEqual(t, defaults, 1)
}

func TestCaptureRoundTripIntegration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	selection, err := SelectDevice(ctx, "default", "default")
	require.NoError(t, err)

	capture, err := StartCapture(ctx, selection.Device, 0)
	require.NoError(t, err)

	time.Sleep(500 * time.Millisecond)

	info, err := capture.Stop()
	require.NoError(t, err)
	require.FileExists(t, info.Path)
	require.Greater(t, info.Bytes, int64(0))
}
