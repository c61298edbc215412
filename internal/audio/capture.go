package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jfreymuth/pulse"
	pulseproto "github.com/jfreymuth/pulse/proto"
)

const (
	sampleRate     = 16000
	channels       = 1
	bytesPerSample = 2
	bytesPerSecond = sampleRate * channels * bytesPerSample
)

// ErrEmptyRecording indicates a capture too short to be worth uploading.
var ErrEmptyRecording = errors.New("recording below minimum duration; nothing to transcribe")

// StopInfo describes one finalized capture file.
type StopInfo struct {
	Path     string
	Bytes    int64
	Duration time.Duration
}

// Capture streams 16kHz mono s16le PCM from one Pulse source into a temp WAV
// file. One Capture produces at most one file.
type Capture struct {
	device      Device
	minDuration time.Duration

	client *pulse.Client
	stream *pulse.RecordStream

	mu      sync.Mutex
	file    *os.File
	bytes   int64
	stopped bool
	done    chan struct{}
}

// StartCapture opens the selected source and begins writing a fresh temp file.
func StartCapture(ctx context.Context, selected Device, minDuration time.Duration) (*Capture, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("voice-transcriber"),
		pulse.ClientApplicationIconName("audio-input-microphone"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}

	source, err := client.SourceByID(selected.ID)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("resolve source %q: %w", selected.ID, err)
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("voice-%s.wav", uuid.NewString()))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("create recording file: %w", err)
	}
	if err := writeWAVHeader(file, 0); err != nil {
		file.Close()
		_ = os.Remove(path)
		client.Close()
		return nil, fmt.Errorf("write wav header: %w", err)
	}

	capture := &Capture{
		device:      selected,
		minDuration: minDuration,
		client:      client,
		file:        file,
		done:        make(chan struct{}),
	}

	writer := pulse.NewWriter(writerFunc(capture.onPCM), pulseproto.FormatInt16LE)
	stream, err := client.NewRecord(
		writer,
		pulse.RecordSource(source),
		pulse.RecordMono,
		pulse.RecordSampleRate(sampleRate),
		pulse.RecordMediaName("voice-transcriber capture"),
	)
	if err != nil {
		capture.discard()
		return nil, fmt.Errorf("create pulse record stream: %w", err)
	}

	capture.stream = stream
	stream.Start()

	go capture.watch(ctx)

	return capture, nil
}

// watch discards the recording if ctx ends while the capture is still live.
// It returns as soon as the capture finishes on its own, so a long-lived
// process does not accumulate a goroutine per recording.
func (c *Capture) watch(ctx context.Context) {
	select {
	case <-ctx.Done():
		_ = c.Cancel()
	case <-c.done:
	}
}

// Device returns capture metadata for logging and diagnostics.
func (c *Capture) Device() Device {
	return c.device
}

// BytesCaptured reports total PCM bytes accepted from Pulse.
func (c *Capture) BytesCaptured() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bytes
}

// Stop halts the stream and finalizes the WAV file. Recordings shorter than
// the minimum duration are removed and reported as ErrEmptyRecording.
func (c *Capture) Stop() (StopInfo, error) {
	file, bytes, ok := c.teardown()
	if !ok {
		return StopInfo{}, errors.New("capture already stopped")
	}

	path := file.Name()
	duration := time.Duration(bytes) * time.Second / bytesPerSecond

	if err := finalizeWAV(file, bytes); err != nil {
		file.Close()
		_ = os.Remove(path)
		return StopInfo{}, fmt.Errorf("finalize recording %q: %w", path, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return StopInfo{}, fmt.Errorf("close recording %q: %w", path, err)
	}

	if duration < c.minDuration {
		_ = os.Remove(path)
		return StopInfo{Bytes: bytes, Duration: duration}, ErrEmptyRecording
	}

	return StopInfo{Path: path, Bytes: bytes, Duration: duration}, nil
}

// Cancel halts the stream and removes the partial file.
func (c *Capture) Cancel() error {
	file, _, ok := c.teardown()
	if !ok {
		return nil
	}
	path := file.Name()
	_ = file.Close()
	return os.Remove(path)
}

// teardown stops the Pulse stream exactly once and detaches the file handle.
func (c *Capture) teardown() (*os.File, int64, bool) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil, 0, false
	}
	c.stopped = true
	file := c.file
	bytes := c.bytes
	c.file = nil
	if c.done != nil {
		close(c.done)
	}
	c.mu.Unlock()

	if c.stream != nil {
		c.stream.Stop()
		c.stream.Close()
	}
	if c.client != nil {
		c.client.Close()
	}

	return file, bytes, true
}

// discard releases resources after a failed start.
func (c *Capture) discard() {
	if file, _, ok := c.teardown(); ok && file != nil {
		path := file.Name()
		_ = file.Close()
		_ = os.Remove(path)
	}
}

// onPCM appends raw Pulse frames to the recording file.
func (c *Capture) onPCM(buffer []byte) (int, error) {
	if len(buffer) == 0 {
		return 0, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || c.file == nil {
		return 0, io.EOF
	}

	n, err := c.file.Write(buffer)
	c.bytes += int64(n)
	if err != nil {
		return n, fmt.Errorf("write recording: %w", err)
	}
	return n, nil
}

// writerFunc adapts a function to io.Writer for pulse.NewWriter.
type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(b []byte) (int, error) {
	return f(b)
}
