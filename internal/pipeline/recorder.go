// Package pipeline owns the end-to-end capture, upload, and cleanup flow
// behind one dictation session.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/snadeau123/voice-transcriber/internal/audio"
	"github.com/snadeau123/voice-transcriber/internal/config"
	"github.com/snadeau123/voice-transcriber/internal/session"
)

// SpeechClient is the transcription API surface the pipeline depends on.
type SpeechClient interface {
	Transcribe(ctx context.Context, wavPath string) (string, error)
	Clean(ctx context.Context, transcript string) (string, error)
}

// captureHandle is the capture surface the pipeline depends on.
type captureHandle interface {
	Stop() (audio.StopInfo, error)
	Cancel() error
}

// Recorder drives one capture at a time: device selection, WAV capture,
// upload, and optional transcript cleanup.
type Recorder struct {
	cfg    config.Config
	client SpeechClient
	logger *slog.Logger

	selectDevice func(context.Context, string, string) (audio.Selection, error)
	startCapture func(context.Context, audio.Device, time.Duration) (captureHandle, error)

	mu        sync.Mutex
	started   bool
	selection audio.Selection
	capture   captureHandle
}

// NewRecorder constructs a pipeline recorder from runtime config.
func NewRecorder(cfg config.Config, client SpeechClient, logger *slog.Logger) *Recorder {
	return &Recorder{
		cfg:          cfg,
		client:       client,
		logger:       logger,
		selectDevice: audio.SelectDevice,
		startCapture: func(ctx context.Context, device audio.Device, minDuration time.Duration) (captureHandle, error) {
			return audio.StartCapture(ctx, device, minDuration)
		},
	}
}

// Start resolves the capture device and begins recording to a temp WAV file.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return fmt.Errorf("recorder already started")
	}

	selection, err := r.selectDevice(ctx, r.cfg.Audio.Input, r.cfg.Audio.Fallback)
	if err != nil {
		return err
	}
	r.selection = selection
	if selection.Warning != "" {
		r.logWarn(selection.Warning)
	}

	minDuration := time.Duration(r.cfg.Audio.MinDurationMS) * time.Millisecond
	capture, err := r.startCapture(ctx, selection.Device, minDuration)
	if err != nil {
		return err
	}
	r.capture = capture
	r.started = true
	return nil
}

// StopAndTranscribe finalizes the WAV file, uploads it, and runs optional
// transcript cleanup. Recordings below the minimum duration are discarded
// without touching the network.
func (r *Recorder) StopAndTranscribe(ctx context.Context) (session.StopResult, error) {
	r.mu.Lock()
	started := r.started
	capture := r.capture
	selection := r.selection
	r.started = false
	r.capture = nil
	r.mu.Unlock()

	if !started || capture == nil {
		return session.StopResult{}, session.ErrPipelineUnavailable
	}

	device := describeDevice(selection.Device)

	info, err := capture.Stop()
	if err != nil {
		if errors.Is(err, audio.ErrEmptyRecording) {
			return session.StopResult{AudioDevice: device}, session.ErrEmptyTranscript
		}
		return session.StopResult{AudioDevice: device}, fmt.Errorf("finalize recording: %w", err)
	}

	result := session.StopResult{
		AudioDevice:   device,
		BytesCaptured: info.Bytes,
	}

	uploadCtx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.API.TimeoutSeconds)*time.Second)
	defer cancel()

	uploadStart := time.Now()
	transcript, err := r.client.Transcribe(uploadCtx, info.Path)
	result.UploadLatency = time.Since(uploadStart)
	if err != nil {
		// The WAV stays on disk so a failed upload can be retried by hand.
		r.logWarn(fmt.Sprintf("transcription failed; audio kept at %s", info.Path))
		return result, fmt.Errorf("transcribe recording: %w", err)
	}

	r.disposeAudio(info.Path)

	if r.cfg.Cleanup.Enable && strings.TrimSpace(transcript) != "" {
		cleaned, cleanErr := r.client.Clean(uploadCtx, transcript)
		if cleanErr != nil {
			r.logWarn(fmt.Sprintf("transcript cleanup failed, using raw transcript: %v", cleanErr))
		} else {
			transcript = cleaned
		}
	}

	result.Transcript = transcript
	return result, nil
}

// Cancel discards the active capture and its temp file.
func (r *Recorder) Cancel(_ context.Context) error {
	r.mu.Lock()
	capture := r.capture
	r.started = false
	r.capture = nil
	r.mu.Unlock()

	if capture == nil {
		return nil
	}
	return capture.Cancel()
}

// disposeAudio removes the uploaded WAV unless debug retention is on.
func (r *Recorder) disposeAudio(path string) {
	if r.cfg.Debug.KeepAudio {
		r.logInfo(fmt.Sprintf("keeping audio file at %s", path))
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.logWarn(fmt.Sprintf("unable to remove audio file %s: %v", path, err))
	}
}

// describeDevice formats device metadata for logs and session results.
func describeDevice(device audio.Device) string {
	description := strings.TrimSpace(device.Description)
	id := strings.TrimSpace(device.ID)
	if description == "" {
		return id
	}
	if id == "" {
		return description
	}
	return fmt.Sprintf("%s (%s)", description, id)
}

func (r *Recorder) logWarn(message string) {
	if r.logger == nil {
		return
	}
	r.logger.Warn(message)
}

func (r *Recorder) logInfo(message string) {
	if r.logger == nil {
		return
	}
	r.logger.Info(message)
}
