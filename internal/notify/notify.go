// Package notify surfaces session state through freedesktop desktop
// notifications and short audio cues.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/snadeau123/voice-transcriber/internal/config"
)

const (
	appName         = "voice-transcriber"
	dispatchTimeout = 400 * time.Millisecond
	stickyTimeoutMS = 300000
)

// Notifier is the session-facing notification contract.
type Notifier interface {
	ShowRecording(context.Context)
	ShowProcessing(context.Context)
	ShowError(context.Context, string)
	CueStop(context.Context)
	CueComplete(context.Context)
	CueCancel(context.Context)
	Hide(context.Context)
}

// Desktop routes state notifications over DBus and plays audio cues.
type Desktop struct {
	cfg    config.NotifyConfig
	logger *slog.Logger

	mu             sync.Mutex
	notificationID uint32
	soundMu        sync.Mutex
}

// NewDesktop creates a desktop notifier from config.
func NewDesktop(cfg config.NotifyConfig, logger *slog.Logger) *Desktop {
	return &Desktop{cfg: cfg, logger: logger}
}

// ShowRecording signals recording start and emits the start cue.
func (d *Desktop) ShowRecording(ctx context.Context) {
	d.playCue(cueStart)
	d.show(ctx, stickyTimeoutMS, "Recording…")
}

// ShowProcessing signals the post-capture transcription state.
func (d *Desktop) ShowProcessing(ctx context.Context) {
	d.show(ctx, stickyTimeoutMS, "Transcribing…")
}

// ShowError displays a transient error notification.
func (d *Desktop) ShowError(ctx context.Context, text string) {
	if text == "" {
		text = "Speech recognition error"
	}
	timeout := d.cfg.ErrorTimeoutMS
	if timeout <= 0 {
		timeout = 1600
	}
	d.show(ctx, timeout, text)
}

// CueStop emits the stop cue.
func (d *Desktop) CueStop(context.Context) {
	d.playCue(cueStop)
}

// CueComplete emits the successful-delivery cue.
func (d *Desktop) CueComplete(context.Context) {
	d.playCue(cueComplete)
}

// CueCancel emits the cancel cue.
func (d *Desktop) CueCancel(context.Context) {
	d.playCue(cueCancel)
}

// Hide dismisses the active notification when one is showing.
func (d *Desktop) Hide(ctx context.Context) {
	if !d.cfg.Enable {
		return
	}

	d.mu.Lock()
	id := d.notificationID
	d.notificationID = 0
	d.mu.Unlock()

	if id == 0 {
		return
	}

	d.run(ctx, func(ctx context.Context) error {
		return desktopDismiss(ctx, id)
	})
}

// show sends a replaceable notification and stores the server-assigned ID.
func (d *Desktop) show(ctx context.Context, timeoutMS int, text string) {
	if !d.cfg.Enable {
		return
	}

	d.mu.Lock()
	replaceID := d.notificationID
	d.mu.Unlock()

	d.run(ctx, func(ctx context.Context) error {
		id, err := desktopNotify(ctx, appName, replaceID, text, timeoutMS)
		if err != nil {
			return err
		}
		d.mu.Lock()
		d.notificationID = id
		d.mu.Unlock()
		return nil
	})
}

// run executes a notification operation with a bounded timeout.
func (d *Desktop) run(ctx context.Context, fn func(context.Context) error) {
	runCtx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()
	if err := fn(runCtx); err != nil {
		d.log("notification dispatch failed", err)
	}
}

// playCue serializes cue playback and emits audio asynchronously.
func (d *Desktop) playCue(kind cueKind) {
	if !d.cfg.Sound {
		return
	}
	go func() {
		d.soundMu.Lock()
		defer d.soundMu.Unlock()
		if err := emitCue(kind); err != nil {
			d.log("audio cue failed", err)
		}
	}()
}

func (d *Desktop) log(message string, err error) {
	if d.logger == nil || err == nil {
		return
	}
	d.logger.Debug(message, "error", err.Error())
}
