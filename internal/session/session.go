// Package session coordinates the dictation lifecycle for the resident
// process: toggle handling, state transitions, and transcript delivery.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/snadeau123/voice-transcriber/internal/fsm"
	"github.com/snadeau123/voice-transcriber/internal/ipc"
)

// Notifier is the session-facing subset of notification behavior.
type Notifier interface {
	ShowRecording(context.Context)
	ShowProcessing(context.Context)
	ShowError(context.Context, string)
	CueStop(context.Context)
	CueComplete(context.Context)
	CueCancel(context.Context)
	Hide(context.Context)
}

// noopNotifier preserves session flow when no notifier is wired.
type noopNotifier struct{}

func (noopNotifier) ShowRecording(context.Context)     {}
func (noopNotifier) ShowProcessing(context.Context)    {}
func (noopNotifier) ShowError(context.Context, string) {}
func (noopNotifier) CueStop(context.Context)           {}
func (noopNotifier) CueComplete(context.Context)       {}
func (noopNotifier) CueCancel(context.Context)         {}
func (noopNotifier) Hide(context.Context)              {}

// Controller owns session state for the lifetime of the resident process.
// Toggle requests arrive concurrently from the hotkey, the tray, and IPC
// clients; the controller serializes them and guarantees at most one active
// recording.
type Controller struct {
	logger   *slog.Logger
	recorder Recorder
	commit   Committer
	notifier Notifier

	// onState observes every state change. It runs under the controller
	// lock and must not block or call back into the controller.
	onState func(fsm.State)
	onQuit  func()

	mu    sync.Mutex
	state fsm.State
	wg    sync.WaitGroup
}

// NewController constructs a session controller with safe default fallbacks.
func NewController(logger *slog.Logger, recorder Recorder, committer Committer, notifier Notifier) *Controller {
	if recorder == nil {
		recorder = placeholderRecorder{}
	}
	if committer == nil {
		committer = CommitFunc(func(context.Context, string) error { return nil })
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Controller{
		logger:   logger,
		recorder: recorder,
		commit:   committer,
		notifier: notifier,
		state:    fsm.StateIdle,
	}
}

// OnState registers the state observer. Must be called before the controller
// starts receiving toggles.
func (c *Controller) OnState(fn func(fsm.State)) {
	c.onState = fn
}

// OnQuit registers the quit hook invoked by the IPC quit command.
func (c *Controller) OnQuit(fn func()) {
	c.onQuit = fn
}

// State returns the current state snapshot.
func (c *Controller) State() fsm.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle flips the session between recording and processing. A toggle that
// arrives while a transcript is still in flight is ignored, never queued.
func (c *Controller) Toggle(ctx context.Context) (fsm.State, string, error) {
	c.mu.Lock()

	switch c.state {
	case fsm.StateIdle:
		if err := c.transitionLocked(fsm.EventStart); err != nil {
			c.mu.Unlock()
			return c.State(), "", err
		}
		if err := c.recorder.Start(ctx); err != nil {
			c.failAndResetLocked()
			c.mu.Unlock()
			c.notifier.ShowError(ctx, "Unable to start recording")
			c.logError("recording start failed", err)
			return fsm.StateIdle, "", err
		}
		c.mu.Unlock()
		c.notifier.ShowRecording(ctx)
		c.logInfo("recording started")
		return fsm.StateRecording, "recording started", nil

	case fsm.StateRecording:
		if err := c.transitionLocked(fsm.EventStop); err != nil {
			c.mu.Unlock()
			return c.State(), "", err
		}
		c.wg.Add(1)
		c.mu.Unlock()
		go c.finish()
		return fsm.StateProcessing, "transcribing", nil

	case fsm.StateProcessing:
		c.mu.Unlock()
		c.logDebug("toggle ignored while transcript in flight")
		return fsm.StateProcessing, "still transcribing", nil

	default:
		state := c.state
		c.mu.Unlock()
		return state, "", fmt.Errorf("cannot toggle from state %s", state)
	}
}

// finish runs the stop half of one session off the toggle path: upload,
// optional cleanup, and delivery. It always returns the controller to idle.
func (c *Controller) finish() {
	defer c.wg.Done()

	ctx := context.Background()
	started := time.Now()

	c.notifier.ShowProcessing(ctx)
	stopResult, err := c.recorder.StopAndTranscribe(ctx)
	c.notifier.CueStop(ctx)
	if err != nil {
		if errors.Is(err, ErrEmptyTranscript) {
			c.failSession(ctx, "No speech detected", err)
			return
		}
		c.failSession(ctx, "Speech recognition failed", err)
		return
	}

	if strings.TrimSpace(stopResult.Transcript) == "" {
		c.failSession(ctx, "No speech detected", ErrEmptyTranscript)
		return
	}

	if err := c.commit.Commit(ctx, stopResult.Transcript); err != nil {
		c.failSession(ctx, "Output dispatch failed", err)
		return
	}

	c.notifier.CueComplete(ctx)
	c.mu.Lock()
	_ = c.transitionLocked(fsm.EventDelivered)
	c.mu.Unlock()
	c.notifier.Hide(ctx)

	c.logInfo("transcript delivered",
		"chars", len(stopResult.Transcript),
		"device", stopResult.AudioDevice,
		"bytes_captured", stopResult.BytesCaptured,
		"upload_latency_ms", stopResult.UploadLatency.Milliseconds(),
		"total_ms", time.Since(started).Milliseconds(),
	)
}

// failSession surfaces an error state and immediately resets to idle.
func (c *Controller) failSession(ctx context.Context, message string, err error) {
	c.notifier.ShowError(ctx, message)
	c.mu.Lock()
	c.failAndResetLocked()
	c.mu.Unlock()
	c.logError("session failed", err)
}

// Shutdown cancels any active recording and waits for in-flight work until
// ctx expires. An upload can outlive the deadline; the process exits anyway
// rather than hang on a slow network.
func (c *Controller) Shutdown(ctx context.Context) {
	c.mu.Lock()
	if c.state == fsm.StateRecording {
		_ = c.recorder.Cancel(ctx)
		c.failAndResetLocked()
		c.mu.Unlock()
		c.notifier.CueCancel(ctx)
	} else {
		c.mu.Unlock()
	}

	settled := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(settled)
	}()

	select {
	case <-settled:
	case <-ctx.Done():
		c.logInfo("shutdown deadline reached with work in flight")
	}
	c.notifier.Hide(ctx)
}

// Handle serves IPC commands for the resident process.
func (c *Controller) Handle(ctx context.Context, req ipc.Request) ipc.Response {
	switch req.Command {
	case ipc.CommandStatus:
		return ipc.Response{OK: true, State: string(c.State()), Message: "status"}
	case ipc.CommandToggle:
		state, message, err := c.Toggle(ctx)
		if err != nil {
			return ipc.Response{OK: false, State: string(state), Error: err.Error()}
		}
		return ipc.Response{OK: true, State: string(state), Message: message}
	case ipc.CommandQuit:
		if c.onQuit != nil {
			c.onQuit()
		}
		return ipc.Response{OK: true, State: string(c.State()), Message: "quitting"}
	default:
		return ipc.Response{OK: false, State: string(c.State()), Error: fmt.Sprintf("unknown command: %s", req.Command)}
	}
}

// transitionLocked applies one FSM event. Caller holds c.mu.
func (c *Controller) transitionLocked(event fsm.Event) error {
	next, err := fsm.Transition(c.state, event)
	if err != nil {
		return err
	}
	c.state = next
	if c.onState != nil {
		c.onState(next)
	}
	return nil
}

// failAndResetLocked transitions to error and back to idle best-effort.
// Caller holds c.mu.
func (c *Controller) failAndResetLocked() {
	_ = c.transitionLocked(fsm.EventFail)
	_ = c.transitionLocked(fsm.EventReset)
}

func (c *Controller) logInfo(message string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Info(message, args...)
}

func (c *Controller) logDebug(message string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(message, args...)
}

func (c *Controller) logError(message string, err error) {
	if c.logger == nil || err == nil {
		return
	}
	c.logger.Error(message, "error", err.Error())
}
