package session

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyTranscript indicates stop completed but no usable speech was recognized.
var ErrEmptyTranscript = errors.New("no speech recognized; check microphone input or mute state")

// ErrPipelineUnavailable indicates runtime recorder wiring is missing.
var ErrPipelineUnavailable = errors.New("audio capture and transcription pipeline not wired")

// StopResult is the recorder output consumed by the session controller.
type StopResult struct {
	Transcript    string
	AudioDevice   string
	BytesCaptured int64
	UploadLatency time.Duration
}

// Recorder abstracts the capture and transcription pipeline needed by
// session orchestration.
type Recorder interface {
	Start(context.Context) error
	StopAndTranscribe(context.Context) (StopResult, error)
	Cancel(context.Context) error
}

// Committer delivers a transcript when a session completes successfully.
type Committer interface {
	Commit(context.Context, string) error
}

// CommitFunc adapts a function to the Committer interface.
type CommitFunc func(context.Context, string) error

func (f CommitFunc) Commit(ctx context.Context, transcript string) error {
	return f(ctx, transcript)
}

// placeholderRecorder is a no-op fallback used when no pipeline is wired.
type placeholderRecorder struct{}

func (placeholderRecorder) Start(context.Context) error {
	return nil
}

func (placeholderRecorder) StopAndTranscribe(context.Context) (StopResult, error) {
	return StopResult{}, ErrPipelineUnavailable
}

func (placeholderRecorder) Cancel(context.Context) error {
	return nil
}
