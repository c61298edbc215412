// Package logging configures the runtime JSONL log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const logFileName = "log.jsonl"

// Runtime bundles the configured logger with the lifecycle of its sink.
type Runtime struct {
	Logger *slog.Logger
	Path   string
	closer io.Closer
}

// Close releases the log file handle.
func (r Runtime) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// New opens the JSONL log file under the state directory, creating parents
// as needed. The file is append-only so concurrent short-lived CLI
// invocations interleave records instead of truncating each other.
func New() (Runtime, error) {
	path, err := resolveLogPath()
	if err != nil {
		return Runtime{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return Runtime{}, fmt.Errorf("create log dir: %w", err)
	}

	sink, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return Runtime{}, fmt.Errorf("open log file: %w", err)
	}

	handler := slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: logLevel()})
	return Runtime{Logger: slog.New(handler), Path: path, closer: sink}, nil
}

func logLevel() slog.Level {
	if strings.TrimSpace(os.Getenv("VOICE_TRANSCRIBER_DEBUG")) != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// resolveLogPath prefers XDG_STATE_HOME and falls back to ~/.local/state.
func resolveLogPath() (string, error) {
	stateHome := strings.TrimSpace(os.Getenv("XDG_STATE_HOME"))
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "voice-transcriber", logFileName), nil
}
