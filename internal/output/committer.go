// Package output delivers final transcript text to the desktop (clipboard and
// synthetic typing).
package output

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/snadeau123/voice-transcriber/internal/config"
)

const commandTimeout = 2 * time.Second

// Committer applies transcript delivery side effects per output config.
type Committer struct {
	config config.Config
	logger *slog.Logger
}

// NewCommitter constructs a transcript committer from runtime config.
func NewCommitter(cfg config.Config, logger *slog.Logger) *Committer {
	return &Committer{config: cfg, logger: logger}
}

// Commit delivers transcript text to the clipboard and, when enabled, types it
// into the focused window. Typing failures are logged but never fail the
// commit; a clipboard failure does.
func (c *Committer) Commit(ctx context.Context, transcript string) error {
	if transcript == "" {
		return nil
	}

	if c.config.Output.Clipboard {
		clipCtx, cancel := context.WithTimeout(ctx, commandTimeout)
		err := runCommandWithInput(clipCtx, c.config.Clipboard.Argv, transcript)
		cancel()
		if err != nil {
			return fmt.Errorf("set clipboard: %w", err)
		}
	}

	if c.config.Output.Type {
		typeCtx, cancel := context.WithTimeout(ctx, commandTimeout)
		err := runCommandWithInput(typeCtx, c.config.TypeCmd.Argv, transcript)
		cancel()
		if err != nil {
			if !c.config.Output.Clipboard {
				return fmt.Errorf("type transcript: %w", err)
			}
			c.logTypeFailure(err)
		}
	}

	return nil
}

// runCommandWithInput executes argv and optionally writes input to stdin.
func runCommandWithInput(ctx context.Context, argv []string, input string) error {
	if len(argv) == 0 {
		return fmt.Errorf("command argv cannot be empty")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("open stdin for %s: %w", argv[0], err)
	}

	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		return fmt.Errorf("start command %s: %w", argv[0], err)
	}

	if input != "" {
		if _, err := stdin.Write([]byte(input)); err != nil {
			_ = stdin.Close()
			_ = cmd.Wait()
			return fmt.Errorf("write stdin for %s: %w", argv[0], err)
		}
	}
	_ = stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait for %s: %w", argv[0], err)
	}
	return nil
}

func (c *Committer) logTypeFailure(err error) {
	if c.logger == nil || err == nil {
		return
	}
	c.logger.Error("typing dispatch failed; clipboard remains set", "error", err.Error())
}
