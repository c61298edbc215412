// Package app wires configuration, logging, and subcommand dispatch for the
// voice-transcriber binary.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/snadeau123/voice-transcriber/internal/audio"
	"github.com/snadeau123/voice-transcriber/internal/cli"
	"github.com/snadeau123/voice-transcriber/internal/config"
	"github.com/snadeau123/voice-transcriber/internal/doctor"
	"github.com/snadeau123/voice-transcriber/internal/fsm"
	"github.com/snadeau123/voice-transcriber/internal/groq"
	"github.com/snadeau123/voice-transcriber/internal/hotkey"
	"github.com/snadeau123/voice-transcriber/internal/ipc"
	"github.com/snadeau123/voice-transcriber/internal/logging"
	"github.com/snadeau123/voice-transcriber/internal/notify"
	"github.com/snadeau123/voice-transcriber/internal/output"
	"github.com/snadeau123/voice-transcriber/internal/pipeline"
	"github.com/snadeau123/voice-transcriber/internal/session"
	"github.com/snadeau123/voice-transcriber/internal/tray"
	"github.com/snadeau123/voice-transcriber/internal/version"
)

const (
	// statusTimeout bounds liveness-style queries that the resident process
	// answers without doing work. commandTimeout covers toggle/quit round
	// trips, which include device discovery and stream setup on the far side.
	statusTimeout  = 250 * time.Millisecond
	commandTimeout = 3 * time.Second
	probeTimeout   = 180 * time.Millisecond
	acquireRetries = 8
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("voice-transcriber"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("voice-transcriber"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		msg := w.Message
		if w.Line > 0 {
			msg = fmt.Sprintf("line %d: %s", w.Line, w.Message)
		}
		fmt.Fprintf(r.Stderr, "warning: %s\n", msg)
		logger.Warn("config warning", "line", w.Line, "message", w.Message)
	}

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandDoctor:
		report := doctor.Run(cfgLoaded)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandDevices:
		return r.commandDevices(ctx)
	case cli.CommandStatus:
		return r.commandStatus(ctx)
	case cli.CommandToggle:
		return r.forwardOrFail(ctx, ipc.CommandToggle)
	case cli.CommandQuit:
		return r.forwardOrFail(ctx, ipc.CommandQuit)
	case cli.CommandRun:
		return r.commandRun(ctx, cfgLoaded.Config, logger)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

func (r Runner) commandDevices(ctx context.Context) int {
	devices, err := audio.ListDevices(ctx)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if len(devices) == 0 {
		fmt.Fprintln(r.Stdout, "no audio devices found")
		return 1
	}

	for _, device := range devices {
		defaultMark := " "
		if device.Default {
			defaultMark = "*"
		}
		availability := "yes"
		if !device.Available {
			availability = "no"
		}
		muted := "no"
		if device.Muted {
			muted = "yes"
		}
		fmt.Fprintf(
			r.Stdout,
			"%s id=%s | description=%q | state=%s | available=%s | muted=%s\n",
			defaultMark,
			device.ID,
			device.Description,
			device.State,
			availability,
			muted,
		)
	}

	return 0
}

func (r Runner) commandStatus(ctx context.Context) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintln(r.Stdout, "idle")
		return 0
	}

	resp, handled, err := tryForward(ctx, socketPath, ipc.CommandStatus, statusTimeout)
	if handled {
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		if resp.State == "" {
			resp.State = "idle"
		}
		fmt.Fprintln(r.Stdout, resp.State)
		return 0
	}

	fmt.Fprintln(r.Stdout, "idle")
	return 0
}

// forwardOrFail sends a command to the resident process and fails when none
// is running.
func (r Runner) forwardOrFail(ctx context.Context, command string) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	resp, handled, err := tryForward(ctx, socketPath, command, commandTimeout)
	if !handled {
		fmt.Fprintln(r.Stderr, "error: voice-transcriber is not running; start it with `voice-transcriber run`")
		return 1
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if resp.Message != "" {
		fmt.Fprintln(r.Stdout, resp.Message)
	}
	return 0
}

// commandRun starts the resident process: tray, hotkey, and IPC server around
// one session controller.
func (r Runner) commandRun(ctx context.Context, cfg config.Config, logger *slog.Logger) int {
	if strings.TrimSpace(cfg.API.Key) == "" {
		fmt.Fprintln(r.Stderr, "error: no API key; set GROQ_API_KEY or api_key in config")
		return 1
	}

	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	listener, err := ipc.Acquire(ctx, socketPath, probeTimeout, acquireRetries)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		_ = listener.Close()
		_ = os.Remove(socketPath)
	}()

	client := groq.New(cfg, logger)
	recorder := pipeline.NewRecorder(cfg, client, logger)
	committer := output.NewCommitter(cfg, logger)
	notifier := notify.NewDesktop(cfg.Notify, logger)
	controller := session.NewController(logger, recorder, committer, notifier)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	controller.OnQuit(cancel)

	toggle := dispatchToggle(runCtx, controller, logger)

	presenter := tray.New(logger, toggle, cancel)
	controller.OnState(func(state fsm.State) {
		presenter.SetStatus(string(state))
	})
	presenter.SetStatus(string(controller.State()))

	serveErrCh := make(chan error, 1)
	go func() {
		serveErrCh <- ipc.Serve(runCtx, listener, controller)
	}()

	manager, err := hotkey.New(cfg.Hotkey, logger)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	go func() {
		// A failed hotkey hook leaves the tray and IPC surfaces usable.
		if hookErr := manager.Run(runCtx, toggle); hookErr != nil && !errors.Is(hookErr, context.Canceled) {
			logger.Error("hotkey hook stopped", "error", hookErr.Error())
		}
	}()

	logger.Info("resident process ready", "socket", socketPath, "hotkey", cfg.Hotkey)

	// Blocks until quit (menu, IPC, or signal cancels runCtx).
	presenter.Run(runCtx)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	controller.Shutdown(shutdownCtx)

	if serveErr := <-serveErrCh; serveErr != nil {
		fmt.Fprintf(r.Stderr, "error: ipc server failed: %v\n", serveErr)
		return 1
	}

	logger.Info("resident process stopped")
	return 0
}

// dispatchToggle returns a callback safe to call from the hotkey hook and
// tray event loops: the toggle runs on its own goroutine so capture setup
// never blocks an input callback, and it carries the resident context so
// shutdown cancels any capture it started.
func dispatchToggle(ctx context.Context, controller *session.Controller, logger *slog.Logger) func() {
	return func() {
		go func() {
			if _, _, err := controller.Toggle(ctx); err != nil {
				logger.Error("toggle failed", "error", err.Error())
			}
		}()
	}
}

func tryForward(ctx context.Context, socketPath string, command string, timeout time.Duration) (ipc.Response, bool, error) {
	resp, err := ipc.Send(ctx, socketPath, ipc.Request{Command: command}, timeout)
	if err == nil {
		if resp.OK {
			return resp, true, nil
		}
		return resp, true, errors.New(resp.Error)
	}

	if ipc.IsSocketMissing(err) || ipc.IsConnectionRefused(err) {
		return ipc.Response{}, false, nil
	}

	return ipc.Response{}, true, fmt.Errorf("forward command %q: %w", command, err)
}
