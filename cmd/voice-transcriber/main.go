// Command voice-transcriber is a push-to-talk dictation tool for Linux
// desktops. All behavior lives in internal/app; this file owns only process
// concerns: signal handling and the exit code.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/snadeau123/voice-transcriber/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}
