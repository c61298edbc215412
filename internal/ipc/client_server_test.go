package ipc

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T, handler Handler) string {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "voice-transcriber.sock")
	listener, err := net.Listen("unix", socketPath)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- Serve(ctx, listener, handler)
	}()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-serverDone)
	})

	return socketPath
}

func TestSendRoundTrip(t *testing.T) {
	t.Parallel()

	socketPath := startTestServer(t, HandlerFunc(func(_ context.Context, req Request) Response {
		require.Equal(t, CommandToggle, req.Command)
		return Response{OK: true, State: "recording", Message: "recording started"}
	}))

	resp, err := Send(context.Background(), socketPath, Request{Command: CommandToggle}, time.Second)
	require.NoError(t, err)
	require.True(t, resp.OK)
	require.Equal(t, "recording", resp.State)
	require.Equal(t, "recording started", resp.Message)
}

func TestSendUnknownCommandError(t *testing.T) {
	t.Parallel()

	socketPath := startTestServer(t, HandlerFunc(func(_ context.Context, req Request) Response {
		return Response{OK: false, Error: "unknown command: " + req.Command}
	}))

	resp, err := Send(context.Background(), socketPath, Request{Command: "bogus"}, time.Second)
	require.NoError(t, err)
	require.False(t, resp.OK)
	require.Equal(t, "unknown command: bogus", resp.Error)
}

func TestServeDecodeRequestErrorResponse(t *testing.T) {
	t.Parallel()

	socketPath := startTestServer(t, HandlerFunc(func(_ context.Context, _ Request) Response {
		t.Fatal("handler must not run for malformed requests")
		return Response{}
	}))

	conn, err := net.Dial("unix", socketPath)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("not json\n"))
	require.NoError(t, err)

	buf := make([]byte, 256)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	n, err := conn.Read(buf)
	require.NoError(t, err)
	require.Contains(t, string(buf[:n]), "decode request")
}

func TestSendSocketMissing(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "voice-transcriber.sock")
	_, err := Send(context.Background(), missing, Request{Command: CommandStatus}, 100*time.Millisecond)
	require.Error(t, err)
	require.True(t, IsSocketMissing(err), "Send() error = %v, want socket-missing", err)
}

func TestProbe(t *testing.T) {
	t.Parallel()

	socketPath := startTestServer(t, HandlerFunc(func(_ context.Context, req Request) Response {
		require.Equal(t, CommandStatus, req.Command)
		return Response{OK: true, State: "idle"}
	}))

	alive, err := Probe(context.Background(), socketPath, time.Second)
	require.NoError(t, err)
	require.True(t, alive)

	missing := filepath.Join(t.TempDir(), "gone.sock")
	alive, err = Probe(context.Background(), missing, 100*time.Millisecond)
	require.NoError(t, err)
	require.False(t, alive)
}
