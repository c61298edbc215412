package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
)

// maxRequestBytes bounds a single request line. Control requests are tiny;
// anything larger is a misbehaving client.
const maxRequestBytes = 4096

// Handler processes one control-channel request.
type Handler interface {
	Handle(context.Context, Request) Response
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(context.Context, Request) Response

func (f HandlerFunc) Handle(ctx context.Context, req Request) Response {
	return f(ctx, req)
}

// Serve accepts control connections until the context is cancelled or the
// listener closes. Each connection carries exactly one request/response pair.
func Serve(ctx context.Context, listener net.Listener, handler Handler) error {
	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	var inflight sync.WaitGroup
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				inflight.Wait()
				return nil
			}
			return fmt.Errorf("accept control connection: %w", err)
		}

		inflight.Add(1)
		go func() {
			defer inflight.Done()
			answer(ctx, conn, handler)
		}()
	}
}

func answer(ctx context.Context, conn net.Conn, handler Handler) {
	defer conn.Close()

	req, err := readRequest(conn)
	if err != nil {
		reply(conn, Response{Error: err.Error()})
		return
	}
	reply(conn, handler.Handle(ctx, req))
}

func readRequest(conn net.Conn) (Request, error) {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 256), maxRequestBytes)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Request{}, fmt.Errorf("read request: %w", err)
		}
		return Request{}, errors.New("read request: connection closed before newline")
	}

	var req Request
	if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}

func reply(conn net.Conn, resp Response) {
	_ = json.NewEncoder(conn).Encode(resp)
}
