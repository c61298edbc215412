// Package groq implements REST clients for the Groq OpenAI-compatible API:
// audio transcription and chat-completion transcript cleanup.
package groq

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/http2"

	"github.com/snadeau123/voice-transcriber/internal/config"
)

// Client shares one HTTP client across transcription and cleanup calls.
type Client struct {
	apiKey  string
	baseURL string
	cfg     config.Config
	http    *http.Client
	logger  *slog.Logger
}

// New constructs a Groq client from runtime config.
func New(cfg config.Config, logger *slog.Logger) *Client {
	return &Client{
		apiKey:  cfg.API.Key,
		baseURL: strings.TrimSuffix(cfg.API.BaseURL, "/"),
		cfg:     cfg,
		http:    newHTTPClient(time.Duration(cfg.API.TimeoutSeconds) * time.Second),
		logger:  logger,
	}
}

// newHTTPClient builds a pooled transport with HTTP/2 enabled.
func newHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	_ = http2.ConfigureTransport(tr)

	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}
}

// logDebug emits debug-level client events when a logger is configured.
func (c *Client) logDebug(message string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(message, args...)
}
