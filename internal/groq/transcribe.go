package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// transcriptionResponse is the JSON payload of /audio/transcriptions.
type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads a WAV file as a multipart form and returns the transcript.
func (c *Client) Transcribe(ctx context.Context, wavPath string) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", ErrMissingKey
	}

	audio, err := os.Open(wavPath)
	if err != nil {
		return "", fmt.Errorf("open recording %q: %w", wavPath, err)
	}
	defer audio.Close()

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)

	part, err := writer.CreateFormFile("file", filepath.Base(wavPath))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("copy audio into form: %w", err)
	}
	if err := writer.WriteField("model", c.cfg.API.TranscribeModel); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart form: %w", err)
	}

	url := c.baseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &form)
	if err != nil {
		return "", fmt.Errorf("create transcription request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload recording: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcription response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp.StatusCode, body)
	}

	var payload transcriptionResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}

	c.logDebug("transcription complete",
		"model", c.cfg.API.TranscribeModel,
		"latency_ms", time.Since(started).Milliseconds(),
		"transcript_length", len(payload.Text),
	)

	return payload.Text, nil
}
