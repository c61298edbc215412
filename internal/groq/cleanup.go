package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Clean sends a raw transcript through the cleanup model and returns the
// normalized text. Callers decide what to do on failure; this client never
// silently substitutes the input.
func (c *Client) Clean(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", ErrMissingKey
	}

	payload := chatRequest{
		Model: c.cfg.API.CleanupModel,
		Messages: []chatMessage{
			{Role: "system", Content: c.cfg.Cleanup.Prompt},
			{Role: "user", Content: "Here is the user prompt: " + transcript},
		},
		MaxTokens:   c.cfg.Cleanup.MaxTokens,
		Temperature: c.cfg.Cleanup.Temperature,
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal cleanup request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("create cleanup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("send cleanup request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read cleanup response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp.StatusCode, body)
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode cleanup response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("cleanup response contained no choices")
	}

	c.logDebug("cleanup complete",
		"model", c.cfg.API.CleanupModel,
		"latency_ms", time.Since(started).Milliseconds(),
	)

	return decoded.Choices[0].Message.Content, nil
}
