package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snadeau123/voice-transcriber/internal/config"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := config.Default()
	cfg.API.Key = "gsk_test"
	cfg.API.BaseURL = baseURL
	cfg.API.TimeoutSeconds = 5
	return New(cfg, nil)
}

func writeTempWAV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voice-test.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF....WAVEfake"), 0o600))
	return path
}

func TestTranscribeSendsMultipartAndReturnsText(t *testing.T) {
	var gotAuth, gotModel, gotFilename string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/audio/transcriptions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotModel = r.FormValue("model")
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename

		_ = json.NewEncoder(w).Encode(map[string]string{"text": "hello world"})
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	text, err := client.Transcribe(context.Background(), writeTempWAV(t))
	require.NoError(t, err)
	require.Equal(t, "hello world", text)
	require.Equal(t, "Bearer gsk_test", gotAuth)
	require.Equal(t, config.Default().API.TranscribeModel, gotModel)
	require.Equal(t, "voice-test.wav", gotFilename)
}

func TestTranscribeMissingKey(t *testing.T) {
	cfg := config.Default()
	cfg.API.Key = "   "
	client := New(cfg, nil)

	_, err := client.Transcribe(context.Background(), writeTempWAV(t))
	require.ErrorIs(t, err, ErrMissingKey)
}

func TestTranscribeAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	_, err := client.Transcribe(context.Background(), writeTempWAV(t))
	require.Error(t, err)
	require.True(t, IsAuthError(err))
	require.Contains(t, err.Error(), "GROQ_API_KEY")
}

func TestTranscribeServerErrorCarriesBodyExcerpt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	_, err := client.Transcribe(context.Background(), writeTempWAV(t))
	require.Error(t, err)
	require.False(t, IsAuthError(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	require.Contains(t, apiErr.Body, "model overloaded")
}

func TestTranscribeMissingFile(t *testing.T) {
	client := testClient(t, "http://127.0.0.1:1")
	_, err := client.Transcribe(context.Background(), filepath.Join(t.TempDir(), "nope.wav"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "open recording")
}

func TestCleanSendsPromptAndReturnsCompletion(t *testing.T) {
	var gotRequest chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer gsk_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"cleaned text"}}]}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	cleaned, err := client.Clean(context.Background(), "raw raw transcript")
	require.NoError(t, err)
	require.Equal(t, "cleaned text", cleaned)

	require.Equal(t, config.Default().API.CleanupModel, gotRequest.Model)
	require.Len(t, gotRequest.Messages, 2)
	require.Equal(t, "system", gotRequest.Messages[0].Role)
	require.Contains(t, gotRequest.Messages[1].Content, "raw raw transcript")
	require.Equal(t, config.Default().Cleanup.MaxTokens, gotRequest.MaxTokens)
}

func TestCleanEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	_, err := client.Clean(context.Background(), "anything")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no choices")
}

func TestBodyExcerptTruncatesLongBodies(t *testing.T) {
	long := strings.Repeat("x", 500)
	excerpt := bodyExcerpt([]byte(long))
	require.Len(t, excerpt, 203)
	require.True(t, strings.HasSuffix(excerpt, "..."))
}
