package config

import (
	"fmt"
	"strings"
)

// Validate enforces config invariants and returns non-fatal warnings.
// The API key is intentionally not checked here: it may arrive from the
// environment after the file is parsed, and doctor reports on it separately.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		return nil, fmt.Errorf("api.base_url must not be empty")
	}
	if !strings.HasPrefix(cfg.API.BaseURL, "http://") && !strings.HasPrefix(cfg.API.BaseURL, "https://") {
		return nil, fmt.Errorf("api.base_url must start with http:// or https://")
	}
	if strings.TrimSpace(cfg.API.TranscribeModel) == "" {
		return nil, fmt.Errorf("api.transcribe_model must not be empty")
	}
	if cfg.API.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("api.timeout_seconds must be > 0")
	}

	if cfg.Cleanup.Enable {
		if strings.TrimSpace(cfg.API.CleanupModel) == "" {
			return nil, fmt.Errorf("api.cleanup_model must not be empty when cleanup.enable=true")
		}
		if strings.TrimSpace(cfg.Cleanup.Prompt) == "" {
			return nil, fmt.Errorf("cleanup.prompt must not be empty when cleanup.enable=true")
		}
		if cfg.Cleanup.MaxTokens <= 0 {
			return nil, fmt.Errorf("cleanup.max_tokens must be > 0")
		}
		if cfg.Cleanup.Temperature < 0 || cfg.Cleanup.Temperature > 2 {
			return nil, fmt.Errorf("cleanup.temperature must be between 0 and 2")
		}
	}

	if strings.TrimSpace(cfg.Hotkey) == "" {
		return nil, fmt.Errorf("hotkey must not be empty")
	}
	if cfg.Audio.MinDurationMS < 0 {
		return nil, fmt.Errorf("audio.min_duration_ms must be >= 0")
	}
	if cfg.Notify.ErrorTimeoutMS < 0 {
		return nil, fmt.Errorf("notify.error_timeout_ms must be >= 0")
	}

	if cfg.Output.Clipboard && len(cfg.Clipboard.Argv) == 0 {
		return nil, fmt.Errorf("clipboard_cmd must not be empty when output.clipboard=true")
	}
	if cfg.Output.Type && len(cfg.TypeCmd.Argv) == 0 {
		return nil, fmt.Errorf("type_cmd must not be empty when output.type=true")
	}
	if !cfg.Output.Clipboard && !cfg.Output.Type {
		warnings = append(warnings, Warning{
			Message: "both output.clipboard and output.type are disabled; transcripts will only reach the log",
		})
	}

	return warnings, nil
}
