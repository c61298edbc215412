package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads `key = value` configuration content on top of a base config.
// Lines starting with `#` (or `;`) and blank lines are skipped. Unknown keys
// and malformed values fail with the offending line number.
func Parse(content string, base Config) (Config, []Warning, error) {
	cfg := base
	warnings := make([]Warning, 0)

	for i, raw := range strings.Split(content, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return Config{}, nil, fmt.Errorf("line %d: expected key = value, got %q", lineNo, line)
		}

		key = strings.TrimSpace(key)
		value = unquote(strings.TrimSpace(value))

		if err := applyKey(&cfg, key, value); err != nil {
			return Config{}, nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	validateWarnings, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	warnings = append(warnings, validateWarnings...)

	return cfg, warnings, nil
}

// applyKey assigns one parsed value into its config slot.
func applyKey(cfg *Config, key string, value string) error {
	switch key {
	case "api_key":
		cfg.API.Key = value
	case "api.base_url":
		cfg.API.BaseURL = value
	case "api.transcribe_model":
		cfg.API.TranscribeModel = value
	case "api.cleanup_model":
		cfg.API.CleanupModel = value
	case "api.timeout_seconds":
		return assignInt(key, value, &cfg.API.TimeoutSeconds)
	case "cleanup.enable":
		return assignBool(key, value, &cfg.Cleanup.Enable)
	case "cleanup.prompt":
		cfg.Cleanup.Prompt = value
	case "cleanup.max_tokens":
		return assignInt(key, value, &cfg.Cleanup.MaxTokens)
	case "cleanup.temperature":
		return assignFloat(key, value, &cfg.Cleanup.Temperature)
	case "hotkey":
		cfg.Hotkey = value
	case "audio.input":
		cfg.Audio.Input = value
	case "audio.fallback":
		cfg.Audio.Fallback = value
	case "audio.min_duration_ms":
		return assignInt(key, value, &cfg.Audio.MinDurationMS)
	case "output.clipboard":
		return assignBool(key, value, &cfg.Output.Clipboard)
	case "output.type":
		return assignBool(key, value, &cfg.Output.Type)
	case "clipboard_cmd":
		return assignCommand(key, value, &cfg.Clipboard)
	case "type_cmd":
		return assignCommand(key, value, &cfg.TypeCmd)
	case "notify.enable":
		return assignBool(key, value, &cfg.Notify.Enable)
	case "notify.sound":
		return assignBool(key, value, &cfg.Notify.Sound)
	case "notify.error_timeout_ms":
		return assignInt(key, value, &cfg.Notify.ErrorTimeoutMS)
	case "debug.keep_audio":
		return assignBool(key, value, &cfg.Debug.KeepAudio)
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func assignBool(key string, value string, out *bool) error {
	parsed, err := strconv.ParseBool(strings.ToLower(value))
	if err != nil {
		return fmt.Errorf("%s: expected true/false, got %q", key, value)
	}
	*out = parsed
	return nil
}

func assignInt(key string, value string, out *int) error {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: expected integer, got %q", key, value)
	}
	*out = parsed
	return nil
}

func assignFloat(key string, value string, out *float64) error {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s: expected number, got %q", key, value)
	}
	*out = parsed
	return nil
}

func assignCommand(key string, value string, out *CommandConfig) error {
	argv, err := parseArgv(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*out = CommandConfig{Raw: value, Argv: argv}
	return nil
}

// unquote strips one matching pair of surrounding quotes.
func unquote(value string) string {
	if len(value) >= 2 {
		first := value[0]
		last := value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
