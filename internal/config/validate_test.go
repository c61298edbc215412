package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDefaultsPass(t *testing.T) {
	warnings, err := Validate(Default())
	require.NoError(t, err)
	require.Empty(t, warnings)
}

func TestValidateRejectsBadBaseURL(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "api.groq.com"

	_, err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "api.base_url")
}

func TestValidateRejectsZeroTimeout(t *testing.T) {
	cfg := Default()
	cfg.API.TimeoutSeconds = 0

	_, err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "timeout_seconds")
}

func TestValidateCleanupInvariantsOnlyWhenEnabled(t *testing.T) {
	cfg := Default()
	cfg.API.CleanupModel = ""

	_, err := Validate(cfg)
	require.NoError(t, err, "cleanup disabled: missing model is fine")

	cfg.Cleanup.Enable = true
	_, err = Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cleanup_model")
}

func TestValidateRejectsOutOfRangeTemperature(t *testing.T) {
	cfg := Default()
	cfg.Cleanup.Enable = true
	cfg.Cleanup.Temperature = 3.5

	_, err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "temperature")
}

func TestValidateRequiresClipboardCmdWhenEnabled(t *testing.T) {
	cfg := Default()
	cfg.Clipboard = CommandConfig{}

	_, err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "clipboard_cmd")
}

func TestValidateRequiresHotkey(t *testing.T) {
	cfg := Default()
	cfg.Hotkey = "  "

	_, err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "hotkey")
}
