// Package doctor runs runtime readiness diagnostics for config, desktop
// tools, audio, and the transcription API.
package doctor

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"strings"
	"time"

	"github.com/snadeau123/voice-transcriber/internal/audio"
	"github.com/snadeau123/voice-transcriber/internal/config"
	"github.com/snadeau123/voice-transcriber/internal/hotkey"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment/config/runtime checks for a loaded config.
func Run(cfg config.Loaded) Report {
	checks := []Check{}

	checks = append(checks, Check{
		Name:    "config",
		Pass:    true,
		Message: fmt.Sprintf("loaded %q", cfg.Path),
	})

	checks = append(checks, checkAPIKey(cfg.Config))
	checks = append(checks, checkAPIReachable(cfg.Config))
	checks = append(checks, checkHotkey(cfg.Config))
	checks = append(checks, checkAudioSelection(cfg.Config))

	if cfg.Config.Output.Clipboard {
		checks = append(checks, checkCommand(cfg.Config.Clipboard.Argv, "clipboard_cmd"))
	}
	if cfg.Config.Output.Type {
		checks = append(checks, checkCommand(cfg.Config.TypeCmd.Argv, "type_cmd"))
	}
	if cfg.Config.Notify.Enable {
		checks = append(checks, checkBinary("busctl", "desktop notifications require busctl"))
	}

	return Report{Checks: checks}
}

// checkAPIKey verifies a key is configured without printing it.
func checkAPIKey(cfg config.Config) Check {
	if strings.TrimSpace(cfg.API.Key) == "" {
		return Check{Name: "api.key", Pass: false, Message: "no API key; set GROQ_API_KEY or api_key in config"}
	}
	return Check{Name: "api.key", Pass: true, Message: "API key configured"}
}

// checkAPIReachable probes the configured API base URL without spending a
// transcription request.
func checkAPIReachable(cfg config.Config) Check {
	base := strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if base == "" {
		return Check{Name: "api.endpoint", Pass: false, Message: "base_url is empty"}
	}

	url := base + "/models"
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return Check{Name: "api.endpoint", Pass: false, Message: fmt.Sprintf("build request: %v", err)}
	}
	if strings.TrimSpace(cfg.API.Key) != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.API.Key)
	}

	client := http.Client{Timeout: 2 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return Check{Name: "api.endpoint", Pass: false, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Check{Name: "api.endpoint", Pass: false, Message: fmt.Sprintf("HTTP %d from %s; check API key", resp.StatusCode, url)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return Check{Name: "api.endpoint", Pass: false, Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, url)}
	default:
		return Check{Name: "api.endpoint", Pass: true, Message: fmt.Sprintf("reachable at %s", url)}
	}
}

// checkHotkey validates the configured combo parses.
func checkHotkey(cfg config.Config) Check {
	keys, err := hotkey.ParseCombo(cfg.Hotkey)
	if err != nil {
		return Check{Name: "hotkey", Pass: false, Message: err.Error()}
	}
	return Check{Name: "hotkey", Pass: true, Message: fmt.Sprintf("binds %s", strings.Join(keys, "+"))}
}

// checkCommand validates that argv contains a runnable command.
func checkCommand(argv []string, name string) Check {
	if len(argv) == 0 {
		return Check{Name: name, Pass: false, Message: "command is empty"}
	}
	return checkBinary(argv[0], fmt.Sprintf("%s command is available", name))
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}

// checkAudioSelection runs live device selection to surface fallback issues.
func checkAudioSelection(cfg config.Config) Check {
	selection, err := audio.SelectDevice(context.Background(), cfg.Audio.Input, cfg.Audio.Fallback)
	if err != nil {
		return Check{Name: "audio.device", Pass: false, Message: err.Error()}
	}
	message := fmt.Sprintf("selected %q", selection.Device.ID)
	if selection.Warning != "" {
		message = message + " (" + selection.Warning + ")"
	}
	return Check{Name: "audio.device", Pass: true, Message: message}
}
