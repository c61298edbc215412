package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const configFileName = "config.conf"

// ResolvePath returns the config file location. An explicit path from the
// --config flag wins; otherwise XDG_CONFIG_HOME is consulted with a
// ~/.config fallback.
func ResolvePath(explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, nil
	}

	configHome := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.New("unable to resolve user home for config fallback")
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "voice-transcriber", configFileName), nil
}
