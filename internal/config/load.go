package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// envAPIKey overrides any file-provided credential when set.
const envAPIKey = "GROQ_API_KEY"

// Loaded captures the resolved config path, parsed values, and any
// non-fatal warnings raised while reading the file.
type Loaded struct {
	Path     string
	Config   Config
	Warnings []Warning
	Exists   bool
}

// Load resolves, reads, parses, and validates the runtime configuration. A
// missing file is not an error: defaults apply and a warning is recorded.
// The GROQ_API_KEY environment variable takes precedence over the file key.
func Load(explicitPath string) (Loaded, error) {
	path, err := ResolvePath(explicitPath)
	if err != nil {
		return Loaded{}, err
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Loaded{
			Path:   path,
			Config: applyEnv(Default()),
			Warnings: []Warning{{
				Message: fmt.Sprintf("config file %q not found; using defaults", path),
			}},
		}, nil
	case err != nil:
		return Loaded{}, fmt.Errorf("read config %q: %w", path, err)
	}

	cfg, warnings, err := Parse(string(raw), Default())
	if err != nil {
		return Loaded{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	return Loaded{
		Path:     path,
		Config:   applyEnv(cfg),
		Warnings: warnings,
		Exists:   true,
	}, nil
}

// applyEnv layers environment overrides on top of file values.
func applyEnv(cfg Config) Config {
	if key := strings.TrimSpace(os.Getenv(envAPIKey)); key != "" {
		cfg.API.Key = key
	}
	return cfg
}
