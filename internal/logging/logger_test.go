package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveLogPathPrefersXDGStateHome(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)
	t.Setenv("HOME", t.TempDir())

	path, err := resolveLogPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(stateHome, "voice-transcriber", "log.jsonl"), path)
}

func TestResolveLogPathFallsBackToHomeState(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", home)

	path, err := resolveLogPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".local", "state", "voice-transcriber", "log.jsonl"), path)
}

func TestLogLevelDebugEnv(t *testing.T) {
	t.Setenv("VOICE_TRANSCRIBER_DEBUG", "")
	require.Equal(t, slog.LevelInfo, logLevel())

	t.Setenv("VOICE_TRANSCRIBER_DEBUG", "1")
	require.Equal(t, slog.LevelDebug, logLevel())
}

func TestNewAppendsJSONRecords(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("VOICE_TRANSCRIBER_DEBUG", "")

	first, err := New()
	require.NoError(t, err)
	first.Logger.Info("first-run", "component", "logging")
	require.NoError(t, first.Close())

	second, err := New()
	require.NoError(t, err)
	require.Equal(t, first.Path, second.Path)
	second.Logger.Info("second-run")
	require.NoError(t, second.Close())

	contents, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	require.Contains(t, string(contents), `"msg":"first-run"`)
	require.Contains(t, string(contents), `"component":"logging"`)
	require.Contains(t, string(contents), `"msg":"second-run"`)

	stat, err := os.Stat(first.Path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
}
