package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArgvSplitsWordsAndQuotes(t *testing.T) {
	tests := map[string][]string{
		"wl-copy --trim-newline":     {"wl-copy", "--trim-newline"},
		`mycmd --name "hello world"`: {"mycmd", "--name", "hello world"},
		`mycmd --name 'hello world'`: {"mycmd", "--name", "hello world"},
		`mycmd hello\ world`:         {"mycmd", "hello world"},
		"mycmd\t--flag  value":       {"mycmd", "--flag", "value"},
		`notify "it's done"`:         {"notify", "it's done"},
		"":                           nil,
		"   ":                        nil,
		"# wl-copy --trim-newline":   nil,
	}

	for input, want := range tests {
		got, err := parseArgv(input)
		require.NoError(t, err, "input %q", input)
		require.Equal(t, want, got, "input %q", input)
	}
}

func TestParseArgvRejectsMalformedInput(t *testing.T) {
	for input, wantErr := range map[string]string{
		`mycmd "oops`:  "unterminated quote",
		`mycmd 'oops`:  "unterminated quote",
		`mycmd hello\`: "dangling escape",
	} {
		_, err := parseArgv(input)
		require.Error(t, err, "input %q", input)
		require.Contains(t, err.Error(), wantErr)
	}
}

func TestMustParseArgvPanicsOnInvalidInput(t *testing.T) {
	require.Panics(t, func() {
		_ = mustParseArgv(`mycmd "unterminated`)
	})
}
