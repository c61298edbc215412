// Package config resolves, parses, validates, and defaults runtime configuration.
package config

// Config is the fully materialized runtime configuration.
type Config struct {
	API       APIConfig
	Cleanup   CleanupConfig
	Hotkey    string
	Audio     AudioConfig
	Output    OutputConfig
	Clipboard CommandConfig
	TypeCmd   CommandConfig
	Notify    NotifyConfig
	Debug     DebugConfig
}

// APIConfig holds Groq endpoint, credential, and model selection.
type APIConfig struct {
	Key             string
	BaseURL         string
	TranscribeModel string
	CleanupModel    string
	TimeoutSeconds  int
}

// CleanupConfig controls the optional LLM transcript-cleanup pass.
type CleanupConfig struct {
	Enable      bool
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// AudioConfig controls input-source selection and the empty-recording floor.
type AudioConfig struct {
	Input         string
	Fallback      string
	MinDurationMS int
}

// OutputConfig selects which delivery side effects run after transcription.
type OutputConfig struct {
	Clipboard bool
	Type      bool
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// NotifyConfig controls desktop notifications and audio cues.
type NotifyConfig struct {
	Enable         bool
	Sound          bool
	ErrorTimeoutMS int
}

// DebugConfig controls optional debug artifact retention.
type DebugConfig struct {
	KeepAudio bool
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}
