package config

// cleanupPrompt mirrors the instruction sent with every cleanup request: the
// model reorganizes disjointed speech without adding or dropping content.
const cleanupPrompt = "Your goal is to take a user prompt, which has been transcribed " +
	"from a voice recording, and clean up the structure if the flow is disjointed or has " +
	"too much repetition. Make sure you don't lose any information in the process; " +
	"everything that was mentioned must end up in the final text, even if it is " +
	"reorganized for clarity. Do not add extra information either. Keep a fairly " +
	"conversational tone and do not expand on the text beyond what the recording states."

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	clipboard := "wl-copy --trim-newline"
	typeCmd := "wtype -"

	return Config{
		API: APIConfig{
			BaseURL:         "https://api.groq.com/openai/v1",
			TranscribeModel: "whisper-large-v3-turbo",
			CleanupModel:    "llama-3.3-70b-versatile",
			TimeoutSeconds:  120,
		},
		Cleanup: CleanupConfig{
			Enable:      false,
			Prompt:      cleanupPrompt,
			MaxTokens:   2000,
			Temperature: 0.7,
		},
		Hotkey: "super+h",
		Audio: AudioConfig{
			Input:         "default",
			Fallback:      "default",
			MinDurationMS: 300,
		},
		Output: OutputConfig{
			Clipboard: true,
			Type:      false,
		},
		Clipboard: CommandConfig{Raw: clipboard, Argv: mustParseArgv(clipboard)},
		TypeCmd:   CommandConfig{Raw: typeCmd, Argv: mustParseArgv(typeCmd)},
		Notify: NotifyConfig{
			Enable:         true,
			Sound:          true,
			ErrorTimeoutMS: 1600,
		},
		Debug: DebugConfig{},
	}
}
