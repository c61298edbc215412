// Package ipc provides the unix-socket control channel between CLI
// invocations and the resident tray process. The wire format is one JSON
// request per connection, newline-terminated, answered by one JSON response.
package ipc

// Command names accepted by the resident process.
const (
	CommandToggle = "toggle"
	CommandStatus = "status"
	CommandQuit   = "quit"
)

// Request asks the resident process to run one command.
type Request struct {
	Command string `json:"command"`
}

// Response reports the outcome of a Request. State carries the session
// state name (idle, recording, processing) and Message a human-readable
// summary; Error is set only when OK is false.
type Response struct {
	OK      bool   `json:"ok"`
	State   string `json:"state,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
