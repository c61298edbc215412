// Package version exposes build metadata injected through -ldflags.
package version

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the single-line description printed by --version.
func String() string {
	return fmt.Sprintf("voice-transcriber %s (commit=%s, date=%s, go=%s)",
		Version, Commit, Date, runtime.Version())
}
