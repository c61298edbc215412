// Package cli parses command-line arguments for the voice-transcriber binary.
package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type Command string

const (
	CommandRun     Command = "run"
	CommandToggle  Command = "toggle"
	CommandStatus  Command = "status"
	CommandQuit    Command = "quit"
	CommandDevices Command = "devices"
	CommandDoctor  Command = "doctor"
	CommandVersion Command = "version"
	CommandHelp    Command = "help"
)

var commands = []Command{
	CommandRun,
	CommandToggle,
	CommandStatus,
	CommandQuit,
	CommandDevices,
	CommandDoctor,
	CommandVersion,
	CommandHelp,
}

type Parsed struct {
	Command    Command
	ConfigPath string
	ShowHelp   bool
}

// Parse interprets args. Flags may precede the command; the command, when
// present, must be the last argument. Invoking the binary without a command
// starts the resident process.
func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandRun}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			consumed, err := parsed.applyFlag(args, i)
			if err != nil {
				return Parsed{}, err
			}
			i += consumed
			continue
		}

		cmd := Command(arg)
		if !slices.Contains(commands, cmd) {
			return Parsed{}, fmt.Errorf("unknown command: %s", arg)
		}
		if i != len(args)-1 {
			return Parsed{}, fmt.Errorf("unexpected arguments after command %q", arg)
		}
		parsed.Command = cmd
		parsed.ShowHelp = cmd == CommandHelp
	}

	return parsed, nil
}

// applyFlag handles args[i] and returns how many extra arguments it consumed.
func (p *Parsed) applyFlag(args []string, i int) (int, error) {
	switch args[i] {
	case "-h", "--help":
		p.Command = CommandHelp
		p.ShowHelp = true
		return 0, nil
	case "--version":
		p.Command = CommandVersion
		p.ShowHelp = false
		return 0, nil
	case "--config":
		if i+1 >= len(args) {
			return 0, errors.New("--config requires a path")
		}
		p.ConfigPath = args[i+1]
		return 1, nil
	default:
		return 0, fmt.Errorf("unknown flag: %s", args[i])
	}
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] [command]

Commands:
  run       Start the resident process (default when no command is given)
  toggle    Ask the resident process to start or stop recording
  status    Print the resident process state
  quit      Ask the resident process to exit
  devices   List available input devices
  doctor    Run configuration and environment checks
  version   Print version information
  help      Show this help

Flags:
  --config PATH   Config file path (default: $XDG_CONFIG_HOME/voice-transcriber/config.conf)
  -h, --help      Show help
  --version       Show version
`, binaryName)
}
