package declcli

import (
	"io"
	"log/slog"
)

// State is handed to the entry point on every dispatch. It carries the parsed command chain and
// the streams the command should use instead of the process globals.
type State struct {
	// Command is the parsed command chain. Use [GetOption] to retrieve option values by name.
	Command *Dispatch

	// Standard I/O streams.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Logger is the logger configured in [RunOptions]. It is never nil.
	Logger *slog.Logger
}
