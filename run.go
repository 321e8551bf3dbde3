package declcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// RunOptions specifies options for running an [App].
type RunOptions struct {
	// Stdin, Stdout, and Stderr are the standard input, output, and error streams for the command.
	// If any of these are nil, the command will use the default streams ([os.Stdin], [os.Stdout],
	// and [os.Stderr], respectively).
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Logger receives debug events about parser construction and dispatch. If nil, events are
	// discarded.
	Logger *slog.Logger
}

// Run builds the parser, parses args and calls the entry point with the result.
//
// When help is requested, the help text is written to Stdout and the [ErrShowHelp] error is
// returned. When args do not parse, the usage line and the error are written to Stderr and the
// [ErrParse] error is returned. Definition errors are returned as-is. If the entry point returns
// an [ErrShowHelp] error, the selected command's help is written to Stdout. Run never exits the
// process; see [ExitCode] and [App.Main].
//
// The options parameter may be nil, in which case default values are used. See [RunOptions] for
// more details.
func (a *App) Run(ctx context.Context, args []string, options *RunOptions) error {
	if a.Exec == nil {
		return errors.New("app has no execution function")
	}
	options = checkAndSetRunOptions(options)
	logger := options.Logger

	parser, err := a.BuildParser()
	if err != nil {
		return err
	}
	logger.Debug("parser built",
		slog.Int("commands", len(a.Commands)),
		slog.Int("global_options", len(a.GlobalOptions)),
	)

	cmd, err := parser.Parse(args)
	if err != nil {
		var cliErr *Error
		if errors.As(err, &cliErr) {
			switch cliErr.Code() {
			case ErrShowHelp:
				fmt.Fprintln(options.Stdout, cliErr.Usage())
			case ErrParse:
				fmt.Fprintln(options.Stderr, cliErr.Usage())
				fmt.Fprintf(options.Stderr, "error: %v\n", cliErr)
			}
		}
		return err
	}

	logger.Debug("dispatching", slog.Any("command", cmd.Path()))
	state := &State{
		Command: cmd,
		Stdin:   options.Stdin,
		Stdout:  options.Stdout,
		Stderr:  options.Stderr,
		Logger:  logger,
	}
	if err := a.Exec(WithLogger(ctx, logger), state); err != nil {
		// The entry point may ask for the selected command's help, e.g. on missing input.
		if cliErr := (*Error)(nil); errors.As(err, &cliErr) && cliErr.Code() == ErrShowHelp {
			if help, ok := parser.CommandHelp(cmd.Path()...); ok {
				fmt.Fprintln(options.Stdout, help)
			}
		}
		return err
	}
	return nil
}

// Main runs the App with the process arguments and exits with [ExitCode] when the run fails.
func (a *App) Main(ctx context.Context) {
	if err := a.Run(ctx, os.Args[1:], nil); err != nil {
		var cliErr *Error
		if !errors.As(err, &cliErr) || cliErr.Code() == ErrDefinition {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(ExitCode(err))
	}
}

func checkAndSetRunOptions(opt *RunOptions) *RunOptions {
	if opt == nil {
		opt = &RunOptions{}
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Logger == nil {
		opt.Logger = discardLogger()
	}
	return opt
}
