package declcli

import (
	"context"
	"os"
	"path/filepath"
)

// ExecFunc is the application's entry point. It receives the parsed command chain through
// [State.Command].
type ExecFunc func(ctx context.Context, s *State) error

// App holds an entry point together with the commands and options declared for it. There is one
// App per entry point; it is assembled once and then run any number of times.
type App struct {
	// Name is the program name shown in generated usage and help text. Defaults to the base name
	// of os.Args[0].
	Name string

	// Usage overrides the generated top-level usage line.
	//
	// Example: "items <command> [flags]"
	Usage string

	// Description is shown at the top of the top-level help text.
	Description string

	// Commands are the top-level commands, in declaration order.
	Commands []*CommandDefinition

	// GlobalOptions are flags accepted before any command is selected, in declaration order.
	GlobalOptions []*OptionDefinition

	Exec ExecFunc
}

// New returns an App wrapping exec with no commands or options.
func New(exec ExecFunc) *App {
	return &App{Exec: exec}
}

// Decorator attaches commands, options or descriptive text to an [App].
type Decorator func(*App)

// Decorate wraps exec in a new [App] and applies decorators in the order given. Later decorators
// see the effect of earlier ones, so an [AppInfo] listed last is authoritative for the top-level
// usage and description.
func Decorate(exec ExecFunc, decorators ...Decorator) *App {
	return New(exec).Apply(decorators...)
}

// Apply applies decorators to a, in order, and returns a.
func (a *App) Apply(decorators ...Decorator) *App {
	for _, d := range decorators {
		d(a)
	}
	return a
}

// AppInfo sets the top-level usage and description, replacing any earlier values.
func AppInfo(usage, description string) Decorator {
	return func(a *App) { a.SetInfo(usage, description) }
}

// GlobalOption registers opt as a global option.
func GlobalOption(opt *OptionDefinition) Decorator {
	return func(a *App) { a.AddGlobalOption(opt) }
}

// WithCommand registers cmd as a top-level command.
func WithCommand(cmd *CommandDefinition) Decorator {
	return func(a *App) { a.AddCommand(cmd) }
}

// SetInfo sets the top-level usage and description.
func (a *App) SetInfo(usage, description string) *App {
	a.Usage = usage
	a.Description = description
	return a
}

// AddGlobalOption appends a global option.
func (a *App) AddGlobalOption(opt *OptionDefinition) *App {
	a.GlobalOptions = append(a.GlobalOptions, opt)
	return a
}

// AddCommand appends a top-level command.
func (a *App) AddCommand(cmd *CommandDefinition) *App {
	a.Commands = append(a.Commands, cmd)
	return a
}

// BuildParser builds a [Parser] from the App's current declarations. See [Build].
func (a *App) BuildParser() (*Parser, error) {
	name := a.Name
	if name == "" {
		name = filepath.Base(os.Args[0])
	}
	return BuildNamed(name, a.Usage, a.Description, a.GlobalOptions, a.Commands)
}
