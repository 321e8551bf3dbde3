package declcli

// ValueType is the type an option's textual value is converted to.
type ValueType int

const (
	TypeString ValueType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeDuration
)

func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float64"
	case TypeBool:
		return "bool"
	case TypeDuration:
		return "time.Duration"
	default:
		return "unknown"
	}
}

// Action determines what happens when an option is seen on the command line.
type Action int

const (
	// ActionStore stores the converted value. A repeated flag overwrites the previous value.
	ActionStore Action = iota
	// ActionStoreTrue stores true when the flag is present and false otherwise. Takes no value.
	ActionStoreTrue
	// ActionStoreFalse stores false when the flag is present and true otherwise. Takes no value.
	ActionStoreFalse
	// ActionAppend collects every occurrence of the flag into a slice.
	ActionAppend
)

func (a Action) String() string {
	switch a {
	case ActionStore:
		return "store"
	case ActionStoreTrue:
		return "store_true"
	case ActionStoreFalse:
		return "store_false"
	case ActionAppend:
		return "append"
	default:
		return "unknown"
	}
}

// ArgConfig enumerates the settings recognized for a single argument.
type ArgConfig struct {
	// Help is a brief description shown next to the argument in help text.
	Help string

	// Type is the type the textual value is converted to. Defaults to [TypeString].
	Type ValueType

	// Default is the value used when the argument is absent. Its Go type must match Type: string,
	// int, float64, bool or time.Duration. For [ActionAppend] it may also be a slice of that type.
	Default any

	// Required reports whether a flag must be present. Positional arguments are always required.
	Required bool

	// Action determines how occurrences are recorded. Defaults to [ActionStore].
	Action Action

	// Choices restricts the accepted raw tokens. Empty means any value is accepted.
	Choices []string

	// Metavar is the placeholder displayed for the value in help text.
	//
	// Example: "FILE"
	Metavar string
}

// OptionDefinition describes one flag or positional argument. It is not modified after
// construction.
type OptionDefinition struct {
	// Name must be unique within its enclosing scope. Flags are rendered as --{Name}.
	Name string

	// Positional renders the option as a bare value matched by position instead of a flag.
	Positional bool

	Config ArgConfig
}

// Option returns a flag definition rendered as --{name}.
func Option(name string, cfg ArgConfig) *OptionDefinition {
	return &OptionDefinition{Name: name, Config: cfg}
}

// Positional returns a positional argument definition. Positional arguments are matched in
// declaration order.
func Positional(name string, cfg ArgConfig) *OptionDefinition {
	return &OptionDefinition{Name: name, Positional: true, Config: cfg}
}

// CommandDefinition describes a command and, through SubCommands, the commands nested under it.
type CommandDefinition struct {
	// Name is a single word. Sibling commands must have distinct names.
	Name string

	// Usage overrides the generated usage line.
	//
	// Example: "items list [flags]"
	Usage string

	// Description is shown at the top of the command's help and in its parent's command list.
	Description string

	// Options are kept in declaration order, which decides how positionals are matched.
	Options []*OptionDefinition

	SubCommands []*CommandDefinition
}

// CommandOption configures a [CommandDefinition] at construction.
type CommandOption func(*CommandDefinition)

// WithUsage sets the command's usage line.
func WithUsage(usage string) CommandOption {
	return func(c *CommandDefinition) { c.Usage = usage }
}

// WithDescription sets the command's description.
func WithDescription(description string) CommandOption {
	return func(c *CommandDefinition) { c.Description = description }
}

// WithOptions appends options to the command in the given order.
func WithOptions(opts ...*OptionDefinition) CommandOption {
	return func(c *CommandDefinition) { c.Options = append(c.Options, opts...) }
}

// WithSubCommands appends nested commands in the given order.
func WithSubCommands(subs ...*CommandDefinition) CommandOption {
	return func(c *CommandDefinition) { c.SubCommands = append(c.SubCommands, subs...) }
}

// Command returns a command definition configured by opts.
func Command(name string, opts ...CommandOption) *CommandDefinition {
	c := &CommandDefinition{Name: name}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterOption appends an option to the command.
func (c *CommandDefinition) RegisterOption(opt *OptionDefinition) {
	c.Options = append(c.Options, opt)
}

// RegisterSubCommand appends a nested command.
func (c *CommandDefinition) RegisterSubCommand(sub *CommandDefinition) {
	c.SubCommands = append(c.SubCommands, sub)
}
