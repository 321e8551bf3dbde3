package declcli

import (
	"strings"

	"github.com/mfridman/xflag"

	"github.com/mfridman/declcli/pkg/suggest"
)

// Parse parses args, typically os.Args[1:], and returns the selected command chain.
//
// Help requests are returned as an [*Error] with code [ErrShowHelp] carrying the help text of the
// command that was asked. Any mismatch between args and the declared commands is returned as an
// [*Error] with code [ErrParse]. Parse never writes output or exits the process.
func (p *Parser) Parse(args []string) (*Dispatch, error) {
	p.root.reset()
	root, err := p.root.parse(args)
	if err != nil {
		return nil, err
	}
	// The root level holds the global options; merge them into the top-level command result.
	if root.Sub == nil {
		return &Dispatch{Options: root.Options}, nil
	}
	top := root.Sub
	options := make(map[string]any, len(root.Options)+len(top.Options))
	for k, v := range root.Options {
		options[k] = v
	}
	for k, v := range top.Options {
		options[k] = v
	}
	return &Dispatch{Name: top.Name, Options: options, Sub: top.Sub}, nil
}

// Help returns the rendered help text of the root command.
func (p *Parser) Help() string {
	return p.root.help()
}

// CommandHelp returns the rendered help text of the command at path, for example
// CommandHelp("remote", "sync"). It reports false if no such command is declared.
func (p *Parser) CommandHelp(path ...string) (string, bool) {
	n := p.root
	for _, name := range path {
		if n = n.findCommand(name); n == nil {
			return "", false
		}
	}
	return n.help(), true
}

func (n *node) reset() {
	for _, v := range n.values {
		v.reset()
	}
	for _, c := range n.commands {
		c.reset()
	}
}

// parse handles the tokens belonging to n and hands the rest to the selected subcommand.
func (n *node) parse(args []string) (*Dispatch, error) {
	s := n.split(args)
	if s.help {
		return nil, helpError(n.help())
	}

	// Let ParseToEnd handle interleaved flags and positionals
	if err := xflag.ParseToEnd(n.flags, s.own); err != nil {
		return nil, parseErrorf(n, "%v", err)
	}
	positionals := make([]string, 0, n.flags.NArg()+len(s.trailing))
	positionals = append(positionals, n.flags.Args()...)
	positionals = append(positionals, s.trailing...)
	if err := n.assignPositionals(positionals); err != nil {
		return nil, err
	}
	if err := n.checkRequired(); err != nil {
		return nil, err
	}

	d := &Dispatch{Name: n.name, Options: n.collect()}
	if s.command == "" {
		return d, nil
	}
	child := n.findCommand(s.command)
	if child == nil {
		return nil, n.unknownCommandError(s.command)
	}
	sub, err := child.parse(s.rest)
	if err != nil {
		return nil, err
	}
	d.Sub = sub
	return d, nil
}

type levelArgs struct {
	// own are the flag and positional tokens for this level, before any "--".
	own []string
	// trailing are the tokens after "--", all positional.
	trailing []string
	// command is the selected subcommand name, empty when none was given.
	command string
	// rest are the tokens following the subcommand name.
	rest []string
	help bool
}

// split finds where the tokens for n end. The subcommand name is the first bare token that is not
// the value of a preceding flag and not claimed by one of n's positionals.
func (n *node) split(args []string) levelArgs {
	var positionals int
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return levelArgs{own: args[:i], trailing: args[i+1:]}
		}
		if isHelpArg(arg) {
			return levelArgs{help: true}
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			name := strings.TrimLeft(arg, "-")
			if strings.Contains(name, "=") {
				continue
			}
			if f := n.flags.Lookup(name); f != nil && !isBoolValue(f.Value) {
				// Skip the flag's value.
				i++
			}
			continue
		}
		if positionals < len(n.positionals) {
			positionals++
			continue
		}
		if len(n.commands) > 0 {
			return levelArgs{own: args[:i], command: arg, rest: args[i+1:]}
		}
	}
	return levelArgs{own: args}
}

func isHelpArg(arg string) bool {
	return arg == "-h" || arg == "--h" || arg == "-help" || arg == "--help"
}

func (n *node) assignPositionals(args []string) error {
	for i, opt := range n.positionals {
		if i >= len(args) {
			var missing []string
			for _, p := range n.positionals[i:] {
				missing = append(missing, p.Name)
			}
			return parseErrorf(n, "the following arguments are required: %s", strings.Join(missing, ", "))
		}
		if err := n.values[opt.Name].Set(args[i]); err != nil {
			return parseErrorf(n, "argument %s: %v", opt.Name, err)
		}
	}
	if len(args) > len(n.positionals) {
		return parseErrorf(n, "unrecognized arguments: %s", strings.Join(args[len(n.positionals):], " "))
	}
	return nil
}

func (n *node) checkRequired() error {
	var missing []string
	for _, opt := range n.options {
		if opt.Positional || !opt.Config.Required {
			continue
		}
		if !n.values[opt.Name].isSet() {
			missing = append(missing, "--"+opt.Name)
		}
	}
	if len(missing) > 0 {
		return parseErrorf(n, "required flag(s) %q not set", strings.Join(missing, ", "))
	}
	return nil
}

func (n *node) collect() map[string]any {
	options := make(map[string]any, len(n.options))
	for _, opt := range n.options {
		options[opt.Name] = n.values[opt.Name].Get()
	}
	return options
}

func (n *node) unknownCommandError(name string) error {
	known := make([]string, 0, len(n.commands))
	for _, c := range n.commands {
		known = append(known, c.name)
	}
	suggestions := suggest.FindSimilar(name, known, 3)
	if len(suggestions) > 0 {
		return parseErrorf(n, "unknown command %q. Did you mean one of these?\n\t%s",
			name,
			strings.Join(suggestions, "\n\t"))
	}
	return parseErrorf(n, "unknown command %q", name)
}
