package declcli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// Parser parses argument vectors against a tree of commands built by [Build]. Option values are
// reset at the start of every parse, so a Parser may be reused but not shared between goroutines.
type Parser struct {
	root *node
}

// node is one level of the command hierarchy: the root or a single command.
type node struct {
	name        string
	usage       string
	description string
	parent      *node

	flags *flag.FlagSet
	// options is every option at this level in declaration order, keyed into values by name.
	options     []*OptionDefinition
	positionals []*OptionDefinition
	values      map[string]optionValue

	commands []*node
}

// Build translates the descriptor tree into a ready-to-use [Parser]. The program name shown in
// generated text is the first word of usage; use [BuildNamed] to set it explicitly.
//
// Definition problems, such as duplicate names or a default that does not match the option type,
// are returned as an [*Error] with code [ErrDefinition].
func Build(
	usage, description string,
	globals []*OptionDefinition,
	commands []*CommandDefinition,
) (*Parser, error) {
	return BuildNamed("", usage, description, globals, commands)
}

// BuildNamed is like [Build] but sets the program name shown in generated usage and help text.
func BuildNamed(
	name, usage, description string,
	globals []*OptionDefinition,
	commands []*CommandDefinition,
) (*Parser, error) {
	if name == "" {
		name = programName(usage)
	}
	root, err := newNode(nil, name, usage, description, globals)
	if err != nil {
		return nil, err
	}
	for _, opt := range globals {
		if opt.Positional {
			return nil, definitionErrorf("global option %q cannot be positional", opt.Name)
		}
	}
	if err := attachCommands(root, commands); err != nil {
		return nil, err
	}
	// Global options and top-level command options share one result mapping.
	for _, cmd := range root.commands {
		for _, opt := range cmd.options {
			if _, ok := root.values[opt.Name]; ok {
				return nil, definitionErrorf("%s: option %q conflicts with a global option", cmd.path(), opt.Name)
			}
		}
	}
	return &Parser{root: root}, nil
}

func newNode(parent *node, name, usage, description string, opts []*OptionDefinition) (*node, error) {
	n := &node{
		name:        name,
		usage:       usage,
		description: description,
		parent:      parent,
		flags:       flag.NewFlagSet(name, flag.ContinueOnError),
		values:      make(map[string]optionValue, len(opts)),
	}
	n.flags.SetOutput(io.Discard)
	n.flags.Usage = func() {}
	for _, opt := range opts {
		if err := n.register(opt); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (n *node) register(opt *OptionDefinition) error {
	if opt == nil {
		return definitionErrorf("%s: nil option", n.path())
	}
	if err := validateName(opt.Name); err != nil {
		return definitionErrorf("%s: option %w", n.path(), err)
	}
	if opt.Name == "h" || opt.Name == "help" {
		return definitionErrorf("%s: option name %q is reserved for help", n.path(), opt.Name)
	}
	if _, ok := n.values[opt.Name]; ok {
		return definitionErrorf("%s: duplicate option %q", n.path(), opt.Name)
	}
	v, err := newValue(opt)
	if err != nil {
		return definitionErrorf("%s: %w", n.path(), err)
	}
	n.values[opt.Name] = v
	n.options = append(n.options, opt)
	if opt.Positional {
		n.positionals = append(n.positionals, opt)
		return nil
	}
	n.flags.Var(v, opt.Name, opt.Config.Help)
	return nil
}

func attachCommands(parent *node, commands []*CommandDefinition) error {
	seen := make(map[string]bool, len(commands))
	for _, def := range commands {
		if def == nil {
			return definitionErrorf("%s: nil command", parent.path())
		}
		if err := validateName(def.Name); err != nil {
			return definitionErrorf("%s: command %w", parent.path(), err)
		}
		if seen[def.Name] {
			return definitionErrorf("%s: duplicate command %q", parent.path(), def.Name)
		}
		seen[def.Name] = true

		child, err := newNode(parent, def.Name, def.Usage, def.Description, def.Options)
		if err != nil {
			return err
		}
		parent.commands = append(parent.commands, child)
		if err := attachCommands(child, def.SubCommands); err != nil {
			return err
		}
	}
	return nil
}

func validateName(name string) error {
	switch {
	case name == "":
		return errors.New("has no name")
	case strings.ContainsAny(name, " \t\n"):
		return fmt.Errorf("name %q contains spaces, must be a single word", name)
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("name %q must not start with a dash", name)
	case strings.Contains(name, "="):
		return fmt.Errorf("name %q must not contain '='", name)
	}
	return nil
}

// programName derives a program name from a usage line such as "items <command> [flags]".
func programName(usage string) string {
	if fields := strings.Fields(usage); len(fields) > 0 {
		return fields[0]
	}
	return "app"
}

// path returns the space-separated command chain ending at n.
func (n *node) path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " ")
}

func (n *node) findCommand(name string) *node {
	for _, c := range n.commands {
		if c.name == name {
			return c
		}
	}
	return nil
}
