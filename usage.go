package declcli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mfridman/declcli/pkg/textutil"
)

// help renders the full help text for n.
func (n *node) help() string {
	var b strings.Builder

	if n.description != "" {
		for _, line := range textutil.Wrap(n.description, 80) {
			b.WriteString(line)
			b.WriteRune('\n')
		}
		b.WriteRune('\n')
	}

	b.WriteString("Usage:\n")
	b.WriteString("  " + n.usageText() + "\n")
	b.WriteString("\n")

	if len(n.positionals) > 0 {
		b.WriteString("Positional Arguments:\n")
		var entries []helpEntry
		for _, opt := range n.positionals {
			entries = append(entries, helpEntry{name: positionalName(opt), usage: describe(opt, "")})
		}
		writeSection(&b, entries)
		b.WriteString("\n")
	}

	if len(n.commands) > 0 {
		// Commands are listed in declaration order, which is also the order they are matched in.
		b.WriteString("Available Commands:\n")
		var entries []helpEntry
		for _, c := range n.commands {
			entries = append(entries, helpEntry{name: c.name, usage: c.description})
		}
		writeSection(&b, entries)
		b.WriteString("\n")
	}

	var flags []helpEntry
	for _, opt := range n.options {
		if opt.Positional {
			continue
		}
		var defval string
		if f := n.flags.Lookup(opt.Name); f != nil {
			defval = f.DefValue
		}
		flags = append(flags, helpEntry{name: flagName(opt), usage: describe(opt, defval)})
	}
	if len(flags) > 0 {
		slices.SortFunc(flags, func(a, b helpEntry) int {
			return cmp.Compare(a.name, b.name)
		})
		b.WriteString("Flags:\n")
		writeSection(&b, flags)
		b.WriteString("\n")
	}

	if len(n.commands) > 0 {
		fmt.Fprintf(&b, "Use \"%s [command] --help\" for more information about a command.\n", n.path())
	}

	return strings.TrimRight(b.String(), "\n")
}

// usageLine is the single line printed above parse errors.
func (n *node) usageLine() string {
	return "usage: " + n.usageText()
}

func (n *node) usageText() string {
	if n.usage != "" {
		return n.usage
	}
	usage := n.path()
	if len(n.options) > len(n.positionals) {
		usage += " [flags]"
	}
	for _, opt := range n.positionals {
		usage += " " + positionalName(opt)
	}
	if len(n.commands) > 0 {
		usage += " <command>"
	}
	return usage
}

func positionalName(opt *OptionDefinition) string {
	if opt.Config.Metavar != "" {
		return "<" + opt.Config.Metavar + ">"
	}
	return "<" + opt.Name + ">"
}

func flagName(opt *OptionDefinition) string {
	name := "--" + opt.Name
	switch opt.Config.Action {
	case ActionStoreTrue, ActionStoreFalse:
		return name
	}
	metavar := opt.Config.Metavar
	if metavar == "" {
		metavar = strings.ToUpper(strings.ReplaceAll(opt.Name, "-", "_"))
	}
	return name + " " + metavar
}

func describe(opt *OptionDefinition, defval string) string {
	description := opt.Config.Help
	if len(opt.Config.Choices) > 0 {
		description += fmt.Sprintf(" (choices: %s)", strings.Join(opt.Config.Choices, ", "))
	}
	if opt.Config.Required {
		description += " (required)"
	}
	if defval != "" && defval != "false" {
		description += fmt.Sprintf(" (default: %s)", defval)
	}
	return strings.TrimSpace(description)
}

type helpEntry struct {
	name  string
	usage string
}

// writeSection writes aligned name/usage pairs, wrapping usage text at 80 columns.
func writeSection(b *strings.Builder, entries []helpEntry) {
	maxLen := 0
	for _, e := range entries {
		if len(e.name) > maxLen {
			maxLen = len(e.name)
		}
	}
	nameWidth := maxLen + 4
	wrapWidth := 80 - nameWidth

	for _, e := range entries {
		lines := textutil.Wrap(e.usage, wrapWidth)
		if len(lines) == 0 {
			fmt.Fprintf(b, "  %s\n", e.name)
			continue
		}
		padding := strings.Repeat(" ", maxLen-len(e.name)+4)
		fmt.Fprintf(b, "  %s%s%s\n", e.name, padding, lines[0])

		indentPadding := strings.Repeat(" ", nameWidth+2)
		for _, line := range lines[1:] {
			fmt.Fprintf(b, "%s%s\n", indentPadding, line)
		}
	}
}
