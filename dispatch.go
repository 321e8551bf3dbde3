package declcli

import (
	"fmt"
	"maps"
)

// Dispatch is the structured result of a successful parse.
//
// The root Dispatch names the selected top-level command, or is empty when no command was given,
// and its Options hold every global option together with the options of that command. A nested
// command selected under it is described by Sub, recursively, so option names of sibling branches
// never collide.
type Dispatch struct {
	// Name is the selected command's name.
	Name string

	// Options maps each option name to its parsed value, its default, or nil when it has neither.
	Options map[string]any

	// Sub is the nested command selected under this one, if any.
	Sub *Dispatch
}

// Path returns the names of the selected command chain, outermost first.
func (d *Dispatch) Path() []string {
	var path []string
	for cur := d; cur != nil; cur = cur.Sub {
		if cur.Name != "" {
			path = append(path, cur.Name)
		}
	}
	return path
}

// Leaf returns the innermost selected command.
func (d *Dispatch) Leaf() *Dispatch {
	cur := d
	for cur.Sub != nil {
		cur = cur.Sub
	}
	return cur
}

// Flatten returns every option in a single mapping. Options of a nested command are keyed as
// {subcommand}__{option}, and deeper levels repeat the prefix: an option "opt" of command "sub"
// becomes "sub__opt", and an option "opt" of "deep" under "sub" becomes "sub__deep__opt".
func (d *Dispatch) Flatten() map[string]any {
	out := maps.Clone(d.Options)
	if out == nil {
		out = make(map[string]any)
	}
	if d.Sub != nil {
		for k, v := range d.Sub.Flatten() {
			out[d.Sub.Name+"__"+k] = v
		}
	}
	return out
}

// GetOption retrieves an option value by name, with type inference. It looks in d first and then
// in each nested command in turn. Example usage:
//
//	all := GetOption[bool](d, "all")
//	count := GetOption[int](d, "count")
//	tags := GetOption[[]string](d, "tag")
//
// An option that was not given and has no default yields the zero value of T.
//
// If the option isn't declared anywhere in the chain, or was declared with a different type, it
// panics: either is a mistake in the program rather than in the user's input.
func GetOption[T any](d *Dispatch, name string) T {
	for cur := d; cur != nil; cur = cur.Sub {
		value, ok := cur.Options[name]
		if !ok {
			continue
		}
		if value == nil {
			var zero T
			return zero
		}
		if v, ok := value.(T); ok {
			return v
		}
		msg := fmt.Sprintf("internal error: type mismatch for option %q in command %q: registered %T, requested %T",
			name, cur.Name, value, *new(T))
		panic(msg)
	}
	msg := fmt.Sprintf("internal error: option not found: %q", name)
	panic(msg)
}
