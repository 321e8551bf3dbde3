package declcli

import (
	"flag"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// optionValue is the flag.Value registered for every option. Get returns the value handed to the
// entry point.
type optionValue interface {
	flag.Getter
	// isSet reports whether Set was called at least once since the last reset.
	isSet() bool
	reset()
}

func parseString(s string) (string, error) { return s, nil }

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid int value %q", s)
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value %q", s)
	}
	return v, nil
}

func parseBool(s string) (bool, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid bool value %q", s)
	}
	return v, nil
}

func parseDuration(s string) (time.Duration, error) {
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration value %q", s)
	}
	return v, nil
}

func checkChoice(s string, choices []string) error {
	if len(choices) == 0 || slices.Contains(choices, s) {
		return nil
	}
	return fmt.Errorf("invalid choice %q (choose from %s)", s, strings.Join(choices, ", "))
}

// scalarValue implements ActionStore.
type scalarValue[T any] struct {
	parse   func(string) (T, error)
	choices []string
	def     any // nil when the option has no default
	val     T
	set     bool
}

func (v *scalarValue[T]) Set(s string) error {
	if err := checkChoice(s, v.choices); err != nil {
		return err
	}
	parsed, err := v.parse(s)
	if err != nil {
		return err
	}
	v.val = parsed
	v.set = true
	return nil
}

func (v *scalarValue[T]) Get() any {
	if !v.set {
		return v.def
	}
	return v.val
}

func (v *scalarValue[T]) String() string {
	if v == nil {
		return ""
	}
	if !v.set {
		if v.def == nil {
			return ""
		}
		return fmt.Sprint(v.def)
	}
	return fmt.Sprint(v.val)
}

func (v *scalarValue[T]) isSet() bool { return v.set }

func (v *scalarValue[T]) reset() {
	var zero T
	v.val, v.set = zero, false
}

// listValue implements ActionAppend.
type listValue[T any] struct {
	parse   func(string) (T, error)
	choices []string
	def     []T
	val     []T
	set     bool
}

func (v *listValue[T]) Set(s string) error {
	if err := checkChoice(s, v.choices); err != nil {
		return err
	}
	parsed, err := v.parse(s)
	if err != nil {
		return err
	}
	v.val = append(v.val, parsed)
	v.set = true
	return nil
}

func (v *listValue[T]) Get() any {
	if !v.set {
		if v.def == nil {
			return nil
		}
		return slices.Clone(v.def)
	}
	return v.val
}

func (v *listValue[T]) String() string {
	if v == nil {
		return ""
	}
	items := v.def
	if v.set {
		items = v.val
	}
	if len(items) == 0 {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprint(item))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (v *listValue[T]) isSet() bool { return v.set }

func (v *listValue[T]) reset() { v.val, v.set = nil, false }

// switchValue implements ActionStoreTrue and ActionStoreFalse.
type switchValue struct {
	// on is stored when the flag is present.
	on  bool
	val bool
	set bool
}

func (v *switchValue) Set(s string) error {
	b, err := parseBool(s)
	if err != nil {
		return err
	}
	// --flag=false on a store_true option stores the opposite of the action.
	if b {
		v.val = v.on
	} else {
		v.val = !v.on
	}
	v.set = true
	return nil
}

func (v *switchValue) Get() any {
	if !v.set {
		return !v.on
	}
	return v.val
}

func (v *switchValue) String() string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(v.Get().(bool))
}

func (v *switchValue) IsBoolFlag() bool { return true }

func (v *switchValue) isSet() bool { return v.set }

func (v *switchValue) reset() { v.val, v.set = false, false }

// boolFlag is satisfied by values that take no argument on the command line.
type boolFlag interface {
	IsBoolFlag() bool
}

func isBoolValue(v flag.Value) bool {
	b, ok := v.(boolFlag)
	return ok && b.IsBoolFlag()
}

// newValue builds the flag.Value for an option and checks that its configuration is coherent.
func newValue(opt *OptionDefinition) (optionValue, error) {
	cfg := opt.Config
	switch cfg.Action {
	case ActionStoreTrue, ActionStoreFalse:
		if opt.Positional {
			return nil, fmt.Errorf("positional %q cannot use action %s", opt.Name, cfg.Action)
		}
		if len(cfg.Choices) > 0 {
			return nil, fmt.Errorf("option %q: choices are not supported with action %s", opt.Name, cfg.Action)
		}
		if cfg.Default != nil {
			return nil, fmt.Errorf("option %q: default is not supported with action %s", opt.Name, cfg.Action)
		}
		return &switchValue{on: cfg.Action == ActionStoreTrue}, nil
	case ActionStore:
		switch cfg.Type {
		case TypeString:
			return newScalar(opt, parseString)
		case TypeInt:
			return newScalar(opt, parseInt)
		case TypeFloat:
			return newScalar(opt, parseFloat)
		case TypeBool:
			return newScalar(opt, parseBool)
		case TypeDuration:
			return newScalar(opt, parseDuration)
		}
		return nil, fmt.Errorf("option %q: unknown type %d", opt.Name, cfg.Type)
	case ActionAppend:
		if opt.Positional {
			return nil, fmt.Errorf("positional %q cannot use action %s", opt.Name, cfg.Action)
		}
		switch cfg.Type {
		case TypeString:
			return newList(opt, parseString)
		case TypeInt:
			return newList(opt, parseInt)
		case TypeFloat:
			return newList(opt, parseFloat)
		case TypeBool:
			return newList(opt, parseBool)
		case TypeDuration:
			return newList(opt, parseDuration)
		}
		return nil, fmt.Errorf("option %q: unknown type %d", opt.Name, cfg.Type)
	}
	return nil, fmt.Errorf("option %q: unknown action %d", opt.Name, cfg.Action)
}

func newScalar[T any](opt *OptionDefinition, parse func(string) (T, error)) (optionValue, error) {
	v := &scalarValue[T]{parse: parse, choices: opt.Config.Choices}
	if opt.Config.Default != nil {
		def, ok := opt.Config.Default.(T)
		if !ok {
			return nil, fmt.Errorf("option %q: default %v has type %T, want %s",
				opt.Name, opt.Config.Default, opt.Config.Default, opt.Config.Type)
		}
		if err := checkChoice(fmt.Sprint(def), opt.Config.Choices); err != nil {
			return nil, fmt.Errorf("option %q: default: %w", opt.Name, err)
		}
		v.def = def
	}
	return v, nil
}

func newList[T any](opt *OptionDefinition, parse func(string) (T, error)) (optionValue, error) {
	v := &listValue[T]{parse: parse, choices: opt.Config.Choices}
	switch def := opt.Config.Default.(type) {
	case nil:
	case T:
		v.def = []T{def}
	case []T:
		v.def = slices.Clone(def)
	default:
		return nil, fmt.Errorf("option %q: default %v has type %T, want %s or []%s",
			opt.Name, def, def, opt.Config.Type, opt.Config.Type)
	}
	return v, nil
}
