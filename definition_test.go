package declcli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitions(t *testing.T) {
	t.Parallel()

	t.Run("option", func(t *testing.T) {
		t.Parallel()
		opt := Option("test_option", ArgConfig{Help: "Test option", Type: TypeInt, Required: true})
		assert.Equal(t, "test_option", opt.Name)
		assert.False(t, opt.Positional)
		assert.Equal(t, ArgConfig{Help: "Test option", Type: TypeInt, Required: true}, opt.Config)
	})
	t.Run("positional", func(t *testing.T) {
		t.Parallel()
		opt := Positional("item", ArgConfig{Help: "item"})
		assert.True(t, opt.Positional)
		assert.Equal(t, ActionStore, opt.Config.Action)
		assert.Equal(t, TypeString, opt.Config.Type)
	})
	t.Run("command", func(t *testing.T) {
		t.Parallel()
		sub := Command("sub")
		cmd := Command("test_cmd",
			WithUsage("test usage"),
			WithDescription("test description"),
			WithOptions(Option("a", ArgConfig{})),
			WithOptions(Option("b", ArgConfig{})),
			WithSubCommands(sub),
		)
		assert.Equal(t, "test_cmd", cmd.Name)
		assert.Equal(t, "test usage", cmd.Usage)
		assert.Equal(t, "test description", cmd.Description)
		require.Len(t, cmd.Options, 2)
		assert.Equal(t, "a", cmd.Options[0].Name)
		assert.Equal(t, "b", cmd.Options[1].Name)
		require.Len(t, cmd.SubCommands, 1)
		assert.Same(t, sub, cmd.SubCommands[0])
	})
	t.Run("register option preserves order", func(t *testing.T) {
		t.Parallel()
		cmd := Command("test_cmd")
		for _, name := range []string{"z", "a", "m"} {
			cmd.RegisterOption(Option(name, ArgConfig{Help: "Test help"}))
		}
		var names []string
		for _, opt := range cmd.Options {
			names = append(names, opt.Name)
		}
		assert.Equal(t, []string{"z", "a", "m"}, names)
	})
	t.Run("register subcommand", func(t *testing.T) {
		t.Parallel()
		cmd := Command("remote")
		cmd.RegisterSubCommand(Command("add"))
		cmd.RegisterSubCommand(Command("remove"))
		require.Len(t, cmd.SubCommands, 2)
		assert.Equal(t, "remove", cmd.SubCommands[1].Name)
	})
	t.Run("stringers", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "time.Duration", TypeDuration.String())
		assert.Equal(t, "unknown", ValueType(99).String())
		assert.Equal(t, "store_false", ActionStoreFalse.String())
		assert.Equal(t, "unknown", Action(99).String())
	})
}
