package declcli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItemsApp(exec ExecFunc) *App {
	app := Decorate(exec,
		WithCommand(Command("show",
			WithUsage("items show [flags] <item>"),
			WithDescription("Show details about an item"),
			WithOptions(Option("json", ArgConfig{Help: "output as JSON", Action: ActionStoreTrue})),
			WithOptions(Positional("item", ArgConfig{})),
		)),
		WithCommand(Command("list",
			WithUsage("items list [flags]"),
			WithDescription("List all items"),
			WithOptions(Option("all", ArgConfig{Help: "include hidden items", Action: ActionStoreTrue})),
		)),
		GlobalOption(Option("verbose", ArgConfig{Help: "Example of global option", Action: ActionStoreTrue})),
		AppInfo("items <command> [flags]", "Example CLI app"),
	)
	app.Name = "items"
	return app
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("parse and run", func(t *testing.T) {
		t.Parallel()
		var got *Dispatch
		app := newItemsApp(func(ctx context.Context, s *State) error {
			got = s.Command
			_, _ = s.Stdout.Write([]byte(s.Command.Name + "\n"))
			return nil
		})

		output := bytes.NewBuffer(nil)
		err := app.Run(context.Background(), []string{"list", "--all"}, &RunOptions{Stdout: output})
		require.NoError(t, err)
		assert.Equal(t, "list\n", output.String())
		require.NotNil(t, got)
		assert.Equal(t, "list", got.Name)
		assert.Equal(t, true, got.Options["all"])
		assert.Equal(t, false, got.Options["verbose"])
	})
	t.Run("run repeatedly", func(t *testing.T) {
		t.Parallel()
		var count int
		app := newItemsApp(func(ctx context.Context, s *State) error {
			if GetOption[bool](s.Command, "verbose") {
				return nil
			}
			count++
			return nil
		})
		for i := 0; i < 3; i++ {
			err := app.Run(context.Background(), []string{"show", "widget"}, nil)
			require.NoError(t, err)
		}
		require.Equal(t, 3, count)
		err := app.Run(context.Background(), []string{"--verbose", "show", "widget"}, nil)
		require.NoError(t, err)
		require.Equal(t, 3, count)
	})
	t.Run("exec error returned", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("boom")
		app := newItemsApp(func(ctx context.Context, s *State) error { return wantErr })
		err := app.Run(context.Background(), []string{"list"}, nil)
		require.ErrorIs(t, err, wantErr)
		assert.Equal(t, 1, ExitCode(err))
	})
	t.Run("help", func(t *testing.T) {
		t.Parallel()
		var called bool
		app := newItemsApp(func(ctx context.Context, s *State) error {
			called = true
			return nil
		})
		stdout, stderr := bytes.NewBuffer(nil), bytes.NewBuffer(nil)
		err := app.Run(context.Background(), []string{"--help"}, &RunOptions{Stdout: stdout, Stderr: stderr})
		require.Error(t, err)
		require.ErrorIs(t, err, flag.ErrHelp)
		assert.False(t, called)
		assert.Contains(t, stdout.String(), "Example CLI app")
		assert.Contains(t, stdout.String(), "items <command> [flags]")
		assert.Empty(t, stderr.String())
		assert.Equal(t, 0, ExitCode(err))
	})
	t.Run("parse error", func(t *testing.T) {
		t.Parallel()
		app := newItemsApp(noopExec)
		stdout, stderr := bytes.NewBuffer(nil), bytes.NewBuffer(nil)
		err := app.Run(context.Background(), []string{"shw"}, &RunOptions{Stdout: stdout, Stderr: stderr})
		requireCode(t, err, ErrParse)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "usage: items <command> [flags]\n")
		assert.Contains(t, stderr.String(), `error: items: unknown command "shw". Did you mean one of these?`)
		assert.Equal(t, 2, ExitCode(err))
	})
	t.Run("definition error", func(t *testing.T) {
		t.Parallel()
		app := newItemsApp(noopExec)
		app.AddGlobalOption(Option("verbose", ArgConfig{}))
		err := app.Run(context.Background(), nil, nil)
		requireCode(t, err, ErrDefinition)
		assert.ErrorContains(t, err, `duplicate option "verbose"`)
		assert.Equal(t, 1, ExitCode(err))
	})
	t.Run("no exec", func(t *testing.T) {
		t.Parallel()
		err := New(nil).Run(context.Background(), nil, nil)
		require.Error(t, err)
		assert.ErrorContains(t, err, "app has no execution function")
	})
	t.Run("logger", func(t *testing.T) {
		t.Parallel()
		logs := bytes.NewBuffer(nil)
		logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
		app := newItemsApp(func(ctx context.Context, s *State) error {
			assert.Same(t, logger, s.Logger)
			assert.Same(t, logger, LoggerFromContext(ctx))
			return nil
		})
		err := app.Run(context.Background(), []string{"show", "widget"}, &RunOptions{Logger: logger})
		require.NoError(t, err)
		assert.Contains(t, logs.String(), "msg=dispatching")
		assert.Contains(t, logs.String(), "command=[show]")
	})
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 0, ExitCode(helpError("help")))
	assert.Equal(t, 2, ExitCode(NewError(ErrParse, errors.New("bad"))))
	assert.Equal(t, 1, ExitCode(NewError(ErrDefinition, errors.New("bad"))))
	assert.Equal(t, 1, ExitCode(errors.New("other")))
}

func TestError(t *testing.T) {
	t.Parallel()

	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
	assert.Equal(t, "parse error: <nil>", (&Error{code: ErrParse}).Error())
	assert.Equal(t, "show help", ErrShowHelp.String())
	assert.Equal(t, "unknown error", ErrorCode(0).String())
}

func TestLoggerFromContext(t *testing.T) {
	t.Parallel()

	assert.Same(t, slog.Default(), LoggerFromContext(context.Background()))
}

func TestRunExecShowHelp(t *testing.T) {
	t.Parallel()

	app := newItemsApp(func(ctx context.Context, s *State) error {
		return NewError(ErrShowHelp, errors.New("nothing to show"))
	})
	stdout := bytes.NewBuffer(nil)
	err := app.Run(context.Background(), []string{"list"}, &RunOptions{Stdout: stdout})
	requireCode(t, err, ErrShowHelp)
	assert.Contains(t, stdout.String(), "List all items")
	assert.Contains(t, stdout.String(), "--all")
}
