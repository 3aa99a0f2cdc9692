package cli

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"todo-engine/internal/errors"
)

// Command is one todo subcommand. args are what remains after flag parsing.
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// FlagBinder is implemented by commands that take flags.
type FlagBinder interface {
	BindFlags(fs *pflag.FlagSet)
}

// CommandRegistry maps subcommand names to their handlers.
type CommandRegistry struct {
	commands map[string]Command
}

func NewCommandRegistry(app *App) *CommandRegistry {
	r := &CommandRegistry{commands: map[string]Command{}}
	for name, cmd := range map[string]Command{
		"add":               NewAddCommand(app),
		"edit":              NewEditCommand(app),
		"show":              NewShowCommand(app),
		"list":              NewListCommand(app),
		"search":            NewSearchCommand(app),
		"done":              NewDoneCommand(app),
		"archive":           NewArchiveCommand(app, true),
		"unarchive":         NewArchiveCommand(app, false),
		"archive-completed": NewArchiveCompletedCommand(app),
		"clear-archived":    NewClearArchivedCommand(app),
		"delete":            NewDeleteCommand(app),
		"stats":             NewStatsCommand(app),
		"settings":          NewSettingsCommand(app),
		"widget":            NewWidgetCommand(app),
		"watch":             NewWatchCommand(app),
		"run":               NewRunCommand(app),
		"sweep":             NewSweepCommand(app),
	} {
		r.Register(name, cmd)
	}
	return r
}

// Register adds or replaces the handler for name.
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Lookup returns the command registered under name.
func (r *CommandRegistry) Lookup(name string) (Command, bool) {
	command, ok := r.commands[name]
	return command, ok
}

// Execute runs the named command, parsing its flags out of args first.
func (r *CommandRegistry) Execute(ctx context.Context, name string, args []string) error {
	command, ok := r.Lookup(name)
	if !ok {
		return errors.NewInvalidInputError("command", name, "unknown command")
	}
	binder, ok := command.(FlagBinder)
	if !ok {
		return command.Execute(ctx, args)
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	binder.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return errors.NewInvalidInputError("flags", strings.Join(args, " "), err.Error())
	}
	return command.Execute(ctx, fs.Args())
}

func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *CommandRegistry) GetUsage() string {
	return "usage: todo <command> [arguments]; commands: " + strings.Join(r.Names(), ", ")
}
