package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"todo-engine/internal/config"
)

const needsRuntime = "needs-runtime"

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	app        *App
	boot       Bootstrapper
	runtime    *Runtime
	configFile string
}

// subcommand describes one CLI verb backed by a registered handler.
type subcommand struct {
	name  string
	use   string
	short string
	long  string
	args  cobra.PositionalArgs
	// longRunning commands run until interrupted instead of under the app timeout.
	longRunning bool
}

var subcommands = []subcommand{
	{
		name:  "add",
		use:   "add <title>",
		short: "Add a task",
		long: `Add a task. The title is every positional argument joined by spaces.

Examples:
  todo add "Buy milk"
  todo add Call the dentist --due tomorrow --remind -p high -c health
  todo add "Submit report" --due "2026-05-10 17:00" --remind-at "2026-05-10 16:30"`,
		args: cobra.MinimumNArgs(1),
	},
	{
		name:  "edit",
		use:   "edit <id>",
		short: "Change fields of a task",
		long:  "Change the fields given as flags and keep the others. Use --clear-due to drop the due date and reminder.",
		args:  cobra.ExactArgs(1),
	},
	{
		name:  "show",
		use:   "show <id>",
		short: "Show a task",
		args:  cobra.ExactArgs(1),
	},
	{
		name:  "list",
		use:   "list [filter]",
		short: "List tasks",
		long: `List tasks using a filter: all, active, completed, archived, due-today or overdue.

Examples:
  todo list
  todo list overdue
  todo list --category work --limit 10
  todo list --reminders`,
		args: cobra.MaximumNArgs(1),
	},
	{
		name:  "search",
		use:   "search <text>",
		short: "Search titles and descriptions of non-archived tasks",
		args:  cobra.MinimumNArgs(1),
	},
	{
		name:  "done",
		use:   "done <id>...",
		short: "Toggle completion of tasks",
		args:  cobra.MinimumNArgs(1),
	},
	{
		name:  "archive",
		use:   "archive <id>...",
		short: "Archive tasks",
		args:  cobra.MinimumNArgs(1),
	},
	{
		name:  "unarchive",
		use:   "unarchive <id>...",
		short: "Restore archived tasks",
		args:  cobra.MinimumNArgs(1),
	},
	{
		name:  "archive-completed",
		use:   "archive-completed",
		short: "Archive every completed task",
		args:  cobra.NoArgs,
	},
	{
		name:  "clear-archived",
		use:   "clear-archived",
		short: "Permanently delete every archived task",
		long:  "Permanently delete every archived task. This cannot be undone.",
		args:  cobra.NoArgs,
	},
	{
		name:  "delete",
		use:   "delete <id>",
		short: "Delete a task",
		long:  "Delete a task and cancel its reminder. This cannot be undone.",
		args:  cobra.ExactArgs(1),
	},
	{
		name:  "stats",
		use:   "stats",
		short: "Show task statistics",
		args:  cobra.NoArgs,
	},
	{
		name:  "settings",
		use:   "settings [show | set <key> <value>]",
		short: "Show or change preferences",
		long: `Show or change preferences. Changing a preference re-arms the affected background jobs.

Examples:
  todo settings
  todo settings set notifications_enabled false
  todo settings set daily_summary_enabled true
  todo settings set daily_summary_time 08:30`,
		args: cobra.MaximumNArgs(3),
	},
	{
		name:  "widget",
		use:   "widget",
		short: "Show the widget summary",
		args:  cobra.NoArgs,
	},
	{
		name:        "watch",
		use:         "watch [search text]",
		short:       "Print the task list every time it changes",
		longRunning: true,
	},
	{
		name:  "run",
		use:   "run",
		short: "Run reminders and background jobs in the foreground",
		long: `Run the scheduler until interrupted. Reminders fire at their time, overdue tasks
are checked periodically, the daily summary is shown when enabled and completed
tasks are auto-archived when enabled.`,
		args:        cobra.NoArgs,
		longRunning: true,
	},
	{
		name:  "sweep",
		use:   "sweep overdue|archive|summary | sweep reminder <id>",
		short: "Run a background job once, now",
		args:  cobra.RangeArgs(1, 2),
	},
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(boot Bootstrapper) *RootCommand {
	root := &RootCommand{
		boot: boot,
		app:  NewApp(nil),
	}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A command-line to-do list with reminders",
		Long: `todo keeps a local list of tasks with priorities, categories, due dates and reminders.

Run "todo run" to keep reminders, the overdue check, the daily summary and
auto-archiving going in the foreground.

CONFIGURATION:
  Configuration follows this priority order: command-line flags > TODO_* environment
  variables > todo.yaml (in ~/.todo or the working directory) > defaults.

  TODO_DATABASE_DIR                     Database directory (default: ~/.todo)
  TODO_DATABASE_FILENAME                Database filename (default: todo.db)
  TODO_SCHEDULER_OVERDUE_INTERVAL       Overdue check period (default: 6h)
  TODO_SCHEDULER_AUTO_ARCHIVE_INTERVAL  Auto-archive period (default: 24h)
  TODO_SCHEDULER_BATTERY_LOW            Skip battery-constrained jobs (default: false)
  TODO_NOTIFICATIONS_OUTPUT             terminal or log (default: terminal)
  TODO_APPLICATION_TIMEOUT              Per-command timeout (default: 30s)
  TODO_DEBUG                            Debug logging

GETTING HELP:
  todo [command] --help
  todo completion bash`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[needsRuntime] == "" {
				return nil
			}
			return root.bootstrap(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command exposes the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command and releases the runtime afterwards.
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if r.runtime != nil && r.runtime.Close != nil {
		if closeErr := r.runtime.Close(); err == nil {
			err = closeErr
		}
	}
	return NewErrorHandler().HandleSimple(err)
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configFile, "config", "", "Config file (default: todo.yaml in ~/.todo or the working directory)")
	flags.String("db-dir", "", "Database directory (overrides TODO_DATABASE_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TODO_DATABASE_FILENAME)")
	flags.String("notify", "", "Notification output: terminal or log (overrides TODO_NOTIFICATIONS_OUTPUT)")
	flags.Bool("battery-low", false, "Treat the device as low on battery")
	flags.Duration("timeout", 0, "Per-command timeout (overrides TODO_APPLICATION_TIMEOUT)")
	flags.String("env", "", "Environment: development, production or test")
	flags.Bool("debug", false, "Enable debug logging")
	flags.Bool("no-color", false, "Disable coloured output")
}

func (r *RootCommand) addSubcommands() {
	for _, sc := range subcommands {
		r.cmd.AddCommand(r.newSubcommand(sc))
	}
}

func (r *RootCommand) newSubcommand(sc subcommand) *cobra.Command {
	handler, ok := r.app.registry.Lookup(sc.name)
	if !ok {
		panic("no handler registered for " + sc.name)
	}

	cmd := &cobra.Command{
		Use:         sc.use,
		Short:       sc.short,
		Long:        sc.long,
		Args:        sc.args,
		Annotations: map[string]string{needsRuntime: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd.Context(), sc.longRunning)
			defer cancel()

			return handler.Execute(ctx, args)
		},
	}
	if binder, ok := handler.(FlagBinder); ok {
		binder.BindFlags(cmd.Flags())
	}
	return cmd
}

func (r *RootCommand) commandContext(parent context.Context, longRunning bool) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if longRunning {
		return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	}
	return context.WithTimeout(parent, r.getAppTimeout())
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.app.config != nil && r.app.config.Application.Timeout > 0 {
		return r.app.config.Application.Timeout
	}
	return 30 * time.Second
}

// bootstrap loads configuration with flag overrides and builds the runtime.
func (r *RootCommand) bootstrap(cmd *cobra.Command) error {
	cfg, err := config.NewLoader(r.configFile).LoadWithOverrides(r.overridesFromFlags(cmd))
	if err != nil {
		return err
	}

	rt, err := r.boot(cfg)
	if err != nil {
		return err
	}
	r.runtime = rt

	r.app.attach(rt, cfg)
	r.app.out = cmd.OutOrStdout()
	r.app.in = cmd.InOrStdin()
	return nil
}

// overridesFromFlags only sets the fields whose flags were given explicitly.
func (r *RootCommand) overridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}

	overrides.DBDir = stringFlag("db-dir")
	overrides.DBFilename = stringFlag("db-filename")
	overrides.NotificationOutput = stringFlag("notify")
	overrides.Environment = stringFlag("env")
	overrides.BatteryLow = boolFlag("battery-low")
	overrides.Debug = boolFlag("debug")
	overrides.NoColor = boolFlag("no-color")
	if flags.Changed("timeout") {
		v, _ := flags.GetDuration("timeout")
		overrides.Timeout = &v
	}

	return overrides
}
