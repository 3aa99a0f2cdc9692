package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"todo-engine/internal/api"
	"todo-engine/internal/config"
	"todo-engine/internal/errors"
	"todo-engine/internal/notify"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// Scheduler is the background job runner driven by the run command.
type Scheduler interface {
	Start()
	Stop(ctx context.Context) error
}

// Runtime is what a Bootstrapper builds from the loaded configuration.
type Runtime struct {
	API       api.BusinessAPI
	Scheduler Scheduler
	Close     func() error
}

// Bootstrapper wires the store, services and scheduler for cfg.
type Bootstrapper func(cfg *config.Config) (*Runtime, error)

// App represents the main CLI application
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	scheduler   Scheduler
	out         io.Writer
	in          io.Reader
	styles      *notify.Styles
	registry    *CommandRegistry
}

// AppOption configures an App.
type AppOption func(*App)

func WithConfig(cfg *config.Config) AppOption {
	return func(a *App) {
		if cfg != nil {
			a.config = cfg
		}
	}
}

func WithOutput(w io.Writer) AppOption {
	return func(a *App) { a.out = w }
}

// WithInput sets where confirmation prompts read from.
func WithInput(r io.Reader) AppOption {
	return func(a *App) { a.in = r }
}

func WithScheduler(s Scheduler) AppOption {
	return func(a *App) { a.scheduler = s }
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(businessAPI api.BusinessAPI, opts ...AppOption) *App {
	app := &App{
		businessAPI: businessAPI,
		config:      config.NewConfig(),
		out:         os.Stdout,
		in:          os.Stdin,
	}
	for _, opt := range opts {
		opt(app)
	}
	app.styles = notify.NewStyles(app.config.Display.NoColor)
	app.registry = NewCommandRegistry(app)
	return app
}

// attach installs a bootstrapped runtime into an app created before configuration was known.
func (a *App) attach(rt *Runtime, cfg *config.Config) {
	a.businessAPI = rt.API
	a.scheduler = rt.Scheduler
	a.config = cfg
	a.styles = notify.NewStyles(cfg.Display.NoColor)
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}

	commandName := args[0]
	commandArgs := args[1:]

	return a.registry.Execute(ctx, commandName, commandArgs)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// confirm asks a yes/no question on the app's input. Anything but y/yes is a no.
func (a *App) confirm(question string) bool {
	a.printf("%s [y/N]: ", question)
	var input string
	fmt.Fscanln(a.in, &input)
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes"
}

func (a *App) timeLayout() string {
	if a.config.Display.TimeFormat != "" {
		return a.config.Display.TimeFormat
	}
	return notify.DueLayout
}

// parseTaskID parses a positive task id argument.
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("id", arg, "task ID must be a positive number")
	}
	return id, nil
}

// Layouts accepted for absolute due and reminder times.
var dateTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// parseWhen parses an absolute date, a date with time, "today"/"tomorrow",
// or a shorthand offset from now such as "30m" or "2d". A bare date means 23:59 that day.
func parseWhen(value string, now time.Time) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	local := now.In(time.Local)
	endOfDay := func(t time.Time) *time.Time {
		v := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, time.Local)
		return &v
	}

	switch strings.ToLower(value) {
	case "today":
		return endOfDay(local), nil
	case "tomorrow":
		return endOfDay(local.AddDate(0, 0, 1)), nil
	}

	if duration, err := parseTimeShorthand(value); err == nil {
		v := local.Add(duration)
		return &v, nil
	}

	if day, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return endOfDay(day), nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t, nil
		}
	}

	return nil, errors.NewInvalidInputError("time", value, "use YYYY-MM-DD, \"YYYY-MM-DD HH:MM\", today, tomorrow or an offset like 2h")
}

var shorthandPattern = regexp.MustCompile(`^(\d+)(m|h|d|w)$`)

// parseTimeShorthand parses time shorthand like "30m", "2h", "1d" or "2w".
func parseTimeShorthand(shorthand string) (time.Duration, error) {
	matches := shorthandPattern.FindStringSubmatch(shorthand)
	if matches == nil {
		return 0, fmt.Errorf("invalid time format: %s", shorthand)
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number in time format: %s", shorthand)
	}

	var duration time.Duration
	switch matches[2] {
	case "m":
		duration = time.Duration(value) * time.Minute
	case "h":
		duration = time.Duration(value) * time.Hour
	case "d":
		duration = time.Duration(value) * 24 * time.Hour
	case "w":
		duration = time.Duration(value) * 7 * 24 * time.Hour
	}

	return duration, nil
}
