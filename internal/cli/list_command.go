package cli

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"todo-engine/internal/api"
	"todo-engine/internal/domain"
	"todo-engine/internal/errors"
)

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler

	filter    string
	category  string
	priority  string
	reminders bool
	limit     int
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *ListCommand) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.filter, "filter", "f", "", "all, active, completed, archived, due-today or overdue")
	fs.StringVarP(&c.category, "category", "c", "", "Only tasks in this category")
	fs.StringVarP(&c.priority, "priority", "p", "", "Only tasks with this priority")
	fs.BoolVar(&c.reminders, "reminders", false, "Only tasks with a pending reminder")
	fs.IntVarP(&c.limit, "limit", "n", 0, "Maximum number of tasks to show (0 uses display.list_limit)")
}

// Execute runs the list command. A positional argument is taken as the filter.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	opts, err := c.options(args)
	if err != nil {
		return err
	}

	tasks, err := c.app.businessAPI.ListTasks(ctx, opts)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	c.app.printTasks(tasks)
	return nil
}

func (c *ListCommand) options(args []string) (api.ListOptions, error) {
	filterName := c.filter
	if len(args) > 0 {
		filterName = strings.Join(args, " ")
	}

	filter, err := domain.ParseFilter(filterName)
	if err != nil {
		return api.ListOptions{}, errors.NewInvalidInputError("filter", filterName, err.Error())
	}

	opts := api.ListOptions{
		Filter:        filter,
		RemindersOnly: c.reminders,
		Limit:         c.limit,
	}
	if opts.Limit <= 0 {
		opts.Limit = c.app.config.Display.ListLimit
	}

	if c.category != "" {
		category, ok := domain.ParseCategory(c.category)
		if !ok {
			return api.ListOptions{}, errors.NewInvalidInputError("category", c.category, "unknown category")
		}
		opts.Category = &category
	}
	if c.priority != "" {
		priority, ok := domain.ParsePriority(c.priority)
		if !ok {
			return api.ListOptions{}, errors.NewInvalidInputError("priority", c.priority, "expected low, medium, high or urgent")
		}
		opts.Priority = &priority
	}

	return opts, nil
}

// SearchCommand lists non-archived tasks whose title or description contains the text.
type SearchCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewSearchCommand(app *App) *SearchCommand {
	return &SearchCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *SearchCommand) Execute(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		return errors.NewInvalidInputError("text", "", "search text is required")
	}

	tasks, err := c.app.businessAPI.SearchTasks(ctx, text)
	if err != nil {
		return c.errorHandler.Handle("search tasks", err)
	}

	c.app.printTasks(tasks)
	return nil
}
