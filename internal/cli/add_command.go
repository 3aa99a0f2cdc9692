package cli

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"todo-engine/internal/domain"
	"todo-engine/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	flags        taskFlags
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *AddCommand) BindFlags(fs *pflag.FlagSet) {
	c.flags.bind(fs, false)
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return errors.NewInvalidInputError("title", "", "task title is required")
	}

	draft := domain.NewDraft(title)
	if err := c.flags.apply(&draft, timeNow()); err != nil {
		return err
	}

	task, err := c.app.businessAPI.AddTask(ctx, draft)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	c.app.printf("Added task #%d: %s\n", task.ID, task.Title)
	if at := task.ReminderTime(); at != nil {
		c.app.printf("Reminder set for %s\n", c.app.formatTime(at))
	}
	return nil
}

