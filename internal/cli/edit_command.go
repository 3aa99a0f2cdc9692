package cli

import (
	"context"

	"github.com/spf13/pflag"

	"todo-engine/internal/errors"
)

// EditCommand changes the fields named by flags and keeps the rest.
type EditCommand struct {
	app          *App
	flags        taskFlags
	errorHandler *ErrorHandler
}

func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *EditCommand) BindFlags(fs *pflag.FlagSet) {
	c.flags.bind(fs, true)
}

func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", "", "edit takes exactly one task ID")
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	// 1. Load the current values
	current, err := c.app.businessAPI.GetTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("edit task", err)
	}

	// 2. Overlay the flags
	draft := current.Draft()
	if err := c.flags.apply(&draft, timeNow()); err != nil {
		return err
	}

	// 3. Save
	task, err := c.app.businessAPI.EditTask(ctx, id, draft)
	if err != nil {
		return c.errorHandler.Handle("edit task", err)
	}

	c.app.printf("Updated task #%d: %s\n", task.ID, task.Title)
	return nil
}
