package cli

import (
	"context"

	"todo-engine/internal/errors"
)

// ShowCommand prints a single task.
type ShowCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", "", "show takes exactly one task ID")
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	task, err := c.app.businessAPI.GetTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("show task", err)
	}

	c.app.printTaskDetails(*task)
	return nil
}
