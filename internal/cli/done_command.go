package cli

import (
	"context"

	"todo-engine/internal/errors"
)

// DoneCommand toggles completion for each given task.
type DoneCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("id", "", "at least one task ID is required")
	}

	for _, arg := range args {
		id, err := parseTaskID(arg)
		if err != nil {
			return err
		}
		task, err := c.app.businessAPI.ToggleTask(ctx, id)
		if err != nil {
			return c.errorHandler.Handle("toggle task", err)
		}
		if task.IsCompleted {
			c.app.printf("Completed task #%d: %s\n", task.ID, task.Title)
		} else {
			c.app.printf("Reopened task #%d: %s\n", task.ID, task.Title)
		}
	}
	return nil
}
