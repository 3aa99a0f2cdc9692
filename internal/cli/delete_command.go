package cli

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"todo-engine/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	yes          bool
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *DeleteCommand) BindFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.yes, "yes", "y", false, "Skip the confirmation prompt")
}

// Execute deletes one task. Deleting an ID that does not exist succeeds.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", "", "delete takes exactly one task ID")
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	label := fmt.Sprintf("task #%d", id)
	if task, err := c.app.businessAPI.GetTask(ctx, id); err == nil {
		label = fmt.Sprintf("task #%d: %s", id, task.Title)
	} else if !errors.IsNotFound(err) {
		return c.errorHandler.Handle("delete task", err)
	}

	if !c.yes && !c.app.confirm("Delete "+label+"?") {
		c.app.println("Delete cancelled.")
		return nil
	}

	if err := c.app.businessAPI.DeleteTask(ctx, id); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}

	c.app.printf("Deleted %s\n", label)
	return nil
}
