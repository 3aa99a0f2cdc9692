package cli

import (
	"context"

	"github.com/spf13/pflag"

	"todo-engine/internal/errors"
)

// ArchiveCommand archives or unarchives the given tasks.
type ArchiveCommand struct {
	app          *App
	archive      bool
	errorHandler *ErrorHandler
}

func NewArchiveCommand(app *App, archive bool) *ArchiveCommand {
	return &ArchiveCommand{app: app, archive: archive, errorHandler: NewErrorHandler()}
}

func (c *ArchiveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("id", "", "at least one task ID is required")
	}

	for _, arg := range args {
		id, err := parseTaskID(arg)
		if err != nil {
			return err
		}

		if c.archive {
			task, err := c.app.businessAPI.ArchiveTask(ctx, id)
			if err != nil {
				return c.errorHandler.Handle("archive task", err)
			}
			c.app.printf("Archived task #%d: %s\n", task.ID, task.Title)
			continue
		}

		task, err := c.app.businessAPI.UnarchiveTask(ctx, id)
		if err != nil {
			return c.errorHandler.Handle("unarchive task", err)
		}
		c.app.printf("Restored task #%d: %s\n", task.ID, task.Title)
	}
	return nil
}

// ArchiveCompletedCommand archives every completed task.
type ArchiveCompletedCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewArchiveCompletedCommand(app *App) *ArchiveCompletedCommand {
	return &ArchiveCompletedCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *ArchiveCompletedCommand) Execute(ctx context.Context, args []string) error {
	n, err := c.app.businessAPI.ArchiveCompleted(ctx)
	if err != nil {
		return c.errorHandler.Handle("archive completed tasks", err)
	}
	c.app.printf("Archived %d completed task(s)\n", n)
	return nil
}

// ClearArchivedCommand permanently deletes archived tasks after confirmation.
type ClearArchivedCommand struct {
	app          *App
	yes          bool
	errorHandler *ErrorHandler
}

func NewClearArchivedCommand(app *App) *ClearArchivedCommand {
	return &ClearArchivedCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *ClearArchivedCommand) BindFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.yes, "yes", "y", false, "Skip the confirmation prompt")
}

func (c *ClearArchivedCommand) Execute(ctx context.Context, args []string) error {
	if !c.yes && !c.app.confirm("Permanently delete all archived tasks?") {
		c.app.println("Clear cancelled.")
		return nil
	}

	n, err := c.app.businessAPI.ClearArchived(ctx)
	if err != nil {
		return c.errorHandler.Handle("clear archived tasks", err)
	}
	c.app.printf("Deleted %d archived task(s)\n", n)
	return nil
}
