package cli

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"todo-engine/internal/domain"
	"todo-engine/internal/errors"
)

// WatchCommand prints the task list again every time it changes, until the
// context ends.
type WatchCommand struct {
	app          *App
	filter       string
	search       string
	errorHandler *ErrorHandler
}

func NewWatchCommand(app *App) *WatchCommand {
	return &WatchCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *WatchCommand) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.filter, "filter", "f", "", "all, active, completed, archived, due-today or overdue")
	fs.StringVarP(&c.search, "search", "s", "", "Show search results instead of the filter")
}

// Execute takes optional search text as arguments or --search.
func (c *WatchCommand) Execute(ctx context.Context, args []string) error {
	filter, err := domain.ParseFilter(c.filter)
	if err != nil {
		return errors.NewInvalidInputError("filter", c.filter, err.Error())
	}

	search := c.search
	if len(args) > 0 {
		search = strings.Join(args, " ")
	}

	feed := c.app.businessAPI.WatchTasks(ctx, filter, search)
	defer feed.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-feed.Updates():
			if !ok {
				return nil
			}
			if update.Err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return c.errorHandler.Handle("watch tasks", update.Err)
			}
			c.app.println(c.app.styles.Muted.Render("== " + strings.ToLower(update.Filter.String()) + " =="))
			c.app.printTasks(update.Tasks)
		}
	}
}
