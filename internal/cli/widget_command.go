package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const defaultWidgetLimit = 5

// WidgetCommand prints the home-screen widget snapshot.
type WidgetCommand struct {
	app          *App
	limit        int
	asJSON       bool
	errorHandler *ErrorHandler
}

func NewWidgetCommand(app *App) *WidgetCommand {
	return &WidgetCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *WidgetCommand) BindFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&c.limit, "limit", "n", defaultWidgetLimit, "Number of active tasks to show")
	fs.BoolVar(&c.asJSON, "json", false, "Print as JSON")
}

func (c *WidgetCommand) Execute(ctx context.Context, args []string) error {
	snapshot, err := c.app.businessAPI.GetWidget(ctx, c.limit)
	if err != nil {
		return c.errorHandler.Handle("load widget", err)
	}

	if c.asJSON {
		enc := json.NewEncoder(c.app.out)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot)
	}

	s := c.app.styles
	now := timeNow()
	rows := []string{
		s.Title.Render("Today"),
		fmt.Sprintf("%d of %d done · %d due today", snapshot.Stats.Completed, snapshot.Stats.Total, snapshot.Stats.DueToday),
	}
	if len(snapshot.Active) == 0 {
		rows = append(rows, s.Muted.Render("Nothing to do"))
	}
	for _, task := range snapshot.Active {
		rows = append(rows, c.app.taskLine(task, now))
	}
	c.app.println(s.Box.Render(strings.Join(rows, "\n")))
	return nil
}
