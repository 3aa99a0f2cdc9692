package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/pflag"
)

// StatsCommand prints counts over non-archived tasks.
type StatsCommand struct {
	app          *App
	asJSON       bool
	errorHandler *ErrorHandler
}

func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *StatsCommand) BindFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.asJSON, "json", false, "Print as JSON")
}

func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	stats, err := c.app.businessAPI.GetStatistics(ctx)
	if err != nil {
		return c.errorHandler.Handle("compute statistics", err)
	}

	if c.asJSON {
		enc := json.NewEncoder(c.app.out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	c.app.printStatistics(stats)
	return nil
}
