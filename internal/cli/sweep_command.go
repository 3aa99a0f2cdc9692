package cli

import (
	"context"
	"fmt"

	"todo-engine/internal/errors"
	"todo-engine/internal/scheduler"
)

var sweepJobs = map[string]string{
	"overdue": scheduler.KeyOverdueCheck,
	"archive": scheduler.KeyAutoArchive,
	"summary": scheduler.KeyDailySummary,
}

// SweepCommand runs a background job once, now.
//
//	todo sweep overdue|archive|summary
//	todo sweep reminder 12
type SweepCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewSweepCommand(app *App) *SweepCommand {
	return &SweepCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *SweepCommand) Execute(ctx context.Context, args []string) error {
	key, err := c.jobKey(args)
	if err != nil {
		return err
	}

	result, err := c.app.businessAPI.RunJob(ctx, key)
	if err != nil {
		return c.errorHandler.Handle("run "+key, err)
	}

	c.app.printf("%s: %s\n", key, result)
	if result == scheduler.ResultFailure {
		return fmt.Errorf("%s failed, see the log for details", key)
	}
	return nil
}

func (c *SweepCommand) jobKey(args []string) (string, error) {
	if len(args) == 2 && args[0] == "reminder" {
		id, err := parseTaskID(args[1])
		if err != nil {
			return "", err
		}
		return scheduler.ReminderKey(id), nil
	}
	if len(args) == 1 {
		if key, ok := sweepJobs[args[0]]; ok {
			return key, nil
		}
	}
	return "", errors.NewInvalidInputError("job", "", "usage: sweep overdue|archive|summary | sweep reminder ID")
}
