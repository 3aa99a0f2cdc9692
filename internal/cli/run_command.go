package cli

import (
	"context"
	"time"

	"todo-engine/internal/errors"
)

const stopTimeout = 10 * time.Second

// RunCommand keeps the scheduler running in the foreground until the context ends.
// It re-reads the store every scheduler.sync_interval so changes made by other
// invocations are picked up.
type RunCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewRunCommand(app *App) *RunCommand {
	return &RunCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *RunCommand) Execute(ctx context.Context, args []string) error {
	if c.app.scheduler == nil {
		return errors.NewInvalidInputError("run", "", "no scheduler configured")
	}

	// 1. Greet on the very first launch
	first, err := c.app.businessAPI.CompleteFirstLaunch(ctx)
	if err != nil {
		return c.errorHandler.Handle("start", err)
	}
	if first {
		c.app.println(c.app.styles.Title.Render("Welcome! Add a task with `todo add \"Buy milk\" --due tomorrow --remind`."))
	}

	// 2. Arm jobs from the stored preferences and tasks
	if err := c.app.businessAPI.ArmFromSettings(ctx); err != nil {
		return c.errorHandler.Handle("arm scheduled jobs", err)
	}

	// 3. Run until cancelled
	c.app.scheduler.Start()
	c.app.printf("Scheduler running with %d job(s). Press Ctrl+C to stop.\n", len(c.app.businessAPI.ScheduledJobs()))

	interval := c.app.config.Scheduler.SyncInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return c.stop()
		case <-ticker.C:
			if err := c.app.businessAPI.ArmFromSettings(ctx); err != nil && ctx.Err() == nil {
				c.app.println(c.app.styles.Warning.Render(c.errorHandler.Handle("sync scheduled jobs", err).Error()))
			}
		}
	}
}

func (c *RunCommand) stop() error {
	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if err := c.app.scheduler.Stop(stopCtx); err != nil {
		return c.errorHandler.Handle("stop scheduler", err)
	}
	c.app.println("Scheduler stopped.")
	return nil
}
