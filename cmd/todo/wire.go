package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"todo-engine/internal/api"
	"todo-engine/internal/cli"
	"todo-engine/internal/config"
	"todo-engine/internal/jobs"
	"todo-engine/internal/logging"
	"todo-engine/internal/notify"
	"todo-engine/internal/scheduler"
	"todo-engine/internal/services"
)

// bootstrap wires the store, services, notification output and scheduler for cfg.
func bootstrap(cfg *config.Config) (*cli.Runtime, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open task store: %w", err)
	}

	container := services.NewServiceContainer(repo,
		services.WithConfig(cfg),
		services.WithLogger(logger),
	)

	registry := scheduler.NewRegistry(
		scheduler.WithLogger(logger),
		scheduler.WithDeviceState(scheduler.StaticDevice(cfg.Scheduler.BatteryLow)),
		scheduler.WithJobTimeout(cfg.Scheduler.JobTimeout),
	)
	worker := jobs.NewWorker(container, newPresenter(cfg, logger),
		jobs.WithRetention(cfg.Scheduler.ArchiveRetention),
		jobs.WithLogger(logger),
	)
	planner := scheduler.NewPlanner(registry, worker, cfg.Scheduler, scheduler.WithPlannerLogger(logger))

	return &cli.Runtime{
		API:       api.NewBusinessAPI(container, planner, logger),
		Scheduler: registry,
		Close: func() error {
			_ = logger.Sync()
			return repo.Close()
		},
	}, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	opts := logging.Options{
		Development: cfg.IsDevelopment(),
		Level:       "warn",
	}
	switch {
	case cfg.Application.Debug:
		opts.Level = "debug"
	case cfg.Notifications.Output == config.OutputLog:
		opts.Level = "info"
	}
	return logging.New(opts)
}

func newPresenter(cfg *config.Config, logger *zap.Logger) notify.Presenter {
	var presenter notify.Presenter
	if cfg.Notifications.Output == config.OutputLog {
		presenter = notify.NewLogPresenter(logger)
	} else {
		presenter = notify.NewTerminalPresenter(os.Stdout, notify.NewStyles(cfg.Display.NoColor), cfg.Display.TimeFormat)
	}
	return notify.BestEffort(presenter, logger)
}
