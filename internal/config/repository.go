package config

import (
	"fmt"
	"os"

	"todo-engine/internal/repository/sqlite"
)

// CreateRepository opens the task store at the configured path, creating its
// directory first. EnvTest always gets a private in-memory database.
func CreateRepository(cfg *Config) (sqlite.Repository, error) {
	if cfg.Application.Environment == EnvTest {
		return CreateTestRepository()
	}

	perm := os.FileMode(cfg.Database.DirPermissions)
	if err := os.MkdirAll(cfg.Database.Dir, perm); err != nil {
		return nil, fmt.Errorf("create database directory %s: %w", cfg.Database.Dir, err)
	}

	path := cfg.GetDatabasePath()
	repo, err := sqlite.New(path, sqlite.WithBusyTimeout(cfg.Database.BusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("open task store %s: %w", path, err)
	}
	return repo, nil
}

func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory task store: %w", err)
	}
	return repo, nil
}
